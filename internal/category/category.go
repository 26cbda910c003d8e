// Package category maps category and account-type values of the legacy
// schema onto the target schema. The tables are deliberately closed: an
// unmapped value is a hard error so new vocabulary gets added to the table
// instead of silently leaking through.
package category

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"mhaertel/umsatz-convert/internal/decodererror"
)

// Mapper translates legacy enumeration values. Zero value is unusable;
// construct with NewMapper or LoadMapper.
type Mapper struct {
	categories   map[string]string
	accountTypes map[string]string
}

// mappingFile is the on-disk YAML shape of the mapping tables.
type mappingFile struct {
	Categories   map[string]string `yaml:"categories"`
	AccountTypes map[string]string `yaml:"account_types"`
}

// NewMapper returns a Mapper with the built-in tables for the supported
// exports.
func NewMapper() *Mapper {
	return &Mapper{
		categories: map[string]string{
			"Lebensmittel": "groceries",
			"Miete":        "rent",
			"Gehalt":       "salary",
			"Versicherung": "insurance",
			"Strom":        "utilities",
			"Telefon":      "telecom",
			"Sonstiges":    "other",
			"Bargeld":      "cash",
			"Zinsen":       "interest",
			"Gebuehren":    "fees",
		},
		accountTypes: map[string]string{
			"Girokonto":   "checking",
			"Sparkonto":   "savings",
			"Tagesgeld":   "savings",
			"Kreditkarte": "credit-card",
			"Depot":       "brokerage",
		},
	}
}

// LoadMapper reads mapping tables from a YAML file and merges them over the
// built-in tables, so a config file only needs to list additions.
func LoadMapper(path string) (*Mapper, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- mapping file path comes from user config
	if err != nil {
		return nil, fmt.Errorf("error reading mapping file: %w", err)
	}

	var file mappingFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("error parsing mapping file %s: %w", path, err)
	}

	m := NewMapper()
	for k, v := range file.Categories {
		m.categories[k] = v
	}
	for k, v := range file.AccountTypes {
		m.accountTypes[k] = v
	}
	return m, nil
}

// MapCategory translates a legacy category. Empty maps to empty; an unknown
// value is an UnsupportedValueError.
func (m *Mapper) MapCategory(src string) (string, error) {
	if src == "" {
		return "", nil
	}
	if dst, ok := m.categories[src]; ok {
		return dst, nil
	}
	return "", &decodererror.UnsupportedValueError{Kind: "category", Value: src}
}

// MapAccountType translates a legacy account type. Unknown values are an
// UnsupportedValueError.
func (m *Mapper) MapAccountType(src string) (string, error) {
	if dst, ok := m.accountTypes[src]; ok {
		return dst, nil
	}
	return "", &decodererror.UnsupportedValueError{Kind: "account type", Value: src}
}
