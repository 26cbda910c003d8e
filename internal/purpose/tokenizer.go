package purpose

import (
	"fmt"
	"regexp"
	"strings"
)

// Label identifies a recognized inline field label, normalized across the
// spelling variants found in exports.
type Label string

const (
	LabelIBAN        Label = "IBAN"
	LabelBIC         Label = "BIC"
	LabelEndToEnd    Label = "EREF"
	LabelCustomerRef Label = "KREF"
	LabelMandateRef  Label = "MREF"
	LabelCreditorID  Label = "CRED"
	LabelNote        Label = "SVWZ"
	LabelAccount     Label = "KTO/BLZ"
	LabelPurpose     Label = "PURPOSE"
)

// Label spelling variants, longest alternatives first so the regexp engine
// prefers them over their prefixes (KUNDENREFERENZ before KREF etc.).
const labelAlternatives = `VERWENDUNGSZWECK|END-TO-END-REF\.?|KUNDENREFERENZ|MANDATSREFERENZ|CREDITOR[ -]?ID|DEBITOR[ -]?ID|KUNDENREF|MANDATSREF|KTO/BLZ|PURPOSE|EREF|KREF|MREF|CRED|SVWZ|IBAN|BIC`

var labelNormalization = map[string]Label{
	"IBAN":             LabelIBAN,
	"BIC":              LabelBIC,
	"EREF":             LabelEndToEnd,
	"END-TO-END-REF":   LabelEndToEnd,
	"END-TO-END-REF.":  LabelEndToEnd,
	"KREF":             LabelCustomerRef,
	"KUNDENREF":        LabelCustomerRef,
	"KUNDENREFERENZ":   LabelCustomerRef,
	"MREF":             LabelMandateRef,
	"MANDATSREF":       LabelMandateRef,
	"MANDATSREFERENZ":  LabelMandateRef,
	"CRED":             LabelCreditorID,
	"CREDITORID":       LabelCreditorID,
	"DEBITORID":        LabelCreditorID,
	"SVWZ":             LabelNote,
	"KTO/BLZ":          LabelAccount,
	"VERWENDUNGSZWECK": LabelPurpose,
	"PURPOSE":          LabelPurpose,
}

// normalizeLabel maps a matched label spelling to its canonical Label.
func normalizeLabel(raw string) Label {
	key := strings.ToUpper(strings.TrimSpace(raw))
	key = strings.ReplaceAll(key, " ", "")
	key = strings.ReplaceAll(key, "-ID", "ID")
	if l, ok := labelNormalization[key]; ok {
		return l
	}
	return Label(key)
}

// Segment is one (label, value) pair extracted from a purpose string.
type Segment struct {
	Label Label
	// Value is the cleaned value: aligned padding removed, delimiter runs
	// collapsed to single spaces, delimiter and space characters trimmed
	// from both ends.
	Value string
	// Raw is the value substring before cleaning, already truncated at the
	// first non-aligned delimiter when one occurred inside it.
	Raw string
}

// labelPattern builds the label matcher for one delimiter. A label counts
// only when preceded by start-of-string, a space or the delimiter, and it
// may carry a ':' or '+' suffix plus trailing spaces.
func labelPattern(delim string) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(`(?i)(?:^|[ ]|%s)(%s)[:+]? *`,
		regexp.QuoteMeta(delim), labelAlternatives))
}

// Tokenize splits a purpose string into labeled segments and the residual
// text that belongs to no label.
//
// All label matches are collected up front, then consumed rightmost-first so
// removing a later span never shifts an earlier one. The raw value of a
// match runs from the end of its label to the start of the next match (or
// end of string); a non-aligned delimiter inside the raw value ends the
// value early, with the aligned padding before it belonging to the value
// and the text after it staying in the residual.
func Tokenize(text, delim string, period int) ([]Segment, string) {
	matches := labelPattern(delim).FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return nil, text
	}

	working := text
	segments := make([]Segment, 0, len(matches))
	for i := len(matches) - 1; i >= 0; i-- {
		m := matches[i]
		spanStart, valStart := m[0], m[1]
		labelText := text[m[2]:m[3]]

		valEnd := len(working)
		if i+1 < len(matches) {
			// Positions left of the next match are untouched by the
			// removals done so far.
			valEnd = matches[i+1][0]
		}

		raw := working[valStart:valEnd]
		if off, ok := FirstUnaligned(raw, delim, period); ok {
			raw = raw[:off]
			valEnd = valStart + off
		}

		segments = append(segments, Segment{
			Label: normalizeLabel(labelText),
			Value: cleanValue(raw, delim, period),
			Raw:   raw,
		})
		working = working[:spanStart] + working[valEnd:]
	}

	// Restore left-to-right order of appearance.
	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}
	return segments, working
}

// cleanValue normalizes an extracted raw value.
func cleanValue(raw, delim string, period int) string {
	v := RemoveAligned(raw, delim, period)
	v = CollapseDelimiter(v, delim)
	return strings.Trim(v, " "+delim)
}

// CleanResidual turns the text left after tokenization into a remittance
// note: delimiters become spaces, doubled spaces collapse, ends are trimmed.
func CleanResidual(residual, delim string) string {
	return strings.TrimSpace(CollapseDelimiter(residual, delim))
}
