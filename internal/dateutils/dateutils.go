// Package dateutils normalizes the date spellings found in legacy banking
// exports onto the ISO layout of the target schema.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	// LayoutISO is the target-schema date layout.
	LayoutISO = "2006-01-02"
	// LayoutGerman is the layout written by the legacy application.
	LayoutGerman = "02.01.2006"
)

// exportFormats lists the date spellings observed in legacy exports, most
// common first.
var exportFormats = []string{
	LayoutGerman,
	LayoutISO,
	"2.1.2006",
	"02.01.06",
	"2006-01-02 15:04:05",
}

var spaceRuns = regexp.MustCompile(`\s+`)

// CleanDateString trims and collapses whitespace in a date string.
func CleanDateString(dateStr string) string {
	return spaceRuns.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}

// ParseDate parses a legacy export date, trying each known spelling.
func ParseDate(dateStr string) (time.Time, error) {
	cleaned := CleanDateString(dateStr)
	for _, format := range exportFormats {
		if t, err := time.Parse(format, cleaned); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}

// NormalizeDate rewrites a legacy export date to the ISO layout. Empty input
// stays empty; an unrecognized spelling is returned unchanged with the error
// so callers can keep the raw value.
func NormalizeDate(dateStr string) (string, error) {
	if strings.TrimSpace(dateStr) == "" {
		return "", nil
	}
	t, err := ParseDate(dateStr)
	if err != nil {
		return dateStr, err
	}
	return t.Format(LayoutISO), nil
}

// ToISODate formats a time as an ISO date, empty for the zero time.
func ToISODate(date time.Time) string {
	if date.IsZero() {
		return ""
	}
	return date.Format(LayoutISO)
}
