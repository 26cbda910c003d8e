// Package purpose decodes the free-text purpose field of legacy banking
// exports into structured remittance fields. The legacy application packs
// several sub-fields into one string using a per-record delimiter that also
// shows up as column padding at fixed character boundaries, so decoding has
// to separate genuine separators from padding artifacts.
package purpose

import "strings"

const (
	// DelimiterAt is the character delimiter used by most exports.
	DelimiterAt = "@"
	// DelimiterSpaces is the fallback token when no character delimiter is
	// present. Callers treat it as "no real delimiter in this record".
	DelimiterSpaces = "  "
)

// DetectDelimiter returns the delimiter in use for one purpose string.
// Exactly one delimiter is active per record and it never changes while
// that record is decoded.
func DetectDelimiter(text string) string {
	if strings.Contains(text, DelimiterAt) {
		return DelimiterAt
	}
	return DelimiterSpaces
}
