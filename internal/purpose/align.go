package purpose

import "strings"

// The legacy export inserts the delimiter as column padding at fixed
// character boundaries. A delimiter occurrence at offset off is "aligned"
// at period p if off is 0, or off >= p and
//
//	(off/p - 1) * len(delimiter) == off mod p
//
// which accounts for the padding delimiters themselves occupying columns.
// Aligned occurrences are padding artifacts; everything else is a genuine
// separator.

// isAligned reports whether a delimiter occurrence at the given offset is a
// padding artifact at period p. Offset 0 is always aligned: a delimiter at
// the very start of a value is never a real separator.
func isAligned(offset, delimLen, period int) bool {
	if offset == 0 {
		return true
	}
	if offset < period {
		return false
	}
	return (offset/period-1)*delimLen == offset%period
}

// RemoveAligned strips delimiter occurrences that fall on an aligned column
// at period p and keeps all others. Offsets are measured in the output built
// so far, relative to the start of the text passed in; that keeps the
// operation idempotent: running it twice yields the same result as once.
func RemoveAligned(text, delim string, period int) string {
	if delim == "" || period <= 0 || !strings.Contains(text, delim) {
		return text
	}

	var out strings.Builder
	rest := text
	for {
		i := strings.Index(rest, delim)
		if i < 0 {
			out.WriteString(rest)
			break
		}
		out.WriteString(rest[:i])
		if !isAligned(out.Len(), len(delim), period) {
			out.WriteString(delim)
		}
		rest = rest[i+len(delim):]
	}
	return out.String()
}

// FirstUnaligned returns the raw offset of the first delimiter occurrence
// that is NOT aligned at period p. The second return value is false when
// every occurrence is aligned (or the delimiter is absent). Used to bound a
// field value that contains the delimiter as literal padding.
func FirstUnaligned(text, delim string, period int) (int, bool) {
	if delim == "" || period <= 0 {
		return 0, false
	}

	for i := 0; ; {
		j := strings.Index(text[i:], delim)
		if j < 0 {
			return 0, false
		}
		off := i + j
		if !isAligned(off, len(delim), period) {
			return off, true
		}
		i = off + len(delim)
	}
}

// CollapseDelimiter replaces every delimiter occurrence with a single space
// and collapses the doubled spaces this leaves behind, repeating until a
// run of delimiters has shrunk to one space.
func CollapseDelimiter(text, delim string) string {
	if delim == "" {
		return text
	}
	for strings.Contains(text, delim) {
		text = strings.ReplaceAll(text, delim, " ")
	}
	for strings.Contains(text, "  ") {
		text = strings.ReplaceAll(text, "  ", " ")
	}
	return text
}
