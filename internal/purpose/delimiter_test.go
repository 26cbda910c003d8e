package purpose_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mhaertel/umsatz-convert/internal/purpose"
)

func TestDetectDelimiter(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "at character present",
			input:    "Miete Jan@SEPA-DE Miete Januar",
			expected: purpose.DelimiterAt,
		},
		{
			name:     "no at character falls back to double space",
			input:    "Miete Januar  Dauerauftrag",
			expected: purpose.DelimiterSpaces,
		},
		{
			name:     "plain text without any delimiter",
			input:    "Miete Januar",
			expected: purpose.DelimiterSpaces,
		},
		{
			name:     "at anywhere in the string wins",
			input:    "Rechnung 4711 kontakt@example test",
			expected: purpose.DelimiterAt,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, purpose.DetectDelimiter(tt.input))
		})
	}
}
