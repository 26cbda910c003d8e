package dateutils_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mhaertel/umsatz-convert/internal/dateutils"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"german layout", "15.01.2024", "2024-01-15"},
		{"german without leading zeros", "5.1.2024", "2024-01-05"},
		{"iso passes through", "2024-01-15", "2024-01-15"},
		{"timestamp", "2024-01-15 00:00:00", "2024-01-15"},
		{"surrounding whitespace", "  15.01.2024 ", "2024-01-15"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := dateutils.NormalizeDate(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeDateUnparseable(t *testing.T) {
	got, err := dateutils.NormalizeDate("Mitte Januar")
	assert.Error(t, err)
	assert.Equal(t, "Mitte Januar", got, "raw value is kept for the caller")
}

func TestParseDate(t *testing.T) {
	got, err := dateutils.ParseDate("15.01.2024")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), got)
}

func TestToISODate(t *testing.T) {
	assert.Equal(t, "2024-01-15",
		dateutils.ToISODate(time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "", dateutils.ToISODate(time.Time{}))
}
