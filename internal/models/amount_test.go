package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mhaertel/umsatz-convert/internal/models"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"german notation", "1.234,56", "1234.56"},
		{"german negative", "-1.234,56", "-1234.56"},
		{"comma only", "42,50", "42.5"},
		{"dot decimal", "1234.56", "1234.56"},
		{"plain integer", "750", "750"},
		{"currency suffix", "1.234,56 EUR", "1234.56"},
		{"euro sign", "42,50 €", "42.5"},
		{"surrounding spaces", "  -12,00  ", "-12"},
		{"unparseable", "n/a", "0"},
		{"empty", "", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, models.ParseAmount(tt.input).String())
		})
	}
}

func TestHasPurpose(t *testing.T) {
	assert.False(t, (&models.Booking{}).HasPurpose())
	assert.False(t, (&models.Booking{PurposeRaw: "   "}).HasPurpose())
	assert.True(t, (&models.Booking{PurposeRaw: "Miete Jan"}).HasPurpose())
}

func TestClone(t *testing.T) {
	b := models.Booking{ID: "b-1", RemittanceNote: "Miete"}
	c := b.Clone()
	c.ID = "b-2"
	c.RemittanceNote = "Strom"

	assert.Equal(t, "b-1", b.ID)
	assert.Equal(t, "Miete", b.RemittanceNote)
}
