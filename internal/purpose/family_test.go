package purpose_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mhaertel/umsatz-convert/internal/decodererror"
	"mhaertel/umsatz-convert/internal/logging"
	"mhaertel/umsatz-convert/internal/models"
	"mhaertel/umsatz-convert/internal/purpose"
)

func newTestDecoder() *purpose.Decoder {
	return purpose.NewDecoder(purpose.DefaultConfig(), &logging.MockLogger{})
}

func TestDecodeFamilyA(t *testing.T) {
	tests := []struct {
		name        string
		purposeText string
		bookingText string
		note        string
		iban        string
	}{
		{
			name:        "trailing sepa segment becomes booking text",
			purposeText: "Miete Jan@SEPA-DE Miete Januar",
			bookingText: "SEPA-DE Miete Januar",
			note:        "Miete Jan",
		},
		{
			name:        "text after last delimiter becomes booking text",
			purposeText: "IBAN: DE02100500000054540402@Lastschrift",
			bookingText: "Lastschrift",
			iban:        "DE02100500000054540402",
		},
		{
			name:        "no delimiter leaves booking text empty",
			purposeText: "Miete Jan",
			note:        "Miete Jan",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDecoder()
			b := &models.Booking{PurposeRaw: tt.purposeText}

			require.NoError(t, d.Decode(b, purpose.FamilyA, &purpose.BatchState{}))
			assert.Equal(t, tt.bookingText, b.BookingText)
			assert.Equal(t, tt.note, b.RemittanceNote)
			assert.Equal(t, tt.iban, b.RemittedIBAN)
		})
	}
}

func TestDecodeFamilyAAlignedPadding(t *testing.T) {
	pad := strings.Repeat("A", 22)
	d := newTestDecoder()
	b := &models.Booking{
		PurposeRaw: "SVWZ: " + pad + "@BBBB@CCCC@SEPA-DE Lastschrift",
	}

	require.NoError(t, d.Decode(b, purpose.FamilyA, &purpose.BatchState{}))
	assert.Equal(t, "SEPA-DE Lastschrift", b.BookingText)
	assert.Equal(t, pad+"BBBB CCCC", b.RemittanceNote)
}

func TestDecodeFamilyBNameExtraction(t *testing.T) {
	d := newTestDecoder()
	st := &purpose.BatchState{}
	b := &models.Booking{
		PurposeRaw: "Max Mustermann@SVWZ: Miete Januar@IBAN: DE02100500000054540402",
	}

	require.NoError(t, d.Decode(b, purpose.FamilyB, st))
	assert.Equal(t, "Max Mustermann", b.RemittedName)
	assert.Equal(t, "Miete Januar", b.RemittanceNote)
	assert.Equal(t, "DE02100500000054540402", b.RemittedIBAN)
	assert.False(t, st.SEPATextSeen)
}

func TestDecodeFamilyBSEPASegment(t *testing.T) {
	d := newTestDecoder()
	st := &purpose.BatchState{}
	b := &models.Booking{
		PurposeRaw: "SEPA-UEBERWEISUNG@Empfaenger GmbH@IBAN: DE02100500000054540402",
	}

	require.NoError(t, d.Decode(b, purpose.FamilyB, st))
	assert.Equal(t, "SEPA-UEBERWEISUNG", b.BookingText)
	// With a SEPA segment present the leading text is purpose text, not a
	// counterparty name.
	assert.Empty(t, b.RemittedName)
	assert.Equal(t, "Empfaenger GmbH", b.RemittanceNote)
	assert.Equal(t, "DE02100500000054540402", b.RemittedIBAN)
	assert.True(t, st.SEPATextSeen)
}

func TestDecodeFamilyBStateAcrossBatch(t *testing.T) {
	d := newTestDecoder()
	st := &purpose.BatchState{}

	first := &models.Booking{PurposeRaw: "SEPA-LASTSCHRIFT@SVWZ: Strom"}
	require.NoError(t, d.Decode(first, purpose.FamilyB, st))
	require.True(t, st.SEPATextSeen)

	// Once any record of the batch carried a SEPA segment, later records no
	// longer treat their leading text as the remitted name.
	second := &models.Booking{PurposeRaw: "Max Mustermann@SVWZ: Miete"}
	require.NoError(t, d.Decode(second, purpose.FamilyB, st))
	assert.Empty(t, second.RemittedName)
	assert.Equal(t, "Miete Max Mustermann", second.RemittanceNote)
}

func TestDecodeFamilyBReclassifiesBookingNames(t *testing.T) {
	tests := []struct {
		name        string
		purposeText string
		wantName    string
		wantNote    string
	}{
		{
			name:        "gutschrift moves to note",
			purposeText: "Gutschrift@",
			wantNote:    "Gutschrift",
		},
		{
			name:        "case insensitive match",
			purposeText: "ZINSGUTSCHRIFT@",
			wantNote:    "ZINSGUTSCHRIFT",
		},
		{
			name:        "real names stay",
			purposeText: "Max Mustermann@",
			wantName:    "Max Mustermann",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDecoder()
			b := &models.Booking{PurposeRaw: tt.purposeText}

			require.NoError(t, d.Decode(b, purpose.FamilyB, &purpose.BatchState{}))
			assert.Equal(t, tt.wantName, b.RemittedName)
			assert.Equal(t, tt.wantNote, b.RemittanceNote)
		})
	}
}

func TestDecodeFamilyBNoReclassifyWithNote(t *testing.T) {
	d := newTestDecoder()
	b := &models.Booking{PurposeRaw: "Gutschrift@SVWZ: Erstattung"}

	require.NoError(t, d.Decode(b, purpose.FamilyB, &purpose.BatchState{}))
	assert.Equal(t, "Gutschrift", b.RemittedName)
	assert.Equal(t, "Erstattung", b.RemittanceNote)
}

func TestDecodeFamilyC(t *testing.T) {
	d := newTestDecoder()
	b := &models.Booking{PurposeRaw: "SVWZ: Miete Januar@Dauerauftrag"}

	require.NoError(t, d.Decode(b, purpose.FamilyC, &purpose.BatchState{}))
	assert.Equal(t, "Dauerauftrag", b.BookingText)
	assert.Equal(t, "Miete Januar", b.RemittanceNote)
}

func TestDecodeFamilyCAlignedPadding(t *testing.T) {
	pad := strings.Repeat("x", 27)
	d := newTestDecoder()
	b := &models.Booking{PurposeRaw: pad + "@rest@Dauerauftrag"}

	require.NoError(t, d.Decode(b, purpose.FamilyC, &purpose.BatchState{}))
	assert.Equal(t, "Dauerauftrag", b.BookingText)
	assert.Equal(t, pad+"rest", b.RemittanceNote)
}

func TestDecodeSkipsEmptyPurpose(t *testing.T) {
	d := newTestDecoder()
	b := &models.Booking{ID: "b-1", RemittedName: "Max Mustermann"}

	require.NoError(t, d.Decode(b, purpose.FamilyB, nil))
	assert.Equal(t, "Max Mustermann", b.RemittedName)
	assert.Empty(t, b.RemittanceNote)
}

func TestDecodeConflictSurfaces(t *testing.T) {
	d := newTestDecoder()
	b := &models.Booking{
		PurposeRaw: "IBAN: DE02100500000054540402 IBAN: DE99999999999999999999",
	}

	err := d.Decode(b, purpose.FamilyA, &purpose.BatchState{})
	var conflict *decodererror.ConflictingFieldError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "DE02100500000054540402", b.RemittedIBAN)
}

func TestDecodeNilStateAllowed(t *testing.T) {
	d := newTestDecoder()
	b := &models.Booking{PurposeRaw: "Max Mustermann@SVWZ: Miete"}

	require.NoError(t, d.Decode(b, purpose.FamilyB, nil))
	assert.Equal(t, "Max Mustermann", b.RemittedName)
	assert.Equal(t, "Miete", b.RemittanceNote)
}

func TestFamilyString(t *testing.T) {
	assert.Equal(t, "family-a", purpose.FamilyA.String())
	assert.Equal(t, "family-b", purpose.FamilyB.String())
	assert.Equal(t, "family-c", purpose.FamilyC.String())
}
