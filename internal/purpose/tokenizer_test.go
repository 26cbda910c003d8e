package purpose_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mhaertel/umsatz-convert/internal/purpose"
)

func segmentMap(segments []purpose.Segment) map[purpose.Label]string {
	m := make(map[purpose.Label]string, len(segments))
	for _, seg := range segments {
		m[seg.Label] = seg.Value
	}
	return m
}

func permutations(parts []string) [][]string {
	if len(parts) <= 1 {
		return [][]string{parts}
	}
	var result [][]string
	for i := range parts {
		rest := make([]string, 0, len(parts)-1)
		rest = append(rest, parts[:i]...)
		rest = append(rest, parts[i+1:]...)
		for _, tail := range permutations(rest) {
			perm := append([]string{parts[i]}, tail...)
			result = append(result, perm)
		}
	}
	return result
}

func TestTokenizeLabelOrderInvariance(t *testing.T) {
	parts := []string{
		"IBAN: DE02100500000054540402",
		"BIC: BELADEBEXXX",
		"EREF: E2E-4711",
		"SVWZ: Miete Januar",
	}
	expected := map[purpose.Label]string{
		purpose.LabelIBAN:     "DE02100500000054540402",
		purpose.LabelBIC:      "BELADEBEXXX",
		purpose.LabelEndToEnd: "E2E-4711",
		purpose.LabelNote:     "Miete Januar",
	}

	for _, perm := range permutations(parts) {
		input := strings.Join(perm, " ")
		segments, residual := purpose.Tokenize(input, purpose.DelimiterAt, 22)
		assert.Equal(t, expected, segmentMap(segments), "input %q", input)
		assert.Empty(t, strings.TrimSpace(residual), "input %q", input)
	}
}

func TestTokenizeLabelVariants(t *testing.T) {
	tests := []struct {
		name  string
		input string
		label purpose.Label
		value string
	}{
		{
			name:  "plus suffix",
			input: "EREF+E2E-4711",
			label: purpose.LabelEndToEnd,
			value: "E2E-4711",
		},
		{
			name:  "lowercase label",
			input: "iban: DE02100500000054540402",
			label: purpose.LabelIBAN,
			value: "DE02100500000054540402",
		},
		{
			name:  "long mandate spelling",
			input: "Mandatsreferenz: M-2024-0815",
			label: purpose.LabelMandateRef,
			value: "M-2024-0815",
		},
		{
			name:  "long customer spelling",
			input: "Kundenreferenz: K-99",
			label: purpose.LabelCustomerRef,
			value: "K-99",
		},
		{
			name:  "creditor id with dash",
			input: "Creditor-ID: DE98ZZZ09999999999",
			label: purpose.LabelCreditorID,
			value: "DE98ZZZ09999999999",
		},
		{
			name:  "debitor id maps to creditor field",
			input: "Debitor-ID: DE98ZZZ09999999999",
			label: purpose.LabelCreditorID,
			value: "DE98ZZZ09999999999",
		},
		{
			name:  "account with bank code",
			input: "KTO/BLZ 0001234567/10070000",
			label: purpose.LabelAccount,
			value: "0001234567/10070000",
		},
		{
			name:  "purpose label recognized",
			input: "Verwendungszweck: egal",
			label: purpose.LabelPurpose,
			value: "egal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segments, _ := purpose.Tokenize(tt.input, purpose.DelimiterAt, 22)
			require.Len(t, segments, 1)
			assert.Equal(t, tt.label, segments[0].Label)
			assert.Equal(t, tt.value, segments[0].Value)
		})
	}
}

func TestTokenizeDelimiterAnchor(t *testing.T) {
	segments, residual := purpose.Tokenize("Miete@SVWZ: Januar", purpose.DelimiterAt, 22)
	require.Len(t, segments, 1)
	assert.Equal(t, purpose.LabelNote, segments[0].Label)
	assert.Equal(t, "Januar", segments[0].Value)
	assert.Equal(t, "Miete", strings.Trim(residual, " @"))
}

func TestTokenizeNoEmbeddedLabel(t *testing.T) {
	// "RIBAN" must not match the IBAN label: anchors require start of
	// string, a space or the delimiter before the label.
	segments, residual := purpose.Tokenize("VertragRIBAN123", purpose.DelimiterAt, 22)
	assert.Empty(t, segments)
	assert.Equal(t, "VertragRIBAN123", residual)
}

func TestTokenizeValueTruncatedAtUnalignedDelimiter(t *testing.T) {
	pad := strings.Repeat("A", 22)
	// The @ at offset 22 of the value is aligned padding and belongs to
	// the value; the @ at offset 27 is a genuine separator that ends the
	// value early. CCCC stays in the residual.
	input := "SVWZ: " + pad + "@BBBB@CCCC IBAN: DE99"

	segments, residual := purpose.Tokenize(input, purpose.DelimiterAt, 22)
	require.Len(t, segments, 2)

	values := segmentMap(segments)
	assert.Equal(t, pad+"BBBB", values[purpose.LabelNote])
	assert.Equal(t, "DE99", values[purpose.LabelIBAN])
	assert.Equal(t, "CCCC", purpose.CleanResidual(residual, purpose.DelimiterAt))
}

func TestTokenizeResidualOnly(t *testing.T) {
	segments, residual := purpose.Tokenize("Miete Jan", purpose.DelimiterAt, 22)
	assert.Empty(t, segments)
	assert.Equal(t, "Miete Jan", residual)
}

func TestCleanResidual(t *testing.T) {
	assert.Equal(t, "Miete Januar",
		purpose.CleanResidual("  Miete@@Januar ", purpose.DelimiterAt))
	assert.Equal(t, "", purpose.CleanResidual("@@@", purpose.DelimiterAt))
}
