package purpose

import (
	"fmt"
	"regexp"
	"strings"

	"mhaertel/umsatz-convert/internal/logging"
	"mhaertel/umsatz-convert/internal/models"
)

// Family selects the bank-specific pre-processing applied before
// tokenization. The mapping from a record's bank to its family is decided
// by the caller.
type Family int

const (
	// FamilyA peels a SEPA/booking-text segment off the tail of the purpose
	// text and tokenizes at period 22.
	FamilyA Family = iota
	// FamilyB peels a SEPA segment off the head, may recover the remitted
	// name, and tokenizes at period 27.
	FamilyB
	// FamilyC peels plain booking text off the tail and tokenizes at
	// period 27.
	FamilyC
)

func (f Family) String() string {
	switch f {
	case FamilyA:
		return "family-a"
	case FamilyB:
		return "family-b"
	case FamilyC:
		return "family-c"
	}
	return fmt.Sprintf("family(%d)", int(f))
}

// BatchState is the accumulator threaded through a batch traversal. Family B
// stops treating leading text as the remitted name once any record of the
// batch carried a SEPA booking-text segment.
type BatchState struct {
	SEPATextSeen bool
}

// Config carries the per-family decoding constants. The alignment periods
// differ by bank family with no derivable rule, so they stay configuration.
type Config struct {
	// PeriodA is the column-alignment period for Family A records.
	PeriodA int
	// PeriodBC is the column-alignment period for Family B and C records.
	PeriodBC int
	// NoteNames lists remitted-name values that Family B reclassifies as
	// the remittance note when decoding produced none. A bank-observed
	// vocabulary with no completeness guarantee; extend via configuration.
	NoteNames []string
}

// DefaultConfig returns the constants observed in the supported exports.
func DefaultConfig() Config {
	return Config{
		PeriodA:  22,
		PeriodBC: 27,
		NoteNames: []string{
			"Gutschrift",
			"Gutschriftsauszahlung",
			"Zinsgutschrift",
			"Ratengutschrift",
			"Rechnungsabschluss",
		},
	}
}

// Decoder runs the remittance-purpose pipeline: family pre-processing, then
// the shared tokenizer and field resolver, then the residual-note rules.
type Decoder struct {
	cfg    Config
	logger logging.Logger
}

// NewDecoder creates a Decoder. A nil logger falls back to a default one.
func NewDecoder(cfg Config, logger logging.Logger) *Decoder {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if cfg.PeriodA <= 0 {
		cfg.PeriodA = 22
	}
	if cfg.PeriodBC <= 0 {
		cfg.PeriodBC = 27
	}
	return &Decoder{cfg: cfg, logger: logger}
}

// sepaTrailing matches a SEPA-prefixed segment anchored to the end of the
// purpose text, bounded on the left by start-of-string or the delimiter.
func sepaTrailing(delim string) *regexp.Regexp {
	return regexp.MustCompile(`(?:^|` + regexp.QuoteMeta(delim) + `)(SEPA.*)$`)
}

// Decode mutates the booking in place, recovering structured fields from its
// raw purpose text. Records without purpose text are left unchanged. The
// batch state must be shared across all records of one processing batch.
func (d *Decoder) Decode(b *models.Booking, fam Family, st *BatchState) error {
	if st == nil {
		st = &BatchState{}
	}
	if !b.HasPurpose() {
		return nil
	}

	text := b.PurposeRaw
	delim := DetectDelimiter(text)
	period := d.cfg.PeriodA
	if fam != FamilyA {
		period = d.cfg.PeriodBC
	}

	switch fam {
	case FamilyA:
		text = d.preprocessA(b, text, delim)
	case FamilyB:
		text = d.preprocessB(b, text, delim, st)
	case FamilyC:
		text = d.preprocessC(b, text, delim)
	}

	if err := d.decodeText(b, text, delim, period); err != nil {
		return err
	}

	if fam == FamilyB {
		d.reclassifyName(b)
	}

	d.logger.Debug("Decoded purpose text",
		logging.Field{Key: logging.FieldFamily, Value: fam.String()},
		logging.Field{Key: logging.FieldDelimiter, Value: delim})
	return nil
}

// preprocessA peels booking text off the tail: a trailing SEPA segment if
// present, otherwise everything after the last delimiter occurrence.
func (d *Decoder) preprocessA(b *models.Booking, text, delim string) string {
	if m := sepaTrailing(delim).FindStringSubmatchIndex(text); m != nil {
		b.BookingText = strings.TrimSpace(text[m[2]:m[3]])
		return text[:m[0]]
	}
	if idx := strings.LastIndex(text, delim); idx >= 0 {
		b.BookingText = strings.TrimSpace(text[idx+len(delim):])
		return text[:idx]
	}
	return text
}

// preprocessB peels a leading SEPA segment off the head, normalizes padding,
// and, as long as no record of the batch has shown a SEPA segment, recovers
// the remitted name from the text before the first '@'.
func (d *Decoder) preprocessB(b *models.Booking, text, delim string, st *BatchState) string {
	if strings.HasPrefix(text, "SEPA") {
		end := len(text)
		if idx := strings.Index(text, delim); idx >= 0 {
			end = idx
		}
		b.BookingText = strings.TrimSpace(text[:end])
		// The bounding delimiter stays at offset 0 and is dropped as
		// aligned padding below.
		text = text[end:]
		st.SEPATextSeen = true
	}

	text = RemoveAligned(text, delim, d.cfg.PeriodBC)

	if !st.SEPATextSeen && delim == DelimiterAt {
		if idx := strings.Index(text, delim); idx >= 0 {
			if b.RemittedName == "" {
				b.RemittedName = strings.TrimSpace(text[:idx])
			}
			text = text[idx+len(delim):]
		}
	}
	return text
}

// preprocessC peels plain booking text off the tail and normalizes padding.
func (d *Decoder) preprocessC(b *models.Booking, text, delim string) string {
	if idx := strings.LastIndex(text, delim); idx >= 0 {
		b.BookingText = strings.TrimSpace(text[idx+len(delim):])
		text = text[:idx]
	}
	return RemoveAligned(text, delim, d.cfg.PeriodBC)
}

// decodeText runs the shared tokenizer over the pre-processed text and folds
// the residual into the remittance note.
func (d *Decoder) decodeText(b *models.Booking, text, delim string, period int) error {
	segments, residual := Tokenize(text, delim, period)
	for _, seg := range segments {
		if err := Resolve(b, seg); err != nil {
			return err
		}
	}

	if res := CleanResidual(residual, delim); res != "" {
		if b.RemittanceNote == "" {
			b.RemittanceNote = res
		} else {
			b.RemittanceNote += " " + res
		}
	}
	return nil
}

// reclassifyName moves known booking names ("Gutschrift" and friends) from
// the remitted-name field into the remittance note when decoding produced
// no note. Those values name the booking, not a counterparty.
func (d *Decoder) reclassifyName(b *models.Booking) {
	if b.RemittanceNote != "" || b.RemittedName == "" {
		return
	}
	for _, name := range d.cfg.NoteNames {
		if strings.EqualFold(b.RemittedName, name) {
			b.RemittanceNote = b.RemittedName
			b.RemittedName = ""
			return
		}
	}
}
