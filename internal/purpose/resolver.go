package purpose

import (
	"strings"

	"mhaertel/umsatz-convert/internal/decodererror"
	"mhaertel/umsatz-convert/internal/models"
)

// fieldRef binds a label to one target field on the booking record. Keeping
// the accessors in a table centralizes the first-write-wins rule instead of
// repeating it per label.
type fieldRef struct {
	name string
	get  func(*models.Booking) string
	set  func(*models.Booking, string)
}

var labelFields = map[Label]fieldRef{
	LabelIBAN: {
		name: "remitted IBAN",
		get:  func(b *models.Booking) string { return b.RemittedIBAN },
		set:  func(b *models.Booking, v string) { b.RemittedIBAN = v },
	},
	LabelBIC: {
		name: "remitted BIC",
		get:  func(b *models.Booking) string { return b.RemittedBIC },
		set:  func(b *models.Booking, v string) { b.RemittedBIC = v },
	},
	LabelEndToEnd: {
		name: "end-to-end id",
		get:  func(b *models.Booking) string { return b.EndToEndID },
		set:  func(b *models.Booking, v string) { b.EndToEndID = v },
	},
	LabelCustomerRef: {
		name: "payment information id",
		get:  func(b *models.Booking) string { return b.PaymentInfoID },
		set:  func(b *models.Booking, v string) { b.PaymentInfoID = v },
	},
	LabelMandateRef: {
		name: "mandate id",
		get:  func(b *models.Booking) string { return b.MandateID },
		set:  func(b *models.Booking, v string) { b.MandateID = v },
	},
	LabelCreditorID: {
		name: "creditor id",
		get:  func(b *models.Booking) string { return b.CreditorID },
		set:  func(b *models.Booking, v string) { b.CreditorID = v },
	},
}

// Resolve applies one extracted segment to the booking record.
//
// Reference labels write their target field once; a second write with a
// different value is a ConflictingFieldError, a second write with the same
// value is a no-op. SVWZ feeds the remittance note, KTO/BLZ splits into
// account number and bank code, the plain purpose label is recognized but
// carries no data. Anything else has no dispatch rule and fails fast.
func Resolve(b *models.Booking, seg Segment) error {
	switch seg.Label {
	case LabelNote:
		applyNote(b, seg.Value)
		return nil
	case LabelAccount:
		return applyAccount(b, seg.Value)
	case LabelPurpose:
		// Recognized so it is consumed from the text, intentionally ignored.
		return nil
	default:
		ref, ok := labelFields[seg.Label]
		if !ok {
			return &decodererror.UnsupportedLabelError{
				Label:    string(seg.Label),
				RawValue: seg.Raw,
			}
		}
		return assign(b, ref, seg.Value)
	}
}

func assign(b *models.Booking, ref fieldRef, value string) error {
	if value == "" {
		return nil
	}
	existing := ref.get(b)
	if existing == "" {
		ref.set(b, value)
		return nil
	}
	if existing != value {
		return &decodererror.ConflictingFieldError{
			BookingID: b.ID,
			Field:     ref.name,
			Existing:  existing,
			Incoming:  value,
		}
	}
	return nil
}

// applyNote sets or extends the remittance note. Doubled spaces collapse,
// ends are trimmed, empty stays absent.
func applyNote(b *models.Booking, value string) {
	value = strings.TrimSpace(collapseSpaces(value))
	if value == "" {
		return
	}
	if b.RemittanceNote == "" {
		b.RemittanceNote = value
		return
	}
	b.RemittanceNote += " " + value
}

// applyAccount splits a KTO/BLZ value on '/' into account number (leading
// zeros stripped) and bank code.
func applyAccount(b *models.Booking, value string) error {
	account := value
	bankCode := ""
	if idx := strings.Index(value, "/"); idx >= 0 {
		account = value[:idx]
		bankCode = value[idx+1:]
	}
	account = strings.TrimLeft(strings.TrimSpace(account), "0")
	bankCode = strings.TrimSpace(bankCode)

	if account != "" {
		ref := fieldRef{
			name: "remitted account number",
			get:  func(b *models.Booking) string { return b.RemittedAccountNo },
			set:  func(b *models.Booking, v string) { b.RemittedAccountNo = v },
		}
		if err := assign(b, ref, account); err != nil {
			return err
		}
	}
	if bankCode != "" {
		ref := fieldRef{
			name: "remitted bank code",
			get:  func(b *models.Booking) string { return b.RemittedBankCode },
			set:  func(b *models.Booking, v string) { b.RemittedBankCode = v },
		}
		if err := assign(b, ref, bankCode); err != nil {
			return err
		}
	}
	return nil
}

func collapseSpaces(s string) string {
	for strings.Contains(s, "  ") {
		s = strings.ReplaceAll(s, "  ", " ")
	}
	return s
}
