// Package models defines the booking record shared by the importer, the
// purpose decoder and the exporter.
package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// BatchRole describes how a booking relates to a collective booking.
type BatchRole string

const (
	// BatchRoleNone marks an ordinary booking.
	BatchRoleNone BatchRole = ""
	// BatchRoleParent marks a collective booking that owns split bookings.
	BatchRoleParent BatchRole = "parent"
	// BatchRoleChild marks a split booking belonging to a collective parent.
	BatchRoleChild BatchRole = "child"
)

// Booking is one transaction record in the target schema. The importer
// populates the raw fields, the purpose decoder fills the remittance fields
// in place, and the identity assigner sets ID exactly once per run.
type Booking struct {
	ID string `csv:"ID" yaml:"id"`

	Date      string          `csv:"Date" yaml:"date"`
	ValueDate string          `csv:"Value Date" yaml:"value_date"`
	Amount    decimal.Decimal `csv:"Amount" yaml:"amount"`
	Currency  string          `csv:"Currency" yaml:"currency"`

	// PurposeRaw is the single free-text purpose field as exported by the
	// legacy application. Empty means no purpose info was present.
	PurposeRaw string `csv:"-" yaml:"purpose_raw,omitempty"`

	// Fields recovered from the purpose text.
	RemittedName      string `csv:"Remitted Name" yaml:"remitted_name,omitempty"`
	RemittedIBAN      string `csv:"Remitted IBAN" yaml:"remitted_iban,omitempty"`
	RemittedBIC       string `csv:"Remitted BIC" yaml:"remitted_bic,omitempty"`
	RemittedAccountNo string `csv:"Remitted Account" yaml:"remitted_account,omitempty"`
	RemittedBankCode  string `csv:"Remitted Bank Code" yaml:"remitted_bank_code,omitempty"`
	EndToEndID        string `csv:"End-To-End ID" yaml:"end_to_end_id,omitempty"`
	PaymentInfoID     string `csv:"Payment Info ID" yaml:"payment_info_id,omitempty"`
	MandateID         string `csv:"Mandate ID" yaml:"mandate_id,omitempty"`
	CreditorID        string `csv:"Creditor ID" yaml:"creditor_id,omitempty"`
	RemittanceNote    string `csv:"Remittance Note" yaml:"remittance_note,omitempty"`
	BookingText       string `csv:"Booking Text" yaml:"booking_text,omitempty"`

	Category string `csv:"Category" yaml:"category,omitempty"`

	BatchRole     BatchRole `csv:"Batch Role" yaml:"batch_role,omitempty"`
	BatchParentID string    `csv:"Batch Parent" yaml:"batch_parent_id,omitempty"`

	// Splits carries the constituents of a collective booking from the
	// import step to the identity assigner; split bookings are expanded
	// from it and it is not exported itself.
	Splits []Split `csv:"-" yaml:"splits,omitempty"`
}

// HasPurpose reports whether the booking carries any purpose text to decode.
func (b *Booking) HasPurpose() bool {
	return strings.TrimSpace(b.PurposeRaw) != ""
}

// Clone returns a copy of the booking. Split bookings start from a clone of
// their fully decoded collective parent.
func (b *Booking) Clone() Booking {
	return *b
}

// Split describes one constituent of a collective booking. The amounts of
// all splits sum to the collective amount; that invariant is enforced by the
// exporting application, not recomputed here.
type Split struct {
	Amount   decimal.Decimal `yaml:"amount"`
	Category string          `yaml:"category,omitempty"`
	Note     string          `yaml:"note,omitempty"`
}
