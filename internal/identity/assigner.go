// Package identity derives stable, collision-free identifiers for booking
// records and links collective bookings to their splits.
package identity

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"

	"mhaertel/umsatz-convert/internal/logging"
	"mhaertel/umsatz-convert/internal/models"
)

// Assigner hands out booking ids within one processing batch. An id is the
// content fingerprint of the record plus a visible counter suffix that is
// bumped until the id is unused in the batch. The counter is not re-hashed,
// so an isolated record always reproduces counter 0 and two identical
// records in one batch differ only in the suffix.
//
// Identity assignment must observe every previously assigned id, which makes
// it the only sequential step of the pipeline.
type Assigner struct {
	used   map[string]struct{}
	logger logging.Logger
}

// NewAssigner creates an Assigner with an empty id set.
func NewAssigner(logger logging.Logger) *Assigner {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Assigner{
		used:   make(map[string]struct{}),
		logger: logger,
	}
}

// Reserve marks ids as already taken, for callers resuming a run that has
// pre-existing records.
func (a *Assigner) Reserve(ids ...string) {
	for _, id := range ids {
		a.used[id] = struct{}{}
	}
}

// Assign computes the booking's id, stamps it on the record and returns it.
// The id is immutable for the rest of the run; assigning twice is a bug on
// the caller's side and keeps the first id.
func (a *Assigner) Assign(b *models.Booking) string {
	if b.ID != "" {
		a.logger.Warn("Booking already has an id, keeping it",
			logging.Field{Key: logging.FieldBookingID, Value: b.ID})
		return b.ID
	}

	key := Fingerprint(*b)
	for n := 0; ; n++ {
		id := fmt.Sprintf("%s-%d", key, n)
		if _, taken := a.used[id]; !taken {
			a.used[id] = struct{}{}
			b.ID = id
			return id
		}
	}
}

// ExpandSplits turns the splits of a fully decoded collective booking into
// split bookings: each is a clone of the parent carrying the split's own
// amount, category and note, marked as a child of the collective and given
// a fresh id. The parent is marked as collective parent; it must already
// own its id.
func (a *Assigner) ExpandSplits(parent *models.Booking) []models.Booking {
	if len(parent.Splits) == 0 {
		return nil
	}
	parent.BatchRole = models.BatchRoleParent

	children := make([]models.Booking, 0, len(parent.Splits))
	for _, split := range parent.Splits {
		child := parent.Clone()
		child.ID = ""
		child.Splits = nil
		child.Amount = split.Amount
		child.Category = split.Category
		child.RemittanceNote = split.Note
		child.BatchRole = models.BatchRoleChild
		child.BatchParentID = parent.ID
		a.Assign(&child)
		children = append(children, child)
	}

	a.logger.Debug("Expanded collective booking",
		logging.Field{Key: logging.FieldBookingID, Value: parent.ID},
		logging.Field{Key: logging.FieldCount, Value: len(children)})
	return children
}

// Fingerprint computes the content hash of a booking with its identity field
// cleared: a canonical key:value serialization of every field the decoder
// touches, digested with SHA-256 and encoded compactly. Collision resistance
// here guards against accidental merges, not adversaries.
func Fingerprint(b models.Booking) string {
	parts := []string{
		"date:" + b.Date,
		"valuedate:" + b.ValueDate,
		"amount:" + b.Amount.String(),
		"currency:" + b.Currency,
		"purpose:" + b.PurposeRaw,
		"name:" + b.RemittedName,
		"iban:" + b.RemittedIBAN,
		"bic:" + b.RemittedBIC,
		"account:" + b.RemittedAccountNo,
		"bankcode:" + b.RemittedBankCode,
		"eref:" + b.EndToEndID,
		"kref:" + b.PaymentInfoID,
		"mref:" + b.MandateID,
		"cred:" + b.CreditorID,
		"note:" + b.RemittanceNote,
		"bookingtext:" + b.BookingText,
		"category:" + b.Category,
		"role:" + string(b.BatchRole),
		"parent:" + b.BatchParentID,
	}

	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
