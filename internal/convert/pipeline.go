// Package convert wires importer, purpose decoder, category mapper and
// identity assigner into the batch conversion pipeline.
package convert

import (
	"fmt"

	"github.com/google/uuid"

	"mhaertel/umsatz-convert/internal/category"
	"mhaertel/umsatz-convert/internal/common"
	"mhaertel/umsatz-convert/internal/identity"
	"mhaertel/umsatz-convert/internal/logging"
	"mhaertel/umsatz-convert/internal/models"
	"mhaertel/umsatz-convert/internal/purpose"
	"mhaertel/umsatz-convert/internal/xmlimport"
)

// Options configures a Pipeline.
type Options struct {
	Decoder purpose.Config
	Mapper  *category.Mapper
	// SkipFailedRecords drops records that fail to decode instead of
	// aborting the batch. A failed record is excluded entirely; partially
	// decoded fields are never emitted.
	SkipFailedRecords bool
	// Families maps bank-code prefixes to decoder families. Records whose
	// bank code matches no prefix default to Family A.
	Families map[string]purpose.Family
	Logger   logging.Logger
}

// Pipeline converts legacy export accounts into decoded, identified
// bookings. Records are processed strictly sequentially: identity
// assignment must observe all previously assigned ids of the batch.
type Pipeline struct {
	decoder    *purpose.Decoder
	mapper     *category.Mapper
	assigner   *identity.Assigner
	state      purpose.BatchState
	families   map[string]purpose.Family
	skipFailed bool
	logger     logging.Logger
}

// NewPipeline creates a Pipeline for one processing batch. Pipelines are
// single-use: the identity set and the batch state accumulate across Run
// calls on purpose, so one batch maps to one Pipeline.
func NewPipeline(opts Options) *Pipeline {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	logger = logger.WithField(logging.FieldRunID, uuid.New().String())

	mapper := opts.Mapper
	if mapper == nil {
		mapper = category.NewMapper()
	}

	return &Pipeline{
		decoder:    purpose.NewDecoder(opts.Decoder, logger),
		mapper:     mapper,
		assigner:   identity.NewAssigner(logger),
		families:   opts.Families,
		skipFailed: opts.SkipFailedRecords,
		logger:     logger,
	}
}

// FamilyFor selects the decoder family for an account by its bank code.
func (p *Pipeline) FamilyFor(account xmlimport.Account) purpose.Family {
	for prefix, fam := range p.families {
		if prefix != "" && len(account.BankCode) >= len(prefix) && account.BankCode[:len(prefix)] == prefix {
			return fam
		}
	}
	return purpose.FamilyA
}

// Run decodes all bookings of the given accounts and assigns identities.
// Split bookings are expanded after their collective parent so the parent
// id is known when the children are stamped.
func (p *Pipeline) Run(accounts []xmlimport.Account) ([]models.Booking, error) {
	out := []models.Booking{}

	for _, account := range accounts {
		if _, err := p.mapper.MapAccountType(account.AccountType); err != nil {
			// Unknown account types are fatal regardless of the skip
			// policy: every booking of the account would be affected.
			return nil, fmt.Errorf("account %q: %w", account.Name, err)
		}

		fam := p.FamilyFor(account)
		log := p.logger.WithFields(
			logging.Field{Key: logging.FieldFamily, Value: fam.String()},
			logging.Field{Key: "account", Value: account.Name},
		)
		log.Info("Converting account",
			logging.Field{Key: logging.FieldCount, Value: len(account.Bookings)})

		for _, booking := range account.Bookings {
			converted, err := p.processBooking(booking, fam)
			if err != nil {
				if p.skipFailed {
					log.WithError(err).Warn("Skipping booking that failed to decode")
					continue
				}
				return nil, err
			}
			out = append(out, converted...)
		}
	}

	p.logger.Info("Batch conversion finished",
		logging.Field{Key: logging.FieldCount, Value: len(out)})
	return out, nil
}

// processBooking runs one record through mapping, decoding and identity
// assignment, returning the record followed by any split bookings.
func (p *Pipeline) processBooking(booking models.Booking, fam purpose.Family) ([]models.Booking, error) {
	mapped, err := p.mapper.MapCategory(booking.Category)
	if err != nil {
		return nil, err
	}
	booking.Category = mapped

	for i := range booking.Splits {
		mapped, err := p.mapper.MapCategory(booking.Splits[i].Category)
		if err != nil {
			return nil, err
		}
		booking.Splits[i].Category = mapped
	}

	if err := p.decoder.Decode(&booking, fam, &p.state); err != nil {
		return nil, err
	}

	if len(booking.Splits) > 0 {
		booking.BatchRole = models.BatchRoleParent
	}
	p.assigner.Assign(&booking)

	children := p.assigner.ExpandSplits(&booking)
	booking.Splits = nil
	return append([]models.Booking{booking}, children...), nil
}

// ConvertFile reads a legacy export file, runs the batch through the
// pipeline and writes the bookings to a CSV file.
func (p *Pipeline) ConvertFile(inputFile, outputFile string) error {
	p.logger.Info("Converting legacy export",
		logging.Field{Key: logging.FieldInputFile, Value: inputFile},
		logging.Field{Key: logging.FieldOutputFile, Value: outputFile})

	accounts, err := xmlimport.ParseFile(inputFile, p.logger)
	if err != nil {
		return err
	}

	bookings, err := p.Run(accounts)
	if err != nil {
		return err
	}

	if err := common.WriteBookingsToCSV(bookings, outputFile); err != nil {
		return err
	}

	p.logger.Info("Successfully converted legacy export",
		logging.Field{Key: logging.FieldCount, Value: len(bookings)},
		logging.Field{Key: logging.FieldOutputFile, Value: outputFile})
	return nil
}
