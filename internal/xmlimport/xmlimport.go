// Package xmlimport reads the legacy banking application's XML export into
// booking records. The decoder proper never touches files; this package is
// the collaborator that hands it records with their raw purpose text.
package xmlimport

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"golang.org/x/net/html/charset"
	"gopkg.in/xmlpath.v2"

	"mhaertel/umsatz-convert/internal/dateutils"
	"mhaertel/umsatz-convert/internal/decodererror"
	"mhaertel/umsatz-convert/internal/logging"
	"mhaertel/umsatz-convert/internal/models"
)

// Account is one account of the legacy export together with its bookings.
type Account struct {
	Name        string
	IBAN        string
	BankCode    string
	AccountType string
	Bookings    []models.Booking
}

// exportFile mirrors the legacy export structure.
type exportFile struct {
	XMLName  xml.Name        `xml:"kontoexport"`
	Accounts []accountRecord `xml:"konto"`
}

type accountRecord struct {
	Name     string          `xml:"name"`
	IBAN     string          `xml:"iban"`
	BankCode string          `xml:"blz"`
	Type     string          `xml:"kontoart"`
	Bookings []bookingRecord `xml:"buchung"`
}

type bookingRecord struct {
	Date      string        `xml:"datum"`
	ValueDate string        `xml:"valuta"`
	Amount    string        `xml:"betrag"`
	Currency  string        `xml:"waehrung"`
	Purpose   string        `xml:"zweck"`
	Name      string        `xml:"name"`
	Category  string        `xml:"kategorie"`
	Splits    []splitRecord `xml:"split"`
}

type splitRecord struct {
	Amount   string `xml:"betrag"`
	Category string `xml:"kategorie"`
	Purpose  string `xml:"zweck"`
}

// Parse reads a legacy export from the reader and returns its accounts with
// bookings. The raw purpose text is carried over untouched; decoding it is
// the purpose package's job.
func Parse(r io.Reader, logger logging.Logger) ([]Account, error) {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	logger.Info("Reading legacy export from reader")

	// Buffer the content so validation and decoding read the same data.
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading input: %w", err)
	}

	data, err = normalizeEncoding(data)
	if err != nil {
		return nil, &decodererror.ImportError{
			FilePath: "(from reader)",
			Field:    "document encoding",
			Err:      err,
		}
	}

	if err := validateFormat(data); err != nil {
		return nil, err
	}

	var file exportFile
	if err := xml.Unmarshal(data, &file); err != nil {
		return nil, &decodererror.ImportError{
			FilePath: "(from reader)",
			Field:    "export document",
			Err:      err,
		}
	}

	accounts := make([]Account, 0, len(file.Accounts))
	for _, rec := range file.Accounts {
		account := Account{
			Name:        rec.Name,
			IBAN:        rec.IBAN,
			BankCode:    rec.BankCode,
			AccountType: rec.Type,
		}
		for _, br := range rec.Bookings {
			account.Bookings = append(account.Bookings, convertBooking(br))
		}
		accounts = append(accounts, account)
	}

	logger.Info("Successfully read legacy export",
		logging.Field{Key: logging.FieldCount, Value: len(accounts)})
	return accounts, nil
}

// ParseFile reads a legacy export file.
func ParseFile(path string, logger logging.Logger) ([]Account, error) {
	file, err := os.Open(path) // #nosec G304 -- CLI tool operates on user-provided paths
	if err != nil {
		return nil, fmt.Errorf("error opening input file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()
	return Parse(file, logger)
}

// convertBooking maps one export record onto the target booking. Dates are
// rewritten to the ISO layout, unparseable ones kept raw. Identity and
// remittance fields stay empty for the decoder to fill.
func convertBooking(br bookingRecord) models.Booking {
	date, _ := dateutils.NormalizeDate(br.Date)
	valueDate, _ := dateutils.NormalizeDate(br.ValueDate)

	booking := models.Booking{
		Date:         date,
		ValueDate:    valueDate,
		Amount:       models.ParseAmount(br.Amount),
		Currency:     br.Currency,
		PurposeRaw:   br.Purpose,
		RemittedName: br.Name,
		Category:     br.Category,
	}
	if booking.ValueDate == "" {
		booking.ValueDate = booking.Date
	}
	for _, sr := range br.Splits {
		booking.Splits = append(booking.Splits, models.Split{
			Amount:   models.ParseAmount(sr.Amount),
			Category: sr.Category,
			Note:     sr.Purpose,
		})
	}
	return booking
}

var xmlDeclEncoding = regexp.MustCompile(`(?i)^<\?xml[^>]*encoding="([^"]+)"[^>]*\?>`)

// normalizeEncoding converts the document to UTF-8 when its declaration
// names another charset. Legacy exports usually declare ISO-8859-1. The
// declaration is rewritten so downstream parsers need no charset support.
func normalizeEncoding(data []byte) ([]byte, error) {
	m := xmlDeclEncoding.FindSubmatch(data)
	if m == nil || strings.EqualFold(string(m[1]), "utf-8") {
		return data, nil
	}

	r, err := charset.NewReaderLabel(strings.ToLower(string(m[1])), bytes.NewReader(data[len(m[0]):]))
	if err != nil {
		return nil, fmt.Errorf("unsupported charset %q: %w", string(m[1]), err)
	}
	converted, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("charset conversion failed: %w", err)
	}
	return append([]byte(xml.Header), converted...), nil
}

// validateFormat checks that the document is a legacy export before the
// full decode runs.
func validateFormat(data []byte) error {
	root, err := xmlpath.Parse(bytes.NewReader(data))
	if err != nil {
		return &decodererror.ImportError{
			FilePath: "(from reader)",
			Field:    "XML document",
			Err:      err,
		}
	}

	path := xmlpath.MustCompile("/kontoexport/konto")
	if iter := path.Iter(root); !iter.Next() {
		return &decodererror.ImportError{
			FilePath: "(from reader)",
			Field:    "kontoexport",
			Err:      fmt.Errorf("no accounts found, not a legacy export"),
		}
	}
	return nil
}
