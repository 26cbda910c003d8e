// Package decode implements the decode subcommand, a debugging aid that
// decodes a single purpose string given on the command line.
package decode

import (
	"fmt"

	"github.com/spf13/cobra"

	"mhaertel/umsatz-convert/cmd/root"
	"mhaertel/umsatz-convert/internal/logging"
	"mhaertel/umsatz-convert/internal/models"
	"mhaertel/umsatz-convert/internal/purpose"
)

var familyFlag string

// Cmd is the decode subcommand.
var Cmd = &cobra.Command{
	Use:   "decode [purpose text]",
	Short: "Decode a single purpose string and print the recovered fields",
	Args:  cobra.ExactArgs(1),
	Run:   run,
}

func init() {
	Cmd.Flags().StringVarP(&familyFlag, "family", "f", "a", "Bank family to decode as (a, b or c)")
}

func run(cmd *cobra.Command, args []string) {
	logger := logging.NewLogrusAdapterFromLogger(root.Log)

	fam := purpose.FamilyA
	switch familyFlag {
	case "a":
		fam = purpose.FamilyA
	case "b":
		fam = purpose.FamilyB
	case "c":
		fam = purpose.FamilyC
	default:
		logger.Fatal("Unknown family, expected a, b or c",
			logging.Field{Key: logging.FieldFamily, Value: familyFlag})
	}

	booking := models.Booking{PurposeRaw: args[0]}
	decoder := purpose.NewDecoder(purpose.DefaultConfig(), logger)
	if err := decoder.Decode(&booking, fam, &purpose.BatchState{}); err != nil {
		logger.WithError(err).Fatal("Decoding failed")
	}

	printField := func(name, value string) {
		if value != "" {
			fmt.Printf("%-22s %s\n", name+":", value)
		}
	}
	printField("Remitted name", booking.RemittedName)
	printField("Remitted IBAN", booking.RemittedIBAN)
	printField("Remitted BIC", booking.RemittedBIC)
	printField("Remitted account", booking.RemittedAccountNo)
	printField("Remitted bank code", booking.RemittedBankCode)
	printField("End-to-end id", booking.EndToEndID)
	printField("Payment info id", booking.PaymentInfoID)
	printField("Mandate id", booking.MandateID)
	printField("Creditor id", booking.CreditorID)
	printField("Remittance note", booking.RemittanceNote)
	printField("Booking text", booking.BookingText)
}
