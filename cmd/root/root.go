// Package root contains the root command for the application
package root

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"mhaertel/umsatz-convert/internal/common"
	"mhaertel/umsatz-convert/internal/config"
)

// CommonFlags holds the flags shared by the subcommands.
type CommonFlags struct {
	Input  string
	Output string
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "umsatz-convert",
		Short: "A CLI tool to convert legacy banking XML exports to CSV.",
		Long: `umsatz-convert reads the XML export of the legacy banking application,
decodes the packed purpose text of every booking into structured remittance
fields, assigns stable booking identities and writes the result as CSV.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to umsatz-convert!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()
			Log = config.ConfigureLogging()

			common.SetLogger(Log)
			if delim := os.Getenv("CSV_DELIMITER"); delim != "" {
				Log.WithField("delimiter", delim).Debug("Setting CSV delimiter from environment")
				common.SetDelimiter([]rune(delim)[0])
			}
		},
	}

	// SharedFlags is accessible to all commands
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file")
}
