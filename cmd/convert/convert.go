// Package convert implements the convert subcommand: legacy XML export in,
// decoded booking CSV out.
package convert

import (
	"github.com/spf13/cobra"

	"mhaertel/umsatz-convert/cmd/root"
	"mhaertel/umsatz-convert/internal/category"
	"mhaertel/umsatz-convert/internal/config"
	"mhaertel/umsatz-convert/internal/convert"
	"mhaertel/umsatz-convert/internal/logging"
	"mhaertel/umsatz-convert/internal/purpose"
)

// Cmd is the convert subcommand.
var Cmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a legacy XML export to CSV",
	Long:  `Convert reads a legacy banking XML export, decodes every booking's purpose text and writes the bookings to CSV.`,
	Run:   run,
}

func run(cmd *cobra.Command, args []string) {
	logger := logging.NewLogrusAdapterFromLogger(root.Log)

	if root.SharedFlags.Input == "" || root.SharedFlags.Output == "" {
		logger.Fatal("Both --input and --output are required")
	}

	cfg, err := config.InitializeConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	mapper := category.NewMapper()
	if cfg.Mapping.File != "" {
		mapper, err = category.LoadMapper(cfg.Mapping.File)
		if err != nil {
			logger.WithError(err).Fatal("Failed to load mapping file")
		}
	}

	pipeline := convert.NewPipeline(convert.Options{
		Decoder: purpose.Config{
			PeriodA:   cfg.Decoder.PeriodFamilyA,
			PeriodBC:  cfg.Decoder.PeriodFamilyBC,
			NoteNames: cfg.Decoder.NoteNames,
		},
		Mapper:            mapper,
		SkipFailedRecords: cfg.Decoder.SkipFailedRecords,
		Logger:            logger,
	})

	if err := pipeline.ConvertFile(root.SharedFlags.Input, root.SharedFlags.Output); err != nil {
		logger.WithError(err).Fatal("Conversion failed")
	}
	logger.Info("Conversion completed successfully!")
}
