package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config is the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter      string `mapstructure:"delimiter" yaml:"delimiter"`
		IncludeHeaders bool   `mapstructure:"include_headers" yaml:"include_headers"`
	} `mapstructure:"csv" yaml:"csv"`

	Decoder struct {
		// PeriodFamilyA and PeriodFamilyBC are the column-alignment
		// periods per bank family. There is no general rule behind the
		// values; they are observed per family.
		PeriodFamilyA  int `mapstructure:"period_family_a" yaml:"period_family_a"`
		PeriodFamilyBC int `mapstructure:"period_family_bc" yaml:"period_family_bc"`

		// NoteNames is the Family B vocabulary of remitted-name values
		// reclassified as the remittance note.
		NoteNames []string `mapstructure:"note_names" yaml:"note_names"`

		// SkipFailedRecords selects skip-and-log instead of abort when a
		// record fails to decode.
		SkipFailedRecords bool `mapstructure:"skip_failed_records" yaml:"skip_failed_records"`
	} `mapstructure:"decoder" yaml:"decoder"`

	Mapping struct {
		// File is an optional YAML file merged over the built-in
		// category and account-type tables.
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"mapping" yaml:"mapping"`
}

// InitializeConfig loads configuration with the usual hierarchy: defaults,
// then an optional config file, then UMSATZ_* environment variables.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.umsatz-convert")
	v.AddConfigPath(".umsatz-convert")
	v.AddConfigPath(".")

	v.SetEnvPrefix("UMSATZ")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Keep going on a broken config file; defaults and env still apply.
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ",")
	v.SetDefault("csv.include_headers", true)

	v.SetDefault("decoder.period_family_a", 22)
	v.SetDefault("decoder.period_family_bc", 27)
	v.SetDefault("decoder.note_names", []string{
		"Gutschrift",
		"Gutschriftsauszahlung",
		"Zinsgutschrift",
		"Ratengutschrift",
		"Rechnungsabschluss",
	})
	v.SetDefault("decoder.skip_failed_records", false)

	v.SetDefault("mapping.file", "")
}

func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if len(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	if config.Decoder.PeriodFamilyA < 1 {
		return fmt.Errorf("decoder.period_family_a must be positive, got: %d", config.Decoder.PeriodFamilyA)
	}
	if config.Decoder.PeriodFamilyBC < 1 {
		return fmt.Errorf("decoder.period_family_bc must be positive, got: %d", config.Decoder.PeriodFamilyBC)
	}

	return nil
}

// ConfigureLoggingFromConfig builds a logrus logger from the Config values.
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
