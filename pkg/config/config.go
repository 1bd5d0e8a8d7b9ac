package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/goliatone/go-regform/internal/logging"
)

var (
	// ErrParsingConfig wraps failures decoding environment variables.
	ErrParsingConfig = errors.New("config: failed to parse environment")
	// ErrInvalidConfig is returned when a decoded value is out of range.
	ErrInvalidConfig = errors.New("config: invalid value")
)

// Config holds the runtime settings shared by the CLI commands.
type Config struct {
	// Catalog points at a JSON or YAML catalog file. Empty uses the
	// embedded default.
	Catalog string `env:"REGFORM_CATALOG"`

	LogLevel  string `env:"REGFORM_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"REGFORM_LOG_FORMAT" envDefault:"text"`

	// SummaryOutput is where `run` writes the HTML confirmation page.
	SummaryOutput string `env:"REGFORM_SUMMARY_OUTPUT"`

	Theme        string `env:"REGFORM_THEME"`
	ThemeVariant string `env:"REGFORM_THEME_VARIANT"`

	// MaxAttempts bounds the interactive submit/retry loop.
	MaxAttempts int `env:"REGFORM_MAX_ATTEMPTS" envDefault:"3"`
}

// Load reads .env files and decodes the environment into a Config. With no
// paths the default .env is loaded when present; explicit paths must exist.
// Variables already set in the process environment take precedence.
func Load(paths ...string) (Config, error) {
	if len(paths) == 0 {
		_ = godotenv.Load()
	} else if err := godotenv.Load(paths...); err != nil {
		return Config{}, fmt.Errorf("config: load env files: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges that struct tags cannot express.
func (c Config) Validate() error {
	if c.MaxAttempts < 1 {
		return fmt.Errorf("%w: REGFORM_MAX_ATTEMPTS must be at least 1, got %d", ErrInvalidConfig, c.MaxAttempts)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := logging.ParseFormat(c.LogFormat); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}
