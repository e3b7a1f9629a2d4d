package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	apperrors "github.com/vytor/chessstats/internal/errors"
	"github.com/vytor/chessstats/internal/logger"
	"github.com/vytor/chessstats/internal/outcome"
	"github.com/vytor/chessstats/internal/pacing"
)

type Config struct {
	BaseURL             string
	UserAgent           string
	HTTPTimeout         time.Duration
	TimeClass           string
	ArchiveDelay        time.Duration
	CountryDelay        time.Duration
	PacingMode          string
	OutputDir           string
	StatsDBPath         string
	ResultCodeOverrides string
	LogLevel            string
}

var timeClasses = map[string]bool{
	"bullet": true,
	"blitz":  true,
	"rapid":  true,
	"daily":  true,
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying the defaults of an unconfigured run when values are missing or invalid.
func Load() Config {
	// A missing .env is the normal case.
	_ = godotenv.Load()

	return Config{
		BaseURL:             envOr("CHESSCOM_BASE_URL", "https://api.chess.com"),
		UserAgent:           envOr("USER_AGENT", "Mozilla/5.0"),
		HTTPTimeout:         envDurationOr("HTTP_TIMEOUT", 15*time.Second),
		TimeClass:           strings.ToLower(envOr("TIME_CLASS", "")),
		ArchiveDelay:        envDurationOr("ARCHIVE_DELAY", time.Second),
		CountryDelay:        envDurationOr("COUNTRY_DELAY", 100*time.Millisecond),
		PacingMode:          envOr("PACING_MODE", pacing.ModeFixed),
		OutputDir:           envOr("OUTPUT_DIR", "."),
		StatsDBPath:         envOr("STATS_DB_PATH", ""),
		ResultCodeOverrides: envOr("RESULT_CODE_OVERRIDES", ""),
		LogLevel:            envOr("LOG_LEVEL", "INFO"),
	}
}

// Validate reports every invalid setting at once. Each problem is a fatal
// VALIDATION_ERROR naming the variable.
func (c Config) Validate() error {
	var errs []error
	invalid := func(field, format string, args ...any) {
		errs = append(errs, apperrors.NewValidationError(field, fmt.Sprintf(format, args...)))
	}

	if u, err := url.Parse(c.BaseURL); c.BaseURL == "" || err != nil || u.Scheme == "" || u.Host == "" {
		invalid("CHESSCOM_BASE_URL", "must be an absolute URL, got %q", c.BaseURL)
	}
	if strings.TrimSpace(c.UserAgent) == "" {
		invalid("USER_AGENT", "cannot be empty: chess.com rejects unsigned requests")
	}
	if c.HTTPTimeout <= 0 {
		invalid("HTTP_TIMEOUT", "must be positive, got %v", c.HTTPTimeout)
	}
	if c.TimeClass != "" && !timeClasses[c.TimeClass] {
		invalid("TIME_CLASS", "must be one of bullet, blitz, rapid, daily, got %q", c.TimeClass)
	}
	if c.ArchiveDelay < 0 {
		invalid("ARCHIVE_DELAY", "cannot be negative, got %v", c.ArchiveDelay)
	}
	if c.CountryDelay < 0 {
		invalid("COUNTRY_DELAY", "cannot be negative, got %v", c.CountryDelay)
	}
	if _, err := pacing.New(c.PacingMode, 0); err != nil {
		invalid("PACING_MODE", "%v", err)
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		invalid("OUTPUT_DIR", "cannot be empty")
	}
	if _, err := outcome.ParseOverrides(c.ResultCodeOverrides); err != nil {
		invalid("RESULT_CODE_OVERRIDES", "%v", err)
	}
	if _, ok := logger.LookupLevel(c.LogLevel); !ok {
		invalid("LOG_LEVEL", "must be DEBUG, INFO, WARN or ERROR, got %q", c.LogLevel)
	}

	return errors.Join(errs...)
}

// ClassifierTable returns the default result table with the configured overrides.
// Call Validate first.
func (c Config) ClassifierTable() outcome.Table {
	extra, err := outcome.ParseOverrides(c.ResultCodeOverrides)
	if err != nil {
		return outcome.DefaultTable()
	}
	return outcome.DefaultTable().Merge(extra)
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envDurationOr(key string, def time.Duration) time.Duration {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("invalid value for %s=%q, using default %v", key, v, def)
	}
	return def
}
