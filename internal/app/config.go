package app

import (
	"errors"
	"fmt"
	"slices"
)

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"text", "json"}
	outputs    = []string{"text", "json", "yaml"}
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Paths []string // literal files or directories

	LogFormat   string
	LogLevel    string
	Output      string
	Parallelism int // concurrent file parses, 0 for unlimited
}

// NewConfig validates cfg and fills in defaults for empty fields.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Output == "" {
		cfg.Output = "text"
	}

	var errs []error
	if !slices.Contains(logFormats, cfg.LogFormat) {
		errs = append(errs, fmt.Errorf("invalid log-format %q: must be one of %v", cfg.LogFormat, logFormats))
	}
	if !slices.Contains(logLevels, cfg.LogLevel) {
		errs = append(errs, fmt.Errorf("invalid log-level %q: must be one of %v", cfg.LogLevel, logLevels))
	}
	if !slices.Contains(outputs, cfg.Output) {
		errs = append(errs, fmt.Errorf("invalid output %q: must be one of %v", cfg.Output, outputs))
	}
	if cfg.Parallelism < 0 {
		errs = append(errs, errors.New("parallelism cannot be negative"))
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return &cfg, nil
}
