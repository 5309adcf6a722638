// Package config loads countyq settings from a YAML file.
//
// Example:
//
//	format: table
//	max_records: 5000
//	encoding: latin1
//	warn_numeric: true
//	log_level: debug
//
// Command-line flags are applied on top of the loaded file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vegasq/countyq/internal/logging"
	"github.com/vegasq/countyq/output"
	"github.com/vegasq/countyq/reader"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid configuration")

// Config holds the settings of one countyq run.
type Config struct {
	Format      string `yaml:"format"`
	MaxRecords  int    `yaml:"max_records"`
	Encoding    string `yaml:"encoding"`
	WarnNumeric bool   `yaml:"warn_numeric"`
	LogLevel    string `yaml:"log_level"`

	// Compat reproduces the legacy loader: lines are split on every comma,
	// the first data row is skipped and at most reader.CompatMaxRecords
	// records are kept.
	Compat bool `yaml:"compat"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Format:   "text",
		Encoding: "utf8",
		LogLevel: "warn",
	}
}

// Load reads path and decodes it over Default. Keys absent from the file keep
// their defaults; unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()

	path = strings.TrimSpace(path)
	if path == "" {
		return cfg, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("parse config YAML: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	if !validFormat(c.Format) {
		return fmt.Errorf("%w: format %q (want one of %s)", ErrInvalid, c.Format, strings.Join(output.Formats, ", "))
	}
	if c.MaxRecords < 0 {
		return fmt.Errorf("%w: max_records must not be negative, got %d", ErrInvalid, c.MaxRecords)
	}
	if !reader.ValidEncoding(c.Encoding) {
		return fmt.Errorf("%w: encoding %q", ErrInvalid, c.Encoding)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// ReaderOptions converts c into ingestion options.
func (c Config) ReaderOptions() reader.Options {
	opts := reader.Options{
		MaxRecords:  c.MaxRecords,
		Encoding:    c.Encoding,
		WarnNumeric: c.WarnNumeric,
	}
	if c.Compat {
		opts.SkipFirstRecord = true
		opts.LegacyTokenizer = true
		if opts.MaxRecords == 0 {
			opts.MaxRecords = reader.CompatMaxRecords
		}
	}
	return opts
}

func validFormat(name string) bool {
	for _, f := range output.Formats {
		if f == name {
			return true
		}
	}
	return false
}
