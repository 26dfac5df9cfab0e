// Package config loads the optional YAML configuration for schedule2ics.
//
// Every field has a default, so the tool runs without any file. Command-line
// flags are applied on top of whatever the file provides.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"

	"github.com/pfrederiksen/schedule2ics/internal/logger"
)

const (
	DefaultInput  = "events.html"
	DefaultOutput = "events.ics"
)

// Config is the top-level application configuration.
type Config struct {
	// Input is a file path, an http(s) URL, or "-" for stdin.
	Input string `yaml:"input"`

	// Output is the calendar file path, or "-" for stdout.
	Output string `yaml:"output"`

	// CalendarName is written as X-WR-CALNAME when set.
	CalendarName string `yaml:"calendar_name"`

	// Timezone is an IANA zone name such as "Europe/Berlin". Empty means the
	// local UTC offset at startup.
	Timezone string `yaml:"timezone"`

	// Year assigned to date headings. Zero means the current year.
	Year int `yaml:"year"`

	// Lenient skips blocks with unreadable dates instead of failing the run.
	Lenient bool `yaml:"lenient"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Input:    DefaultInput,
		Output:   DefaultOutput,
		LogLevel: "info",
	}
}

// Normalize fills in missing values with defaults and expands "~/" paths.
func (c *Config) Normalize() error {
	if strings.TrimSpace(c.Input) == "" {
		c.Input = DefaultInput
	}
	if strings.TrimSpace(c.Output) == "" {
		c.Output = DefaultOutput
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}

	var err error
	if c.Input, err = expandHome(c.Input); err != nil {
		return err
	}
	if c.Output, err = expandHome(c.Output); err != nil {
		return err
	}
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Year < 0 || c.Year > 9999 {
		return fmt.Errorf("invalid year: %d", c.Year)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Input == c.Output && c.Input != "-" {
		return fmt.Errorf("input and output are the same file: %s", c.Input)
	}
	return nil
}

// Location returns the zone events are placed in. It is nil when no timezone
// is configured, leaving the choice to the scraper.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return nil, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Load reads configuration from the given YAML path on top of the defaults.
// Unknown keys are rejected so typos do not go unnoticed.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	path, err := expandHome(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	defer f.Close()

	cfg := DefaultConfig()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path as YAML with 0600 permissions.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// expandHome expands a leading "~/" to the home directory
func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, path[2:]), nil
}
