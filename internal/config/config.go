// Package config loads blockctl settings from an optional YAML file and
// BLOCKCTL_* environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/joshuapare/blockmem/internal/logger"
	"github.com/joshuapare/blockmem/memory/alloc"
	"github.com/joshuapare/blockmem/memory/printer"
)

const (
	envVarPrefix = "BLOCKCTL"
	appName      = "blockctl"
)

// Config holds every setting the CLI reads before flags are applied.
type Config struct {
	Capacity    int    `envconfig:"BLOCKCTL_CAPACITY"     yaml:"capacity"`
	Strategy    string `envconfig:"BLOCKCTL_STRATEGY"     yaml:"strategy"`
	LenientFree bool   `envconfig:"BLOCKCTL_LENIENT_FREE" yaml:"lenientFree"`
	Format      string `envconfig:"BLOCKCTL_FORMAT"       yaml:"format"`
	Unit        string `envconfig:"BLOCKCTL_UNIT"         yaml:"unit"`
	MapWidth    int    `envconfig:"BLOCKCTL_MAP_WIDTH"    yaml:"mapWidth"`
	LogLevel    string `envconfig:"BLOCKCTL_LOG_LEVEL"    yaml:"logLevel"`
	LogFormat   string `envconfig:"BLOCKCTL_LOG_FORMAT"   yaml:"logFormat"`
	LogFile     string `envconfig:"BLOCKCTL_LOG_FILE"     yaml:"logFile"`
}

// Default returns the settings used when neither file nor environment
// overrides them.
func Default() Config {
	return Config{
		Capacity:  alloc.DefaultCapacity,
		Strategy:  alloc.FirstFit.String(),
		Format:    string(printer.FormatText),
		Unit:      printer.DefaultUnit,
		MapWidth:  printer.DefaultMapWidth,
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Path returns the config file location: BLOCKCTL_CONFIG_FILE if set,
// otherwise ~/.config/blockctl.yaml.
func Path() string {
	if p := os.Getenv(envVarPrefix + "_CONFIG_FILE"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName+".yaml")
}

// Load starts from Default, overlays the config file when it exists, then
// overlays environment variables.
func Load() (*Config, error) {
	c := Default()
	if err := c.LoadFile(Path()); err != nil {
		return nil, err
	}
	if err := envconfig.Process(envVarPrefix, &c); err != nil {
		return nil, fmt.Errorf("parsing environment variables: %w", err)
	}
	return &c, nil
}

// LoadFile overlays settings from a YAML file. A missing file is not an error.
func (c *Config) LoadFile(path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("unmarshaling config file: %w", err)
	}
	return nil
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if c.Capacity <= 0 {
		return fmt.Errorf("missing or invalid config: capacity (%s_CAPACITY): %w", envVarPrefix, alloc.ErrInvalidCapacity)
	}
	if _, err := c.ParsedStrategy(); err != nil {
		return fmt.Errorf("invalid config: strategy (%s_STRATEGY): %w", envVarPrefix, err)
	}
	if _, err := printer.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("invalid config: format (%s_FORMAT): %w", envVarPrefix, err)
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid config: logLevel (%s_LOG_LEVEL): %w", envVarPrefix, err)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("invalid config: logFormat (%s_LOG_FORMAT): %q is not text or json", envVarPrefix, c.LogFormat)
	}
	return nil
}

// ParsedStrategy returns Strategy as an alloc.Strategy.
func (c *Config) ParsedStrategy() (alloc.Strategy, error) {
	return alloc.ParseStrategy(c.Strategy)
}

// AllocOptions builds allocator options from the config.
func (c *Config) AllocOptions() *alloc.Options {
	return &alloc.Options{LenientFree: c.LenientFree, Logger: logger.L}
}

// PrinterOptions builds printer options from the config.
func (c *Config) PrinterOptions(color bool) printer.Options {
	format, err := printer.ParseFormat(c.Format)
	if err != nil {
		format = printer.FormatText
	}
	return printer.Options{
		Format:   format,
		Unit:     c.Unit,
		Color:    color,
		MapWidth: c.MapWidth,
	}
}
