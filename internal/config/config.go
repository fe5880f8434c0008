// Package config loads the cropfit CLI configuration from a TOML file.
//
//	model = "models/crops.cfit"
//	color = "auto"
//
//	[scoring]
//	neighbor_cap = 200
//	precision = 2
//	workers = 4
//
//	[output]
//	top = 5
//	format = "text"
//
//	[pack]
//	compression = "zstd"
//
// Command-line flags override file values.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/arloliu/cropfit/format"
	"github.com/arloliu/cropfit/suitability"
)

// DefaultFile is the config file looked up in the working directory when
// --config is not given.
const DefaultFile = "cropfit.toml"

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config is the CLI configuration.
type Config struct {
	Model   string  `toml:"model"`
	Color   string  `toml:"color"`
	Scoring Scoring `toml:"scoring"`
	Output  Output  `toml:"output"`
	Pack    Pack    `toml:"pack"`
}

// Scoring configures the suitability engine.
type Scoring struct {
	NeighborCap int `toml:"neighbor_cap"`
	Precision   int `toml:"precision"`
	Workers     int `toml:"workers"`
}

// Output configures how recommendations are printed.
type Output struct {
	Top    int    `toml:"top"`
	Format string `toml:"format"`
}

// Pack configures artifact packing.
type Pack struct {
	Compression string `toml:"compression"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	var cfg Config
	cfg.ApplyDefaults(nil)

	return cfg
}

// ApplyDefaults fills unset fields. meta tells explicitly set zero values
// apart from missing keys; nil treats every zero value as missing.
func (c *Config) ApplyDefaults(meta *toml.MetaData) {
	defined := func(key ...string) bool {
		return meta != nil && meta.IsDefined(key...)
	}

	if c.Color == "" {
		c.Color = "auto"
	}
	if c.Scoring.NeighborCap <= 0 {
		c.Scoring.NeighborCap = suitability.DefaultNeighborCap
	}
	if !defined("scoring", "precision") {
		c.Scoring.Precision = suitability.DefaultPrecision
	}
	if c.Scoring.Workers <= 0 {
		c.Scoring.Workers = runtime.GOMAXPROCS(0)
	}
	if c.Output.Top < 0 {
		c.Output.Top = 0
	}
	if c.Output.Format == "" {
		c.Output.Format = FormatText
	}
	if c.Pack.Compression == "" {
		c.Pack.Compression = "zstd"
	}
}

// Validate checks enumerated values.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Color) {
	case "auto", "on", "off":
	default:
		return fmt.Errorf("invalid color %q (expected auto|on|off)", c.Color)
	}

	switch c.Output.Format {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("invalid [output].format %q (expected %s|%s)", c.Output.Format, FormatText, FormatJSON)
	}

	if _, err := format.ParseCompression(c.Pack.Compression); err != nil {
		return fmt.Errorf("invalid [pack].compression: %w", err)
	}

	return nil
}

// Load reads and validates the config file at path.
func Load(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}

	cfg.ApplyDefaults(&meta)
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// LoadOptional is Load, but a missing file yields Default.
func LoadOptional(path string) (Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	return cfg, err
}
