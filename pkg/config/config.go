// Package config loads the optional TOML configuration file.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/quidome/timestamp-normalizer-go/pkg/dispatch"
	"github.com/quidome/timestamp-normalizer-go/pkg/normalize"
)

// Config holds the tool's settings. Command-line flags set by the user
// override values loaded from a file.
type Config struct {
	// Timezone is the target IANA timezone timestamps are converted to.
	Timezone string `toml:"timezone"`

	// SourceTimezone is the IANA timezone embedded timestamps are assumed
	// to be in. EXIF timestamps rarely carry a timezone, so this is an
	// explicit default rather than a hidden constant.
	SourceTimezone string `toml:"source_timezone"`

	// DateOrder disambiguates slash-separated dates: "mdy" or "dmy".
	DateOrder string `toml:"date_order"`

	ImageExtensions []string `toml:"image_extensions"`
	TextExtensions  []string `toml:"text_extensions"`
}

// Default returns the built-in configuration.
func Default() Config {
	exts := dispatch.DefaultOptions()
	return Config{
		Timezone:        "UTC",
		SourceTimezone:  "UTC",
		DateOrder:       string(normalize.OrderMDY),
		ImageExtensions: exts.ImageExtensions,
		TextExtensions:  exts.TextExtensions,
	}
}

// Load reads a TOML configuration file over the defaults.
// Keys absent from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field values that have a closed set of accepted inputs.
// Timezone names are validated later by the normalizer, which resolves them
// against the IANA database.
func (c Config) Validate() error {
	switch normalize.DateOrder(c.DateOrder) {
	case normalize.OrderMDY, normalize.OrderDMY, "":
	default:
		return fmt.Errorf("invalid date_order %q: must be %q or %q", c.DateOrder, normalize.OrderMDY, normalize.OrderDMY)
	}
	return nil
}

// NormalizeOptions returns the normalizer options implied by the config.
func (c Config) NormalizeOptions() normalize.Options {
	opts := normalize.DefaultOptions()
	if c.DateOrder != "" {
		opts.DateOrder = normalize.DateOrder(c.DateOrder)
	}
	return opts
}

// DispatchOptions returns the extension classification options implied by
// the config.
func (c Config) DispatchOptions() dispatch.Options {
	return dispatch.Options{
		ImageExtensions: c.ImageExtensions,
		TextExtensions:  c.TextExtensions,
	}
}
