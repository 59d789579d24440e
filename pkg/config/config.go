// Package config holds the tunable constants of the lifeline engine and
// loads them from TOML.
//
// Every field has a default, so a zero Config is usable after
// [Config.SetDefaults]. A configuration file only needs to name the values
// it overrides:
//
//	# ~/.config/lifeline/config.toml
//	top_spacing = 8
//	hit_test_buffer = 12
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/lifeline/pkg/errors"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultTopSpacing is the minimum vertical gap between the top of a
	// bar and the top of a sibling whose time span it starts in.
	DefaultTopSpacing = 5

	// DefaultBarWidth is used when a placement proposal carries no width.
	DefaultBarWidth = 20

	// DefaultHitTestBuffer is the half-width of the stem in the hit-test
	// polygon.
	DefaultHitTestBuffer = 20

	// DefaultHitFuzz is the tolerance around the hit-test polygon boundary.
	DefaultHitFuzz = 2

	// DefaultMaxPassFactor bounds cascade relocation to
	// factor × (bars + 1) passes.
	DefaultMaxPassFactor = 4
)

const appName = "lifeline"

// =============================================================================
// Config
// =============================================================================

// Config holds engine settings. Zero fields mean "use the default".
type Config struct {
	TopSpacing      int `toml:"top_spacing" json:"top_spacing"`
	DefaultBarWidth int `toml:"default_bar_width" json:"default_bar_width"`
	HitTestBuffer   int `toml:"hit_test_buffer" json:"hit_test_buffer"`
	HitFuzz         int `toml:"hit_fuzz" json:"hit_fuzz"`
	MaxPassFactor   int `toml:"max_pass_factor" json:"max_pass_factor"`
}

// Default returns a Config with every field set to its default.
func Default() Config {
	var c Config
	c.SetDefaults()
	return c
}

// SetDefaults fills zero fields with their defaults.
func (c *Config) SetDefaults() {
	if c.TopSpacing == 0 {
		c.TopSpacing = DefaultTopSpacing
	}
	if c.DefaultBarWidth == 0 {
		c.DefaultBarWidth = DefaultBarWidth
	}
	if c.HitTestBuffer == 0 {
		c.HitTestBuffer = DefaultHitTestBuffer
	}
	if c.HitFuzz == 0 {
		c.HitFuzz = DefaultHitFuzz
	}
	if c.MaxPassFactor == 0 {
		c.MaxPassFactor = DefaultMaxPassFactor
	}
}

// Validate rejects settings the engine cannot honour.
func (c Config) Validate() error {
	fields := []struct {
		name  string
		value int
	}{
		{"top_spacing", c.TopSpacing},
		{"default_bar_width", c.DefaultBarWidth},
		{"hit_test_buffer", c.HitTestBuffer},
		{"hit_fuzz", c.HitFuzz},
	}
	for _, f := range fields {
		if f.value < 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "%s must not be negative, got %d", f.name, f.value)
		}
	}
	if c.MaxPassFactor < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "max_pass_factor must be at least 1, got %d", c.MaxPassFactor)
	}
	return nil
}

// =============================================================================
// Loading
// =============================================================================

// Load reads the TOML file at path, applies defaults and validates the
// result. An empty path loads [DefaultPath] when that file exists and
// falls back to [Default] otherwise.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	return Parse(data)
}

// Parse decodes TOML data, applies defaults and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	var c Config
	md, err := toml.Decode(string(data), &c)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
	}
	c.SetDefaults()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// DefaultPath returns the config file location following the XDG
// standard (~/.config/lifeline/config.toml).
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
