// Package config reads the shared tool configuration from a TOML
// file. Fields left out of the file keep their defaults, and unknown
// keys are an error rather than silently ignored.
package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Config is the tool configuration.
type Config struct {
	// Epsilon is the comparison tolerance handed to every geometric
	// query.
	Epsilon float64 `toml:"epsilon"`

	// LogLevel is one of debug, info, warn, or error.
	LogLevel string `toml:"log-level"`

	// LogFile, when set, adds a rotated log file next to console
	// output.
	LogFile string `toml:"log-file"`

	// Workers bounds the goroutines used by batch queries. Zero means
	// one per CPU.
	Workers int `toml:"workers"`

	Index Index `toml:"index"`
}

// Index holds the R-tree branching factors for the scene index.
type Index struct {
	MinBranch int `toml:"min-branch"`
	MaxBranch int `toml:"max-branch"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Epsilon:  1e-8,
		LogLevel: "info",
		Index:    Index{MinBranch: 4, MaxBranch: 8},
	}
}

// Load reads a TOML file over the defaults. Keys the struct does not
// know are reported as an error.
func Load(path string) (Config, error) {
	c := Default()
	meta, err := toml.DecodeFile(path, &c)
	if err != nil {
		return Config{}, errors.Wrap(err, "load config")
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		var unknown errUnknownKeys
		for _, key := range undecoded {
			unknown = append(unknown, key.String())
		}
		return Config{}, unknown
	}
	if err := c.Validate(); err != nil {
		return Config{}, errors.Wrap(err, "load config")
	}
	return c, nil
}

// Validate rejects settings the tools cannot run with.
func (c Config) Validate() error {
	if c.Epsilon <= 0 {
		return fmt.Errorf("epsilon must be positive, not %g", c.Epsilon)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, not %d", c.Workers)
	}
	if c.Index.MinBranch < 2 {
		return fmt.Errorf("index min-branch must be at least 2, not %d", c.Index.MinBranch)
	}
	if c.Index.MaxBranch < c.Index.MinBranch {
		return fmt.Errorf("index max-branch %d is below min-branch %d",
			c.Index.MaxBranch, c.Index.MinBranch)
	}
	return nil
}

type errUnknownKeys []string

func (e errUnknownKeys) Error() string {
	return "unknown config keys: [" + strings.Join(e, ", ") + "]"
}
