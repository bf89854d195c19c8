// Package config loads parsegen's CLI defaults from a TOML file, in the
// same "unmarshal into a tagged struct, then validate the required header
// fields by hand" style the rest of the ambient config loading in this
// lineage uses.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds the settings cmd/parsegen reads from a .parsegen.toml file,
// falling back to Defaults() for anything left unset.
type Config struct {
	// Variant is the default LR variant to build when none is given on the
	// command line: one of "lr0", "slr1", "lr1", "lalr1".
	Variant string `toml:"variant"`

	// Trace turns on stack-machine tracing to stderr by default.
	Trace bool `toml:"trace"`

	// TableColumnWidth is a column width for parsing-table rendering. Load
	// checks that it is positive; Table.String() does not read it and
	// always renders with a column width of 12.
	TableColumnWidth int `toml:"table_column_width"`
}

// Defaults returns the configuration parsegen uses when no config file is
// found or a file does not set a particular key.
func Defaults() Config {
	return Config{
		Variant:          "lalr1",
		Trace:            false,
		TableColumnWidth: 12,
	}
}

// Load reads and validates a config file at path. If path does not exist,
// Load returns Defaults() with no error, so callers can always call Load
// unconditionally on an optional config path.
func Load(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %q: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %q: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config %q: %w", path, err)
	}

	return cfg, nil
}

func (c Config) validate() error {
	switch strings.ToLower(c.Variant) {
	case "lr0", "slr1", "lr1", "lalr1":
	default:
		return fmt.Errorf("'variant' must be one of lr0, slr1, lr1, lalr1, got %q", c.Variant)
	}
	if c.TableColumnWidth <= 0 {
		return fmt.Errorf("'table_column_width' must be positive, got %d", c.TableColumnWidth)
	}
	return nil
}
