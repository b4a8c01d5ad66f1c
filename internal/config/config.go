// Package config handles application configuration and setup
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/retroenv/moodump/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// File represents a TOML configuration file. Unset values keep the
// defaults of the command line.
type File struct {
	Format  *string `toml:"format"`
	Index   *int    `toml:"index"`
	Limit   *int    `toml:"limit"`
	Verify  *bool   `toml:"verify"`
	Debug   *bool   `toml:"debug"`
	Quiet   *bool   `toml:"quiet"`
	Display Display `toml:"display"`
}

// Display configures the display limits of the text report.
type Display struct {
	MaxMemoryEntries *int `toml:"max_memory_entries"`
	MaxQueueBytes    *int `toml:"max_queue_bytes"`
}

// Load parses the configuration file at the given path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if err := f.validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &f, nil
}

func (f *File) validate() error {
	for name, v := range map[string]*int{
		"index":                      f.Index,
		"limit":                      f.Limit,
		"display.max_memory_entries": f.Display.MaxMemoryEntries,
		"display.max_queue_bytes":    f.Display.MaxQueueBytes,
	} {
		if v != nil && *v < 0 {
			return fmt.Errorf("%s must not be negative", name)
		}
	}
	return nil
}

// Apply sets all options that are set in the file and that were not passed
// on the command line. explicit contains the names of the command line
// flags that were given.
func (f *File) Apply(opts *options.Program, explicit map[string]bool) {
	set(&opts.Format, f.Format, explicit["format"])
	set(&opts.Index, f.Index, explicit["index"])
	set(&opts.Limit, f.Limit, explicit["limit"])
	set(&opts.Verify, f.Verify, explicit["verify"])
	set(&opts.Debug, f.Debug, explicit["debug"])
	set(&opts.Quiet, f.Quiet, explicit["q"])
	set(&opts.MaxMemoryEntries, f.Display.MaxMemoryEntries, explicit["max-ram"])
	set(&opts.MaxQueueBytes, f.Display.MaxQueueBytes, explicit["max-queue"])
}

func set[T any](dst *T, v *T, explicit bool) {
	if v != nil && !explicit {
		*dst = *v
	}
}
