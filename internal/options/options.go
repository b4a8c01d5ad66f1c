// Package options contains the program options.
package options

import (
	"github.com/retroenv/moodump/internal/moo"
	"github.com/retroenv/moodump/internal/writer"
)

// Parameters contains file path options.
type Parameters struct {
	Input  string // MOO file to decode
	Output string // report file, stdout if empty
	Config string // TOML file with option defaults
	Batch  string // glob of files to decode
}

// Flags contains behavior options.
type Flags struct {
	Format string // text, json or cbor, detected from the output name if empty
	Index  int    // only decode the test at this position
	Limit  int    // stop after this many tests
	Verify bool   // run consistency checks after decoding
	Debug  bool
	Quiet  bool
}

// OutputFlags contains output formatting options.
type OutputFlags struct {
	MaxMemoryEntries int
	MaxQueueBytes    int
}

// Program options of the decoder.
type Program struct {
	Parameters
	Flags
	OutputFlags
}

// New returns program options with default values.
func New() Program {
	display := writer.DefaultOptions()
	return Program{
		Flags: Flags{
			Index: moo.NoFilter,
			Limit: moo.NoFilter,
		},
		OutputFlags: OutputFlags{
			MaxMemoryEntries: display.MaxMemoryEntries,
			MaxQueueBytes:    display.MaxQueueBytes,
		},
	}
}

// Filter returns the test filter selected by the options.
func (p Program) Filter() moo.Filter {
	return moo.Filter{
		Index: p.Index,
		Limit: p.Limit,
	}
}

// WriterOptions returns the display options of the report writer.
func (p Program) WriterOptions() writer.Options {
	return writer.Options{
		MaxMemoryEntries: p.MaxMemoryEntries,
		MaxQueueBytes:    p.MaxQueueBytes,
	}
}
