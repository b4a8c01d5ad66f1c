// Package writer renders decoded MOO files.
package writer

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/moodump/internal/moo"
)

// Format is an output format of the report.
type Format string

// Supported output formats.
const (
	Text Format = "text"
	JSON Format = "json"
	CBOR Format = "cbor"
)

// Formats lists all supported output formats.
var Formats = []Format{Text, JSON, CBOR}

// ParseFormat returns the format matching the given name.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(name))
	for _, valid := range Formats {
		if f == valid {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported format '%s'", name)
}

// Binary returns whether the format is not human readable.
func (f Format) Binary() bool {
	return f == CBOR
}

// Options of the writer.
type Options struct {
	MaxMemoryEntries int // memory entries listed per state, 0 for no limit
	MaxQueueBytes    int // queue bytes listed per state, 0 for no limit
}

// DefaultOptions returns the default display limits.
func DefaultOptions() Options {
	return Options{
		MaxMemoryEntries: 1000,
		MaxQueueBytes:    32,
	}
}

// Writer receives the decoded chunks of a walk and renders them.
// Flush has to be called after the walk to write buffered output and to
// return the first error that occurred while writing.
type Writer interface {
	moo.Visitor
	Flush() error
}

// New returns a writer for the given format.
func New(format Format, w io.Writer, options Options) (Writer, error) {
	switch format {
	case Text:
		return newTextWriter(w, options), nil
	case JSON:
		return newJSONWriter(w), nil
	case CBOR:
		return newCBORWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported format '%s'", format)
	}
}
