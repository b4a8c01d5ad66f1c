// Package detector handles output format detection.
package detector

import (
	"path/filepath"
	"strings"

	"github.com/retroenv/moodump/internal/options"
	"github.com/retroenv/moodump/internal/writer"
	"github.com/retroenv/retrogolib/log"
)

// Detector handles output format detection from file extensions and options.
type Detector struct {
	logger *log.Logger
}

// New creates a new format detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect determines the output format from options or the output file name.
// It first checks if a format is explicitly specified in options, otherwise
// attempts to detect the format from the output filename extension.
func (d *Detector) Detect(opts options.Program) writer.Format {
	format, err := writer.ParseFormat(opts.Format)
	if err != nil {
		format = d.detectFromFile(opts.Output)
		d.logger.Debug("Auto-detected output format",
			log.String("format", string(format)),
			log.String("file", opts.Output))
	}
	return format
}

// detectFromFile determines the output format based on file extension.
func (d *Detector) detectFromFile(filename string) writer.Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".json":
		return writer.JSON
	case ".cbor":
		return writer.CBOR
	default:
		// Default to a text report for console output and unknown extensions
		return writer.Text
	}
}

// Extension returns the file extension used for reports of the given format.
func Extension(format writer.Format) string {
	switch format {
	case writer.JSON:
		return ".json"
	case writer.CBOR:
		return ".cbor"
	default:
		return ".txt"
	}
}
