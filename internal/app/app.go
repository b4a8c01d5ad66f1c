// Package app provides the main application helper for the decoder.
package app

import (
	"github.com/retroenv/moodump/internal/moo"
	"github.com/retroenv/moodump/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// SupportedVersion is the MOO format version the decoder was written for.
const SupportedVersion = 1

// PrintInfo prints the information about the input file and its header.
func PrintInfo(logger *log.Logger, opts options.Program, header moo.Header) {
	if opts.Quiet {
		return
	}

	logger.Info("Processing MOO file",
		log.String("file", opts.Input),
		log.String("cpu", header.CPU),
		log.Int("version", int(header.Version)),
		log.Int("tests", int(header.TestCount)),
	)
	if header.Version != SupportedVersion {
		logger.Warn("Unsupported MOO format version, decoding might be incomplete",
			log.Int("version", int(header.Version)))
	}
}
