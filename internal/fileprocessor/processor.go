// Package fileprocessor handles file loading and processing operations
package fileprocessor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/retroenv/moodump/internal/detector"
	"github.com/retroenv/moodump/internal/loader"
	"github.com/retroenv/moodump/internal/options"
	"github.com/retroenv/moodump/internal/pipeline"
	"github.com/retroenv/moodump/internal/writer"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

// ErrTerminalOutput is returned when binary output would be written to a terminal.
var ErrTerminalOutput = errors.New("refusing to write binary output to a terminal, use -o")

// isTerminal reports whether stdout is attached to a terminal.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// ProcessFile handles the complete file processing workflow.
// The input is loaded before the output file is created, so an existing
// report is kept if the input can not be read.
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program) error {
	data, err := loader.New().Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading file: %w", err)
	}

	format := detector.New(logger).Detect(opts)
	opts.Format = string(format)

	out, err := createWriter(opts, format)
	if err != nil {
		return fmt.Errorf("creating writer: %w", err)
	}
	defer func() {
		if file, ok := out.(*os.File); ok && file != os.Stdout {
			_ = file.Close()
		}
	}()

	sum, err := pipeline.New(logger).ExecuteWithData(ctx, data, opts, out)
	if err != nil {
		return err
	}

	logger.Debug("Decoding finished",
		log.String("file", opts.Input),
		log.Int("tests_seen", sum.TestsSeen),
		log.Int("tests_decoded", sum.TestsDecoded))
	return nil
}

// GetFilesToProcess returns list of files to process based on options
func GetFilesToProcess(opts *options.Program) ([]string, error) {
	if opts.Batch != "" {
		matches, err := filepath.Glob(opts.Batch)
		if err != nil {
			return nil, fmt.Errorf("globbing batch pattern: %w", err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match batch pattern '%s'", opts.Batch)
		}
		return matches, nil
	}
	return []string{opts.Input}, nil
}

// GenerateOutputFilename generates output filename for a given input file
func GenerateOutputFilename(inputFile string, format writer.Format) string {
	ext := filepath.Ext(inputFile)
	return inputFile[:len(inputFile)-len(ext)] + detector.Extension(format)
}

func createWriter(opts options.Program, format writer.Format) (io.Writer, error) {
	if opts.Output == "" {
		if format.Binary() && isTerminal() {
			return nil, ErrTerminalOutput
		}
		return os.Stdout, nil
	}

	file, err := os.Create(opts.Output)
	if err != nil {
		return nil, fmt.Errorf("creating output file %s: %w", opts.Output, err)
	}
	return file, nil
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	versionString := version
	if commit != "" {
		if len(commit) > 7 {
			commit = commit[:7]
		}
		versionString += fmt.Sprintf(" (%s)", commit)
	}

	logger.Info("moodump", log.String("version", versionString))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}
