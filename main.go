// Package main implements the main entry point for the MOO test file decoder
package main

import (
	"context"
	"errors"
	"os"

	"github.com/retroenv/moodump/internal/cli"
	"github.com/retroenv/moodump/internal/config"
	"github.com/retroenv/moodump/internal/detector"
	"github.com/retroenv/moodump/internal/fileprocessor"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			fileprocessor.PrintBanner(logger, opts, version, commit, date)
			usageErr.ShowUsage()
		} else {
			logger.Error(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	fileprocessor.PrintBanner(logger, opts, version, commit, date)

	files, err := fileprocessor.GetFilesToProcess(&opts)
	if err != nil {
		logger.Fatal(err.Error())
	}

	failed := false
	for _, file := range files {
		opts.Input = file
		if opts.Batch != "" {
			format := detector.New(logger).Detect(opts)
			opts.Output = fileprocessor.GenerateOutputFilename(file, format)
		}

		if err := fileprocessor.ProcessFile(ctx, logger, opts); err != nil {
			if errors.Is(err, context.Canceled) {
				logger.Info("Operation cancelled")
				os.Exit(1)
			}
			logger.Error("Decoding failed", log.String("file", file), log.Err(err))
			failed = true
		}
	}

	if failed {
		os.Exit(1)
	}
}
