// Package pipeline orchestrates the decoding workflow stages.
package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/retroenv/moodump/internal/app"
	"github.com/retroenv/moodump/internal/detector"
	"github.com/retroenv/moodump/internal/loader"
	"github.com/retroenv/moodump/internal/moo"
	"github.com/retroenv/moodump/internal/options"
	"github.com/retroenv/moodump/internal/verification"
	"github.com/retroenv/moodump/internal/writer"
	"github.com/retroenv/retrogolib/log"
)

// Pipeline orchestrates the complete decoding workflow.
type Pipeline struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader
}

// New creates a new decoding pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger:   logger,
		detector: detector.New(logger),
		loader:   loader.New(),
	}
}

// Execute runs the complete decoding pipeline for the input file of the options.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program, out io.Writer) (moo.Summary, error) {
	data, err := p.loader.Load(opts.Input)
	if err != nil {
		return moo.Summary{}, fmt.Errorf("loading file: %w", err)
	}

	return p.ExecuteWithData(ctx, data, opts, out)
}

// ExecuteWithData runs the decoding pipeline with already loaded file contents.
// This is useful for testing and programmatic usage where the file is already in memory.
func (p *Pipeline) ExecuteWithData(ctx context.Context, data []byte, opts options.Program,
	out io.Writer) (moo.Summary, error) {

	if err := ctx.Err(); err != nil {
		return moo.Summary{}, fmt.Errorf("decoding: %w", err)
	}

	format := p.detector.Detect(opts)
	w, err := writer.New(format, out, opts.WriterOptions())
	if err != nil {
		return moo.Summary{}, fmt.Errorf("creating writer: %w", err)
	}

	v := &visitor{
		Writer: w,
		logger: p.logger,
		opts:   opts,
	}

	filter := opts.Filter()
	walker := moo.NewWalker(p.logger, filter)
	sum, walkErr := walker.Walk(data, v)

	// output decoded before a framing error is still written
	if err := w.Flush(); err != nil {
		return sum, fmt.Errorf("writing output: %w", err)
	}
	if walkErr != nil {
		return sum, fmt.Errorf("decoding: %w", walkErr)
	}

	p.checkTestCount(sum, filter)

	if opts.Verify {
		if err := verification.VerifyWalk(p.logger, sum, filter, v.tests); err != nil {
			return sum, fmt.Errorf("verification failed: %w", err)
		}
		p.logger.Info("Verification successful")
	}

	return sum, nil
}

// checkTestCount warns if a complete walk found a different number of tests
// than the header declares.
func (p *Pipeline) checkTestCount(sum moo.Summary, filter moo.Filter) {
	if sum.Header == nil || filter.Active() {
		return
	}
	if int(sum.Header.TestCount) != sum.TestsSeen {
		p.logger.Warn("Test count does not match header",
			log.Int("declared", int(sum.Header.TestCount)),
			log.Int("found", sum.TestsSeen))
	}
}

// visitor passes the walk to the report writer and records the
// information needed after the walk.
type visitor struct {
	writer.Writer

	logger *log.Logger
	opts   options.Program
	tests  []verification.TestRef
}

func (v *visitor) Header(h moo.Header) {
	app.PrintInfo(v.logger, v.opts, h)
	v.Writer.Header(h)
}

func (v *visitor) Test(tc *moo.TestCase) {
	v.tests = append(v.tests, verification.NewTestRef(tc))
	v.Writer.Test(tc)
}
