// Package verification checks the consistency of a decoded MOO file.
package verification

import (
	"errors"
	"fmt"

	"github.com/retroenv/moodump/internal/moo"
	"github.com/retroenv/retrogolib/log"
)

// maxReported limits the number of logged test problems.
const maxReported = 10

// TestRef identifies a decoded test case.
type TestRef struct {
	Ordinal  int
	Index    uint32
	Warnings int
}

// NewTestRef returns the reference of a decoded test case.
func NewTestRef(tc *moo.TestCase) TestRef {
	return TestRef{
		Ordinal:  tc.Ordinal,
		Index:    tc.Index,
		Warnings: len(tc.AllWarnings()),
	}
}

// VerifyWalk verifies that the walked file is consistent: the top level
// chunks cover the whole file, the header declares the number of tests
// found, the stored test indices match their position and no test
// produced decoding warnings. Checks that need the complete file are
// skipped if the walk was filtered.
func VerifyWalk(logger *log.Logger, sum moo.Summary, filter moo.Filter, tests []TestRef) error {
	var errs []error
	complete := !filter.Active() && !sum.Stopped

	if complete {
		if err := checkCoverage(sum); err != nil {
			errs = append(errs, err)
		}
	}

	switch {
	case sum.Header == nil:
		errs = append(errs, errors.New("missing MOO header"))
	case complete && int(sum.Header.TestCount) != sum.TestsSeen:
		errs = append(errs, fmt.Errorf("header declares %d tests, file contains %d",
			sum.Header.TestCount, sum.TestsSeen))
	}

	var mismatches, warned int
	for _, ref := range tests {
		if ref.Index != uint32(ref.Ordinal) {
			if mismatches < maxReported {
				logger.Warn("Test index mismatch",
					log.Int("position", ref.Ordinal),
					log.Int("index", int(ref.Index)))
			}
			mismatches++
		}
		if ref.Warnings > 0 {
			if warned < maxReported {
				logger.Warn("Test has decoding warnings",
					log.Int("position", ref.Ordinal),
					log.Int("warnings", ref.Warnings))
			}
			warned++
		}
	}
	if mismatches > 0 {
		errs = append(errs, fmt.Errorf("%d tests with index not matching their position", mismatches))
	}
	if warned > 0 {
		errs = append(errs, fmt.Errorf("%d tests with decoding warnings", warned))
	}

	return errors.Join(errs...)
}

// checkCoverage verifies that the top level chunks follow each other
// without gaps and end at the end of the file.
func checkCoverage(sum moo.Summary) error {
	next := 0
	for _, span := range sum.Chunks {
		if span.Offset != next {
			return fmt.Errorf("chunk '%s' at offset %d, expected %d", span.Tag, span.Offset, next)
		}
		next += span.Size
	}
	if next != sum.Size {
		return fmt.Errorf("chunks cover %d of %d bytes", next, sum.Size)
	}
	return nil
}
