package moo

import (
	"errors"
	"fmt"
	"io"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// NoFilter disables the index or limit filter.
const NoFilter = -1

// Filter selects which TEST chunks of a file get decoded.
type Filter struct {
	Index int // only decode the test at this position, NoFilter for all
	Limit int // stop after this many tests, NoFilter for no limit
}

// AllTests returns a filter that decodes every test.
func AllTests() Filter {
	return Filter{Index: NoFilter, Limit: NoFilter}
}

// Active returns whether the filter restricts the decoded tests.
func (f Filter) Active() bool {
	return f.Index != NoFilter || f.Limit != NoFilter
}

// Visitor receives the decoded top level chunks of a walk in file order.
type Visitor interface {
	Header(h Header)
	Test(tc *TestCase)
	Notice(n Notice)
}

// Notice reports a recoverable problem with a top level chunk.
type Notice struct {
	Chunk Chunk
	Err   error
}

// ChunkSpan is the byte range occupied by a top level chunk.
type ChunkSpan struct {
	Tag    Tag
	Offset int
	Size   int
}

// Summary describes a finished walk.
type Summary struct {
	Header       *Header
	TestsSeen    int  // TEST chunks counted, decoded or skipped
	TestsDecoded int  // TEST chunks passed to the visitor
	Stopped      bool // walk ended early because of the filter
	Size         int  // size of the walked data
	Chunks       []ChunkSpan
}

// Walker drives the decoding of a complete MOO file.
type Walker struct {
	logger *log.Logger
	filter Filter
}

// NewWalker returns a walker applying the given test filter.
func NewWalker(logger *log.Logger, filter Filter) *Walker {
	return &Walker{
		logger: logger,
		filter: filter,
	}
}

// Walk decodes all top level chunks of data and passes them to v.
// It returns an error only if the top level framing is broken, in which
// case the summary covers everything decoded before the failure.
func (w *Walker) Walk(data []byte, v Visitor) (Summary, error) {
	sum := Summary{Size: len(data)}
	unknownTags := set.New[Tag]()
	c := NewCursor(data)

	for {
		chunk, err := ReadChunk(c)
		if errors.Is(err, io.EOF) {
			return sum, nil
		}
		if err != nil {
			return sum, fmt.Errorf("reading top-level chunk: %w", err)
		}
		sum.Chunks = append(sum.Chunks, ChunkSpan{
			Tag:    chunk.Tag,
			Offset: chunk.Offset,
			Size:   chunk.Size(),
		})

		switch chunk.Tag {
		case TagMOO:
			header, err := DecodeHeader(chunk.Payload)
			if err != nil {
				v.Notice(Notice{Chunk: chunk, Err: err})
				continue
			}
			sum.Header = &header
			v.Header(header)

		case TagTest:
			if !w.processTest(chunk, &sum, v) {
				sum.Stopped = true
				return sum, nil
			}

		default:
			if !unknownTags.Contains(chunk.Tag) {
				unknownTags.Add(chunk.Tag)
				w.logger.Warn("Skipping unknown top-level chunk",
					log.Stringer("tag", chunk.Tag),
					log.Hex("offset", chunk.Offset))
			}
			v.Notice(Notice{
				Chunk: chunk,
				Err:   fmt.Errorf("%w '%s' (%d bytes), skipping", ErrUnknownChunk, chunk.Tag, chunk.Length),
			})
		}
	}
}

// processTest handles a TEST chunk and returns whether the walk continues.
func (w *Walker) processTest(chunk Chunk, sum *Summary, v Visitor) bool {
	ordinal := sum.TestsSeen

	if w.filter.Index != NoFilter && ordinal != w.filter.Index {
		sum.TestsSeen++
		w.logger.Debug("Skipping test", log.Int("ordinal", ordinal))
		return true
	}
	if w.filter.Limit != NoFilter && sum.TestsDecoded >= w.filter.Limit {
		return false
	}

	tc := DecodeTest(ordinal, chunk.Payload)
	for _, warning := range tc.AllWarnings() {
		w.logger.Debug("Test decoding warning",
			log.Int("ordinal", ordinal),
			log.Err(warning))
	}
	v.Test(tc)
	sum.TestsSeen++
	sum.TestsDecoded++

	if w.filter.Limit != NoFilter && sum.TestsSeen >= w.filter.Limit {
		return false
	}
	if w.filter.Index != NoFilter && sum.TestsSeen > w.filter.Index {
		return false
	}
	return true
}
