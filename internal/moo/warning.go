package moo

import (
	"errors"
	"fmt"
)

// Content errors. They are reported as warnings attached to the decoded
// record and never stop the surrounding traversal.
var (
	ErrShortPayload       = errors.New("payload too short")
	ErrLengthMismatch     = errors.New("payload length mismatch")
	ErrExtraBytes         = errors.New("extra bytes in payload")
	ErrTruncatedRegisters = errors.New("unexpected end of register data")
	ErrInvalidCode        = errors.New("status code out of range")
	ErrHashLength         = errors.New("unexpected hash length")
	ErrHeaderLength       = errors.New("invalid MOO chunk length")
	ErrZeroLength         = errors.New("zero-length chunk")
	ErrUnknownChunk       = errors.New("unknown chunk")
)

// Warning is a recoverable decoding problem of a single chunk.
type Warning struct {
	Chunk string // path of the chunk, for example "INIT/RAM "
	Err   error
}

func (w Warning) Error() string {
	if w.Chunk == "" {
		return w.Err.Error()
	}
	return fmt.Sprintf("'%s': %s", w.Chunk, w.Err)
}

func (w Warning) Unwrap() error {
	return w.Err
}

// warnings collects warnings for chunks below a common parent path.
type warnings struct {
	parent string
	list   []Warning
}

func (w *warnings) add(tag Tag, err error) {
	if err == nil {
		return
	}
	path := w.parent
	if tag != "" {
		if path != "" {
			path += "/"
		}
		path += string(tag)
	}
	w.list = append(w.list, Warning{Chunk: path, Err: err})
}

// requireLength checks that a counted payload holds count elements of size
// bytes after its 4 byte count field.
func requireLength(payload []byte, count uint32, size int) error {
	need := 4 + uint64(count)*uint64(size)
	if uint64(len(payload)) < need {
		return fmt.Errorf("%w: expected at least %d bytes but got %d", ErrLengthMismatch, need, len(payload))
	}
	return nil
}
