package writer

import (
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// cborEncMode uses canonical encoding to get deterministic output.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("writer: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// cborWriter writes the decoded file as a single CBOR document. The field
// names are taken from the json struct tags.
type cborWriter struct {
	collector
	out io.Writer
}

func newCBORWriter(w io.Writer) *cborWriter {
	return &cborWriter{out: w}
}

func (w *cborWriter) Flush() error {
	data, err := cborEncMode.Marshal(w.doc)
	if err != nil {
		return fmt.Errorf("encoding cbor: %w", err)
	}
	if _, err := w.out.Write(data); err != nil {
		return fmt.Errorf("writing cbor: %w", err)
	}
	return nil
}
