package writer

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"
)

// jsonWriter writes the decoded file as an indented JSON document.
type jsonWriter struct {
	collector
	out io.Writer
}

func newJSONWriter(w io.Writer) *jsonWriter {
	return &jsonWriter{out: w}
}

func (w *jsonWriter) Flush() error {
	enc := json.NewEncoder(w.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(w.doc); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}
