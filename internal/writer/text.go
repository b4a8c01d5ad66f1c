package writer

import (
	"bufio"
	"fmt"
	"io"

	"github.com/retroenv/moodump/internal/moo"
)

// textWriter renders a human readable report.
type textWriter struct {
	options Options
	out     *bufio.Writer
	err     error
}

func newTextWriter(w io.Writer, options Options) *textWriter {
	return &textWriter{
		options: options,
		out:     bufio.NewWriter(w),
	}
}

// printf writes formatted output and keeps the first write error.
func (w *textWriter) printf(format string, args ...any) {
	if w.err != nil {
		return
	}
	if _, err := fmt.Fprintf(w.out, format, args...); err != nil {
		w.err = fmt.Errorf("writing report: %w", err)
	}
}

func (w *textWriter) Flush() error {
	if w.err != nil {
		return w.err
	}
	if err := w.out.Flush(); err != nil {
		return fmt.Errorf("flushing report: %w", err)
	}
	return nil
}

func (w *textWriter) Header(h moo.Header) {
	w.printf("File MOO Chunk:\n  Version: %d\n  Test Count: %d\n  CPU type: %s\n",
		h.Version, h.TestCount, h.CPU)
}

func (w *textWriter) Notice(n moo.Notice) {
	w.printf("%s\n", n.Err)
}

func (w *textWriter) Test(tc *moo.TestCase) {
	w.printf("\n==== Test #%d (%d bytes) ====\n", tc.Index, tc.Size)

	if tc.Name != nil {
		w.printf("Name: \"%s\"\n", *tc.Name)
	}
	if tc.Bytes != nil {
		w.printf("Bytes (%d): [ %s]\n", len(tc.Bytes), hexBytes(tc.Bytes, 0))
	}
	if tc.Initial != nil {
		w.state("Initial", tc.Initial)
	}
	if tc.Final != nil {
		w.state("Final", tc.Final)
	}
	if tc.Cycles != nil {
		w.cycles(tc.Cycles)
	}
	if tc.Hash != nil {
		w.printf("Hash: %s\n", tc.Hash)
	}
	for _, warning := range tc.Warnings {
		w.printf("  Warning: %s\n", warning)
	}
}

func (w *textWriter) state(label string, s *moo.MachineState) {
	w.printf("%s CPU State:\n", label)

	if s.Registers != nil {
		w.printf("  Registers:\n")
		for _, reg := range s.Registers.Values {
			w.printf("    %-5s = %04X (%d)\n", reg.Register, reg.Value, reg.Value)
		}
	}

	if s.Memory != nil {
		if len(s.Memory) == 0 {
			w.printf("  RAM entries: 0 (empty)\n")
		} else {
			w.printf("  RAM entries: %d\n", len(s.Memory))
		}
		for i, entry := range s.Memory {
			if w.options.MaxMemoryEntries > 0 && i >= w.options.MaxMemoryEntries {
				w.printf("    ... (truncated)\n")
				break
			}
			w.printf("    %05X = %02X (%d)\n", entry.Address, entry.Value, entry.Value)
		}
	}

	if s.Queue != nil {
		w.printf("  Queue length: %d\n", len(s.Queue))
		w.printf("  Queue bytes: [ %s]\n", hexBytes(s.Queue, w.options.MaxQueueBytes))
	}

	for _, warning := range s.Warnings {
		w.printf("  Warning: %s\n", warning)
	}
}

func (w *textWriter) cycles(cycles []moo.Cycle) {
	w.printf("Cycles count: %d\n", len(cycles))
	w.printf("%5s %3s %5s %3s %3s %3s %3s %4s %7s %4s %4s %2s\n",
		"Idx", "Pin", "Addr", "Seg", "Mem", "Io", "BHE", "Data", "Bus", "T", "Qop", "Qb")
	w.printf("%5s %3s %5s %3s %3s %3s %3s %4s %7s %4s %4s %2s\n",
		"---", "---", "-----", "---", "---", "---", "---", "----", "----", "--", "---", "--")

	for i, c := range cycles {
		w.printf("%5d %03X %05X %3s %3s %3s %3X %4.2X %7s %4s %4s %02X\n",
			i, c.Pins, c.Address, c.Segment, c.Memory, c.IO, c.BHE,
			c.Data, c.Bus, c.TState, c.QueueOp, c.QueueByte)
	}
}

// hexBytes formats data as space terminated hex bytes, listing at most
// limit bytes if limit is positive.
func hexBytes(data []byte, limit int) string {
	b := make([]byte, 0, 3*len(data)+4)
	for i, v := range data {
		if limit > 0 && i >= limit {
			b = append(b, "... "...)
			break
		}
		b = fmt.Appendf(b, "%02X ", v)
	}
	return string(b)
}
