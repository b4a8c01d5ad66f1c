package moo

import (
	"testing"

	"github.com/retroenv/moodump/internal/moo/mootest"
)

func headerChunk(count uint32, cpu string) []byte {
	return mootest.Chunk(TagMOO, mootest.U32(1), mootest.U32(count), []byte(cpu))
}

func stateChunk(tag Tag) []byte {
	return mootest.Chunk(tag,
		mootest.Chunk(TagRegisters, mootest.U16(0b11), mootest.U16(0x1234), mootest.U16(0xBEEF)),
		mootest.Chunk(TagRAM, mootest.U32(2), mootest.U32(0xFFFF0), []byte{0xEA}, mootest.U32(0x00400), []byte{0x90}),
		mootest.Chunk(TagQueue, mootest.Counted([]byte{0xB8, 0x01})),
	)
}

func cycleBytes(c Cycle) []byte {
	b := []byte{c.Pins}
	b = append(b, mootest.U32(c.Address)...)
	b = append(b, byte(c.Segment), byte(c.Memory), byte(c.IO), c.BHE)
	b = append(b, mootest.U16(c.Data)...)
	b = append(b, byte(c.Bus), byte(c.TState), byte(c.QueueOp), c.QueueByte)
	return b
}

var sampleCycle = Cycle{
	Pins:      1,
	Address:   0xFFFF0,
	Segment:   SegmentCS,
	Memory:    0b100,
	IO:        0,
	BHE:       0,
	Data:      0x00EA,
	Bus:       BusCODE,
	TState:    T1,
	QueueOp:   QueueFirst,
	QueueByte: 0xEA,
}

func testChunk(index uint32, name string) []byte {
	hash := make([]byte, HashSize)
	for i := range hash {
		hash[i] = byte(i)
	}
	return mootest.Chunk(TagTest,
		mootest.U32(index),
		mootest.Chunk(TagName, mootest.Counted([]byte(name))),
		mootest.Chunk(TagBytes, mootest.Counted([]byte{0xEA})),
		stateChunk(TagInitial),
		stateChunk(TagFinal),
		mootest.Chunk(TagCycles, mootest.U32(1), cycleBytes(sampleCycle)),
		mootest.Chunk(TagHash, hash),
	)
}

// testFile builds a file with a header and count test chunks.
func testFile(count int) []byte {
	b := headerChunk(uint32(count), "8088")
	for i := range count {
		b = append(b, testChunk(uint32(i), "nop")...)
	}
	return b
}

type recorder struct {
	headers []Header
	tests   []*TestCase
	notices []Notice
}

func (r *recorder) Header(h Header)   { r.headers = append(r.headers, h) }
func (r *recorder) Test(tc *TestCase) { r.tests = append(r.tests, tc) }
func (r *recorder) Notice(n Notice)   { r.notices = append(r.notices, n) }

func (r *recorder) ordinals() []int {
	var ords []int
	for _, tc := range r.tests {
		ords = append(ords, tc.Ordinal)
	}
	return ords
}

func requireNoWarnings(t *testing.T, tc *TestCase) {
	t.Helper()
	if w := tc.AllWarnings(); len(w) > 0 {
		t.Fatalf("unexpected warnings: %v", w)
	}
}
