package moo

import (
	"encoding/binary"
	"fmt"
)

// CycleSize is the encoded size of a single bus cycle record.
const CycleSize = 15

// Segment is the segment status of a bus cycle.
type Segment uint8

// BusStatus is the bus cycle status of a bus cycle.
type BusStatus uint8

// TState is the CPU T-state of a bus cycle.
type TState uint8

// QueueOp is the instruction queue operation performed in a bus cycle.
type QueueOp uint8

// BusFlags is a 3 bit mask of active read (bit 2), advanced write (bit 1)
// and write (bit 0) signals.
type BusFlags uint8

// Status codes.
const (
	SegmentES Segment = iota
	SegmentSS
	SegmentCS
	SegmentDS
	SegmentNone
)

const (
	BusINTA BusStatus = iota
	BusIOR
	BusIOW
	BusMEMR
	BusMEMW
	BusHALT
	BusCODE
	BusPASV
)

const (
	Ti TState = iota
	T1
	T2
	T3
	T4
)

const (
	QueueIdle QueueOp = iota
	QueueFirst
	QueueEmpty
	QueueSubsequent
)

var (
	segmentNames   = [...]string{"ES", "SS", "CS", "DS", "--"}
	busStatusNames = [...]string{"INTA", "IOR", "IOW", "MEMR", "MEMW", "HALT", "CODE", "PASV"}
	tStateNames    = [...]string{"Ti", "T1", "T2", "T3", "T4"}
	queueOpNames   = [...]string{"-", "F", "E", "S"}
	busFlagLetters = [3]byte{'R', 'A', 'W'}
)

const unknownCode = "?"

func (s Segment) Valid() bool   { return int(s) < len(segmentNames) }
func (b BusStatus) Valid() bool { return int(b) < len(busStatusNames) }
func (t TState) Valid() bool    { return int(t) < len(tStateNames) }
func (q QueueOp) Valid() bool   { return int(q) < len(queueOpNames) }
func (f BusFlags) Valid() bool  { return f <= 7 }

func (s Segment) String() string {
	if !s.Valid() {
		return unknownCode
	}
	return segmentNames[s]
}

func (b BusStatus) String() string {
	if !b.Valid() {
		return unknownCode
	}
	return busStatusNames[b]
}

func (t TState) String() string {
	if !t.Valid() {
		return unknownCode
	}
	return tStateNames[t]
}

func (q QueueOp) String() string {
	if !q.Valid() {
		return unknownCode
	}
	return queueOpNames[q]
}

// String renders the flags as three letters, "-" for inactive signals.
func (f BusFlags) String() string {
	var s [3]byte
	for i := range s {
		if f&(1<<(2-i)) != 0 {
			s[i] = busFlagLetters[i]
		} else {
			s[i] = '-'
		}
	}
	return string(s[:])
}

// Cycle is a single bus cycle of the CYCL trace.
type Cycle struct {
	Pins      uint8
	Address   uint32
	Segment   Segment
	Memory    BusFlags
	IO        BusFlags
	BHE       uint8
	Data      uint16
	Bus       BusStatus
	TState    TState
	QueueOp   QueueOp
	QueueByte uint8
}

// ALE returns whether the address latch enable pin was active.
func (c Cycle) ALE() bool {
	return c.Pins&1 != 0
}

// Valid returns whether all status codes of the cycle are in range.
func (c Cycle) Valid() bool {
	return c.Segment.Valid() && c.Memory.Valid() && c.IO.Valid() &&
		c.Bus.Valid() && c.TState.Valid() && c.QueueOp.Valid()
}

func decodeCycle(b []byte) Cycle {
	return Cycle{
		Pins:      b[0],
		Address:   binary.LittleEndian.Uint32(b[1:5]),
		Segment:   Segment(b[5]),
		Memory:    BusFlags(b[6]),
		IO:        BusFlags(b[7]),
		BHE:       b[8],
		Data:      binary.LittleEndian.Uint16(b[9:11]),
		Bus:       BusStatus(b[11]),
		TState:    TState(b[12]),
		QueueOp:   QueueOp(b[13]),
		QueueByte: b[14],
	}
}

// decodeCycles decodes a CYCL payload. Cycles with out of range status
// codes are kept and reported with a single warning.
func decodeCycles(payload []byte) ([]Cycle, error) {
	if len(payload) < 4 {
		return nil, fmt.Errorf("%w: cycles chunk has %d bytes", ErrShortPayload, len(payload))
	}
	count := binary.LittleEndian.Uint32(payload)
	if err := requireLength(payload, count, CycleSize); err != nil {
		return nil, err
	}

	cycles := make([]Cycle, count)
	invalid, first := 0, -1
	for i := range cycles {
		offset := 4 + i*CycleSize
		cycles[i] = decodeCycle(payload[offset : offset+CycleSize])
		if !cycles[i].Valid() {
			invalid++
			if first < 0 {
				first = i
			}
		}
	}

	if invalid > 0 {
		return cycles, fmt.Errorf("%w: %d cycles affected, first at cycle %d", ErrInvalidCode, invalid, first)
	}
	return cycles, nil
}
