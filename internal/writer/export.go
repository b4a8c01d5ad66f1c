package writer

import (
	"github.com/retroenv/moodump/internal/moo"
)

// Document is the machine readable form of a decoded file. The test layout
// follows the JSON test suites the MOO files are generated from.
type Document struct {
	Header  *HeaderDoc `json:"header,omitempty"`
	Tests   []TestDoc  `json:"tests"`
	Notices []string   `json:"notices,omitempty"`
}

// HeaderDoc is the exported MOO header.
type HeaderDoc struct {
	Version   uint32 `json:"version"`
	TestCount uint32 `json:"test_count"`
	CPU       string `json:"cpu"`
}

// TestDoc is an exported test case.
type TestDoc struct {
	Idx      uint32    `json:"idx"`
	Name     string    `json:"name,omitempty"`
	Bytes    []int     `json:"bytes"`
	Initial  *StateDoc `json:"initial,omitempty"`
	Final    *StateDoc `json:"final,omitempty"`
	Cycles   [][]any   `json:"cycles"`
	Hash     string    `json:"hash,omitempty"`
	Warnings []string  `json:"warnings,omitempty"`
}

// StateDoc is an exported machine state. Regs is nil if the state has no
// REGS chunk.
type StateDoc struct {
	Regs  *RegistersDoc `json:"regs,omitempty"`
	RAM   [][2]uint32   `json:"ram"`
	Queue []int         `json:"queue"`
}

// RegistersDoc holds the registers present in a state. The fields follow
// the canonical register order, which JSON output keeps. CBOR output is
// canonical CBOR and orders the keys by its own rules.
type RegistersDoc struct {
	AX    *uint16 `json:"ax,omitempty"`
	BX    *uint16 `json:"bx,omitempty"`
	CX    *uint16 `json:"cx,omitempty"`
	DX    *uint16 `json:"dx,omitempty"`
	CS    *uint16 `json:"cs,omitempty"`
	SS    *uint16 `json:"ss,omitempty"`
	DS    *uint16 `json:"ds,omitempty"`
	ES    *uint16 `json:"es,omitempty"`
	SP    *uint16 `json:"sp,omitempty"`
	BP    *uint16 `json:"bp,omitempty"`
	SI    *uint16 `json:"si,omitempty"`
	DI    *uint16 `json:"di,omitempty"`
	IP    *uint16 `json:"ip,omitempty"`
	Flags *uint16 `json:"flags,omitempty"`
}

// fields returns the register fields indexed by moo.Register.
func (r *RegistersDoc) fields() []**uint16 {
	return []**uint16{
		&r.AX, &r.BX, &r.CX, &r.DX,
		&r.CS, &r.SS, &r.DS, &r.ES,
		&r.SP, &r.BP, &r.SI, &r.DI,
		&r.IP, &r.Flags,
	}
}

// Get returns the value of the given register and whether it is present.
func (r *RegistersDoc) Get(reg moo.Register) (uint16, bool) {
	fields := r.fields()
	if int(reg) >= len(fields) || *fields[reg] == nil {
		return 0, false
	}
	return **fields[reg], true
}

func (r *RegistersDoc) set(reg moo.Register, value uint16) {
	fields := r.fields()
	if int(reg) < len(fields) {
		*fields[reg] = &value
	}
}

// collector builds a Document from the visited chunks.
type collector struct {
	doc Document
}

func (c *collector) Header(h moo.Header) {
	c.doc.Header = &HeaderDoc{
		Version:   h.Version,
		TestCount: h.TestCount,
		CPU:       h.CPU,
	}
}

func (c *collector) Notice(n moo.Notice) {
	c.doc.Notices = append(c.doc.Notices, n.Err.Error())
}

func (c *collector) Test(tc *moo.TestCase) {
	c.doc.Tests = append(c.doc.Tests, exportTest(tc))
}

func exportTest(tc *moo.TestCase) TestDoc {
	doc := TestDoc{
		Idx:     tc.Index,
		Bytes:   ints(tc.Bytes),
		Initial: exportState(tc.Initial),
		Final:   exportState(tc.Final),
		Cycles:  make([][]any, 0, len(tc.Cycles)),
	}
	if tc.Name != nil {
		doc.Name = *tc.Name
	}
	if tc.Hash != nil {
		doc.Hash = tc.Hash.String()
	}
	for _, c := range tc.Cycles {
		doc.Cycles = append(doc.Cycles, []any{
			c.Pins, c.Address, c.Segment.String(), c.Memory.String(), c.IO.String(),
			c.BHE, c.Data, c.Bus.String(), c.TState.String(), c.QueueOp.String(), c.QueueByte,
		})
	}
	for _, warning := range tc.AllWarnings() {
		doc.Warnings = append(doc.Warnings, warning.Error())
	}
	return doc
}

func exportState(s *moo.MachineState) *StateDoc {
	if s == nil {
		return nil
	}
	doc := &StateDoc{
		RAM:   make([][2]uint32, 0, len(s.Memory)),
		Queue: ints(s.Queue),
	}
	if s.Registers != nil {
		doc.Regs = &RegistersDoc{}
		for _, reg := range s.Registers.Values {
			doc.Regs.set(reg.Register, reg.Value)
		}
	}
	for _, entry := range s.Memory {
		doc.RAM = append(doc.RAM, [2]uint32{entry.Address, uint32(entry.Value)})
	}
	return doc
}

// ints converts bytes to integers so that they are exported as a list of
// numbers instead of an encoded byte string.
func ints(data []byte) []int {
	values := make([]int, len(data))
	for i, b := range data {
		values[i] = int(b)
	}
	return values
}
