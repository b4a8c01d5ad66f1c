package moo

import (
	"encoding/binary"
	"fmt"
)

// Register identifies a CPU register by its position in the canonical
// register list. Bit n of a REGS mask refers to Register(n).
type Register uint8

// Registers in canonical order.
const (
	AX Register = iota
	BX
	CX
	DX
	CS
	SS
	DS
	ES
	SP
	BP
	SI
	DI
	IP
	Flags

	registerCount = iota
)

var registerNames = [registerCount]string{
	"ax", "bx", "cx", "dx",
	"cs", "ss", "ds", "es",
	"sp", "bp", "si", "di",
	"ip", "flags",
}

func (r Register) String() string {
	if int(r) < len(registerNames) {
		return registerNames[r]
	}
	return fmt.Sprintf("reg%d", uint8(r))
}

// RegisterValue is a single decoded register.
type RegisterValue struct {
	Register Register
	Value    uint16
}

// Registers holds the registers present in a REGS chunk in canonical order.
type Registers struct {
	Mask   uint16
	Values []RegisterValue
}

// Get returns the value of the given register and whether it is present.
func (r Registers) Get(reg Register) (uint16, bool) {
	for _, v := range r.Values {
		if v.Register == reg {
			return v.Value, true
		}
	}
	return 0, false
}

// decodeRegisters decodes a REGS payload. Registers decoded before the
// payload runs out are kept.
func decodeRegisters(payload []byte) (Registers, error) {
	if len(payload) < 2 {
		return Registers{}, fmt.Errorf("%w: invalid regs length %d", ErrShortPayload, len(payload))
	}

	regs := Registers{Mask: binary.LittleEndian.Uint16(payload)}
	c := NewCursor(payload[2:])

	for i := range Register(registerCount) {
		if regs.Mask&(1<<i) == 0 {
			continue
		}
		value, err := c.ReadUint16()
		if err != nil {
			return regs, fmt.Errorf("%w for register %s", ErrTruncatedRegisters, i)
		}
		regs.Values = append(regs.Values, RegisterValue{Register: i, Value: value})
	}

	if extra := c.Remaining(); extra > 0 {
		return regs, fmt.Errorf("%w: %d extra bytes in regs chunk", ErrExtraBytes, extra)
	}
	return regs, nil
}
