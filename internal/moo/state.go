package moo

import (
	"errors"
	"fmt"
	"io"
)

// MachineState is the CPU state stored in an INIT or FINA chunk.
// Registers is nil if the state has no REGS chunk.
type MachineState struct {
	Registers *Registers
	Memory    []MemoryEntry
	Queue     []byte

	Unknown  []Chunk
	Warnings []Warning
}

type stateDecoder func(s *MachineState, payload []byte) error

var stateDecoders = map[Tag]stateDecoder{
	TagRegisters: func(s *MachineState, payload []byte) error {
		regs, err := decodeRegisters(payload)
		s.Registers = &regs
		return err
	},
	TagRAM: func(s *MachineState, payload []byte) (err error) {
		s.Memory, err = decodeMemory(payload)
		return err
	},
	TagQueue: func(s *MachineState, payload []byte) (err error) {
		s.Queue, err = decodeQueue(payload)
		return err
	},
}

// DecodeState decodes the nested chunk stream of an INIT or FINA payload.
func DecodeState(payload []byte) *MachineState {
	return decodeState(payload, "")
}

func decodeState(payload []byte, path string) *MachineState {
	state := &MachineState{}
	warn := &warnings{parent: path}
	c := NewCursor(payload)

	for {
		chunk, err := ReadChunk(c)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			warn.add("", err)
			break
		}

		decode, ok := stateDecoders[chunk.Tag]
		if !ok {
			state.Unknown = append(state.Unknown, chunk)
			warn.add(chunk.Tag, fmt.Errorf("%w: %d bytes", ErrUnknownChunk, chunk.Length))
			continue
		}
		warn.add(chunk.Tag, decode(state, chunk.Payload))
	}

	state.Warnings = warn.list
	return state
}
