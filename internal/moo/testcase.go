package moo

import (
	"errors"
	"fmt"
	"io"
)

// TestCase is a single decoded TEST chunk. Fields of sub-chunks missing
// from the test are left unset.
type TestCase struct {
	Ordinal int    // position of the TEST chunk in the file
	Index   uint32 // test index stored in the chunk
	Size    int    // payload size of the TEST chunk

	Name    *string
	Bytes   []byte
	Initial *MachineState
	Final   *MachineState
	Cycles  []Cycle
	Hash    *Hash

	Unknown  []Chunk
	Warnings []Warning
}

type testDecoder func(tc *TestCase, payload []byte) error

var testDecoders = map[Tag]testDecoder{
	TagName: func(tc *TestCase, payload []byte) error {
		name, err := decodeName(payload)
		if err == nil {
			tc.Name = &name
		}
		return err
	},
	TagBytes: func(tc *TestCase, payload []byte) (err error) {
		tc.Bytes, err = decodeBytes(payload)
		return err
	},
	TagInitial: func(tc *TestCase, payload []byte) error {
		tc.Initial = decodeState(payload, string(TagTest)+"/"+string(TagInitial))
		return nil
	},
	TagFinal: func(tc *TestCase, payload []byte) error {
		tc.Final = decodeState(payload, string(TagTest)+"/"+string(TagFinal))
		return nil
	},
	TagCycles: func(tc *TestCase, payload []byte) (err error) {
		tc.Cycles, err = decodeCycles(payload)
		return err
	},
	TagHash: func(tc *TestCase, payload []byte) (err error) {
		tc.Hash, err = decodeHash(payload)
		return err
	},
}

// DecodeTest assembles a test case from the payload of a TEST chunk.
// Decoding stops at the first zero-length or truncated sub-chunk, keeping
// everything decoded up to that point.
func DecodeTest(ordinal int, payload []byte) *TestCase {
	tc := &TestCase{Ordinal: ordinal, Size: len(payload)}
	warn := &warnings{parent: string(TagTest)}
	c := NewCursor(payload)

	index, err := c.ReadUint32()
	if err != nil {
		warn.add("", fmt.Errorf("%w: test index: %w", ErrShortPayload, err))
		tc.Warnings = warn.list
		return tc
	}
	tc.Index = index

	for {
		chunk, err := ReadChunk(c)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			warn.add("", err)
			break
		}
		if chunk.Length == 0 {
			warn.add(chunk.Tag, fmt.Errorf("%w, stopping to avoid infinite loop", ErrZeroLength))
			break
		}

		decode, ok := testDecoders[chunk.Tag]
		if !ok {
			tc.Unknown = append(tc.Unknown, chunk)
			warn.add(chunk.Tag, fmt.Errorf("%w: %d bytes", ErrUnknownChunk, chunk.Length))
			continue
		}
		warn.add(chunk.Tag, decode(tc, chunk.Payload))
	}

	tc.Warnings = warn.list
	return tc
}

// AllWarnings returns the warnings of the test followed by the warnings of
// its initial and final state.
func (tc *TestCase) AllWarnings() []Warning {
	all := append([]Warning(nil), tc.Warnings...)
	if tc.Initial != nil {
		all = append(all, tc.Initial.Warnings...)
	}
	if tc.Final != nil {
		all = append(all, tc.Final.Warnings...)
	}
	return all
}
