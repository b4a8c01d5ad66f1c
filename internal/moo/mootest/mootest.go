// Package mootest builds MOO files for tests.
package mootest

import "encoding/binary"

// U16 encodes a little-endian 16 bit value.
func U16(v uint16) []byte {
	return binary.LittleEndian.AppendUint16(nil, v)
}

// U32 encodes a little-endian 32 bit value.
func U32(v uint32) []byte {
	return binary.LittleEndian.AppendUint32(nil, v)
}

// Join concatenates the given parts.
func Join(parts ...[]byte) []byte {
	var b []byte
	for _, p := range parts {
		b = append(b, p...)
	}
	return b
}

// Chunk encodes a chunk with the given tag around the joined payload parts.
func Chunk[T ~string](tag T, parts ...[]byte) []byte {
	payload := Join(parts...)
	return Join([]byte(tag), U32(uint32(len(payload))), payload)
}

// Counted prefixes data with its length as 32 bit count.
func Counted(data []byte) []byte {
	return Join(U32(uint32(len(data))), data)
}

// Header encodes a MOO header chunk. The cpu name has to be 4 bytes long.
func Header(count uint32, cpu string) []byte {
	return Chunk("MOO ", U32(1), U32(count), []byte(cpu))
}

// State encodes an INIT or FINA chunk with two registers, one memory entry
// and a queue byte.
func State(tag string, ax uint16) []byte {
	return Chunk(tag,
		Chunk("REGS", U16(0b1000000000001), U16(ax), U16(0x0100)),
		Chunk("RAM ", U32(1), U32(0xFFFF0), []byte{0xEA}),
		Chunk("QUEU", U32(1), []byte{0x90}),
	)
}

// Test encodes a complete TEST chunk.
func Test(index uint32, name string) []byte {
	cycle := Join(
		[]byte{1}, U32(0xFFFF0),
		[]byte{2, 4, 0, 0}, U16(0xEA),
		[]byte{4, 1, 1, 0xEA},
	)
	hash := make([]byte, 20)
	hash[19] = byte(index)

	return Chunk("TEST",
		U32(index),
		Chunk("NAME", Counted([]byte(name))),
		Chunk("BYTS", U32(1), []byte{0x90}),
		State("INIT", 0x1234),
		State("FINA", 0x4321),
		Chunk("CYCL", U32(1), cycle),
		Chunk("HASH", hash),
	)
}

// File encodes a MOO file with a header and n tests named "nop".
func File(n int) []byte {
	data := Header(uint32(n), "8088")
	for i := range n {
		data = append(data, Test(uint32(i), "nop")...)
	}
	return data
}
