package moo

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// chunkHeaderSize is the size of a tag plus its length field.
const chunkHeaderSize = 8

// ErrTruncatedChunk is returned when a chunk header or the payload it
// declares does not fit into the remaining bytes.
var ErrTruncatedChunk = errors.New("truncated chunk")

// Tag is the 4 character ASCII code identifying a chunk.
type Tag string

// Chunk tags known to the decoder.
const (
	TagMOO       Tag = "MOO "
	TagTest      Tag = "TEST"
	TagName      Tag = "NAME"
	TagBytes     Tag = "BYTS"
	TagInitial   Tag = "INIT"
	TagFinal     Tag = "FINA"
	TagRegisters Tag = "REGS"
	TagRAM       Tag = "RAM "
	TagQueue     Tag = "QUEU"
	TagCycles    Tag = "CYCL"
	TagHash      Tag = "HASH"
)

func (t Tag) String() string {
	return string(t)
}

// Chunk is a framed chunk. Payload is a view into the buffer it was read
// from and is exactly Length bytes long.
type Chunk struct {
	Tag     Tag
	Length  uint32
	Payload []byte
	Offset  int // position of the tag within the framed slice
}

// Size returns the number of bytes the chunk occupies including its header.
func (c Chunk) Size() int {
	return chunkHeaderSize + len(c.Payload)
}

// ReadChunk frames the next chunk at the cursor position and advances the
// cursor past its payload. It returns io.EOF if the cursor is exactly at the
// end of its data. On any other failure the cursor is left unchanged.
func ReadChunk(c *Cursor) (Chunk, error) {
	start := c.Offset()
	if c.Remaining() == 0 {
		return Chunk{}, io.EOF
	}

	header, err := c.Read(chunkHeaderSize)
	if err != nil {
		return Chunk{}, fmt.Errorf("%w: chunk header at offset %d: %w", ErrTruncatedChunk, start, err)
	}

	tag := Tag(header[:4])
	length := binary.LittleEndian.Uint32(header[4:])
	if avail := c.Remaining(); uint64(length) > uint64(avail) {
		c.pos = start
		return Chunk{}, fmt.Errorf("%w: '%s' at offset %d declares %d bytes, %d remaining",
			ErrTruncatedChunk, tag, start, length, avail)
	}

	payload, err := c.Read(int(length))
	if err != nil {
		c.pos = start
		return Chunk{}, fmt.Errorf("%w: '%s' payload at offset %d: %w", ErrTruncatedChunk, tag, start, err)
	}

	return Chunk{
		Tag:     tag,
		Length:  length,
		Payload: payload,
		Offset:  start,
	}, nil
}
