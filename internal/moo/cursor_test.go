package moo

import (
	"errors"
	"io"
	"testing"

	"github.com/retroenv/moodump/internal/moo/mootest"
	"github.com/retroenv/retrogolib/assert"
)

func TestCursorRead(t *testing.T) {
	c := NewCursor([]byte{0x34, 0x12, 0x78, 0x56, 0x34, 0x12, 0xFF})

	v16, err := c.ReadUint16()
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x1234), v16)

	v32, err := c.ReadUint32()
	assert.NoError(t, err)
	assert.Equal(t, uint32(0x12345678), v32)
	assert.Equal(t, 6, c.Offset())
	assert.Equal(t, 1, c.Remaining())

	_, err = c.ReadUint16()
	assert.True(t, errors.Is(err, ErrOutOfBounds))
	assert.Equal(t, 6, c.Offset(), "failed read must not advance")

	v8, err := c.ReadUint8()
	assert.NoError(t, err)
	assert.Equal(t, uint8(0xFF), v8)
	assert.Equal(t, 0, c.Remaining())
}

func TestCursorReadNegative(t *testing.T) {
	c := NewCursor([]byte{1, 2})
	_, err := c.Read(-1)
	assert.True(t, errors.Is(err, ErrOutOfBounds))
	assert.Equal(t, 0, c.Offset())
}

func TestReadChunk(t *testing.T) {
	data := mootest.Join(mootest.Chunk(TagName, []byte("abc")), mootest.Chunk(TagHash))
	c := NewCursor(data)

	ch, err := ReadChunk(c)
	assert.NoError(t, err)
	assert.Equal(t, TagName, ch.Tag)
	assert.Equal(t, uint32(3), ch.Length)
	assert.Equal(t, "abc", string(ch.Payload))
	assert.Equal(t, 0, ch.Offset)
	assert.Equal(t, 11, ch.Size())

	ch, err = ReadChunk(c)
	assert.NoError(t, err)
	assert.Equal(t, TagHash, ch.Tag)
	assert.Equal(t, 0, len(ch.Payload))
	assert.Equal(t, 11, ch.Offset)

	_, err = ReadChunk(c)
	assert.True(t, errors.Is(err, io.EOF))
}

func TestReadChunkTruncated(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{
			name: "partial header",
			data: []byte("TES"),
		},
		{
			name: "missing length bytes",
			data: []byte{'T', 'E', 'S', 'T', 1, 0},
		},
		{
			name: "payload exceeds data",
			data: mootest.Join([]byte(TagTest), mootest.U32(10), []byte{1, 2, 3}),
		},
		{
			name: "maximum declared length",
			data: mootest.Join([]byte(TagTest), mootest.U32(0xFFFFFFFF), []byte{1}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCursor(tt.data)
			_, err := ReadChunk(c)
			assert.True(t, errors.Is(err, ErrTruncatedChunk))
			assert.Equal(t, 0, c.Offset(), "cursor must not move on failure")
		})
	}
}

func TestReadChunkBoundedPayload(t *testing.T) {
	// the payload view must not grant access to the following bytes
	data := mootest.Join(mootest.Chunk(TagName, []byte{1, 2}), []byte{0xAA, 0xBB})
	ch, err := ReadChunk(NewCursor(data))
	assert.NoError(t, err)
	assert.Equal(t, 2, len(ch.Payload))
	assert.Equal(t, 2, cap(ch.Payload))
}

func TestFramingIsLossless(t *testing.T) {
	data := mootest.Join(testFile(3), mootest.Chunk("XTRA", []byte{1, 2, 3}), mootest.Chunk(TagTest, mootest.U32(9)))
	c := NewCursor(data)

	var rebuilt []byte
	next := 0
	for {
		ch, err := ReadChunk(c)
		if errors.Is(err, io.EOF) {
			break
		}
		assert.NoError(t, err)
		assert.Equal(t, next, ch.Offset, "chunks must be contiguous")
		rebuilt = append(rebuilt, mootest.Join([]byte(ch.Tag), mootest.U32(ch.Length), ch.Payload)...)
		next = ch.Offset + ch.Size()
	}
	assert.Equal(t, data, rebuilt)
}
