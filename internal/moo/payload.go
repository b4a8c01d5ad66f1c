package moo

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"
)

const (
	// MaxNameLength is the maximum number of bytes kept of a test name.
	MaxNameLength = 256

	// HashSize is the size of the HASH chunk digest.
	HashSize = 20

	memoryEntrySize = 5
)

// MemoryEntry is a single touched memory byte.
type MemoryEntry struct {
	Address uint32
	Value   uint8
}

// Hash is the integrity digest of a test.
type Hash [HashSize]byte

func (h Hash) String() string {
	return strings.ToUpper(hex.EncodeToString(h[:]))
}

// readCount reads the leading 32 bit element count of a counted payload.
func readCount(payload []byte, kind string) (uint32, error) {
	if len(payload) < 4 {
		return 0, fmt.Errorf("%w: %s chunk has %d bytes", ErrShortPayload, kind, len(payload))
	}
	return binary.LittleEndian.Uint32(payload), nil
}

// decodeMemory decodes a "RAM " payload. On a length mismatch no entries
// are returned.
func decodeMemory(payload []byte) ([]MemoryEntry, error) {
	count, err := readCount(payload, "ram")
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return []MemoryEntry{}, nil
	}
	if err := requireLength(payload, count, memoryEntrySize); err != nil {
		return nil, err
	}

	entries := make([]MemoryEntry, count)
	for i := range entries {
		offset := 4 + i*memoryEntrySize
		entries[i] = MemoryEntry{
			Address: binary.LittleEndian.Uint32(payload[offset:]),
			Value:   payload[offset+4],
		}
	}
	return entries, nil
}

// decodeCounted decodes a payload holding a 32 bit count followed by that
// many raw bytes. The returned slice is a view into payload.
func decodeCounted(payload []byte, kind string) ([]byte, error) {
	count, err := readCount(payload, kind)
	if err != nil {
		return nil, err
	}
	if err := requireLength(payload, count, 1); err != nil {
		return nil, fmt.Errorf("%s chunk: %w", kind, err)
	}
	return payload[4 : 4+int(count) : 4+int(count)], nil
}

// decodeQueue decodes a QUEU payload.
func decodeQueue(payload []byte) ([]byte, error) {
	return decodeCounted(payload, "queue")
}

// decodeBytes decodes a BYTS payload.
func decodeBytes(payload []byte) ([]byte, error) {
	return decodeCounted(payload, "bytes")
}

// decodeName decodes a NAME payload into an owned string of at most
// MaxNameLength bytes.
func decodeName(payload []byte) (string, error) {
	text, err := decodeCounted(payload, "name")
	if err != nil {
		return "", err
	}
	if len(text) > MaxNameLength {
		text = text[:MaxNameLength]
	}
	return string(text), nil
}

// decodeHash decodes a HASH payload.
func decodeHash(payload []byte) (*Hash, error) {
	if len(payload) != HashSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrHashLength, len(payload))
	}
	var h Hash
	copy(h[:], payload)
	return &h, nil
}
