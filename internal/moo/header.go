package moo

import (
	"encoding/binary"
	"fmt"
	"strings"
)

const headerSize = 12

// Header is the decoded "MOO " file header.
type Header struct {
	Version   uint32
	TestCount uint32
	CPU       string
}

// DecodeHeader decodes the payload of a "MOO " chunk.
func DecodeHeader(payload []byte) (Header, error) {
	if len(payload) != headerSize {
		return Header{}, fmt.Errorf("%w: expected %d, got %d", ErrHeaderLength, headerSize, len(payload))
	}
	return Header{
		Version:   binary.LittleEndian.Uint32(payload[0:4]),
		TestCount: binary.LittleEndian.Uint32(payload[4:8]),
		CPU:       strings.TrimRight(string(payload[8:12]), " \x00"),
	}, nil
}
