// Package ptable reads and writes the pointer tables that head the game's
// binary data files.
//
// A pointer table is an array of little-endian uint16 offsets at the start
// of a file. It has no explicit count: the table ends where the first record
// begins, so the first offset equals the byte length of the table. Each table
// entry (a "record" of the table) spans Width bytes, e.g. a single offset or a
// pair of offsets.
package ptable

import (
	"encoding/binary"
	"fmt"

	"github.com/fcdt/dttool/internal/errors"
)

var endianess = binary.LittleEndian

// OffsetSize is the size of a single offset in bytes.
const OffsetSize = 2

// MaxOffset is the largest address a table can refer to.
const MaxOffset = 0xFFFF

// Read reads a pointer table starting at start, where each entry is width
// bytes wide. It returns all offsets in file order and the first offset,
// which marks the end of the table.
//
// An empty data slice is an empty table.
func Read(data []byte, start, width int) ([]uint16, uint16, error) {
	if width <= 0 || width%OffsetSize != 0 {
		return nil, 0, fmt.Errorf("invalid table entry width %v", width)
	}
	if len(data) == 0 && start == 0 {
		return []uint16{}, 0, nil
	}

	pos := start
	first, err := Uint16(data, pos)
	if err != nil {
		return nil, 0, err
	}

	end := int(first)
	if end < start+width {
		return nil, first, errors.NewTruncated(start, "pointer table ends at 0x%04X before its first entry", end)
	}

	offsets := make([]uint16, 0, (end-start)/OffsetSize)
	for pos < end {
		if pos+width > len(data) {
			return nil, first, errors.NewTruncated(pos, "pointer table runs past end of data")
		}
		for i := 0; i < width; i += OffsetSize {
			offsets = append(offsets, endianess.Uint16(data[pos+i:]))
		}
		pos += width
	}

	if pos != end {
		return nil, first, errors.NewTruncated(pos, "pointer table entries overrun first record at 0x%04X", end)
	}

	return offsets, first, nil
}

// Write serializes the given offsets in order.
func Write(offsets []uint16) []byte {
	b := make([]byte, len(offsets)*OffsetSize)
	for i, o := range offsets {
		endianess.PutUint16(b[i*OffsetSize:], o)
	}
	return b
}

// Uint16 reads a little-endian uint16 at the given offset.
func Uint16(data []byte, offset int) (uint16, error) {
	if offset < 0 || offset+OffsetSize > len(data) {
		return 0, errors.NewTruncated(offset, "cannot read offset")
	}
	return endianess.Uint16(data[offset:]), nil
}

// CString returns the bytes from offset up to (excluding) the next null byte.
// The end of data also terminates the string, but the string must start
// inside data. next is the position after the terminator.
func CString(data []byte, offset int) (s []byte, next int, err error) {
	if offset < 0 || offset >= len(data) {
		return nil, offset, errors.NewTruncated(offset, "string starts past end of data")
	}

	for i := offset; i < len(data); i++ {
		if data[i] == 0x00 {
			return data[offset:i], i + 1, nil
		}
	}
	return data[offset:], len(data), nil
}
