package ptable

import (
	"fmt"
)

// Builder assembles a file that starts with a pointer table.
//
// The header space for all table entries is reserved up front. Records are
// appended after it while their offsets are collected and Bytes backfills
// the header once everything has been written.
type Builder struct {
	buf     []byte
	offsets []uint16
	size    int
	err     error
}

// NewBuilder creates a Builder for a table of n entries of width bytes each.
func NewBuilder(n, width int) *Builder {
	size := n * width
	b := &Builder{
		buf:     make([]byte, size),
		offsets: make([]uint16, 0, size/OffsetSize),
		size:    size,
	}
	if size > MaxOffset {
		b.err = fmt.Errorf("pointer table of %v bytes exceeds 16-bit address space", size)
	}
	return b
}

// Offset returns the address at which the next byte will be written.
func (b *Builder) Offset() uint16 {
	if len(b.buf) > MaxOffset && b.err == nil {
		b.err = fmt.Errorf("offset 0x%X exceeds 16-bit address space", len(b.buf))
	}
	return uint16(len(b.buf))
}

// Mark records the current address as the next table entry's offset.
func (b *Builder) Mark() {
	b.offsets = append(b.offsets, b.Offset())
}

// Reserve appends n zero bytes and returns the position of the first one,
// to be filled later with PutUint16.
func (b *Builder) Reserve(n int) int {
	pos := len(b.buf)
	b.buf = append(b.buf, make([]byte, n)...)
	return pos
}

// PutUint16 overwrites two previously reserved bytes at pos.
func (b *Builder) PutUint16(pos int, v uint16) {
	endianess.PutUint16(b.buf[pos:], v)
}

// Append appends raw bytes.
func (b *Builder) Append(p ...byte) {
	b.buf = append(b.buf, p...)
}

// AppendString appends p followed by a null terminator.
func (b *Builder) AppendString(p []byte) {
	b.buf = append(b.buf, p...)
	b.buf = append(b.buf, 0x00)
}

// Len returns the number of bytes written so far, including the header.
func (b *Builder) Len() int {
	return len(b.buf)
}

// Bytes writes the collected offsets into the header and returns the
// complete file contents.
func (b *Builder) Bytes() ([]byte, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.buf) > MaxOffset+1 {
		// the last byte may sit at 0xFFFF but nothing may be addressed beyond
		return nil, fmt.Errorf("table data of %v bytes exceeds 16-bit address space", len(b.buf))
	}

	header := Write(b.offsets)
	if len(header) != b.size {
		return nil, fmt.Errorf("pointer table has %v bytes of offsets, reserved %v", len(header), b.size)
	}
	copy(b.buf, header)

	return b.buf, nil
}
