package ptable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fcdt/dttool/internal/errors"
)

func TestRead(t *testing.T) {
	data := []byte{
		0x06, 0x00, 0x08, 0x00, 0x0a, 0x00,
		'a', 0x00,
		'b', 0x00,
		'c', 0x00,
	}

	offsets, first, err := Read(data, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, uint16(6), first)
	assert.Equal(t, []uint16{6, 8, 10}, offsets)
}

func TestReadPairs(t *testing.T) {
	data := []byte{
		0x08, 0x00, 0x0a, 0x00,
		0x0b, 0x00, 0x0d, 0x00,
		'a', 0x00, 0x00, 'b', 0x00, 0x00,
	}

	offsets, first, err := Read(data, 0, 4)
	require.NoError(t, err)
	assert.Equal(t, uint16(8), first)
	// the table consumed exactly first bytes
	assert.Equal(t, int(first), len(offsets)*OffsetSize)
	assert.Equal(t, []uint16{8, 10, 11, 13}, offsets)
}

func TestReadEmpty(t *testing.T) {
	offsets, first, err := Read([]byte{}, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, uint16(0), first)
	assert.Empty(t, offsets)
}

func TestReadTruncated(t *testing.T) {
	cases := map[string]struct {
		data  []byte
		width int
	}{
		"single byte":       {[]byte{0x04}, 2},
		"table past end":    {[]byte{0x08, 0x00, 0x0a, 0x00}, 2},
		"zero first offset": {[]byte{0x00, 0x00, 0x00}, 2},
		"pair overrun":      {[]byte{0x06, 0x00, 0x06, 0x00, 0x00, 0x00, 0x00, 0x00}, 4},
	}

	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := Read(c.data, 0, c.width)
			require.Error(t, err)
			assert.True(t, errors.IsTruncatedInput(err), err.Error())
		})
	}
}

func TestWrite(t *testing.T) {
	b := Write([]uint16{0x0004, 0x1234})
	assert.Equal(t, []byte{0x04, 0x00, 0x34, 0x12}, b)
}

func TestCString(t *testing.T) {
	data := []byte{'a', 'b', 0x00, 'c'}

	s, next, err := CString(data, 0)
	require.NoError(t, err)
	assert.Equal(t, []byte("ab"), s)
	assert.Equal(t, 3, next)

	// end of data terminates
	s, next, err = CString(data, next)
	require.NoError(t, err)
	assert.Equal(t, []byte("c"), s)
	assert.Equal(t, 4, next)

	_, _, err = CString(data, 10)
	assert.True(t, errors.IsTruncatedInput(err))
}

func TestBuilder(t *testing.T) {
	b := NewBuilder(2, 2)

	b.Mark()
	b.AppendString([]byte("ab"))
	b.Mark()
	pos := b.Reserve(2)
	b.PutUint16(pos, 0xbeef)

	data, err := b.Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x04, 0x00, 0x07, 0x00, 'a', 'b', 0x00, 0xef, 0xbe}, data)

	offsets, first, err := Read(data, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, uint16(4), first)
	assert.Equal(t, []uint16{4, 7}, offsets)
}

func TestBuilderMissingEntry(t *testing.T) {
	b := NewBuilder(2, 2)
	b.Mark()
	b.AppendString(nil)

	_, err := b.Bytes()
	assert.Error(t, err)
}

func TestBuilderOverflow(t *testing.T) {
	b := NewBuilder(1, 2)
	b.Append(make([]byte, MaxOffset+1)...)
	b.Mark()

	_, err := b.Bytes()
	assert.Error(t, err)
}
