// Package item converts the game's item table (t_item2._dt).
//
// The item table is a pointer table of single offsets. Each offset refers to
// a record holding the offsets of the item's name and description, followed
// by the two null-terminated strings themselves.
package item

import (
	"github.com/fcdt/dttool/internal/charset"
	"github.com/fcdt/dttool/internal/errors"
	"github.com/fcdt/dttool/internal/logging"
	"github.com/fcdt/dttool/pkg/ptable"
)

const (
	entryWidth = ptable.OffsetSize
	headerSize = 2 * ptable.OffsetSize
)

// Item is a single entry of the item table.
type Item struct {
	// ID is the position of the item in the table. It is not stored in
	// the binary data.
	ID   int    `json:"item_id"`
	Name string `json:"item_name"`
	Desc string `json:"item_desc"`
}

// Decode reads all items from binary item table data.
func Decode(data []byte) ([]*Item, error) {
	offsets, first, err := ptable.Read(data, 0, entryWidth)
	if err != nil {
		return nil, errors.Wrap(err, "read item table")
	}
	logging.Debug("item table: %d items, first record at 0x%04X", len(offsets), first)

	items := make([]*Item, len(offsets))
	for i, o := range offsets {
		it, err := decodeItem(data, i, int(o))
		if err != nil {
			return nil, errors.Wrap(err, "item %d", i)
		}
		items[i] = it
	}

	return items, nil
}

func decodeItem(data []byte, id, offset int) (*Item, error) {
	nameAt, err := ptable.Uint16(data, offset)
	if err != nil {
		return nil, err
	}
	descAt, err := ptable.Uint16(data, offset+ptable.OffsetSize)
	if err != nil {
		return nil, err
	}

	// the strings are read in sequence after the record header
	pos := offset + headerSize
	name, next, err := ptable.CString(data, pos)
	if err != nil {
		return nil, errors.Wrap(err, "name")
	}
	if int(nameAt) != pos || int(descAt) != next {
		logging.Debug("item %d: header offsets 0x%04X/0x%04X, strings at 0x%04X/0x%04X", id, nameAt, descAt, pos, next)
	}

	desc, _, err := ptable.CString(data, next)
	if err != nil {
		return nil, errors.Wrap(err, "description")
	}

	return &Item{
		ID:   id,
		Name: decodeText(name, pos),
		Desc: decodeText(desc, next),
	}, nil
}

// Encode writes the given items as a binary item table.
// Item ids are ignored; entries are written in slice order.
func Encode(items []*Item) ([]byte, error) {
	w := ptable.NewBuilder(len(items), entryWidth)

	for i, it := range items {
		w.Mark()
		header := w.Reserve(headerSize)

		w.PutUint16(header, w.Offset())
		w.AppendString(encodeText(it.Name, i))

		w.PutUint16(header+ptable.OffsetSize, w.Offset())
		w.AppendString(encodeText(it.Desc, i))
	}

	data, err := w.Bytes()
	if err != nil {
		return nil, errors.Wrap(err, "write item table")
	}
	return data, nil
}

// Renumber sets all item ids to their positions and returns the number
// of ids that were changed.
func Renumber(items []*Item) int {
	n := 0
	for i, it := range items {
		if it.ID != i {
			it.ID = i
			n++
		}
	}
	return n
}

func decodeText(raw []byte, offset int) string {
	s, ok := charset.Decode(raw)
	if !ok {
		logging.Warning("%v", errors.NewUndecodable(offset, "bytes % X", raw))
	}
	return s
}

func encodeText(s string, id int) []byte {
	b, ok := charset.Encode(s)
	if !ok {
		logging.Warning("item %d: replaced characters not representable in CP932: %q", id, s)
	}
	return b
}
