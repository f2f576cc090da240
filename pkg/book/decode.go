package book

import (
	"strconv"

	"github.com/fcdt/dttool/internal/charset"
	"github.com/fcdt/dttool/internal/errors"
	"github.com/fcdt/dttool/internal/logging"
	"github.com/fcdt/dttool/pkg/ptable"
)

// Decode reads all books from the binary book table.
func Decode(data []byte) ([]*Book, error) {
	offsets, first, err := ptable.Read(data, 0, entryWidth)
	if err != nil {
		return nil, errors.Wrap(err, "read book table")
	}

	n := len(offsets) / 2
	logging.Debug("book table: %d books, first record at 0x%04X", n, first)

	books := make([]*Book, 0, n)
	for i := 0; i < n; i++ {
		b, err := decodeBook(data, i, offsets[2*i], offsets[2*i+1])
		if err != nil {
			return nil, errors.Wrap(err, "book %d", i)
		}
		books = append(books, b)
	}

	return books, nil
}

func decodeBook(data []byte, id int, nameAt, contentAt uint16) (*Book, error) {
	raw, _, err := ptable.CString(data, int(nameAt))
	if err != nil {
		return nil, errors.Wrap(err, "name")
	}
	b := NewBook(id, decodeText(raw, int(nameAt)))
	logging.Debug("book %d %q: name at 0x%04X, content at 0x%04X", id, b.Name, nameAt, contentAt)

	if int(contentAt) >= len(data) {
		return nil, errors.NewTruncated(int(contentAt), "book content starts past end of data")
	}

	r := &contentReader{
		tokens: NewTokenizer(data, int(contentAt)),
		book:   b,
	}
	err = r.read()
	if err != nil {
		return nil, err
	}

	return b, nil
}

// contentReader builds pages and lines from the events of one book.
type contentReader struct {
	tokens    *Tokenizer
	book      *Book
	page      *Page
	buf       []byte
	lineStart int
}

func (r *contentReader) read() error {
	r.page = r.book.AddPage()
	r.lineStart = r.tokens.Offset()

	for {
		ev, err := r.tokens.Next()
		if err != nil {
			return err
		}

		switch ev.Kind {
		case EventText:
			r.buf = append(r.buf, ev.Byte)

		case EventColor:
			r.buf = append(r.buf, colorMarker...)
			r.buf = strconv.AppendUint(r.buf, uint64(ev.Byte), 10)
			r.buf = append(r.buf, markerEnd...)

		case EventSize:
			r.buf = append(r.buf, sizeMarker...)
			r.buf = append(r.buf, ev.Value...)
			r.buf = append(r.buf, markerEnd...)

		case EventImageClear:
			r.page.ImageID = u16(ImageClear)

		case EventImage, EventImageX, EventImageY:
			v, err := parseValue(ev)
			if err != nil {
				return err
			}
			switch ev.Kind {
			case EventImage:
				r.page.ImageID = &v
			case EventImageX:
				r.page.ImageX = &v
			case EventImageY:
				r.page.ImageY = &v
			}

		case EventEndLine:
			r.flushLine()

		case EventEndPage:
			r.flushLine()
			r.page = r.book.AddPage()

		case EventEndBook:
			if ev.EOF {
				logging.Debug("book %d ends at end of data 0x%04X", r.book.ID, ev.Offset)
			}
			r.flushLine()
			return nil
		}
	}
}

func (r *contentReader) flushLine() {
	r.page.AddLine(decodeText(r.buf, r.lineStart))
	r.buf = r.buf[:0]
	r.lineStart = r.tokens.Offset()
}

func parseValue(ev Event) (uint16, error) {
	s := string(ev.Value)
	v, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, errors.NewMalformedDirective(ev.Offset, err, "%v value %q", ev.Kind, s)
	}
	return uint16(v), nil
}

// decodeText decodes legacy charset bytes and logs undecodable input.
func decodeText(raw []byte, offset int) string {
	s, ok := charset.Decode(raw)
	if !ok {
		logging.Warning("%v", errors.NewUndecodable(offset, "bytes % X", raw))
	}
	return s
}
