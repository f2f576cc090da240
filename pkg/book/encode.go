package book

import (
	"strconv"
	"strings"

	"github.com/fcdt/dttool/internal/charset"
	"github.com/fcdt/dttool/internal/errors"
	"github.com/fcdt/dttool/internal/logging"
	"github.com/fcdt/dttool/pkg/ptable"
)

// Encode writes the given books as a binary book table.
// Book, page and line ids are ignored; entries are written in slice order.
func Encode(books []*Book) ([]byte, error) {
	w := ptable.NewBuilder(len(books), entryWidth)

	for i, b := range books {
		w.Mark()
		w.AppendString(encodeText(b.Name, i))

		w.Mark()
		writeContent(w, b, i)
	}

	data, err := w.Bytes()
	if err != nil {
		return nil, errors.Wrap(err, "write book table")
	}
	return data, nil
}

func writeContent(w *ptable.Builder, b *Book, id int) {
	for i, p := range b.Pages {
		writeDirectives(w, p)

		for j, l := range p.Lines {
			w.Append(encodeLine(l.Text, id)...)
			if j < len(p.Lines)-1 {
				w.Append(ctrlEndLine)
			}
		}

		if i < len(b.Pages)-1 {
			w.Append(ctrlEndPage, ctrlPageBreak)
		}
	}
	w.Append(ctrlEndBook)
}

// writeDirectives writes the image settings of a page, x before y before id.
func writeDirectives(w *ptable.Builder, p *Page) {
	if p.ImageX != nil {
		w.Append(formatDirective(*p.ImageX, fmtX)...)
	}
	if p.ImageY != nil {
		w.Append(formatDirective(*p.ImageY, fmtY)...)
	}
	switch {
	case p.ClearsImage():
		w.Append(ctrlFormat, fmtImage)
	case p.ImageID != nil:
		w.Append(formatDirective(*p.ImageID, fmtImage)...)
	}
}

func formatDirective(v uint16, kind byte) []byte {
	b := []byte{ctrlFormat}
	b = strconv.AppendUint(b, uint64(v), 10)
	return append(b, kind)
}

// encodeLine converts line text to content bytes, turning inline markers
// back into directives. Markers that are not well formed are kept as text.
func encodeLine(text string, id int) []byte {
	out := make([]byte, 0, len(text))
	start := 0

	flush := func(end int) {
		if end > start {
			out = append(out, encodeText(text[start:end], id)...)
		}
	}

	for i := 0; i < len(text); {
		rest := text[i:]
		if strings.HasPrefix(rest, colorMarker) {
			if v, n, ok := parseColorMarker(rest[len(colorMarker):]); ok {
				flush(i)
				out = append(out, ctrlColor, v)
				i += len(colorMarker) + n
				start = i
				continue
			}
		} else if strings.HasPrefix(rest, sizeMarker) {
			if v, n, ok := parseSizeMarker(rest[len(sizeMarker):]); ok {
				flush(i)
				out = append(out, ctrlFormat)
				out = append(out, encodeText(v, id)...)
				out = append(out, fmtSize)
				i += len(sizeMarker) + n
				start = i
				continue
			}
		}
		i++
	}
	flush(len(text))

	return out
}

// parseColorMarker parses "n>" with a decimal n in 0..255.
// n is the number of bytes consumed, including the closing bracket.
func parseColorMarker(s string) (v byte, n int, ok bool) {
	end := strings.Index(s, markerEnd)
	if end < 1 || end > 3 {
		return 0, 0, false
	}
	for _, c := range s[:end] {
		if c < '0' || c > '9' {
			return 0, 0, false
		}
	}
	x, err := strconv.ParseUint(s[:end], 10, 8)
	if err != nil {
		return 0, 0, false
	}
	return byte(x), end + 1, true
}

// parseSizeMarker returns the raw size value up to the closing bracket.
func parseSizeMarker(s string) (v string, n int, ok bool) {
	end := strings.Index(s, markerEnd)
	if end < 1 {
		return "", 0, false
	}
	return s[:end], end + 1, true
}

func encodeText(s string, id int) []byte {
	b, ok := charset.Encode(s)
	if !ok {
		logging.Warning("book %d: replaced characters not representable in CP932: %q", id, s)
	}
	return b
}
