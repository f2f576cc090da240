// Package book converts the game's book table (t_book._dt) between its
// binary form and a Book/Page/Line model.
//
// A book table starts with a pointer table of (name, content) offset pairs.
// The content of a book is text in the legacy charset, interleaved with
// control bytes that separate lines and pages and set the page image.
// Color and size directives are kept inside the line text as inline markers
// <C:n> and <S:n>.
package book

import (
	"fmt"
)

// ImageClear is the image id used for a directive that clears the image.
// It is distinct from a nil ImageID, which means the page does not change
// the image at all.
const ImageClear uint16 = 0xFFF

// Control bytes in book content.
const (
	ctrlEndBook   = 0x00
	ctrlEndLine   = 0x01
	ctrlEndPage   = 0x02
	ctrlPageBreak = 0x03
	ctrlColor     = 0x07
	ctrlFormat    = 0x23
)

// Terminators of a formatting directive.
const (
	fmtImage = 0x46 // 'F'
	fmtSize  = 0x53 // 'S'
	fmtX     = 0x78 // 'x'
	fmtY     = 0x79 // 'y'
)

// Inline markers used in line text for directives that stay in the text.
const (
	colorMarker = "<C:"
	sizeMarker  = "<S:"
	markerEnd   = ">"
)

// entryWidth is the size of one book entry in the pointer table.
const entryWidth = 4

// Book is a single book with its name and pages.
type Book struct {
	// ID is the position of the book in the table. It is not stored in the
	// binary data.
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Pages []*Page `json:"pages"`
}

// Page is one screen of a book.
type Page struct {
	ID int `json:"id"`
	// ImageX, ImageY and ImageID are nil if the page does not set them.
	ImageX  *uint16 `json:"image_x,omitempty"`
	ImageY  *uint16 `json:"image_y,omitempty"`
	ImageID *uint16 `json:"image_id,omitempty"`
	Lines   []*Line `json:"lines"`
}

// Line is a single line of text.
type Line struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

// NewBook creates an empty book with the given name.
func NewBook(id int, name string) *Book {
	return &Book{
		ID:    id,
		Name:  name,
		Pages: make([]*Page, 0),
	}
}

// NewPage creates a page without image settings or lines.
func NewPage(id int) *Page {
	return &Page{
		ID:    id,
		Lines: make([]*Line, 0),
	}
}

// AddPage appends a new page and returns it.
func (b *Book) AddPage() *Page {
	p := NewPage(len(b.Pages))
	b.Pages = append(b.Pages, p)
	return p
}

// AddLine appends a line with the given text.
func (p *Page) AddLine(text string) *Line {
	l := &Line{ID: len(p.Lines), Text: text}
	p.Lines = append(p.Lines, l)
	return l
}

// ClearsImage tells if the page resets the image.
func (p *Page) ClearsImage() bool {
	return p.ImageID != nil && *p.ImageID == ImageClear
}

// Validate checks that the book has no missing pages or lines.
func (b *Book) Validate() error {
	for i, p := range b.Pages {
		if p == nil {
			return fmt.Errorf("page %d is null", i)
		}
		for j, l := range p.Lines {
			if l == nil {
				return fmt.Errorf("page %d line %d is null", i, j)
			}
		}
	}
	return nil
}

// Renumber sets all book, page and line ids to their positions.
// It returns a description of every id that had to be changed.
func Renumber(books []*Book) []string {
	var changed []string
	for i, b := range books {
		if b.ID != i {
			changed = append(changed, fmt.Sprintf("book %d has id %d", i, b.ID))
			b.ID = i
		}
		for j, p := range b.Pages {
			if p.ID != j {
				changed = append(changed, fmt.Sprintf("book %d page %d has id %d", i, j, p.ID))
				p.ID = j
			}
			for k, l := range p.Lines {
				if l.ID != k {
					changed = append(changed, fmt.Sprintf("book %d page %d line %d has id %d", i, j, k, l.ID))
					l.ID = k
				}
			}
		}
	}
	return changed
}

func u16(v uint16) *uint16 {
	return &v
}
