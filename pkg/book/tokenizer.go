package book

import (
	"fmt"

	"github.com/fcdt/dttool/internal/errors"
)

// EventKind identifies a token found in book content.
type EventKind int

const (
	// EventNone is produced for bytes that do not complete a token.
	EventNone EventKind = iota
	// EventText is a literal text byte.
	EventText
	EventEndLine
	EventEndPage
	EventEndBook
	// EventColor carries the color index in Byte.
	EventColor
	// EventImageClear resets the page image.
	EventImageClear
	// EventImage, EventImageX and EventImageY carry ASCII digits in Value.
	EventImage
	EventImageX
	EventImageY
	// EventSize carries the raw size bytes in Value.
	EventSize
)

func (k EventKind) String() string {
	switch k {
	case EventNone:
		return "none"
	case EventText:
		return "text"
	case EventEndLine:
		return "end of line"
	case EventEndPage:
		return "end of page"
	case EventEndBook:
		return "end of book"
	case EventColor:
		return "color"
	case EventImageClear:
		return "image clear"
	case EventImage:
		return "image"
	case EventImageX:
		return "image x"
	case EventImageY:
		return "image y"
	case EventSize:
		return "size"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// Event is a single token.
type Event struct {
	Kind  EventKind
	Byte  byte
	Value []byte
	// Offset is the address of the first byte of the token.
	Offset int
	// EOF is set on an EventEndBook caused by the end of data
	// rather than a terminator byte.
	EOF bool
}

type stateKind int

const (
	scanning stateKind = iota
	// after 0x07, expecting the color byte
	inColor
	// after 0x23, expecting 'F' or the first value byte
	inFormat
	// collecting value bytes until a directive terminator
	inFormatValue
)

func (k stateKind) String() string {
	switch k {
	case scanning:
		return "scanning"
	case inColor:
		return "color directive"
	case inFormat, inFormatValue:
		return "formatting directive"
	default:
		return "unknown"
	}
}

type state struct {
	kind  stateKind
	value []byte
}

// step is the transition function of the content grammar.
func step(s state, b byte) (state, Event) {
	switch s.kind {
	case inColor:
		return state{kind: scanning}, Event{Kind: EventColor, Byte: b}

	case inFormat:
		if b == fmtImage {
			return state{kind: scanning}, Event{Kind: EventImageClear}
		}
		// the first byte is always part of the value, even a terminator
		return state{kind: inFormatValue, value: []byte{b}}, Event{}

	case inFormatValue:
		var kind EventKind
		switch b {
		case fmtImage:
			kind = EventImage
		case fmtX:
			kind = EventImageX
		case fmtY:
			kind = EventImageY
		case fmtSize:
			kind = EventSize
		default:
			return state{kind: inFormatValue, value: append(s.value, b)}, Event{}
		}
		return state{kind: scanning}, Event{Kind: kind, Value: s.value}
	}

	switch b {
	case ctrlEndBook:
		return s, Event{Kind: EventEndBook}
	case ctrlEndLine:
		return s, Event{Kind: EventEndLine}
	case ctrlEndPage:
		return s, Event{Kind: EventEndPage}
	case ctrlPageBreak:
		// always follows 0x02, which already ended the page
		return s, Event{}
	case ctrlColor:
		return state{kind: inColor}, Event{}
	case ctrlFormat:
		return state{kind: inFormat}, Event{}
	default:
		return s, Event{Kind: EventText, Byte: b}
	}
}

// Tokenizer splits book content into events.
type Tokenizer struct {
	data  []byte
	pos   int
	start int
	state state
}

// NewTokenizer creates a tokenizer that starts reading at offset.
func NewTokenizer(data []byte, offset int) *Tokenizer {
	return &Tokenizer{
		data:  data,
		pos:   offset,
		start: offset,
	}
}

// Offset returns the address of the next byte to be read.
func (t *Tokenizer) Offset() int {
	return t.pos
}

// Next reads up to and including the next complete token.
// Reaching the end of data outside a directive yields EventEndBook.
func (t *Tokenizer) Next() (Event, error) {
	for {
		if t.pos >= len(t.data) {
			if t.state.kind == scanning {
				return Event{Kind: EventEndBook, Offset: t.pos, EOF: true}, nil
			}
			return Event{}, errors.NewTruncated(t.start, "%v runs past end of data", t.state.kind)
		}

		if t.state.kind == scanning {
			t.start = t.pos
		}
		b := t.data[t.pos]
		t.pos++

		var ev Event
		t.state, ev = step(t.state, b)
		if ev.Kind != EventNone {
			ev.Offset = t.start
			return ev, nil
		}
	}
}

// Tokenize returns all events of one book's content, starting at offset
// and ending with (and including) the first EventEndBook.
func Tokenize(data []byte, offset int) ([]Event, error) {
	t := NewTokenizer(data, offset)
	events := make([]Event, 0)
	for {
		ev, err := t.Next()
		if err != nil {
			return events, err
		}
		events = append(events, ev)
		if ev.Kind == EventEndBook {
			return events, nil
		}
	}
}
