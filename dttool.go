// Package dttool converts the game's binary ._dt data tables to JSON and back.
//
// Two table kinds are supported: book tables (t_book._dt), holding formatted
// multi-page text, and item tables (t_item2._dt), holding item names and
// descriptions.
package dttool

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fcdt/dttool/internal/logging"
)

// File extensions for the two representations of a table.
const (
	JSONExt   = ".json"
	BinaryExt = "._dt"
)

// Kind is the kind of table in a file.
type Kind int

const (
	// Auto detects the kind from the file name.
	Auto Kind = iota
	BookTable
	ItemTable
)

func (k Kind) String() string {
	switch k {
	case Auto:
		return "auto"
	case BookTable:
		return "book"
	case ItemTable:
		return "item"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind parses "auto", "book" or "item".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return Auto, nil
	case "book", "books":
		return BookTable, nil
	case "item", "items":
		return ItemTable, nil
	default:
		return Auto, fmt.Errorf("unknown table kind %q", s)
	}
}

// Stem returns the file name of path up to the first dot,
// so that "data/t_book._dt" and "t_book.json" both become "t_book".
func Stem(path string) string {
	name := filepath.Base(path)
	if i := strings.Index(name, "."); i > 0 {
		return name[:i]
	}
	return name
}

// KindOf determines the table kind from the file name.
func KindOf(path string) (Kind, error) {
	stem := strings.ToLower(Stem(path))
	switch {
	case strings.HasPrefix(stem, "t_book"):
		return BookTable, nil
	case strings.HasPrefix(stem, "t_item"):
		return ItemTable, nil
	default:
		return Auto, fmt.Errorf("cannot tell the table kind of %q, specify it explicitly", path)
	}
}

func resolveKind(path string, k Kind) (Kind, error) {
	if k != Auto {
		return k, nil
	}
	return KindOf(path)
}

// SetLogLevel sets the log level by name: debug, info, warning, error or none.
func SetLogLevel(level string) {
	logging.SetLevel(logging.ParseLevel(level))
}
