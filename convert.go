package dttool

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"path/filepath"

	"github.com/fcdt/dttool/internal/errors"
	"github.com/fcdt/dttool/internal/fs"
	"github.com/fcdt/dttool/internal/logging"
	"github.com/fcdt/dttool/pkg/book"
	"github.com/fcdt/dttool/pkg/item"
)

// Decode reads the binary table at path and returns its JSON representation.
func Decode(path string, k Kind) ([]byte, error) {
	k, err := resolveKind(path, k)
	if err != nil {
		return nil, err
	}

	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}

	js, err := DecodeBytes(data, k)
	if err != nil {
		return nil, errors.Wrap(err, "decode %q", path)
	}
	return js, nil
}

// Encode reads the JSON table at path and returns its binary representation.
func Encode(path string, k Kind) ([]byte, error) {
	k, err := resolveKind(path, k)
	if err != nil {
		return nil, err
	}

	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}

	bin, err := EncodeBytes(data, k)
	if err != nil {
		return nil, errors.Wrap(err, "encode %q", path)
	}
	return bin, nil
}

// DecodeBytes converts binary table data of the given kind to JSON.
func DecodeBytes(data []byte, k Kind) ([]byte, error) {
	switch k {
	case BookTable:
		books, err := book.Decode(data)
		if err != nil {
			return nil, err
		}
		logging.Info("decoded %d books", len(books))
		return marshalJSON(books)

	case ItemTable:
		items, err := item.Decode(data)
		if err != nil {
			return nil, err
		}
		logging.Info("decoded %d items", len(items))
		return marshalJSON(items)

	default:
		return nil, fmt.Errorf("cannot decode table of kind %v", k)
	}
}

// EncodeBytes converts JSON of the given kind to binary table data.
func EncodeBytes(js []byte, k Kind) ([]byte, error) {
	switch k {
	case BookTable:
		var books []*book.Book
		err := unmarshalJSON(js, &books)
		if err != nil {
			return nil, err
		}
		for i, b := range books {
			if b == nil {
				return nil, errors.NewMalformedJSON(fmt.Errorf("book %d is null", i))
			}
			err = b.Validate()
			if err != nil {
				return nil, errors.NewMalformedJSON(errors.Wrap(err, "book %d", i))
			}
		}
		for _, msg := range book.Renumber(books) {
			logging.Warning("ignoring id: %v", msg)
		}
		logging.Info("encoding %d books", len(books))
		return book.Encode(books)

	case ItemTable:
		var items []*item.Item
		err := unmarshalJSON(js, &items)
		if err != nil {
			return nil, err
		}
		for i, it := range items {
			if it == nil {
				return nil, errors.NewMalformedJSON(fmt.Errorf("item %d is null", i))
			}
		}
		if n := item.Renumber(items); n > 0 {
			logging.Warning("ignoring %d item ids that do not match their position", n)
		}
		logging.Info("encoding %d items", len(items))
		return item.Encode(items)

	default:
		return nil, fmt.Errorf("cannot encode table of kind %v", k)
	}
}

// DecodeFile converts the binary table at path and writes the result to
// <outDir>/<stem>.json. It returns the path of the written file.
func DecodeFile(path, outDir string, k Kind) (string, error) {
	js, err := Decode(path, k)
	if err != nil {
		return "", err
	}
	return writeOutput(path, outDir, JSONExt, js)
}

// EncodeFile converts the JSON table at path and writes the result to
// <outDir>/<stem>._dt. It returns the path of the written file.
func EncodeFile(path, outDir string, k Kind) (string, error) {
	bin, err := Encode(path, k)
	if err != nil {
		return "", err
	}
	return writeOutput(path, outDir, BinaryExt, bin)
}

func writeOutput(src, outDir, ext string, data []byte) (string, error) {
	dst := filepath.Join(outDir, Stem(src)+ext)
	err := fs.WriteFile(dst, data)
	if err != nil {
		return "", errors.Wrap(err, "write %q", dst)
	}
	logging.Info("wrote %d bytes to %q", len(data), dst)
	return dst, nil
}

// Verify decodes the binary table at path, encodes the result again and
// checks that the output is identical to the input.
func Verify(path string, k Kind) error {
	k, err := resolveKind(path, k)
	if err != nil {
		return err
	}

	data, err := ioutil.ReadFile(path)
	if err != nil {
		return err
	}

	js, err := DecodeBytes(data, k)
	if err != nil {
		return errors.Wrap(err, "decode %q", path)
	}
	bin, err := EncodeBytes(js, k)
	if err != nil {
		return errors.Wrap(err, "encode %q", path)
	}

	if !bytes.Equal(data, bin) {
		return fmt.Errorf("%q does not round-trip: output differs at 0x%04X (%d bytes in, %d bytes out)",
			path, firstDifference(data, bin), len(data), len(bin))
	}
	return nil
}

func firstDifference(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}
