package dttool

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var itemData = []byte{0x02, 0x00, 0x06, 0x00, 0x08, 0x00, 'a', 0x00, 'b', 0x00}

const itemJSON = `[
  {
    "item_id": 0,
    "item_name": "a",
    "item_desc": "b"
  }
]
`

var bookData = []byte{
	0x04, 0x00, 0x06, 0x00,
	'A', 0x00,
	0x23, 0x46, 0x07, 0x05, 'a', 0x01, 'b', 0x02, 0x03,
	0x23, '1', '2', 'F', 'c', 0x00,
}

func TestDecodeItems(t *testing.T) {
	js, err := DecodeBytes(itemData, ItemTable)
	if err != nil {
		t.Fatal(err)
	}

	if string(js) != itemJSON {
		t.Errorf("unexpected json: %s", js)
	}
}

func TestDecodeBooks(t *testing.T) {
	js, err := DecodeBytes(bookData, BookTable)
	if err != nil {
		t.Fatal(err)
	}

	s := string(js)
	for _, expected := range []string{
		`"name": "A"`,
		`"image_id": 4095`,
		`"image_id": 12`,
		`"text": "<C:5>a"`,
	} {
		if !strings.Contains(s, expected) {
			t.Errorf("json does not contain %v: %s", expected, s)
		}
	}

	for _, unexpected := range []string{"image_x", "image_y", "null", `\u003c`} {
		if strings.Contains(s, unexpected) {
			t.Errorf("json contains %v: %s", unexpected, s)
		}
	}
}

func TestEncodeItems(t *testing.T) {
	bin, err := EncodeBytes([]byte(itemJSON), ItemTable)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(bin, itemData) {
		t.Errorf("unexpected binary data: % X", bin)
	}
}

func TestEncodeBooksRoundTrip(t *testing.T) {
	js, err := DecodeBytes(bookData, BookTable)
	if err != nil {
		t.Fatal(err)
	}

	bin, err := EncodeBytes(js, BookTable)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(bin, bookData) {
		t.Errorf("round trip changed data: % X", bin)
	}
}

func TestEncodeLenientJSON(t *testing.T) {
	js := `[
  // translated
  {
    "id": 7,
    "name": "A",
    "pages": [
      {"id": 0, "image_x": null, "image_id": 4095, "lines": [{"id": 0, "text": "a"},],},
    ],
  },
]`

	bin, err := EncodeBytes([]byte(js), BookTable)
	if err != nil {
		t.Fatal(err)
	}

	expected := []byte{0x04, 0x00, 0x06, 0x00, 'A', 0x00, 0x23, 0x46, 'a', 0x00}
	if !bytes.Equal(bin, expected) {
		t.Errorf("unexpected binary data: % X", bin)
	}
}

func TestEncodeMalformedJSON(t *testing.T) {
	for _, js := range []string{
		`[{"id": 0, "name": "A"`,
		`{"id": 0}`,
		`[{"name": 5}]`,
		`[null]`,
		`[{"name": "A", "pages": [null]}]`,
		`[] []`,
	} {
		_, err := EncodeBytes([]byte(js), BookTable)
		if err == nil {
			t.Errorf("no error for %s", js)
			continue
		}
		if !IsMalformedJSON(err) {
			t.Errorf("unexpected error for %s: %v", js, err)
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	_, err := DecodeBytes([]byte{0x08, 0x00}, BookTable)
	if !IsTruncatedInput(err) {
		t.Errorf("expected truncated input, got %v", err)
	}

	data := []byte{0x04, 0x00, 0x06, 0x00, 'A', 0x00, 0x23, 'z', 'x', 0x00}
	_, err = DecodeBytes(data, BookTable)
	if !IsMalformedDirective(err) {
		t.Errorf("expected malformed directive, got %v", err)
	}

	_, err = DecodeBytes(itemData, Auto)
	if err == nil {
		t.Errorf("expected an error for kind auto")
	}
}

func TestKindOf(t *testing.T) {
	cases := map[string]Kind{
		"t_book._dt":        BookTable,
		"data/T_BOOK.json":  BookTable,
		"t_item2._dt":       ItemTable,
		"/tmp/t_item2.json": ItemTable,
	}
	for path, expected := range cases {
		k, err := KindOf(path)
		if err != nil {
			t.Error(err)
		}
		if k != expected {
			t.Errorf("unexpected kind for %q: %v != %v", path, k, expected)
		}
	}

	_, err := KindOf("t_magic._dt")
	if err == nil {
		t.Errorf("unknown table name not detected")
	}
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("Book")
	if err != nil || k != BookTable {
		t.Errorf("unexpected kind: %v, %v", k, err)
	}

	_, err = ParseKind("magic")
	if err == nil {
		t.Errorf("invalid kind not detected")
	}
}

func TestStem(t *testing.T) {
	cases := map[string]string{
		"t_book._dt":         "t_book",
		"dir/t_item2.json":   "t_item2",
		"noext":              "noext",
		"/a/b/t_book.x.json": "t_book",
	}
	for path, expected := range cases {
		if s := Stem(path); s != expected {
			t.Errorf("unexpected stem for %q: %q != %q", path, s, expected)
		}
	}
}

func TestFiles(t *testing.T) {
	dir, err := ioutil.TempDir("", "dttool")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	src := filepath.Join(dir, "t_book._dt")
	err = ioutil.WriteFile(src, bookData, 0644)
	if err != nil {
		t.Fatal(err)
	}

	err = Verify(src, Auto)
	if err != nil {
		t.Error(err)
	}

	out := filepath.Join(dir, "out")
	err = os.Mkdir(out, 0755)
	if err != nil {
		t.Fatal(err)
	}

	jsPath, err := DecodeFile(src, out, Auto)
	if err != nil {
		t.Fatal(err)
	}
	if jsPath != filepath.Join(out, "t_book.json") {
		t.Errorf("unexpected output path %q", jsPath)
	}

	binPath, err := EncodeFile(jsPath, out, Auto)
	if err != nil {
		t.Fatal(err)
	}
	if binPath != filepath.Join(out, "t_book._dt") {
		t.Errorf("unexpected output path %q", binPath)
	}

	bin, err := ioutil.ReadFile(binPath)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(bin, bookData) {
		t.Errorf("unexpected binary data: % X", bin)
	}
}

func TestVerifyMismatch(t *testing.T) {
	dir, err := ioutil.TempDir("", "dttool")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	// directives after the text are moved to the start of the page
	data := []byte{0x04, 0x00, 0x06, 0x00, 'A', 0x00, 'a', 0x23, '1', 'x', 0x00}
	src := filepath.Join(dir, "t_book._dt")
	err = ioutil.WriteFile(src, data, 0644)
	if err != nil {
		t.Fatal(err)
	}

	err = Verify(src, Auto)
	if err == nil {
		t.Fatal("expected a round trip mismatch")
	}
	if !strings.Contains(err.Error(), "0x0006") {
		t.Errorf("unexpected error: %v", err)
	}
}
