// Package charset converts between UTF-8 and the CP932 (Shift_JIS) bytes
// used by the game's tables.
//
// Neither direction fails. Bytes that cannot be decoded become U+FFFD and
// characters that cannot be encoded become the ASCII substitute byte; both
// cases are reported to the caller so they can be logged.
package charset

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// Terminator ends every string stored in a table.
const Terminator = 0x00

// Decode converts CP932 bytes to a UTF-8 string.
// ok is false if some bytes had no mapping and were replaced.
func Decode(b []byte) (s string, ok bool) {
	out, _, err := transform.Bytes(japanese.ShiftJIS.NewDecoder(), b)
	if err != nil {
		// not expected, the decoder substitutes instead of failing
		return string(bytes.ToValidUTF8(b, []byte(string(utf8.RuneError)))), false
	}

	// CP932 has no mapping for U+FFFD, so any occurrence is a substitution.
	ok = !bytes.ContainsRune(out, utf8.RuneError)
	return string(out), ok
}

// Encode converts a UTF-8 string to CP932 bytes. The result is never
// terminated, callers append Terminator themselves.
// ok is false if some characters had no mapping and were replaced.
func Encode(s string) (b []byte, ok bool) {
	out, _, err := transform.Bytes(japanese.ShiftJIS.NewEncoder(), []byte(s))
	if err == nil {
		return out, true
	}

	enc := encoding.ReplaceUnsupported(japanese.ShiftJIS.NewEncoder())
	out, _, err = transform.Bytes(enc, []byte(s))
	if err != nil {
		return nil, false
	}
	return out, false
}
