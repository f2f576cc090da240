package dttool

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tidwall/jsonc"

	"github.com/fcdt/dttool/internal/errors"
)

// marshalJSON writes v as indented JSON. Markers like <C:5> are written
// as they are, not HTML-escaped.
func marshalJSON(v interface{}) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	err := enc.Encode(v)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// unmarshalJSON reads JSON into dst. Comments and trailing commas are allowed.
func unmarshalJSON(data []byte, dst interface{}) error {
	data = jsonc.ToJSON(data)

	dec := json.NewDecoder(bytes.NewReader(data))
	err := dec.Decode(dst)
	if err != nil {
		return errors.NewMalformedJSON(err)
	}

	// trailing garbage after the top level value
	if dec.More() {
		return errors.NewMalformedJSON(fmt.Errorf("unexpected data after top-level value"))
	}

	return nil
}
