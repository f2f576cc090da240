package dttool

import (
	"github.com/fcdt/dttool/internal/errors"
)

// IsTruncatedInput checks if err was caused by data ending inside a table
// or record.
func IsTruncatedInput(err error) bool {
	return errors.IsTruncatedInput(err)
}

// IsMalformedDirective checks if err was caused by an unparseable directive
// value.
func IsMalformedDirective(err error) bool {
	return errors.IsMalformedDirective(err)
}

// IsMalformedJSON checks if err was caused by invalid JSON input.
func IsMalformedJSON(err error) bool {
	return errors.IsMalformedJSON(err)
}
