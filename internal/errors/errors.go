package errors

import (
	e "errors"
	"fmt"
)

// Kind classifies conversion failures.
type Kind int

const (
	// TruncatedInput means a table or record runs past the end of the data.
	TruncatedInput Kind = iota + 1
	// MalformedDirective means a numeric directive value could not be parsed.
	MalformedDirective
	// UndecodableText means bytes were not valid in the legacy charset.
	UndecodableText
	// MalformedJSON means the JSON input could not be deserialized.
	MalformedJSON
)

func (k Kind) String() string {
	switch k {
	case TruncatedInput:
		return "truncated input"
	case MalformedDirective:
		return "malformed directive"
	case UndecodableText:
		return "undecodable text"
	case MalformedJSON:
		return "malformed json"
	default:
		return "unknown error"
	}
}

// NoOffset is used for errors that cannot be tied to a byte address.
const NoOffset = -1

// CodecError is a conversion error of a specific Kind.
type CodecError struct {
	Kind Kind
	// Offset is the byte address the error originates from, or NoOffset.
	Offset  int
	message string
	cause   error
}

func (c *CodecError) Error() string {
	s := c.Kind.String()
	if c.Offset != NoOffset {
		s = fmt.Sprintf("%v at 0x%04X", s, c.Offset)
	}
	if c.message != "" {
		s = s + ": " + c.message
	}
	if c.cause != nil {
		s = fmt.Sprintf("%v: %v", s, c.cause)
	}
	return s
}

func (c *CodecError) Unwrap() error {
	return c.cause
}

func newError(k Kind, offset int, msg string, v ...interface{}) *CodecError {
	return &CodecError{
		Kind:    k,
		Offset:  offset,
		message: fmt.Sprintf(msg, v...),
	}
}

// NewTruncated creates a TruncatedInput error for the given address.
func NewTruncated(offset int, msg string, v ...interface{}) error {
	return newError(TruncatedInput, offset, msg, v...)
}

// NewMalformedDirective creates a MalformedDirective error caused by err.
func NewMalformedDirective(offset int, err error, msg string, v ...interface{}) error {
	c := newError(MalformedDirective, offset, msg, v...)
	c.cause = err
	return c
}

// NewUndecodable creates an UndecodableText error for the given address.
func NewUndecodable(offset int, msg string, v ...interface{}) error {
	return newError(UndecodableText, offset, msg, v...)
}

// NewMalformedJSON wraps a deserialization error.
func NewMalformedJSON(err error) error {
	c := newError(MalformedJSON, NoOffset, "")
	c.cause = err
	return c
}

// KindOf returns the Kind of the first CodecError in the chain, or 0.
func KindOf(err error) Kind {
	var c *CodecError
	if e.As(err, &c) {
		return c.Kind
	}
	return 0
}

// IsTruncatedInput checks if the given error is a TruncatedInput error.
func IsTruncatedInput(err error) bool {
	return KindOf(err) == TruncatedInput
}

// IsMalformedDirective checks if the given error is a MalformedDirective error.
func IsMalformedDirective(err error) bool {
	return KindOf(err) == MalformedDirective
}

// IsUndecodableText checks if the given error is an UndecodableText error.
func IsUndecodableText(err error) bool {
	return KindOf(err) == UndecodableText
}

// IsMalformedJSON checks if the given error is a MalformedJSON error.
func IsMalformedJSON(err error) bool {
	return KindOf(err) == MalformedJSON
}

// Wrap wraps an error by prepending additional text.
// The text can contain formatting parameters.
func Wrap(err error, msg string, v ...interface{}) error {
	msg = fmt.Sprintf(msg, v...)
	return fmt.Errorf("%v: %w", msg, err)
}
