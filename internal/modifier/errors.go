package modifier

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Errors.
var (
	ErrInvalidRange      = errors.New("invalid value range")
	ErrParse             = errors.New("invalid random attribute modifier")
	ErrUnknownAttribute  = errors.New("unknown attribute")
	ErrUnknownOperation  = errors.New("unknown operation")
	ErrMalformedValue    = errors.New("malformed value")
	ErrMissingField      = errors.New("missing field")
	ErrMalformedDocument = errors.New("malformed document")
	ErrInvalidTarget     = errors.New("invalid target")
	ErrMissingAttribute  = errors.New("entity does not have attribute")
)

// maxFragment bounds how much of the offending input a ParseError keeps.
const maxFragment = 256

// ParseError is returned for every failed Parse/ParseYAML call.
// errors.Is(err, ErrParse) is always true; Err carries the specific cause.
type ParseError struct {
	Fragment string
	Err      error
}

func newParseError(fragment string, err error) *ParseError {
	if len(fragment) > maxFragment {
		cut := maxFragment
		for cut > 0 && !utf8.RuneStart(fragment[cut]) {
			cut--
		}
		fragment = fragment[:cut] + "..."
	}
	return &ParseError{Fragment: fragment, Err: err}
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v: %v: %s", ErrParse, e.Err, e.Fragment)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is makes every ParseError match ErrParse in addition to its cause.
func (e *ParseError) Is(target error) bool { return target == ErrParse }
