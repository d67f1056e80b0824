package binfield

import (
	"errors"
	"fmt"
)

// Error kinds returned by the codec engine. Callers discriminate them with
// errors.Is; the engine always wraps them in a *PathError so the failing
// record/field is visible in the message.
var (
	// ErrStreamExhausted indicates a read ran past the end of the stream.
	ErrStreamExhausted = errors.New("binfield: read past end of stream")
	// ErrTerminatorNotFound indicates a terminator was not found within a bounded region.
	ErrTerminatorNotFound = errors.New("binfield: terminator not found")
	// ErrMagicMismatch indicates fixed magic bytes did not match.
	ErrMagicMismatch = errors.New("binfield: magic bytes did not match")
	// ErrMisalignedBits indicates a byte-oriented field was reached with a non-zero bit offset.
	ErrMisalignedBits = errors.New("binfield: byte field encountered with non-zero bit offset")
	// ErrWriteOverflow indicates a value was longer than its declared field width in strict mode.
	ErrWriteOverflow = errors.New("binfield: value longer than declared field width")
	// ErrWriteUnderflow indicates a value was shorter than its declared field width in strict mode.
	ErrWriteUnderflow = errors.New("binfield: value shorter than declared field width")
	// ErrOverflow indicates a numeric value does not fit its declared width/signedness.
	ErrOverflow = errors.New("binfield: numeric value does not fit declared width")
	// ErrTrailingBytes indicates an array-by-length did not consume its bound exactly.
	ErrTrailingBytes = errors.New("binfield: array did not consume its length bound exactly")
	// ErrSwitchNoMatch indicates a switch key had no matching case and no fallback.
	ErrSwitchNoMatch = errors.New("binfield: switch key had no matching case")
	// ErrEnumNotFound indicates an integer value is not a member of its enumeration.
	ErrEnumNotFound = errors.New("binfield: value is not a member of the enumeration")
	// ErrEncoding indicates a text encode/decode failure.
	ErrEncoding = errors.New("binfield: text encoding failure")
	// ErrConfig indicates a schema misconfiguration detected at parse/write time.
	ErrConfig = errors.New("binfield: schema misconfiguration")
	// ErrUnknownField indicates a context reference to a nonexistent or not-yet-set sibling.
	ErrUnknownField = errors.New("binfield: reference to unknown or not-yet-set field")
)

// PathError attaches record/field diagnostic context to an underlying error.
type PathError struct {
	Record string
	Field  string
	Err    error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("binfield: %s.%s: %v", e.Record, e.Field, e.Err)
}

func (e *PathError) Unwrap() error { return e.Err }

func pathErr(record, field string, err error) error {
	if err == nil {
		return nil
	}
	return &PathError{Record: record, Field: field, Err: err}
}
