// Package codec holds the pieces shared by every format in this module:
// the Encoder/Decoder shape (Action's Run/Flush/Finish cases rendered as
// Go's Write/Flush/Close, matching compress/flate.Writer), the error
// taxonomy every decoder reports through, and a small pending-output
// queue decoders use internally.
package codec

import (
	"errors"
	"fmt"
)

// The three error classes spec.md's decoders report: a plainly corrupt
// input, a stream that ended before a field/block finished, and an
// internal invariant violation that should never happen given correct
// input. Wrapped with fmt.Errorf's %w so callers can errors.Is against
// these sentinels while still getting a specific message, matching the
// stdlib-errors style the teacher uses in internal/bzip2/bzip2.go's
// StructuralError rather than reaching for an errors-wrapping library.
var (
	ErrDataError     = errors.New("codec: corrupt input")
	ErrUnexpectedEOF = errors.New("codec: unexpected end of stream")
	ErrUnexpected    = errors.New("codec: internal error")
)

// DataErrorf reports a corrupt-input condition (bad magic, bad checksum,
// an out-of-range code) with a specific message.
func DataErrorf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrDataError)...)
}

// UnexpectedEOFf reports a stream that ended mid-field or mid-block.
func UnexpectedEOFf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrUnexpectedEOF)...)
}

// Unexpectedf reports an internal invariant violation.
func Unexpectedf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrUnexpected)...)
}
