package codec

import "io"

// Encoder is the shape every codec's writer in this module satisfies.
// original_source/src/traits/encoder.rs models encoding as
// next(upstream, Action) -> Option<Result<OutByte, Error>>, with
// Action::{Run, Flush, Finish} distinguishing "just consume more input"
// from "emit a flush point" from "end the stream". The idiomatic Go
// rendering already exists in the standard library
// (compress/flate.Writer): Write is Action::Run, Flush is Action::Flush,
// Close is Action::Finish.
type Encoder interface {
	io.Writer
	// Flush emits any buffered output up to a synchronization point
	// without ending the stream (Action::Flush).
	Flush() error
	// Close ends the stream: final block headers, trailers, and any
	// padding are emitted (Action::Finish).
	Close() error
}

// Decoder is the shape every codec's reader in this module satisfies.
type Decoder interface {
	io.Reader
}
