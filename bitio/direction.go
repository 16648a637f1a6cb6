// Package bitio provides bit-level readers and writers over a byte stream,
// supporting the two packing conventions the codecs in this module need:
// MSB-first (bzip2, LZHUF) and LSB-first (DEFLATE).
package bitio

// Direction selects how a multi-bit field is packed into (or out of) the
// underlying byte stream.
type Direction int

const (
	// Left packs bits MSB-first: the first bit read (or written) becomes
	// the highest-order bit of the field. Used by bzip2 and LZHUF.
	Left Direction = iota
	// Right packs bits LSB-first: the first bit read (or written) becomes
	// the lowest-order bit of the field. Used by DEFLATE.
	Right
)

func (d Direction) String() string {
	if d == Right {
		return "right"
	}
	return "left"
}
