package huffman

import "github.com/nicolaou-labs/blockcodec/bitio"

// WriteCode writes a canonical Huffman code MSB-first, one bit at a time.
// Huffman codes are always packed MSB-first regardless of the surrounding
// bitio.Writer's overall Direction — true for bzip2/LZHUF, whose streams
// are Left (MSB-first) throughout, and also true for DEFLATE, which packs
// every other field LSB-first but special-cases Huffman codes to MSB-first
// per RFC 1951 §3.1.1. Writing bit-by-bit sidesteps the distinction
// entirely: a single-bit field is identical in both directions.
func WriteCode(w *bitio.Writer, code uint32, length uint8) error {
	for i := int(length) - 1; i >= 0; i-- {
		if err := w.WriteBit(uint(code >> uint(i) & 1)); err != nil {
			return err
		}
	}
	return nil
}

// Encoder packs symbols using a fixed canonical code table built from
// BuildLengths/AssignCodes.
type Encoder struct {
	codes   []uint32
	lengths []uint8
}

// NewEncoder builds an encoder from per-symbol code lengths.
func NewEncoder(lengths []uint8) *Encoder {
	return &Encoder{codes: AssignCodes(lengths), lengths: lengths}
}

// Lengths returns the code length table, e.g. for serializing a dynamic
// Huffman header.
func (e *Encoder) Lengths() []uint8 { return e.lengths }

// Encode writes the code for symbol sym.
func (e *Encoder) Encode(w *bitio.Writer, sym int) error {
	return WriteCode(w, e.codes[sym], e.lengths[sym])
}
