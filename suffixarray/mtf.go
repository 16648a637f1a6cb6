package suffixarray

// MTFEncoder move-to-front encodes a stream of bytes drawn from a known
// alphabet, grounded on MtfPosition::pop in
// original_source/src/bzip2/mtf.rs: a linear scan to find the symbol's
// current rank, swap it to the front, return the rank it had before the
// swap.
type MTFEncoder struct {
	table []byte
}

// NewMTFEncoder creates an encoder whose initial front-to-back order is
// alphabet (bzip2 feeds this the sorted list of symbols present in the
// block, per its "in use" bitmap).
func NewMTFEncoder(alphabet []byte) *MTFEncoder {
	table := make([]byte, len(alphabet))
	copy(table, alphabet)
	return &MTFEncoder{table: table}
}

// Encode returns b's current rank and moves it to the front.
func (e *MTFEncoder) Encode(b byte) int {
	for i, s := range e.table {
		if s == b {
			copy(e.table[1:i+1], e.table[0:i])
			e.table[0] = b
			return i
		}
	}
	panic("suffixarray: symbol not in mtf alphabet")
}

// MTFDecoder is the inverse of MTFEncoder, grounded on
// MtfPositionDecoder::pop in original_source/src/bzip2/mtf.rs: shift the
// table right up to rank, inserting the recovered symbol at the front.
type MTFDecoder struct {
	table []byte
}

// NewMTFDecoder creates a decoder with the same initial order Encode used.
func NewMTFDecoder(alphabet []byte) *MTFDecoder {
	table := make([]byte, len(alphabet))
	copy(table, alphabet)
	return &MTFDecoder{table: table}
}

// Decode recovers the symbol at rank and moves it to the front.
func (d *MTFDecoder) Decode(rank int) byte {
	b := d.table[rank]
	copy(d.table[1:rank+1], d.table[0:rank])
	d.table[0] = b
	return b
}
