package lzhuf

import (
	"github.com/nicolaou-labs/blockcodec/bitio"
	"github.com/nicolaou-labs/blockcodec/huffman"
)

// tableEncoder wraps a canonical Huffman encoder, or — when a code-length
// table has at most one nonzero entry — writes nothing at all. Mirrors
// LzhufHuffmanEncoder's HuffmanEncoder/Default split in
// original_source/src/lzhuf/encoder.rs: an alphabet with a single live
// symbol carries no information once its header has named that symbol,
// so no further bits are spent encoding it.
type tableEncoder struct {
	enc *huffman.Encoder
}

func newTableEncoder(lengths []uint8) *tableEncoder {
	n := 0
	for _, l := range lengths {
		if l > 0 {
			n++
		}
	}
	if n <= 1 {
		return &tableEncoder{}
	}
	return &tableEncoder{enc: huffman.NewEncoder(lengths)}
}

func (e *tableEncoder) encode(w *bitio.Writer, sym int) error {
	if e.enc == nil {
		return nil
	}
	return e.enc.Encode(w, sym)
}

// tableDecoder is the decode-side counterpart: a real Huffman tree, or a
// fixed symbol read directly from the table header with no further bits
// consumed per occurrence.
type tableDecoder struct {
	tree  *huffman.Tree
	fixed int
}

func (d *tableDecoder) decode(r *bitio.Reader) (int, error) {
	if d.tree == nil {
		return d.fixed, nil
	}
	return d.tree.Decode(r)
}
