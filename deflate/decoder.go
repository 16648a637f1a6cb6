package deflate

import (
	"io"

	"github.com/nicolaou-labs/blockcodec/bitio"
	"github.com/nicolaou-labs/blockcodec/codec"
	"github.com/nicolaou-labs/blockcodec/huffman"
	"github.com/nicolaou-labs/blockcodec/lzss"
)

var fixedLitTree, fixedDistTree *huffman.Tree

func init() {
	var err error
	fixedLitTree, err = huffman.NewTree(fixedLitLengths(), bitio.Right)
	if err != nil {
		panic(err)
	}
	fixedDistTree, err = huffman.NewTree(fixedDistLengths(), bitio.Right)
	if err != nil {
		panic(err)
	}
}

// Reader decodes a raw DEFLATE stream (no zlib/gzip framing — see the
// zlib and gzip packages for those).
type Reader struct {
	br  *bitio.Reader
	win *lzss.Window
	out codec.OutQueue

	finalSeen bool
}

// NewReader wraps r as a DEFLATE decoder. Options carry a preset
// dictionary, when the stream was encoded against one (zlib's FDICT).
func NewReader(r io.Reader, opts ...Option) *Reader {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	rd := &Reader{br: bitio.NewReader(r, bitio.Right)}
	rd.win = lzss.NewWindow(&rd.out, windowSize)
	if len(o.dict) > 0 {
		rd.win.Seed(o.dict)
	}
	return rd
}

// Read implements io.Reader, decoding as many blocks as needed to satisfy
// the caller without decoding further ahead than necessary.
func (r *Reader) Read(p []byte) (int, error) {
	for r.out.Len() == 0 && !r.finalSeen {
		if err := r.decodeBlock(); err != nil {
			return 0, err
		}
	}
	if r.out.Len() == 0 {
		return 0, io.EOF
	}
	return r.out.Drain(p), nil
}

func (r *Reader) decodeBlock() error {
	final, err := r.br.Read(1)
	if err != nil {
		return err
	}
	btype, err := r.br.Read(2)
	if err != nil {
		return err
	}
	if final == 1 {
		r.finalSeen = true
	}
	switch btype {
	case 0:
		return r.readStored()
	case 1:
		return r.decodeTokens(fixedLitTree, fixedDistTree)
	case 2:
		return r.readDynamicBlock()
	default:
		return codec.DataErrorf("deflate: invalid block type %d", btype)
	}
}

func (r *Reader) readStored() error {
	r.br.SkipToNextByte()
	lenLo, err := r.br.ReadAlignedByte()
	if err != nil {
		return err
	}
	lenHi, err := r.br.ReadAlignedByte()
	if err != nil {
		return err
	}
	nlenLo, err := r.br.ReadAlignedByte()
	if err != nil {
		return err
	}
	nlenHi, err := r.br.ReadAlignedByte()
	if err != nil {
		return err
	}
	length := int(lenLo) | int(lenHi)<<8
	nlen := int(nlenLo) | int(nlenHi)<<8
	if length != nlen^0xFFFF {
		return codec.DataErrorf("deflate: stored block LEN/NLEN mismatch")
	}
	for i := 0; i < length; i++ {
		b, err := r.br.ReadAlignedByte()
		if err != nil {
			return err
		}
		if err := r.win.Literal(b); err != nil {
			return err
		}
	}
	return nil
}

func (r *Reader) readDynamicBlock() error {
	hlitV, err := r.br.Read(5)
	if err != nil {
		return err
	}
	hdistV, err := r.br.Read(5)
	if err != nil {
		return err
	}
	hclenV, err := r.br.Read(4)
	if err != nil {
		return err
	}
	hlit := int(hlitV) + 257
	hdist := int(hdistV) + 1
	hclen := int(hclenV) + 4

	var clLengths [numCodeLenSyms]uint8
	for i := 0; i < hclen; i++ {
		v, err := r.br.Read(3)
		if err != nil {
			return err
		}
		clLengths[codeLengthOrder[i]] = uint8(v)
	}
	clTree, err := huffman.NewTree(clLengths[:], bitio.Right)
	if err != nil {
		return codec.DataErrorf("deflate: bad code-length table: %v", err)
	}

	lengths := make([]uint8, hlit+hdist)
	for i := 0; i < len(lengths); {
		sym, err := clTree.Decode(r.br)
		if err != nil {
			return err
		}
		switch {
		case sym < 16:
			lengths[i] = uint8(sym)
			i++
		case sym == 16:
			if i == 0 {
				return codec.DataErrorf("deflate: repeat code with no previous length")
			}
			rep, err := r.br.Read(2)
			if err != nil {
				return err
			}
			n := int(rep) + 3
			prev := lengths[i-1]
			for j := 0; j < n && i < len(lengths); j++ {
				lengths[i] = prev
				i++
			}
		case sym == 17:
			rep, err := r.br.Read(3)
			if err != nil {
				return err
			}
			n := int(rep) + 3
			for j := 0; j < n && i < len(lengths); j++ {
				lengths[i] = 0
				i++
			}
		case sym == 18:
			rep, err := r.br.Read(7)
			if err != nil {
				return err
			}
			n := int(rep) + 11
			for j := 0; j < n && i < len(lengths); j++ {
				lengths[i] = 0
				i++
			}
		default:
			return codec.DataErrorf("deflate: invalid code-length symbol %d", sym)
		}
	}

	litTree, err := huffman.NewTree(lengths[:hlit], bitio.Right)
	if err != nil {
		return codec.DataErrorf("deflate: bad literal/length table: %v", err)
	}
	distTree, err := huffman.NewTree(lengths[hlit:], bitio.Right)
	if err != nil {
		return codec.DataErrorf("deflate: bad distance table: %v", err)
	}
	return r.decodeTokens(litTree, distTree)
}

func (r *Reader) decodeTokens(litTree, distTree *huffman.Tree) error {
	for {
		sym, err := litTree.Decode(r.br)
		if err != nil {
			return err
		}
		if sym < 256 {
			if err := r.win.Literal(byte(sym)); err != nil {
				return err
			}
			continue
		}
		if sym == endOfBlock {
			return nil
		}
		idx := sym - 257
		if idx < 0 || idx >= len(lengthBase) {
			return codec.DataErrorf("deflate: invalid length symbol %d", sym)
		}
		extra, err := r.br.Read(lengthExtra[idx])
		if err != nil {
			return err
		}
		length := lengthBase[idx] + int(extra)

		distSym, err := distTree.Decode(r.br)
		if err != nil {
			return err
		}
		if distSym < 0 || distSym >= len(distBase) {
			return codec.DataErrorf("deflate: invalid distance symbol %d", distSym)
		}
		dextra, err := r.br.Read(distExtra[distSym])
		if err != nil {
			return err
		}
		dist := distBase[distSym] + int(dextra)

		if err := r.win.Copy(length, dist); err != nil {
			return err
		}
	}
}
