package lzhuf

import (
	"io"

	"github.com/nicolaou-labs/blockcodec/bitio"
	"github.com/nicolaou-labs/blockcodec/codec"
	"github.com/nicolaou-labs/blockcodec/lzss"
)

// Reader is an LZHUF decoder, the mirror of Writer: it reads a 16-bit
// block length, the two per-block Huffman tables, then decodes that many
// symbols before moving to the next block. Grounded on
// LzhufDecoderInner::next in original_source/src/lzhuf/decoder.rs.
type Reader struct {
	br     *bitio.Reader
	win    *lzss.Window
	out    codec.OutQueue
	method Method

	blockLeft int
	symDec    *tableDecoder
	offDec    *tableDecoder
	eof       bool
}

// NewReader wraps r as an LZHUF decoder using the given window variant.
func NewReader(r io.Reader, method Method) *Reader {
	dictBits := method.dictionaryBits()
	rd := &Reader{
		br:     bitio.NewReader(r, bitio.Left),
		method: method,
	}
	rd.win = lzss.NewWindow(&rd.out, 1<<uint(dictBits))
	return rd
}

// Read implements io.Reader, decoding as many symbols as needed to
// satisfy the caller without decoding further ahead than necessary.
func (r *Reader) Read(p []byte) (int, error) {
	for r.out.Len() == 0 && !r.eof {
		if err := r.decodeOne(); err != nil {
			return 0, err
		}
	}
	if r.out.Len() == 0 {
		return 0, io.EOF
	}
	return r.out.Drain(p), nil
}

func (r *Reader) initBlock() error {
	n, err := r.br.Read(16)
	if err != nil {
		if err == io.EOF {
			r.eof = true
			return nil
		}
		return err
	}
	if n == 0 {
		// A literal zero-length block is either this module's own
		// explicit terminator (see Writer.Close) or, in the upstream
		// wire format, indistinguishable from "no more blocks" — both
		// cases mean decoding stops here.
		r.eof = true
		return nil
	}
	r.blockLeft = int(n)

	symDec, err := readSymbolTable(r.br)
	if err != nil {
		return err
	}
	offDec, err := readOffsetTable(r.br, uint(r.method.offsetBits()))
	if err != nil {
		return err
	}
	r.symDec, r.offDec = symDec, offDec
	return nil
}

func (r *Reader) decodeOne() error {
	if r.blockLeft == 0 {
		if err := r.initBlock(); err != nil {
			return err
		}
		if r.eof {
			return nil
		}
	}

	sym, err := r.symDec.decode(r.br)
	if err != nil {
		return err
	}
	r.blockLeft--

	if sym < 256 {
		return r.win.Literal(byte(sym))
	}
	length := symbolToLength(uint16(sym))

	posOffset, err := r.offDec.decode(r.br)
	if err != nil {
		return err
	}
	var posSublen uint64
	if posOffset > 1 {
		posSublen, err = r.br.Read(uint(posOffset - 1))
		if err != nil {
			return err
		}
	}
	distance := joinDistance(uint16(posOffset), uint16(posSublen))
	return r.win.Copy(length, distance)
}
