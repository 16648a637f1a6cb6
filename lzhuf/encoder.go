package lzhuf

import (
	"io"

	"github.com/nicolaou-labs/blockcodec/bitio"
	"github.com/nicolaou-labs/blockcodec/huffman"
	"github.com/nicolaou-labs/blockcodec/lzss"
)

// writeChunk is not referenced by Writer: Write hands every call's input
// to the LZSS stage and parses what it safely can straight away, with no
// buffering threshold like deflate.Writer's blockSize.
const writeChunk = 1 << 16

// maxBlockLen bounds how many LZSS-derived symbols accumulate before a
// Huffman-table block is closed out and a fresh pair of tables is built
// and transmitted — the 16-bit block length field's own ceiling. Grounded
// on NumMax/size_of_buf in original_source/src/lzhuf/encoder.rs.
const maxBlockLen = 0xFFFF

type blockCode struct {
	sym       uint16
	length    int
	posOffset uint16
	posSublen uint16
}

// Writer is an LZHUF encoder: LZSS matching feeding a per-block canonical
// Huffman stage over the unified 510-symbol literal/length alphabet, plus
// a separate Huffman stage over each block's posOffset magnitude classes.
// Grounded on LzhufEncoderInner/LzhufBlockEncoder in
// original_source/src/lzhuf/encoder.rs.
type Writer struct {
	bw     *bitio.Writer
	lz     *lzss.Encoder
	method Method

	block   []blockCode
	symFreq []uint64
	offFreq []uint64
	closed  bool
}

// NewWriter creates an LZHUF encoder writing to w using the given window
// variant.
func NewWriter(w io.Writer, method Method) *Writer {
	dictBits := method.dictionaryBits()
	return &Writer{
		bw:     bitio.NewWriter(w, bitio.Left),
		lz:     lzss.NewEncoder(dictBits, 1<<uint(dictBits), minMatch, maxMatch, 4, method.matchComparator()),
		method: method,
		symFreq: make([]uint64, symAlphabet),
		offFreq: make([]uint64, offsetAlphabet(dictBits)),
	}
}

// Write buffers p for compression, emitting complete blocks once enough
// input has accumulated.
func (w *Writer) Write(p []byte) (int, error) {
	w.lz.Write(p)
	if err := w.pump(false); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (w *Writer) pump(flush bool) error {
	codes := w.lz.Encode(flush)
	for _, c := range codes {
		if err := w.addCode(c); err != nil {
			return err
		}
	}
	if flush {
		return w.writeBlock(false)
	}
	return nil
}

func (w *Writer) addCode(c lzss.Code) error {
	if c.IsRef {
		posOffset, posSublen := splitDistance(c.Distance)
		w.block = append(w.block, blockCode{
			sym:       lengthToSymbol(c.Length),
			length:    c.Length,
			posOffset: posOffset,
			posSublen: posSublen,
		})
		w.symFreq[lengthToSymbol(c.Length)]++
		w.offFreq[posOffset]++
	} else {
		w.block = append(w.block, blockCode{sym: uint16(c.Literal)})
		w.symFreq[c.Literal]++
	}
	if len(w.block) >= maxBlockLen {
		return w.writeBlock(false)
	}
	return nil
}

// writeBlock transmits the accumulated block's two Huffman tables
// followed by its coded symbols, then resets the per-block state. A
// no-op on an empty block whether or not final is set, matching
// encode_block's guard in original_source/src/lzhuf/encoder.rs against
// emitting an entirely empty trailing block; Close writes the stream's
// zero-length terminator itself.
func (w *Writer) writeBlock(final bool) error {
	if len(w.block) == 0 {
		if !final {
			return nil
		}
		return nil
	}

	if err := w.bw.Write(uint64(len(w.block)), 16); err != nil {
		return err
	}

	symLengths := huffman.BuildLengths(w.symFreq, 16)
	if err := writeSymbolTable(w.bw, symLengths); err != nil {
		return err
	}
	symEnc := newTableEncoder(symLengths)

	offLengths := huffman.BuildLengths(w.offFreq, 16)
	if err := writeOffsetTable(w.bw, offLengths, uint(w.method.offsetBits())); err != nil {
		return err
	}
	offEnc := newTableEncoder(offLengths)

	for _, c := range w.block {
		if err := symEnc.encode(w.bw, int(c.sym)); err != nil {
			return err
		}
		if c.length == 0 {
			continue
		}
		if err := offEnc.encode(w.bw, int(c.posOffset)); err != nil {
			return err
		}
		if c.posOffset > 1 {
			if err := w.bw.Write(uint64(c.posSublen), uint(c.posOffset-1)); err != nil {
				return err
			}
		}
	}

	w.block = w.block[:0]
	for i := range w.symFreq {
		w.symFreq[i] = 0
	}
	for i := range w.offFreq {
		w.offFreq[i] = 0
	}
	return nil
}

// Flush emits all pending input as a complete block, without ending the
// stream. LZHUF blocks are not byte-aligned, so nothing is padded: the
// block's last partial byte stays in the bit writer until later output or
// Close writes it out.
func (w *Writer) Flush() error {
	return w.pump(true)
}

// Close flushes all remaining input, then writes an explicit zero-length
// terminator block before the final byte-padding flush. LZHUF's own wire
// format has no end-of-stream marker beyond the decoder simply failing to
// read another full 16-bit block-length field once the underlying byte
// stream is exhausted — workable for a bit reader that tolerates short
// reads (as original_source/src/bitio/reader.rs's BitReader does), but
// this module's bitio.Reader reports a mid-field short read as
// io.ErrUnexpectedEOF rather than a clean io.EOF. A literal block length
// of zero already falls through to the same "nothing more to decode"
// outcome in the original decoder's match arms, so writing one explicitly
// preserves the format's existing semantics while making termination
// unambiguous under this module's stricter reader. This one block is the
// only wire-level difference from the upstream project's own encoder
// output.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if err := w.pump(true); err != nil {
		return err
	}
	if err := w.bw.Write(0, 16); err != nil {
		return err
	}
	return w.bw.Flush()
}
