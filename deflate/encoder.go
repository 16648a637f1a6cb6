package deflate

import (
	"io"

	"github.com/nicolaou-labs/blockcodec/bitio"
	"github.com/nicolaou-labs/blockcodec/huffman"
	"github.com/nicolaou-labs/blockcodec/lzss"
)

// blockSize bounds how much input Write buffers before planning and
// emitting a block on its own; Close drains whatever remains regardless of
// this threshold, and Flush drains all but the match finder's last
// minMatch-1 bytes.
const blockSize = 1 << 16

// Writer is a DEFLATE encoder: an LZSS parse stage feeding a per-block
// planner that picks among stored, fixed-Huffman and dynamic-Huffman
// framing, whichever is smallest for that block — the "planner" spec.md
// describes, grounded in shape on how zlib's deflate_stored/_fast/_slow
// pick a strategy, rendered here as an explicit bit-cost comparison since
// this module has no existing planner code to adapt.
type Writer struct {
	bw   *bitio.Writer
	lz   *lzss.Encoder
	opts *options

	rawBuf  []byte
	pending int
	closed  bool
}

// NewWriter creates a DEFLATE encoder writing to w.
func NewWriter(w io.Writer, opts ...Option) *Writer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	var lz *lzss.Encoder
	if len(o.dict) > 0 {
		lz = lzss.NewEncoderWithDict(windowBits, windowSize, minMatch, maxMatchLength, o.lazy, lzss.Greedy, o.dict)
	} else {
		lz = lzss.NewEncoder(windowBits, windowSize, minMatch, maxMatchLength, o.lazy, lzss.Greedy)
	}
	return &Writer{bw: bitio.NewWriter(w, bitio.Right), lz: lz, opts: o}
}

// Write buffers p for compression, emitting a complete block once enough
// input has accumulated.
func (w *Writer) Write(p []byte) (int, error) {
	w.lz.Write(p)
	w.rawBuf = append(w.rawBuf, p...)
	w.pending += len(p)
	if w.pending >= blockSize {
		if err := w.emitBlock(false); err != nil {
			return 0, err
		}
	}
	return len(p), nil
}

// Flush emits pending input as a non-final block, then an empty stored
// block that brings the stream to a byte boundary, and synchronizes the
// underlying writer, without ending the stream. The last minMatch-1 input
// bytes stay with the match finder until more input arrives or Close.
func (w *Writer) Flush() error {
	if err := w.emitBlock(false); err != nil {
		return err
	}
	if err := w.writeStoredBlock(nil, false); err != nil {
		return err
	}
	return w.bw.Flush()
}

// Close emits all pending input as the final block (BFINAL=1) and pads
// and flushes the bitstream.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if err := w.emitBlock(true); err != nil {
		return err
	}
	return w.bw.Flush()
}

func (w *Writer) emitBlock(final bool) error {
	codes := w.lz.Encode(final)
	rawLen := 0
	for _, c := range codes {
		if c.IsRef {
			rawLen += c.Length
		} else {
			rawLen++
		}
	}
	rawBlock := w.rawBuf[:rawLen]
	w.rawBuf = append([]byte(nil), w.rawBuf[rawLen:]...)
	w.pending -= rawLen
	if w.pending < 0 {
		w.pending = 0
	}
	return w.writeBlock(codes, rawBlock, final)
}

func b2u64(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

func ensureMinActive(freq []uint64) {
	n := 0
	for _, f := range freq {
		if f > 0 {
			n++
		}
	}
	if n < 2 {
		freq[0]++
		if len(freq) > 1 {
			freq[1]++
		}
	}
}

func (w *Writer) writeBlock(codes []lzss.Code, rawBlock []byte, final bool) error {
	if len(codes) == 0 {
		if !final {
			return nil
		}
		// A final block with nothing to say is conventionally a fixed-
		// Huffman block containing only the end-of-block symbol — RFC
		// 1951's cheapest valid terminator (1 final bit + 2 type bits +
		// the 7-bit EOB code, padded to 2 bytes: 0x03 0x00).
		return w.writeHuffmanBlock(nil, true, 1, fixedLitLengths(), fixedDistLengths())
	}

	litFreq := make([]uint64, numLitSyms)
	distFreq := make([]uint64, numDistSyms)
	for _, c := range codes {
		if c.IsRef {
			sym, _, _ := lengthToSymbol(c.Length)
			litFreq[sym]++
			dsym, _, _ := distToSymbol(c.Distance)
			distFreq[dsym]++
		} else {
			litFreq[c.Literal]++
		}
	}
	litFreq[endOfBlock]++
	ensureMinActive(litFreq)
	ensureMinActive(distFreq)

	dynLit := huffman.BuildLengths(litFreq, 15)
	dynDist := huffman.BuildLengths(distFreq, 15)

	fixedBits := estimateBits(codes, fixedLitLengths(), fixedDistLengths())
	dynBits := estimateBits(codes, dynLit, dynDist) + headerBitsEstimate(dynLit, dynDist)
	storedBits := 32 + len(rawBlock)*8

	switch {
	case storedBits <= fixedBits && storedBits <= dynBits:
		return w.writeStoredBlock(rawBlock, final)
	case fixedBits <= dynBits:
		return w.writeHuffmanBlock(codes, final, 1, fixedLitLengths(), fixedDistLengths())
	default:
		return w.writeHuffmanBlock(codes, final, 2, dynLit, dynDist)
	}
}

func estimateBits(codes []lzss.Code, litLengths, distLengths []uint8) int {
	bits := 0
	for _, c := range codes {
		if c.IsRef {
			sym, _, extraBits := lengthToSymbol(c.Length)
			dsym, _, dextraBits := distToSymbol(c.Distance)
			bits += int(litLengths[sym]) + int(extraBits)
			bits += int(distLengths[dsym]) + int(dextraBits)
		} else {
			bits += int(litLengths[c.Literal])
		}
	}
	bits += int(litLengths[endOfBlock])
	return bits
}

// headerBitsEstimate approximates a dynamic block's own table-transmission
// cost — rough, since it only influences which block type the planner
// picks, not correctness of any chosen type.
func headerBitsEstimate(litLengths, distLengths []uint8) int {
	return 17 + 3*numCodeLenSyms + 4*(len(litLengths)+len(distLengths))
}

func (w *Writer) writeStoredBlock(raw []byte, final bool) error {
	if err := w.bw.Write(b2u64(final), 1); err != nil {
		return err
	}
	if err := w.bw.Write(0, 2); err != nil {
		return err
	}
	if err := w.bw.PadToByte(); err != nil {
		return err
	}
	length := uint16(len(raw))
	nlen := ^length
	for _, b := range []byte{byte(length), byte(length >> 8), byte(nlen), byte(nlen >> 8)} {
		if err := w.bw.WriteAlignedByte(b); err != nil {
			return err
		}
	}
	for _, b := range raw {
		if err := w.bw.WriteAlignedByte(b); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeHuffmanBlock(codes []lzss.Code, final bool, btype uint64, litLengths, distLengths []uint8) error {
	if err := w.bw.Write(b2u64(final), 1); err != nil {
		return err
	}
	if err := w.bw.Write(btype, 2); err != nil {
		return err
	}
	if btype == 2 {
		if err := w.writeDynamicHeader(litLengths, distLengths); err != nil {
			return err
		}
	}
	litEnc := huffman.NewEncoder(litLengths)
	distEnc := huffman.NewEncoder(distLengths)
	for _, c := range codes {
		if c.IsRef {
			sym, extra, extraBits := lengthToSymbol(c.Length)
			if err := litEnc.Encode(w.bw, sym); err != nil {
				return err
			}
			if extraBits > 0 {
				if err := w.bw.Write(uint64(extra), extraBits); err != nil {
					return err
				}
			}
			dsym, dextra, dextraBits := distToSymbol(c.Distance)
			if err := distEnc.Encode(w.bw, dsym); err != nil {
				return err
			}
			if dextraBits > 0 {
				if err := w.bw.Write(uint64(dextra), dextraBits); err != nil {
					return err
				}
			}
		} else {
			if err := litEnc.Encode(w.bw, int(c.Literal)); err != nil {
				return err
			}
		}
	}
	return litEnc.Encode(w.bw, endOfBlock)
}

type clToken struct {
	sym       int
	extra     int
	extraBits uint
}

// rleLengths encodes a code-length sequence using the code-length
// alphabet's three repeat symbols (16/17/18), per RFC 1951 §3.2.7.
func rleLengths(lengths []uint8) []clToken {
	var toks []clToken
	n := len(lengths)
	i := 0
	for i < n {
		v := lengths[i]
		j := i + 1
		for j < n && lengths[j] == v {
			j++
		}
		run := j - i
		if v == 0 {
			for run > 0 {
				switch {
				case run >= 11:
					take := run
					if take > 138 {
						take = 138
					}
					toks = append(toks, clToken{18, take - 11, 7})
					run -= take
				case run >= 3:
					take := run
					if take > 10 {
						take = 10
					}
					toks = append(toks, clToken{17, take - 3, 3})
					run -= take
				default:
					for k := 0; k < run; k++ {
						toks = append(toks, clToken{0, 0, 0})
					}
					run = 0
				}
			}
		} else {
			toks = append(toks, clToken{int(v), 0, 0})
			run--
			for run > 0 {
				if run >= 3 {
					take := run
					if take > 6 {
						take = 6
					}
					toks = append(toks, clToken{16, take - 3, 2})
					run -= take
				} else {
					for k := 0; k < run; k++ {
						toks = append(toks, clToken{int(v), 0, 0})
					}
					run = 0
				}
			}
		}
		i = j
	}
	return toks
}

func (w *Writer) writeDynamicHeader(litLengths, distLengths []uint8) error {
	combined := make([]uint8, 0, len(litLengths)+len(distLengths))
	combined = append(combined, litLengths...)
	combined = append(combined, distLengths...)
	toks := rleLengths(combined)

	freq := make([]uint64, numCodeLenSyms)
	for _, t := range toks {
		freq[t.sym]++
	}
	ensureMinActive(freq)
	clLengths := huffman.BuildLengths(freq, 7)

	hclen := 4
	for i := numCodeLenSyms - 1; i >= 4; i-- {
		if clLengths[codeLengthOrder[i]] != 0 {
			hclen = i + 1
			break
		}
	}

	if err := w.bw.Write(uint64(len(litLengths)-257), 5); err != nil {
		return err
	}
	if err := w.bw.Write(uint64(len(distLengths)-1), 5); err != nil {
		return err
	}
	if err := w.bw.Write(uint64(hclen-4), 4); err != nil {
		return err
	}
	for i := 0; i < hclen; i++ {
		if err := w.bw.Write(uint64(clLengths[codeLengthOrder[i]]), 3); err != nil {
			return err
		}
	}

	clEnc := huffman.NewEncoder(clLengths)
	for _, t := range toks {
		if err := clEnc.Encode(w.bw, t.sym); err != nil {
			return err
		}
		if t.extraBits > 0 {
			if err := w.bw.Write(uint64(t.extra), t.extraBits); err != nil {
				return err
			}
		}
	}
	return nil
}
