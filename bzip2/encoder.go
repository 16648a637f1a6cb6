package bzip2

import (
	"io"

	"github.com/nicolaou-labs/blockcodec/bitio"
	"github.com/nicolaou-labs/blockcodec/huffman"
	"github.com/nicolaou-labs/blockcodec/internal/ring"
	"github.com/nicolaou-labs/blockcodec/internal/xcrc"
	"github.com/nicolaou-labs/blockcodec/suffixarray"
)

// Encoder is a bzip2 encoder: outer RLE1 feeding a per-block BWT, MTF and
// multi-table Huffman pipeline. Grounded on EncoderInner in
// original_source/src/bzip2/encoder.rs.
type Encoder struct {
	bw   *bitio.Writer
	opts options

	blockMaxLen int
	blockBuf    []byte
	inUse       *ring.BitArray
	blockCRC    *xcrc.BZIP2CRC
	combinedCRC uint32
	blockNo     int

	haveRLE bool
	rleBuf  byte
	rleRun  int

	headerWritten bool
	closed        bool
}

// NewEncoder creates a bzip2 encoder writing to w.
func NewEncoder(w io.Writer, opts ...Option) *Encoder {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	e := &Encoder{
		bw:          bitio.NewWriter(w, bitio.Left),
		opts:        o,
		blockMaxLen: o.level*100000 - 19,
		inUse:       ring.NewBitArray(256),
		blockCRC:    xcrc.NewBZIP2CRC(),
	}
	return e
}

// Write feeds p through the outer RLE1 pass, accumulating into the
// current block and emitting it once it has grown past this encoder's
// block size.
func (e *Encoder) Write(p []byte) (int, error) {
	for _, b := range p {
		if err := e.addByte(b); err != nil {
			return 0, err
		}
	}
	return len(p), nil
}

func (e *Encoder) addByte(b byte) error {
	if !e.haveRLE {
		e.haveRLE = true
		e.rleBuf = b
		e.rleRun = 1
		return nil
	}
	if e.rleBuf == b && e.rleRun < 255 {
		e.rleRun++
		return nil
	}
	e.flushRLE()
	e.haveRLE = true
	e.rleBuf = b
	e.rleRun = 1
	if len(e.blockBuf) >= e.blockMaxLen {
		return e.writeBlock(false)
	}
	return nil
}

// flushRLE folds the pending run into the block CRC and appends its RLE1
// encoding (up to 4 literal copies, plus a count byte past the fourth) to
// blockBuf. Grounded on write_rle, original_source/src/bzip2/encoder.rs.
func (e *Encoder) flushRLE() {
	for i := 0; i < e.rleRun; i++ {
		e.blockCRC.WriteByte(e.rleBuf)
	}
	n := e.rleRun
	if n > 4 {
		n = 4
	}
	for i := 0; i < n; i++ {
		e.inUse.Set(int(e.rleBuf))
		e.blockBuf = append(e.blockBuf, e.rleBuf)
	}
	if n == 4 {
		extra := byte(e.rleRun - 4)
		e.inUse.Set(int(extra))
		e.blockBuf = append(e.blockBuf, extra)
	}
	e.haveRLE = false
	e.rleRun = 0
}

// Flush emits all pending input, including any pending RLE run, as a
// complete block, without ending the stream. bzip2 blocks are not
// byte-aligned, so nothing is padded: the block's last partial byte stays
// in the bit writer until later output or Close writes it out.
func (e *Encoder) Flush() error {
	if e.closed {
		return nil
	}
	if e.haveRLE {
		e.flushRLE()
	}
	return e.writeBlock(false)
}

// Close flushes any pending input as a final block, writes the stream
// trailer, and pads to a byte boundary.
func (e *Encoder) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	if err := e.writeBlock(true); err != nil {
		return err
	}
	return e.bw.Flush()
}

func (e *Encoder) writeHeader() error {
	if e.headerWritten {
		return nil
	}
	e.headerWritten = true
	for _, b := range []byte{headerB, headerZ, headerh, byte(header0 + e.opts.level)} {
		if err := e.bw.Write(uint64(b), 8); err != nil {
			return err
		}
	}
	return nil
}

// writeBlock finalizes the current block (flushing any pending RLE run
// first if this is the stream's last block), transmits it, then resets
// block-local state. Grounded on write_block,
// original_source/src/bzip2/encoder.rs.
func (e *Encoder) writeBlock(final bool) error {
	if final && e.haveRLE {
		e.flushRLE()
	}

	nblock := len(e.blockBuf)

	if err := e.writeHeader(); err != nil {
		return err
	}

	if nblock > 0 {
		blockCRC := e.blockCRC.Sum32()
		e.combinedCRC = xcrc.Combine(e.combinedCRC, blockCRC)
		e.blockNo++
		e.opts.tracef("bzip2: block %d: crc=0x%08x size=%d", e.blockNo, blockCRC, nblock)
		e.opts.reportProgress(Progress{Block: e.blockNo, Size: nblock})

		for _, b := range []byte{blockMagic0, blockMagic1, blockMagic2, blockMagic3, blockMagic4, blockMagic5} {
			if err := e.bw.Write(uint64(b), 8); err != nil {
				return err
			}
		}
		if err := e.bw.Write(uint64(blockCRC), 32); err != nil {
			return err
		}
		// Randomised blocks are a deprecated pre-0.9.5 feature; this
		// encoder never produces them.
		if err := e.bw.WriteBit(0); err != nil {
			return err
		}

		bwt, origPtr := suffixarray.Forward(e.blockBuf)
		if err := e.bw.Write(uint64(origPtr), 24); err != nil {
			return err
		}
		if err := e.writeBlockData(bwt); err != nil {
			return err
		}

		e.blockBuf = e.blockBuf[:0]
		e.inUse = ring.NewBitArray(256)
		e.blockCRC.Reset()
	}

	if final {
		for _, b := range []byte{finalMagic0, finalMagic1, finalMagic2, finalMagic3, finalMagic4, finalMagic5} {
			if err := e.bw.Write(uint64(b), 8); err != nil {
				return err
			}
		}
		if err := e.bw.Write(uint64(e.combinedCRC), 32); err != nil {
			return err
		}
	}
	return nil
}

// writeBlockData writes the in-use bitmap, selector tables, code-length
// tables and the Huffman-coded MTF/ZLE symbol stream for one block's BWT
// output. Grounded on write_blockdata, original_source/src/bzip2/
// encoder.rs.
func (e *Encoder) writeBlockData(bwt []byte) error {
	symbols := e.inUse.Symbols()
	var unseq2seq [256]byte
	for rank, s := range symbols {
		unseq2seq[s] = byte(rank)
	}
	inUseCount := len(symbols)
	alphaSize := inUseCount + 2
	eob := inUseCount + 1

	alphabet := make([]byte, inUseCount)
	for i := range alphabet {
		alphabet[i] = byte(i)
	}
	mtf := suffixarray.NewMTFEncoder(alphabet)

	mtfBuffer := make([]uint16, 0, len(bwt)+1)
	mtfFreq := make([]uint64, alphaSize)
	zeroCount := 0
	appendZeroRun := func() {
		if zeroCount == 0 {
			return
		}
		n := zeroCount + 1
		for n > 1 {
			run := uint16(n & 1)
			mtfBuffer = append(mtfBuffer, run)
			mtfFreq[run]++
			n >>= 1
		}
		zeroCount = 0
	}

	for _, s := range bwt {
		c := uint16(mtf.Encode(unseq2seq[s])) + 1
		if c == 1 {
			zeroCount++
		} else {
			appendZeroRun()
			mtfBuffer = append(mtfBuffer, c)
			mtfFreq[c]++
		}
	}
	appendZeroRun()
	mtfBuffer = append(mtfBuffer, uint16(eob))
	mtfFreq[eob]++

	mtfCount := len(mtfBuffer)
	groupNum := pickGroupNum(mtfCount)

	tables := initialGroupTables(groupNum, alphaSize, mtfFreq, mtfCount)
	var selectors []int
	for iter := 0; iter < nIters; iter++ {
		rfreq := make([][]uint64, groupNum)
		for g := range rfreq {
			rfreq[g] = make([]uint64, alphaSize)
		}
		selectors = selectors[:0]

		for gs := 0; gs < mtfCount; {
			ge := gs + groupSize
			if ge > mtfCount {
				ge = mtfCount
			}
			bestG, bestCost := 0, -1
			for g := 0; g < groupNum; g++ {
				cost := 0
				for _, sym := range mtfBuffer[gs:ge] {
					cost += int(tables[g][sym])
				}
				if bestCost == -1 || cost < bestCost {
					bestCost, bestG = cost, g
				}
			}
			selectors = append(selectors, bestG)
			for _, sym := range mtfBuffer[gs:ge] {
				rfreq[bestG][sym]++
			}
			gs = ge
		}

		for g := 0; g < groupNum; g++ {
			// Every symbol needs a code length of at least 1 on the
			// wire, so unused symbols are counted once.
			freq := make([]uint64, alphaSize)
			for i, f := range rfreq[g] {
				freq[i] = f
				if f == 0 {
					freq[i] = 1
				}
			}
			tables[g] = huffman.BuildLengths(freq, maxCodeLength)
		}
	}

	selMTF := suffixarray.NewMTFEncoder(identityAlphabet(groupNum))
	selectorRanks := make([]int, len(selectors))
	for i, s := range selectors {
		selectorRanks[i] = selMTF.Encode(byte(s))
	}

	encoders := make([]*huffman.Encoder, groupNum)
	for g := range encoders {
		encoders[g] = huffman.NewEncoder(tables[g])
	}

	if err := e.writeInUseMap(symbols); err != nil {
		return err
	}

	if err := e.bw.Write(uint64(groupNum), 3); err != nil {
		return err
	}
	if err := e.bw.Write(uint64(len(selectors)), 15); err != nil {
		return err
	}
	for _, rank := range selectorRanks {
		for i := 0; i < rank; i++ {
			if err := e.bw.WriteBit(1); err != nil {
				return err
			}
		}
		if err := e.bw.WriteBit(0); err != nil {
			return err
		}
	}

	for g := 0; g < groupNum; g++ {
		if err := writeCodeLengths(e.bw, tables[g]); err != nil {
			return err
		}
	}

	selCtr := 0
	for gs := 0; gs < mtfCount; {
		ge := gs + groupSize
		if ge > mtfCount {
			ge = mtfCount
		}
		enc := encoders[selectors[selCtr]]
		for _, sym := range mtfBuffer[gs:ge] {
			if err := enc.Encode(e.bw, int(sym)); err != nil {
				return err
			}
		}
		gs = ge
		selCtr++
	}
	return nil
}

func (e *Encoder) writeInUseMap(symbols []int) error {
	var present [256]bool
	for _, s := range symbols {
		present[s] = true
	}
	var presentGroup [16]bool
	for g := 0; g < 16; g++ {
		for j := 0; j < 16; j++ {
			if present[g*16+j] {
				presentGroup[g] = true
				break
			}
		}
	}
	var word uint16
	for g := 0; g < 16; g++ {
		word <<= 1
		if presentGroup[g] {
			word |= 1
		}
	}
	if err := e.bw.Write(uint64(word), 16); err != nil {
		return err
	}
	for g := 0; g < 16; g++ {
		if !presentGroup[g] {
			continue
		}
		var gw uint16
		for j := 0; j < 16; j++ {
			gw <<= 1
			if present[g*16+j] {
				gw |= 1
			}
		}
		if err := e.bw.Write(uint64(gw), 16); err != nil {
			return err
		}
	}
	return nil
}
