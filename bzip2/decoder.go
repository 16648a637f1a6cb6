package bzip2

import (
	"io"

	"github.com/nicolaou-labs/blockcodec/bitio"
	"github.com/nicolaou-labs/blockcodec/codec"
	"github.com/nicolaou-labs/blockcodec/huffman"
	"github.com/nicolaou-labs/blockcodec/internal/xcrc"
	"github.com/nicolaou-labs/blockcodec/suffixarray"
)

// Decoder is a bzip2 decoder. It reads one or more concatenated bzip2
// streams (each with its own "BZh" header) and supports the deprecated
// randomised-block variant, unlike the teacher's internal/bzip2 which
// rejects it outright. Grounded on BZip2Decoder::init_block/get_next_lfm
// in original_source/src/bzip2/decoder.rs, except that the inverse BWT
// itself is delegated whole to suffixarray.Inverse rather than this
// package re-deriving the single packed-array LF-mapping trick — spec.md
// explicitly allows separating the byte and pointer vectors this way.
type Decoder struct {
	br   *bitio.Reader
	opts options
	out  codec.OutQueue

	blockNo       int
	blockSize100k int
	combinedCRC   uint32
	streamNo      int
	eof           bool
}

// NewDecoder wraps r as a bzip2 decoder.
func NewDecoder(r io.Reader, opts ...Option) *Decoder {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Decoder{
		br:       bitio.NewReader(r, bitio.Left),
		opts:     o,
		streamNo: 1,
	}
}

// Read implements io.Reader.
func (d *Decoder) Read(p []byte) (int, error) {
	for d.out.Len() == 0 && !d.eof {
		if err := d.nextBlock(); err != nil {
			return 0, err
		}
	}
	if d.out.Len() == 0 {
		return 0, io.EOF
	}
	return d.out.Drain(p), nil
}

func (d *Decoder) magicError(format string, args ...any) error {
	if d.streamNo == 1 && d.blockNo == 0 {
		return codec.DataErrorf("bzip2: bad magic (first stream): "+format, args...)
	}
	return codec.DataErrorf("bzip2: bad magic: "+format, args...)
}

func (d *Decoder) readByte() (byte, error) {
	v, err := d.br.Read(8)
	if err != nil {
		return 0, err
	}
	return byte(v), nil
}

func (d *Decoder) expectByte(want byte) error {
	got, err := d.readByte()
	if err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return codec.UnexpectedEOFf("bzip2: truncated magic")
		}
		return err
	}
	if got != want {
		return d.magicError("got 0x%02x, want 0x%02x", got, want)
	}
	return nil
}

// nextBlock reads and fully decodes the next bzip2 block (or stream
// header, or stream trailer) into d.out. Grounded on init_block,
// original_source/src/bzip2/decoder.rs.
func (d *Decoder) nextBlock() error {
	if d.blockNo == 0 {
		if err := d.expectByte(headerB); err != nil {
			return err
		}
		if err := d.expectByte(headerZ); err != nil {
			return err
		}
		if err := d.expectByte(headerh); err != nil {
			return err
		}
		b, err := d.readByte()
		if err != nil {
			return codec.UnexpectedEOFf("bzip2: truncated stream header")
		}
		if b < header0+1 || b > header0+9 {
			return d.magicError("bad block-size digit 0x%02x", b)
		}
		d.blockSize100k = int(b - header0)
	}

	head, err := d.readByte()
	if err != nil {
		return codec.UnexpectedEOFf("bzip2: truncated block header")
	}

	switch head {
	case blockMagic0:
		return d.readBlock()
	case finalMagic0:
		return d.readTrailer()
	default:
		return codec.DataErrorf("bzip2: unrecognised block header byte 0x%02x", head)
	}
}

func (d *Decoder) readBlock() error {
	for _, want := range []byte{blockMagic1, blockMagic2, blockMagic3, blockMagic4, blockMagic5} {
		if err := d.expectByte(want); err != nil {
			return err
		}
	}
	d.blockNo++

	wantCRC, err := d.br.Read(32)
	if err != nil {
		return codec.UnexpectedEOFf("bzip2: truncated block CRC")
	}

	randBit, err := d.br.Read(1)
	if err != nil {
		return codec.UnexpectedEOFf("bzip2: truncated randomised flag")
	}
	randomised := randBit == 1

	origPos, err := d.br.Read(24)
	if err != nil {
		return codec.UnexpectedEOFf("bzip2: truncated origPtr")
	}
	if int(origPos) > 10+100000*d.blockSize100k {
		return codec.DataErrorf("bzip2: origPtr out of range")
	}

	symbols, err := d.readInUseMap()
	if err != nil {
		return err
	}
	if len(symbols) == 0 {
		return codec.DataErrorf("bzip2: empty in-use map")
	}
	alphaSize := len(symbols) + 2
	eob := alphaSize - 1

	nGroups, err := d.br.Read(3)
	if err != nil {
		return codec.UnexpectedEOFf("bzip2: truncated group count")
	}
	if nGroups < 2 || nGroups > 6 {
		return codec.DataErrorf("bzip2: group count %d out of range", nGroups)
	}
	nSelectors, err := d.br.Read(15)
	if err != nil {
		return codec.UnexpectedEOFf("bzip2: truncated selector count")
	}
	if nSelectors < 1 {
		return codec.DataErrorf("bzip2: zero selectors")
	}

	selectors := make([]int, nSelectors)
	selMTF := suffixarray.NewMTFDecoder(identityAlphabet(int(nGroups)))
	for i := range selectors {
		j := 0
		for {
			bit, err := d.br.ReadBit()
			if err != nil {
				return codec.UnexpectedEOFf("bzip2: truncated selector")
			}
			if bit == 0 {
				break
			}
			j++
			if j >= int(nGroups) {
				return codec.DataErrorf("bzip2: selector rank out of range")
			}
		}
		selectors[i] = int(selMTF.Decode(j))
	}

	trees := make([]*huffman.Tree, nGroups)
	for g := range trees {
		lengths, err := readCodeLengths(d.br, alphaSize)
		if err != nil {
			return err
		}
		tree, err := huffman.NewTree(lengths, bitio.Left)
		if err != nil {
			return codec.DataErrorf("bzip2: bad code-length table: %v", err)
		}
		trees[g] = tree
	}

	nblockMax := 100000 * d.blockSize100k
	bwtBytes := make([]byte, 0, nblockMax)
	mtfDec := suffixarray.NewMTFDecoder(identityAlphabet(len(symbols)))

	groupNo, groupPos := -1, 0
	n, es := 1, 0
	for {
		if groupPos == 0 {
			groupNo++
			if groupNo >= int(nSelectors) {
				return codec.DataErrorf("bzip2: ran out of selectors")
			}
			groupPos = groupSize
		}
		groupPos--

		sym, err := trees[selectors[groupNo]].Decode(d.br)
		if err != nil {
			return err
		}

		if es > 0 && sym != 0 && sym != 1 {
			uc := symbols[mtfDec.Decode(0)]
			for i := 0; i < es; i++ {
				bwtBytes = append(bwtBytes, byte(uc))
			}
			if len(bwtBytes) >= nblockMax {
				return codec.DataErrorf("bzip2: block exceeds declared size")
			}
			n, es = 1, 0
		}

		if sym == eob {
			break
		}
		if n >= 2*1024*1024 {
			return codec.DataErrorf("bzip2: zero-run counter overflow")
		}

		switch sym {
		case 0: // RUNA
			es += n
			n <<= 1
		case 1: // RUNB
			n <<= 1
			es += n
		default:
			if len(bwtBytes) >= nblockMax {
				return codec.DataErrorf("bzip2: block exceeds declared size")
			}
			uc := symbols[mtfDec.Decode(sym-1)]
			bwtBytes = append(bwtBytes, byte(uc))
		}
	}

	if int(origPos) >= len(bwtBytes) {
		return codec.DataErrorf("bzip2: origPtr beyond block length")
	}

	out := suffixarray.Inverse(bwtBytes, int(origPos))
	if randomised {
		derandomise(out)
	}

	decoded, err := rleDecode(out)
	if err != nil {
		return err
	}

	crc := xcrc.NewBZIP2CRC()
	crc.Write(decoded)
	if crc.Sum32() != uint32(wantCRC) {
		return codec.DataErrorf("bzip2: block CRC mismatch")
	}
	d.combinedCRC = xcrc.Combine(d.combinedCRC, uint32(wantCRC))
	d.opts.tracef("bzip2: block %d: crc=0x%08x size=%d", d.blockNo, wantCRC, len(decoded))
	d.opts.reportProgress(Progress{Block: d.blockNo, Size: len(decoded)})

	d.out.Push(decoded)
	return nil
}

func (d *Decoder) readInUseMap() ([]int, error) {
	presence, err := d.br.Read(16)
	if err != nil {
		return nil, codec.UnexpectedEOFf("bzip2: truncated in-use presence map")
	}
	var symbols []int
	for g := 0; g < 16; g++ {
		if presence&(1<<uint(15-g)) == 0 {
			continue
		}
		word, err := d.br.Read(16)
		if err != nil {
			return nil, codec.UnexpectedEOFf("bzip2: truncated in-use group map")
		}
		for j := 0; j < 16; j++ {
			if word&(1<<uint(15-j)) != 0 {
				symbols = append(symbols, g*16+j)
			}
		}
	}
	return symbols, nil
}

func (d *Decoder) readTrailer() error {
	for _, want := range []byte{finalMagic1, finalMagic2, finalMagic3, finalMagic4, finalMagic5} {
		if err := d.expectByte(want); err != nil {
			return err
		}
	}
	wantCombined, err := d.br.Read(32)
	if err != nil {
		return codec.UnexpectedEOFf("bzip2: truncated stream trailer CRC")
	}
	if uint32(wantCombined) != d.combinedCRC {
		return codec.DataErrorf("bzip2: combined CRC mismatch")
	}
	d.br.SkipToNextByte()

	// A clean end of input means this is the final stream; any further
	// bytes are read as the "BZh" header of a concatenated stream, and
	// anything else there fails as bad magic.
	next, err := d.br.Peek(8)
	if err != nil {
		if err == io.EOF {
			d.eof = true
			return nil
		}
		return err
	}
	_ = next
	d.blockNo = 0
	d.combinedCRC = 0
	d.streamNo++
	return nil
}

// rleDecode expands bzip2's outer RLE1 scheme: any run of 4 identical
// bytes is followed by a count byte giving how many further copies
// follow. Grounded on readFromBlock's run-length handling in
// _examples/cosnicolaou-pbzip2/internal/bzip2/bzip2.go, restated as a
// batch pass over the whole pre-RLE block instead of that file's
// byte-at-a-time Read-driven state machine.
func rleDecode(data []byte) ([]byte, error) {
	out := make([]byte, 0, len(data))
	i := 0
	for i < len(data) {
		b := data[i]
		run := 1
		for run < 4 && i+run < len(data) && data[i+run] == b {
			run++
		}
		for k := 0; k < run; k++ {
			out = append(out, b)
		}
		i += run
		if run == 4 {
			if i >= len(data) {
				return nil, codec.DataErrorf("bzip2: truncated RLE1 count byte")
			}
			extra := int(data[i])
			i++
			for k := 0; k < extra; k++ {
				out = append(out, b)
			}
		}
	}
	return out, nil
}
