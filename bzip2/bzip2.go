// Package bzip2 implements the BWT-based codec: an outer RLE1 pass, a
// per-block Burrows-Wheeler transform (via suffixarray), move-to-front
// recoding with a RUNA/RUNB zero-run encoding, and a multi-table
// canonical Huffman stage selected per 50-symbol group. Framing, the
// in-use symbol bitmap, the selector MTF table and the per-group
// code-length transmission all match the de facto bzip2-1.0 format, so
// this package's output is readable by any conformant bzip2 decoder and
// this package's Decoder reads any conformant bzip2 stream in turn,
// including the deprecated randomised-block variant.
//
// The teacher repo (cosnicolaou-pbzip2) carries only a decode path
// (internal/bzip2, itself adapted from the Go standard library's
// compress/bzip2); it has no encoder at all. Encoder is grounded
// directly on original_source/src/bzip2/encoder.rs, the only encoder in
// the whole reference corpus.
package bzip2

import "log"

const (
	headerB = 'B'
	headerZ = 'Z'
	headerh = 'h'
	header0 = '0'

	blockMagic0, blockMagic1, blockMagic2 = 0x31, 0x41, 0x59
	blockMagic3, blockMagic4, blockMagic5 = 0x26, 0x53, 0x59
	finalMagic0, finalMagic1, finalMagic2 = 0x17, 0x72, 0x45
	finalMagic3, finalMagic4, finalMagic5 = 0x38, 0x50, 0x90

	groupSize = 50 // BZ_G_SIZE: symbols sharing one selector's table
	nIters    = 4  // BZ_N_ITERS: Huffman table refinement passes

	lesserICost  = 0
	greaterICost = 15

	maxCodeLength = 17 // bzip2-1.0.3 and later cap group tables at 17 bits
)

// Progress reports the completion of a single block, for callers that
// want to drive a progress bar off block boundaries. Grounded on
// Progress in the teacher's parallel.go, trimmed to the fields this
// package can actually report (it has no concurrency or duration to
// measure).
type Progress struct {
	Block int
	Size  int
}

// options configures an Encoder or Decoder.
type options struct {
	level      int
	logger     *log.Logger
	progressCh chan<- Progress
}

func defaultOptions() options {
	return options{level: 9}
}

// Option configures an Encoder or a Decoder.
type Option func(*options)

// WithBlockSize sets the block size as a level from 1 (100,000 bytes per
// block) to 9 (900,000 bytes per block), matching bzip2 -1 through -9.
// Encoder defaults to level 9. Decoder ignores this option: the block
// size it uses comes from the stream header, as it must to read any
// conformant file; passing it to NewDecoder has no effect.
func WithBlockSize(level int) Option {
	return func(o *options) {
		if level < 1 || level > 9 {
			panic("bzip2: level must be between 1 and 9")
		}
		o.level = level
	}
}

// Verbose attaches a logger that receives one line per block processed,
// mirroring decompressorOpts.verbose/dc.trace in the teacher's
// bits.go/parallel.go.
func Verbose(logger *log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

func (o *options) tracef(format string, args ...any) {
	if o.logger != nil {
		o.logger.Printf(format, args...)
	}
}

// WithProgress sets the channel blocks are reported on as they complete,
// mirroring BZSendUpdates in the teacher's parallel.go. The caller owns
// the channel and is responsible for draining it; neither Encoder nor
// Decoder ever closes it.
func WithProgress(ch chan<- Progress) Option {
	return func(o *options) { o.progressCh = ch }
}

func (o *options) reportProgress(p Progress) {
	if o.progressCh != nil {
		o.progressCh <- p
	}
}
