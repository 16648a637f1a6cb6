package lzhuf

import "math/bits"

const (
	minMatch = 3
	maxMatch = 256
	// symAlphabet covers literal bytes 0-255 plus length codes 256..509
	// (match length 3..256 offset by 256-minMatch), matching
	// original_source/src/lzhuf/encoder.rs's size_of_symbol_freq_buf.
	symAlphabet = maxMatch + 256 - minMatch + 1
)

// offsetAlphabet returns how many distinct posOffset magnitude classes a
// dictionary of 1<<dictBits bytes can ever produce (0..dictBits).
func offsetAlphabet(dictBits int) int {
	return dictBits + 1
}

// ceilLog2Pos returns the smallest e with 1<<e >= n, for n >= 1.
func ceilLog2Pos(n int) uint {
	if n <= 1 {
		return 0
	}
	return uint(bits.Len(uint(n - 1)))
}

// splitDistance converts an lzss back-reference distance (1-based: 1
// means the immediately preceding byte) into LZHUF's magnitude-class
// encoding: posOffset is the number of bits needed to express the
// 0-based distance's magnitude, and posSublen is what remains once the
// leading 1 implied by posOffset is stripped off. Ported from
// LzhufLzssCode::from in original_source/src/lzhuf/encoder.rs, which
// performs the identical split on its own 0-based pos field (here,
// pos = distance-1).
func splitDistance(distance int) (posOffset, posSublen uint16) {
	pos := distance - 1
	off := ceilLog2Pos(pos + 1)
	po := 1 << off
	return uint16(off), uint16(pos - po/2)
}

// joinDistance is splitDistance's inverse, grounded on the mirror
// computation in original_source/src/lzhuf/decoder.rs's
// LzhufDecoderInner::next.
func joinDistance(posOffset, posSublen uint16) int {
	var pos int
	if posOffset > 1 {
		pos = (1 << (posOffset - 1)) | int(posSublen)
	} else {
		pos = int(posOffset)
	}
	return pos + 1
}

func lengthToSymbol(length int) uint16 {
	return uint16(length + 256 - minMatch)
}

func symbolToLength(sym uint16) int {
	return int(sym) - 256 + minMatch
}
