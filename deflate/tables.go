// Package deflate implements RFC 1951 DEFLATE: stored, fixed-Huffman and
// dynamic-Huffman blocks, built from the shared bitio/huffman/lzss
// sub-engines.
package deflate

// lengthBase/lengthExtra give the base length and extra-bit count for
// length symbols 257..285, per RFC 1951 §3.2.5.
var lengthBase = [29]int{
	3, 4, 5, 6, 7, 8, 9, 10, 11, 13, 15, 17, 19, 23, 27, 31,
	35, 43, 51, 59, 67, 83, 99, 115, 131, 163, 195, 227, 258,
}
var lengthExtra = [29]uint{
	0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 2, 2,
	3, 3, 3, 3, 4, 4, 4, 4, 5, 5, 5, 5, 0,
}

// distBase/distExtra give the base distance and extra-bit count for
// distance symbols 0..29, per RFC 1951 §3.2.5.
var distBase = [30]int{
	1, 2, 3, 4, 5, 7, 9, 13, 17, 25, 33, 49, 65, 97, 129, 193,
	257, 385, 513, 769, 1025, 1537, 2049, 3073, 4097, 6145,
	8193, 12289, 16385, 24577,
}
var distExtra = [30]uint{
	0, 0, 0, 0, 1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 6,
	7, 7, 8, 8, 9, 9, 10, 10, 11, 11, 12, 12, 13, 13,
}

const (
	endOfBlock     = 256
	numLitSyms     = 286 // 0-255 literals, 256 EOB, 257-285 lengths
	numDistSyms    = 30
	maxMatchLength = 258
	windowBits     = 15
	windowSize     = 1 << windowBits
	minMatch       = 3

	// The code-length alphabet used to transmit a dynamic block's own
	// Huffman tables (RFC 1951 §3.2.7), in the order the RFC requires the
	// 3-bit lengths to be transmitted.
	numCodeLenSyms = 19
)

var codeLengthOrder = [numCodeLenSyms]int{
	16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15,
}

// fixedLitLengths is the fixed literal/length code-length table, RFC 1951
// §3.2.6: 0-143 get 8 bits, 144-255 get 9, 256-279 get 7, 280-287 get 8.
func fixedLitLengths() []uint8 {
	l := make([]uint8, 288)
	for i := 0; i <= 143; i++ {
		l[i] = 8
	}
	for i := 144; i <= 255; i++ {
		l[i] = 9
	}
	for i := 256; i <= 279; i++ {
		l[i] = 7
	}
	for i := 280; i <= 287; i++ {
		l[i] = 8
	}
	return l
}

// fixedDistLengths is the fixed distance code-length table: all 5 bits.
func fixedDistLengths() []uint8 {
	l := make([]uint8, 32)
	for i := range l {
		l[i] = 5
	}
	return l
}

func lengthToSymbol(length int) (sym int, extra int, extraBits uint) {
	for i := len(lengthBase) - 1; i >= 0; i-- {
		if length >= lengthBase[i] {
			return 257 + i, length - lengthBase[i], lengthExtra[i]
		}
	}
	panic("deflate: length out of range")
}

func distToSymbol(dist int) (sym int, extra int, extraBits uint) {
	for i := len(distBase) - 1; i >= 0; i-- {
		if dist >= distBase[i] {
			return i, dist - distBase[i], distExtra[i]
		}
	}
	panic("deflate: distance out of range")
}
