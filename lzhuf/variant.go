// Package lzhuf implements the four classic LZHUF/LHA window variants
// (lh4/lh5/lh6/lh7): LZSS matching feeding a per-block canonical Huffman
// stage, with the symbol code-length table itself compressed through a
// secondary Huffman layer — the scheme LHA popularized and
// rust-compression ports faithfully.
package lzhuf

import (
	"math/bits"

	"github.com/nicolaou-labs/blockcodec/lzss"
)

// Method selects one of the four LZHUF window/distance-width variants,
// differing only in dictionary size and how many bits the offset table's
// header count field uses.
type Method int

const (
	LH4 Method = iota
	LH5
	LH6
	LH7
)

// dictionaryBits returns log2 of the variant's sliding-window size.
func (m Method) dictionaryBits() int {
	switch m {
	case LH4:
		return 12
	case LH5:
		return 13
	case LH6:
		return 15
	default:
		return 16
	}
}

// offsetBits returns the width of the offset table's header count field.
// Lh4/Lh5's smaller dictionaries never need more than 15 distinct
// magnitude classes, so a 4-bit field suffices; Lh6/Lh7 need 5.
func (m Method) offsetBits() int {
	switch m {
	case LH4, LH5:
		return 4
	default:
		return 5
	}
}

// matchComparator builds the distance-cost comparator SearchDic uses to
// break ties among same-call candidates: posOffset is transmitted as a
// magnitude class (its bit length) plus that many raw extra bits, so one
// more bit of match length is only worth trading away for a nearer
// candidate up to the point where the saved extra bits outweigh it. The
// trade-off is scaled by the variant's own dictionaryBits: the weight of
// one byte of length is dictionaryBits/2 offset bits (6 for LH4/LH5, 7
// for LH6, 8 for LH7), so the wider windows give up length for a closer
// match less readily than LH4/LH5 do. Ported from the
// length/position trade-off in original_source/src/lzss/mod.rs's own
// example comparison closure (`(len<<3)+pos` cross-compared), here
// generalized from a flat shift to a per-variant weight instead of a
// fixed 8.
func (m Method) matchComparator() lzss.Comparator {
	weight := m.dictionaryBits() / 2
	return func(a, b lzss.MatchInfo) int {
		scoreA := a.Len*weight - bits.Len(uint(a.Pos))
		scoreB := b.Len*weight - bits.Len(uint(b.Pos))
		return scoreB - scoreA
	}
}

func (m Method) String() string {
	switch m {
	case LH4:
		return "lh4"
	case LH5:
		return "lh5"
	case LH6:
		return "lh6"
	default:
		return "lh7"
	}
}
