// Package huffman builds and uses canonical Huffman codes shared by the
// deflate, lzhuf and bzip2 codecs: length assignment (including the
// length-limited reverse package-merge algorithm), canonical code
// assignment, and a small binary-tree decoder.
package huffman

import "sort"

// MaxCodeLength is the package's nominal hard cap on code lengths.
// Callers pass a tighter limit per format (deflate allows up to 15,
// bzip2/LZHUF have their own ceilings); BuildLengths bounds lengths only
// by its limit argument and does not check it against this constant.
const MaxCodeLength = 32

// leafItem is one item during package-merge, either an original symbol or
// a package of them: its total weight and the indices of the symbols it
// contains.
type leafItem struct {
	weight uint64
	leaves []int
}

// BuildLengths assigns a canonical code length to every symbol with a
// nonzero frequency in freqs, such that no length exceeds limit. Symbols
// with zero frequency get length 0 (unused). This is a direct Go rendering
// of the reverse package-merge algorithm in
// original_source/src/huffman/cano_huff_table.rs (gen_code_lm/take_package/
// down_heap), restructured around Go slices instead of the Rust crate's
// explicit heap arrays, since the two are algorithmically equivalent
// boundary package-merge.
func BuildLengths(freqs []uint64, limit int) []uint8 {
	lengths := make([]uint8, len(freqs))

	type idxFreq struct {
		idx  int
		freq uint64
	}
	var active []idxFreq
	for i, f := range freqs {
		if f > 0 {
			active = append(active, idxFreq{i, f})
		}
	}
	switch len(active) {
	case 0:
		return lengths
	case 1:
		lengths[active[0].idx] = 1
		return lengths
	}

	sort.Slice(active, func(i, j int) bool {
		if active[i].freq != active[j].freq {
			return active[i].freq < active[j].freq
		}
		return active[i].idx < active[j].idx
	})

	leaves := make([]leafItem, len(active))
	for i, a := range active {
		leaves[i] = leafItem{weight: a.freq, leaves: []int{i}}
	}

	n := len(leaves)
	if limit < ceilLog2(n) {
		limit = ceilLog2(n)
	}

	cur := leaves
	for level := 1; level < limit; level++ {
		packages := packagePairs(cur)
		cur = mergeSorted(packages, leaves)
	}

	take := 2 * (n - 1)
	if take > len(cur) {
		take = len(cur)
	}
	counts := make([]int, n)
	for _, item := range cur[:take] {
		for _, leaf := range item.leaves {
			counts[leaf]++
		}
	}
	for i, a := range active {
		lengths[a.idx] = uint8(counts[i])
	}
	return lengths
}

func ceilLog2(n int) int {
	l := 0
	for (1 << l) < n {
		l++
	}
	return l
}

// packagePairs sums adjacent pairs of a weight-sorted list into new items,
// dropping a trailing unpaired element if the list has odd length.
func packagePairs(items []leafItem) []leafItem {
	out := make([]leafItem, 0, len(items)/2)
	for i := 0; i+1 < len(items); i += 2 {
		merged := make([]int, 0, len(items[i].leaves)+len(items[i+1].leaves))
		merged = append(merged, items[i].leaves...)
		merged = append(merged, items[i+1].leaves...)
		out = append(out, leafItem{
			weight: items[i].weight + items[i+1].weight,
			leaves: merged,
		})
	}
	return out
}

// mergeSorted merges two weight-ascending lists (packages and the original
// leaves), stable on ties with leaves ordered before packages.
func mergeSorted(packages, leaves []leafItem) []leafItem {
	out := make([]leafItem, 0, len(packages)+len(leaves))
	i, j := 0, 0
	for i < len(packages) && j < len(leaves) {
		if leaves[j].weight <= packages[i].weight {
			out = append(out, leaves[j])
			j++
		} else {
			out = append(out, packages[i])
			i++
		}
	}
	out = append(out, packages[i:]...)
	out = append(out, leaves[j:]...)
	return out
}

// AssignCodes assigns canonical codes given per-symbol code lengths, in
// ascending-length / ascending-symbol order — the algorithm in RFC 1951
// §3.2.2, which the teacher's newHuffmanTree (internal/bzip2/huffman.go)
// also implements (there, by sorting (length, symbol) pairs and
// incrementing an MSB-packed counter; this is the same assignment, just
// computed with the RFC's two-pass bl_count/next_code method).
func AssignCodes(lengths []uint8) []uint32 {
	var maxLen uint8
	for _, l := range lengths {
		if l > maxLen {
			maxLen = l
		}
	}
	blCount := make([]int, maxLen+1)
	for _, l := range lengths {
		if l > 0 {
			blCount[l]++
		}
	}
	nextCode := make([]uint32, maxLen+1)
	code := uint32(0)
	for bits := 1; bits <= int(maxLen); bits++ {
		code = (code + uint32(blCount[bits-1])) << 1
		nextCode[bits] = code
	}
	codes := make([]uint32, len(lengths))
	for sym, l := range lengths {
		if l == 0 {
			continue
		}
		codes[sym] = nextCode[l]
		nextCode[l]++
	}
	return codes
}
