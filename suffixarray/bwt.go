// Package suffixarray builds the Burrows-Wheeler transform bzip2 needs
// (forward, over a cyclic block with no sentinel) and inverts it via
// cumulative-count LF-mapping, plus the move-to-front recoding BWT output
// is always paired with.
package suffixarray

// Forward computes the Burrows-Wheeler transform of data, treated as
// cyclic (bzip2 never appends an end-of-block sentinel before sorting —
// spec.md §6). It returns the transformed bytes and origPtr, the rank of
// data's own rotation (rotation 0) among all n sorted rotations.
//
// The rotation order is found by SA-IS (induced sorting), ported from
// original_source/src/suffix_array/sais.rs: arrayRotateForNonSentinelBWT
// locates a rotation point that stands in for the sentinel ordinary SA-IS
// needs, then saIS sorts around it in linear time. computeSuffixArray
// returns each rotation's starting offset in data; Forward turns that into
// BWT bytes the way sais.rs's own test helpers do, by taking the byte one
// position before each rotation's start (wrapping at 0).
func Forward(data []byte) (out []byte, origPtr int) {
	n := len(data)
	if n == 0 {
		return nil, 0
	}
	if n == 1 {
		return []byte{data[0]}, 0
	}

	sa := computeSuffixArray(data, 255)

	out = make([]byte, n)
	for i, rotStart := range sa {
		if rotStart == 0 {
			out[i] = data[n-1]
			origPtr = i
		} else {
			out[i] = data[rotStart-1]
		}
	}
	return out, origPtr
}

// Inverse reconstructs the original block from its BWT output and
// origPtr, using cumulative-count LF-mapping — the same technique as
// _examples/cosnicolaou-pbzip2/internal/bzip2/bzip2.go's inverseBWT,
// rendered here as two plain slices (cumulative counts, then a next[]
// permutation) instead of that file's single packed-uint32 tt trick,
// since this package has no reason to share bzip2's RLE output buffer.
func Inverse(bwt []byte, origPtr int) []byte {
	n := len(bwt)
	if n == 0 {
		return nil
	}
	var counts [256]int
	for _, b := range bwt {
		counts[b]++
	}
	var cumulative [256]int
	sum := 0
	for i := 0; i < 256; i++ {
		cumulative[i] = sum
		sum += counts[i]
	}

	next := make([]int, n)
	var seen [256]int
	for i, b := range bwt {
		next[cumulative[b]+seen[b]] = i
		seen[b]++
	}

	out := make([]byte, n)
	p := next[origPtr]
	for i := 0; i < n; i++ {
		out[i] = bwt[p]
		p = next[p]
	}
	return out
}
