package suffixarray

// maxPos marks an unfilled slot in a suffix array under construction,
// playing the role of usize::MAX in the Rust original.
const maxPos = int(^uint(0) >> 1)

// forEachCyclic visits 0..count in the rotated order sa_is needs whenever
// it walks "all positions except the synthetic cut point, starting right
// after it": shift+1..count, then 0..shift. With shift == 0 this is plain
// 0..count.
func forEachCyclic(shift, count int, f func(i int)) {
	for i := shift + 1; i < count; i++ {
		f(i)
	}
	for i := 0; i < shift; i++ {
		f(i)
	}
}

func fillInt(array []int, offset, count, value int) {
	for i := offset; i < offset+count; i++ {
		array[i] = value
	}
}

// arrayRotateForNonSentinelBWT finds a rotation point for a sentinel-free
// cyclic suffix sort: the position whose successor chain is the unique
// smallest rotation (ties broken by following the chain further), returned
// as an offset sais can treat as if it were the index right after an
// artificial end-of-string marker. Ported directly from
// original_source/src/suffix_array/sais.rs's
// array_rotate_for_non_sentinel_bwt.
func arrayRotateForNonSentinelBWT(array []byte, sarray []int, bucketMax int) int {
	n1 := 0
	val := bucketMax + 1
	prevPos := 0
	count := len(array)
	for i, a := range array {
		j := int(a)
		if val > j {
			sarray[0] = i
			val = j
			n1 = 1
			prevPos = i
		} else if val == j {
			prevPos++
			if prevPos != i {
				sarray[n1] = i
				n1++
			}
		}
	}

	for i := 0; i < count; i++ {
		n2 := 0
		val = bucketMax + 1
		for j := 0; j < n1; j++ {
			k := sarray[j] + 1
			if k >= count {
				k -= count
			}
			l := int(array[k])
			if val == l {
				sarray[n2] = k
				n2++
			} else if val > l {
				sarray[0] = k
				val = l
				n2 = 1
			}
		}
		if n2 == 1 {
			if sarray[0] <= i {
				return sarray[0] + count - i - 1
			}
			return sarray[0] - i - 1
		}
		n1 = n2
	}
	return sarray[0]
}

// induceSA runs the two induction sweeps SA-IS uses both to build the
// initial placement of LMS substrings and, later, to spread that placement
// into a full suffix array: first all L-type positions, left to right, each
// induced from the suffix one to its right; then all S-type positions,
// right to left, each induced from the suffix one to its right. Ported from
// sais.rs's induce_sa.
func induceSA[T Sym](bb *bucketBuilder[T], typeArray *lsTypeArray, suffixArray []int, shift int) {
	n := typeArray.len()

	// compute SAl
	{
		bkt := bb.build(false)

		k := n
		if shift != 0 {
			k = shift
		}
		k--
		bk := bkt.get(k)
		suffixArray[bk] = k
		bkt.set(k, bk+1)

		for i := 0; i < n; i++ {
			j := suffixArray[i]
			if j < maxPos && j != shift {
				if j == 0 {
					j = n
				}
				j--
				if !typeArray.get(j) {
					bj := bkt.get(j)
					suffixArray[bj] = j
					bkt.set(j, bj+1)
				}
			}
		}
	}

	// compute SAs
	{
		bkt := bb.build(true)
		for i := n - 1; i >= 0; i-- {
			j := suffixArray[i]
			if j < maxPos && j != shift {
				if j == 0 {
					j = n
				}
				j--
				if typeArray.get(j) {
					bj := bkt.get(j) - 1
					bkt.set(j, bj)
					suffixArray[bj] = j
				}
			}
		}
	}
}

// saIS finds the suffix array of array (cyclic if shift != 0, sentinel-
// terminated at shift == 0) by induced sorting, recursing on a reduced
// integer string when LMS substrings aren't already pairwise distinct.
// Ported from sais.rs's sa_is, with one simplification Go's lack of a
// borrow checker allows: the Rust original builds its reduced-problem
// subslice s1 with an unsafe raw-pointer alias into suffix_array because
// the borrow checker cannot see that the two regions it uses ([0, n1) for
// the recursive call's own output, [count-n1, count) for the reduced
// string it reads) never overlap; Go slices over the same backing array
// express that safely with no unsafe block.
func saIS[T Sym](array []T, suffixArray []int, bucketMin, bucketMax, shift int) {
	count := len(array)
	typeArray := newLSTypeArray(array, shift)

	// stage 1: reduce the problem by at least 1/2 by sorting all the
	// S-substrings.
	bb := newBucketBuilder(array, bucketMin, bucketMax)
	bkt := bb.build(true)

	fillInt(suffixArray, 0, count, maxPos)

	forEachCyclic(shift, count, func(i int) {
		if typeArray.lms(i) {
			bi := bkt.get(i) - 1
			bkt.set(i, bi)
			suffixArray[bi] = i
		}
	})
	induceSA(bb, typeArray, suffixArray, shift)

	// compact all the sorted substrings into the first n1 items of SA.
	n1 := 0
	for i := 0; i < count; i++ {
		if typeArray.lms(suffixArray[i]) {
			suffixArray[n1] = suffixArray[i]
			n1++
		}
	}

	// find the lexicographic names of substrings.
	fillInt(suffixArray, n1, count-n1, maxPos)
	name := 0
	prevStore := maxPos

	for i := 0; i < n1; i++ {
		prev := prevStore
		pos := suffixArray[i]
		now := pos
		diff := false
		for {
			if prev == maxPos || now == shift || prev == shift ||
				array[now] != array[prev] || typeArray.get(now) != typeArray.get(prev) {
				diff = true
				break
			} else if now != pos && (typeArray.lms(now) || typeArray.lms(prev)) {
				break
			}

			if now == count-1 {
				now = 0
			} else {
				now++
			}
			if prev == count-1 {
				prev = 0
			} else {
				prev++
			}
		}
		if diff {
			name++
			prevStore = pos
		}
		if pos > shift {
			pos -= shift
		} else {
			pos += count - shift
		}
		pos >>= 1
		suffixArray[n1+pos] = name - 1
	}
	{
		j := count - 1
		for i := j; i >= n1; i-- {
			if suffixArray[i] < maxPos {
				suffixArray[j] = suffixArray[i]
				j--
			}
		}
	}

	// stage 2: solve the reduced problem, recursing only if names are not
	// yet unique. s1 aliases the tail n1 slots of suffixArray (safe: the
	// recursive call only ever writes indices [0, n1), and 2*n1 <= count is
	// an invariant of the reduction above).
	s1 := suffixArray[count-n1 : count]
	if name < n1 {
		saIS(s1, suffixArray, 0, name-1, 0)
	} else {
		for i, s := range s1 {
			suffixArray[s] = i
		}
	}

	// stage 3: induce the result for the original problem.
	bucket2 := bb.build(true)
	{
		j := 0
		forEachCyclic(shift, count, func(i int) {
			if typeArray.lms(i) {
				s1[j] = i
				j++
			}
		})
	}

	for i := 0; i < n1; i++ {
		suffixArray[i] = s1[suffixArray[i]]
	}

	fillInt(suffixArray, n1, count-n1, maxPos)

	for i := n1 - 1; i >= 0; i-- {
		j := suffixArray[i]
		suffixArray[i] = maxPos
		b2j := bucket2.get(j) - 1
		bucket2.set(j, b2j)
		suffixArray[b2j] = j
	}

	induceSA(bb, typeArray, suffixArray, shift)
}

// computeSuffixArray returns the rotation order (as starting offsets into
// array, treated cyclically) SA-IS finds for array over an alphabet of
// [0, maxValue]. Ported from sais.rs's bwt(): the rotation point found by
// arrayRotateForNonSentinelBWT stands in for the sentinel plain SA-IS
// requires.
func computeSuffixArray(array []byte, maxValue int) []int {
	suffixArray := make([]int, len(array))
	shift := arrayRotateForNonSentinelBWT(array, suffixArray, maxValue)
	saIS(array, suffixArray, 0, maxValue, shift)
	return suffixArray
}
