package suffixarray

// Sym is the alphabet element type the SA-IS induced sorter can run over:
// raw input bytes at the top level, then (once the problem is reduced) the
// integer ranks assigned to LMS substrings. Ported from sa_is's own generic
// bound (original_source/src/suffix_array/sais.rs: `T: Copy + PartialEq<T>
// + PartialOrd<T>` with `usize: From<T>`) — Go generics make the two
// instantiations (byte, int) explicit instead of monomorphizing implicitly.
type Sym interface {
	~uint8 | ~int
}

// bucketBuilder computes, once per alphabet, the per-symbol counting-sort
// histogram that induced sorting repeatedly turns into either "bucket head"
// or "bucket tail" cursors. Ported from
// original_source/src/suffix_array/bucket.rs's BucketBuilder; that file
// keeps the raw cumulative-count array around and re-slices it per build()
// call, a dance needed there to satisfy the borrow checker across the
// Box<[usize]> — here build() just recomputes the running sum, which is the
// same arithmetic with none of the aliasing concerns.
type bucketBuilder[T Sym] struct {
	array  []T
	min    int
	counts []int
}

func newBucketBuilder[T Sym](array []T, min, max int) *bucketBuilder[T] {
	counts := make([]int, max-min+1)
	for _, a := range array {
		counts[int(a)-min]++
	}
	return &bucketBuilder[T]{array: array, min: min, counts: counts}
}

// build returns bucket-tail cursors (hasEnd true, one past each symbol's
// last slot, counted down as S-type/LMS suffixes are placed) or bucket-head
// cursors (hasEnd false, counted up as L-type suffixes are placed).
func (bb *bucketBuilder[T]) build(hasEnd bool) *bucket[T] {
	offsets := make([]int, len(bb.counts))
	sum := 0
	for i, c := range bb.counts {
		if hasEnd {
			sum += c
			offsets[i] = sum
		} else {
			offsets[i] = sum
			sum += c
		}
	}
	return &bucket[T]{array: bb.array, min: bb.min, offsets: offsets}
}

// bucket is a per-symbol write cursor addressed by position in array, not
// by symbol directly: get/set(idx) look up array[idx]'s symbol and
// read/write that symbol's current cursor. Ported from bucket.rs's
// Index/IndexMut impls on Bucket<'a, T>.
type bucket[T Sym] struct {
	array   []T
	min     int
	offsets []int
}

func (b *bucket[T]) get(idx int) int     { return b.offsets[int(b.array[idx])-b.min] }
func (b *bucket[T]) set(idx int, v int)  { b.offsets[int(b.array[idx])-b.min] = v }
