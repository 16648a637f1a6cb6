package suffixarray

import "github.com/nicolaou-labs/blockcodec/internal/ring"

// lsTypeArray classifies every position of array as L-type or S-type and
// marks which S-type positions are LMS (leftmost S-type): immediately
// preceded by an L-type position. bzip2 never appends an end-of-block
// sentinel before sorting, so shift names the synthetic rotation boundary
// that stands in for one — shift == 0 is the ordinary linear case (true
// sentinel at the last position); shift != 0 classifies around the cyclic
// wrap at that boundary instead. Ported from
// original_source/src/suffix_array/ls_type.rs's LSTypeArray::with_shift.
type lsTypeArray struct {
	bitmap *ring.BitArray
	isLMS  *ring.BitArray
}

func newLSTypeArray[T Sym](array []T, shift int) *lsTypeArray {
	count := len(array)
	bitmap := ring.NewBitArray(count)
	start := count
	if shift != 0 {
		start = shift
	}

	// the sentinel (real or synthetic) must come out S-type.
	for i := start - 1; i >= 1; i-- {
		v := bitmap.Get(i)
		if array[i] != array[i-1] {
			v = array[i-1] < array[i]
		}
		if v {
			bitmap.Set(i - 1)
		}
	}

	if shift != 0 {
		v := bitmap.Get(0)
		if array[0] != array[count-1] {
			v = array[count-1] < array[0]
		}
		if v {
			bitmap.Set(count - 1)
		}
		for i := count - 1; i >= shift+1; i-- {
			v := bitmap.Get(i)
			if array[i] != array[i-1] {
				v = array[i-1] < array[i]
			}
			if v {
				bitmap.Set(i - 1)
			}
		}
	}

	isLMS := ring.NewBitArray(count)
	if shift == 0 {
		old := true
		for i := 0; i < count; i++ {
			b := bitmap.Get(i)
			if b && !old {
				isLMS.Set(i)
			}
			old = b
		}
	} else {
		old := bitmap.Get(count - 1)
		for i := 0; i < count; i++ {
			b := bitmap.Get(i)
			if i != shift && b && !old {
				isLMS.Set(i)
			}
			old = b
		}
	}

	return &lsTypeArray{bitmap: bitmap, isLMS: isLMS}
}

func (t *lsTypeArray) get(idx int) bool { return t.bitmap.Get(idx) }
func (t *lsTypeArray) lms(idx int) bool { return t.isLMS.Get(idx) }
func (t *lsTypeArray) len() int         { return t.bitmap.Len() }
