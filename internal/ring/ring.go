// Package ring provides the small fixed-capacity circular structures the
// LZSS matcher and BWT pipeline share: a generic circular buffer (grounded
// on original_source/src/cbuffer.rs, used by lzss/slidedict.rs for both the
// byte window and the hash-chain position deltas) and a compact bit array.
package ring

// Buffer is a fixed-capacity circular buffer. Once full, Push evicts the
// oldest element. It is the Go analogue of rust-compression's
// CircularBuffer<T>, used in this module both for the LZSS sliding window
// (T=byte) and its hash-chain position deltas (T=int).
type Buffer[T any] struct {
	data []T
	pos  int // next write position
	full bool
}

// NewBuffer creates a buffer with the given fixed capacity.
func NewBuffer[T any](capacity int) *Buffer[T] {
	if capacity <= 0 {
		panic("ring: capacity must be positive")
	}
	return &Buffer[T]{data: make([]T, capacity)}
}

// Cap returns the buffer's fixed capacity.
func (b *Buffer[T]) Cap() int { return len(b.data) }

// Len returns the number of elements currently stored (at most Cap()).
func (b *Buffer[T]) Len() int {
	if b.full {
		return len(b.data)
	}
	return b.pos
}

// Push appends one element, evicting the oldest if the buffer is full.
func (b *Buffer[T]) Push(v T) {
	b.data[b.pos] = v
	b.pos++
	if b.pos == len(b.data) {
		b.pos = 0
		b.full = true
	}
}

// PushAll appends a slice of elements in order.
func (b *Buffer[T]) PushAll(vs []T) {
	for _, v := range vs {
		b.Push(v)
	}
}

// At returns the element idx slots behind the most recently pushed one:
// At(0) is the most recent push, At(1) the one before it, and so on. idx
// must be less than Len().
func (b *Buffer[T]) At(idx int) T {
	cap := len(b.data)
	p := b.pos - 1 - idx
	p %= cap
	if p < 0 {
		p += cap
	}
	return b.data[p]
}

// RawIndex converts a logical "distance behind head" into a physical index
// into the backing array, for callers (the LZSS matcher's check-match loop)
// that want to walk the buffer directly without repeated modulo math.
func (b *Buffer[T]) RawIndex(distanceBehind int) int {
	cap := len(b.data)
	p := b.pos - 1 - distanceBehind
	p %= cap
	if p < 0 {
		p += cap
	}
	return p
}

// RawLen returns the backing array's length (its physical capacity),
// distinct from Len when the buffer has not yet wrapped.
func (b *Buffer[T]) RawLen() int { return len(b.data) }

// RawAt indexes the backing array directly by physical index.
func (b *Buffer[T]) RawAt(i int) T { return b.data[i] }

// HeadPos returns the physical index one past the most recently pushed
// element (equivalently, the next write position).
func (b *Buffer[T]) HeadPos() int { return b.pos }
