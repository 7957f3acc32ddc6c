package ringbuf

import (
	"iter"
	"slices"
)

type (
	// Ring is a growable array whose logical start may be rotated without
	// moving its items
	Ring[T any] struct {
		buf  []T
		head int
	}
)

// New creates a new empty [*Ring]
func New[T any]() *Ring[T] {
	return &Ring[T]{
		buf:  nil,
		head: 0,
	}
}

// Len returns the number of items
func (b *Ring[T]) Len() int {
	return len(b.buf)
}

func (b *Ring[T]) empty() bool {
	return len(b.buf) == 0
}

// index maps a logical index in [0, Len()) to its physical index
func (b *Ring[T]) index(i int) int {
	k := i + b.head
	if k >= len(b.buf) {
		k -= len(b.buf)
	}
	return k
}

// normalize lays the items out in logical order so that head is 0
func (b *Ring[T]) normalize() {
	if b.head == 0 {
		return
	}
	slices.Reverse(b.buf[:b.head])
	slices.Reverse(b.buf[b.head:])
	slices.Reverse(b.buf)
	b.head = 0
}

// Append adds an item at the logical end of the current rotation
func (b *Ring[T]) Append(m T) {
	if b.empty() {
		b.buf = append(b.buf, m)
		b.head = 0
		return
	}
	b.normalize()
	b.buf = append(b.buf, m)
}

// Get returns the item at a logical index. It returns false if the index is
// out of range.
func (b *Ring[T]) Get(i int) (T, bool) {
	if i < 0 || i >= len(b.buf) {
		var zero T
		return zero, false
	}
	return b.buf[b.index(i)], true
}

// Rotate moves the logical start by delta. Positive values rotate toward
// higher indices, and negative values toward lower indices. Rotating an
// empty ring does nothing.
func (b *Ring[T]) Rotate(delta int) {
	if b.empty() {
		return
	}
	n := len(b.buf)
	d := delta % n
	if d < 0 {
		d += n
	}
	b.head = (b.head + d) % n
}

// All returns an iterator over the items in logical order
func (b *Ring[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < b.Len(); i++ {
			m, ok := b.Get(i)
			if !ok {
				return
			}
			if !yield(m) {
				return
			}
		}
	}
}

// Slice returns a copy of the items in logical order
func (b *Ring[T]) Slice() []T {
	s := make([]T, 0, b.Len())
	for m := range b.All() {
		s = append(s, m)
	}
	return s
}
