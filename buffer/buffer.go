// Package buffer implements a flat, strictly-disjoint-owned typed buffer: a
// resizable slice with an allocate/write/read vocabulary, standing in for
// the host side of a zero-copy device buffer without an actual GPU backend.
package buffer

import (
	"fmt"
)

// Buffer is a flat, contiguous, typed array. It owns its storage exclusively
// for its lifetime, so callers can safely hand out disjoint sub-slices of
// it to concurrent per-invocation writers.
type Buffer[T any] struct {
	name string
	data []T
}

// New creates an empty named buffer.
func New[T any](name string) *Buffer[T] {
	return &Buffer[T]{name: name}
}

// Allocate resizes the buffer to hold exactly n elements, discarding any
// previous contents.
func (b *Buffer[T]) Allocate(n int) {
	b.data = make([]T, n)
}

// AllocateToFit grows the buffer (if needed) to fit data, without copying.
func (b *Buffer[T]) AllocateToFit(n int) {
	if cap(b.data) >= n {
		b.data = b.data[:n]
		return
	}
	b.data = make([]T, n)
}

// WriteData copies data into the buffer starting at offset. It returns an
// error if the buffer is too small to hold it.
func (b *Buffer[T]) WriteData(data []T, offset int) error {
	if offset < 0 || offset+len(data) > len(b.data) {
		return fmt.Errorf("buffer %q: insufficient space (%d) for writing %d elements at offset %d", b.name, len(b.data), len(data), offset)
	}
	copy(b.data[offset:], data)
	return nil
}

// ReadData copies size elements starting at srcOffset into dst starting at
// dstOffset. size <= 0 reads everything from srcOffset to the end of the
// buffer.
func (b *Buffer[T]) ReadData(srcOffset, dstOffset, size int, dst []T) error {
	if size <= 0 {
		size = len(b.data) - srcOffset
	}
	if srcOffset < 0 || srcOffset+size > len(b.data) {
		return fmt.Errorf("buffer %q: read range [%d:%d] out of bounds (len %d)", b.name, srcOffset, srcOffset+size, len(b.data))
	}
	if dstOffset+size > len(dst) {
		return fmt.Errorf("buffer %q: destination too small for %d elements at offset %d", b.name, size, dstOffset)
	}
	copy(dst[dstOffset:dstOffset+size], b.data[srcOffset:srcOffset+size])
	return nil
}

// Data returns the buffer's backing slice.
func (b *Buffer[T]) Data() []T {
	return b.data
}

// Len returns the number of elements currently allocated.
func (b *Buffer[T]) Len() int {
	return len(b.data)
}

// Release discards the buffer's storage.
func (b *Buffer[T]) Release() {
	b.data = nil
}
