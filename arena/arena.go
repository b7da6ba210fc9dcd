// Package arena provides a bump allocator for assembling response and
// processing byte chunks without per-chunk heap churn. An Arena is
// exclusively owned by one fetch-and-convert operation, only ever grows,
// and is dropped as a whole when the operation's final output has been
// materialized.
package arena

import "strings"

// defaultSegmentSize is the initial segment size (64KB), sized for typical
// HTTP responses of 10-100KB.
const defaultSegmentSize = 64 * 1024

// maxSegmentSize caps geometric segment growth.
const maxSegmentSize = 4 * 1024 * 1024

// Arena is an append-only byte store built from chained segments.
// Growth allocates a fresh segment; committed bytes are never moved or
// copied, so allocation amortizes to O(1) per byte and previously returned
// views stay valid for the arena's whole lifetime.
//
// An Arena is single-owner and not safe for concurrent use; each fetch
// operation creates its own and discards it when done.
type Arena struct {
	segments  [][]byte
	segSize   int
	allocated int
}

// New creates an arena with the default segment size.
func New() *Arena {
	return WithCapacity(defaultSegmentSize)
}

// WithCapacity creates an arena whose first segment holds capacity bytes.
func WithCapacity(capacity int) *Arena {
	if capacity <= 0 {
		capacity = defaultSegmentSize
	}
	return &Arena{segSize: capacity}
}

// Alloc copies data into the arena and returns a view of the copy. The
// view is owned by the arena: it must not be retained past the arena's
// lifetime and is never individually freed.
func (a *Arena) Alloc(data []byte) []byte {
	dst := a.reserve(len(data))
	copy(dst, data)
	a.allocated += len(data)
	return dst
}

// AllocString copies s into the arena and returns a view of the copy.
func (a *Arena) AllocString(s string) []byte {
	dst := a.reserve(len(s))
	copy(dst, s)
	a.allocated += len(s)
	return dst
}

// BytesAllocated returns the total committed bytes, for diagnostics.
// Monotonically non-decreasing across allocations.
func (a *Arena) BytesAllocated() int {
	return a.allocated
}

// reserve returns a writable slice of n bytes inside the current segment,
// growing by whole segments when the tail cannot fit n.
func (a *Arena) reserve(n int) []byte {
	if len(a.segments) > 0 {
		tail := a.segments[len(a.segments)-1]
		if cap(tail)-len(tail) >= n {
			off := len(tail)
			a.segments[len(a.segments)-1] = tail[:off+n]
			return tail[off : off+n : off+n]
		}
	}

	// Grow geometrically so thousands of small chunks need few segments.
	size := a.segSize
	if len(a.segments) > 0 {
		size = cap(a.segments[len(a.segments)-1]) * 2
		if size > maxSegmentSize {
			size = maxSegmentSize
		}
	}
	if size < n {
		size = n
	}

	seg := make([]byte, n, size)
	a.segments = append(a.segments, seg)
	return seg[:n:n]
}

// Buffer is a logical accumulator over one arena. Each PushString call is
// recorded as a distinct part; String exposes the single contiguous
// concatenation of all parts in append order.
type Buffer struct {
	arena *Arena
	parts [][]byte
	size  int

	// joined memoizes the contiguous form so repeated String calls do
	// not pay an O(parts) join.
	joined string
	dirty  bool
}

// NewBuffer creates a buffer accumulating into the given arena.
func NewBuffer(a *Arena) *Buffer {
	return &Buffer{arena: a}
}

// PushString appends a chunk to the buffer as one part. Empty chunks are
// ignored and recorded as no part at all.
func (b *Buffer) PushString(s string) {
	if s == "" {
		return
	}
	b.parts = append(b.parts, b.arena.AllocString(s))
	b.size += len(s)
	b.dirty = true
}

// Push appends a byte chunk to the buffer as one part.
func (b *Buffer) Push(data []byte) {
	if len(data) == 0 {
		return
	}
	b.parts = append(b.parts, b.arena.Alloc(data))
	b.size += len(data)
	b.dirty = true
}

// PartCount returns how many non-empty chunks have been pushed.
func (b *Buffer) PartCount() int {
	return len(b.parts)
}

// Len returns the total length of all parts.
func (b *Buffer) Len() int {
	return b.size
}

// String returns the concatenation of all parts in append order. The join
// is computed once and memoized until the next push.
func (b *Buffer) String() string {
	if b.dirty {
		var sb strings.Builder
		sb.Grow(b.size)
		for _, part := range b.parts {
			sb.Write(part)
		}
		b.joined = sb.String()
		b.dirty = false
	}
	return b.joined
}

// Bytes returns the concatenated content as a byte slice.
func (b *Buffer) Bytes() []byte {
	return []byte(b.String())
}

// Reset drops all parts. Arena memory stays committed; the buffer can be
// reused for another accumulation within the same operation.
func (b *Buffer) Reset() {
	b.parts = b.parts[:0]
	b.size = 0
	b.joined = ""
	b.dirty = false
}
