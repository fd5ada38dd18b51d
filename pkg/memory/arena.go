// Package memory implements the per-tile, per-sample bump allocator used to
// hold BSDFs and BxDFs built during shading: many small, short-lived
// allocations that all die together when the arena is reset after a
// sample, rather than being freed one at a time.
package memory

import "unsafe"

// CacheLineSize is the assumed L1 cache line size; blocks are aligned to
// it so a block never straddles a line with unrelated data.
const CacheLineSize = 64

// DefaultBlockSize is the minimum size of a freshly allocated block.
const DefaultBlockSize = 256 * 1024

type block struct {
	buf    []byte
	offset int
}

func newBlock(size int) *block {
	// Over-allocate by CacheLineSize so the usable region can start at an
	// aligned offset regardless of where the Go allocator placed buf.
	return &block{buf: make([]byte, size+CacheLineSize)}
}

func (b *block) alignedBase() int {
	addr := uintptr(unsafe.Pointer(&b.buf[0]))
	pad := (CacheLineSize - int(addr%CacheLineSize)) % CacheLineSize
	return pad
}

// Arena is a block-list bump allocator. One Arena is created per worker
// goroutine per tile; Reset() is called between samples and the Arena is
// dropped (garbage collected) at tile end — there is no explicit Free,
// matching the pool's "reset returns blocks to a free list" contract via
// Go's GC reclaiming anything never reachable again.
type Arena struct {
	blockSize int
	current   *block
	used      []*block
	free      []*block
	totalSize int
}

// New creates an arena whose blocks are at least blockSize bytes; a
// blockSize <= 0 uses DefaultBlockSize.
func New(blockSize int) *Arena {
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	return &Arena{blockSize: blockSize}
}

// Size returns total bytes currently owned by the arena (used + free
// blocks); it never shrinks across Reset calls.
func (a *Arena) Size() int { return a.totalSize }

// alloc returns n bytes starting on an 8-byte boundary from the current
// block, pulling a free block or allocating a new one as needed. A block
// taken from the free list keeps whatever earlier allocations wrote; only a
// newly allocated block starts zeroed.
func (a *Arena) alloc(n int) []byte {
	if a.current != nil {
		base := a.current.alignedBase()
		start := base + a.current.offset
		// Round start up to the next 8-byte boundary to keep subsequent
		// typed allocations naturally aligned for their own fields.
		if rem := start % 8; rem != 0 {
			start += 8 - rem
		}
		if start+n <= len(a.current.buf) {
			a.current.offset = start + n - base
			return a.current.buf[start : start+n : start+n]
		}
		a.used = append(a.used, a.current)
		a.current = nil
	}

	// Try a retired free block large enough to satisfy this request.
	for i, blk := range a.free {
		if len(blk.buf) >= n+CacheLineSize {
			a.free = append(a.free[:i], a.free[i+1:]...)
			blk.offset = 0
			a.current = blk
			return a.alloc(n)
		}
	}

	size := a.blockSize
	if n > size {
		size = n
	}
	nb := newBlock(size)
	a.totalSize += len(nb.buf)
	a.current = nb
	return a.alloc(n)
}

// Reset returns every block (current and used) to the free list without
// releasing the underlying memory, so the next sample's allocations reuse
// the same backing storage.
func (a *Arena) Reset() {
	if a.current != nil {
		a.used = append(a.used, a.current)
		a.current = nil
	}
	a.free = append(a.free, a.used...)
	a.used = a.used[:0]
}

// Alloc returns a pointer to a zero-valued T carved out of the arena. The
// pointer is valid only until the next Reset.
func Alloc[T any](a *Arena) *T {
	var zero T
	size := int(unsafe.Sizeof(zero))
	buf := a.alloc(size)
	p := (*T)(unsafe.Pointer(&buf[0]))
	*p = zero
	return p
}

// AllocSlice returns an arena-backed slice of n T values.
func AllocSlice[T any](a *Arena, n int) []T {
	if n == 0 {
		return nil
	}
	var zero T
	elemSize := int(unsafe.Sizeof(zero))
	buf := a.alloc(elemSize * n)
	return unsafe.Slice((*T)(unsafe.Pointer(&buf[0])), n)
}
