package hawk

import "sync"

// Allocator is an injected allocation capability: rather than overriding a
// process global, callers supply a scope-local implementation. The
// base-string builder is the only place the library reaches for one, and
// only when the base string doesn't fit the inline 512-byte budget (see
// basestring.go).
type Allocator interface {
	// Alloc returns a []byte with length n. Implementations may reuse
	// buffers; callers must not retain the slice past the matching Free.
	Alloc(n int) []byte
	// Free releases a buffer previously returned by Alloc.
	Free(buf []byte)
}

// poolAllocator is the default Allocator, backed by a sync.Pool so that
// multiple Context values can share it safely across goroutines.
type poolAllocator struct {
	pool sync.Pool
}

// DefaultAllocator is used by Context values that don't set one explicitly.
var DefaultAllocator Allocator = newPoolAllocator()

func newPoolAllocator() *poolAllocator {
	return &poolAllocator{
		pool: sync.Pool{
			New: func() any {
				buf := make([]byte, hardBufCap)
				return &buf
			},
		},
	}
}

func (p *poolAllocator) Alloc(n int) []byte {
	bp := p.pool.Get().(*[]byte)
	buf := *bp
	if cap(buf) < n {
		buf = make([]byte, n)
	}
	return buf[:n]
}

func (p *poolAllocator) Free(buf []byte) {
	buf = buf[:cap(buf)]
	p.pool.Put(&buf)
}
