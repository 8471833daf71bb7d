package arena

import "sync"

// Strategy resolves an input byte length into a ready-to-use Arena.
// It mirrors the original sajson allocation_strategy hierarchy
// (single_allocation vs. a pooled variant, in place of the original's
// dynamic/growing allocator, which is incompatible with the one-
// buffer-per-document invariant this design keeps).
type Strategy interface {
	// Allocate returns an Arena with at least inputLen words of
	// capacity, or an error if allocation failed.
	Allocate(inputLen int) (*Arena, error)
	// Release returns an Arena's backing storage, once its document is
	// done with it, for strategies that recycle buffers.
	Release(a *Arena)
}

// singleAllocation allocates a fresh []Word for every parse and lets
// the garbage collector reclaim it when the document is dropped. This
// is the default strategy and the one spec.md's invariants describe.
type singleAllocation struct{}

// SingleAllocation is the default Strategy: one fresh buffer per parse,
// sized to exactly one word per input byte (the documented worst case).
func SingleAllocation() Strategy { return singleAllocation{} }

func (singleAllocation) Allocate(inputLen int) (*Arena, error) {
	return New(make([]Word, inputLen)), nil
}

func (singleAllocation) Release(*Arena) {}

// pooledAllocation reuses same-or-larger backing buffers across parses
// via a sync.Pool instead of allocating a fresh one every time. Each
// parse still gets its own single Arena view over a single buffer;
// only the buffer's storage is recycled.
type pooledAllocation struct {
	pool *sync.Pool
}

// Pooled returns a Strategy that recycles arena backing buffers via a
// sync.Pool. Safe for concurrent use by independent parses, since each
// call to Allocate hands out a buffer no one else holds.
func Pooled() Strategy {
	return pooledAllocation{
		pool: &sync.Pool{
			New: func() interface{} { return make([]Word, 0, 4096) },
		},
	}
}

func (p pooledAllocation) Allocate(inputLen int) (*Arena, error) {
	buf := p.pool.Get().([]Word)
	if cap(buf) < inputLen {
		buf = make([]Word, inputLen)
	} else {
		buf = buf[:inputLen]
	}
	return New(buf), nil
}

func (p pooledAllocation) Release(a *Arena) {
	buf := a.buf[:0]
	if cap(buf) > 256*1024 {
		return // don't pool very large buffers
	}
	p.pool.Put(buf)
}

// FixedBuffer wraps a caller-supplied buffer instead of allocating one.
// Allocate fails if the buffer is smaller than the input.
func FixedBuffer(buf []Word) Strategy { return fixedBuffer{buf} }

type fixedBuffer struct{ buf []Word }

func (f fixedBuffer) Allocate(inputLen int) (*Arena, error) {
	if len(f.buf) < inputLen {
		return nil, ErrOutOfMemory
	}
	return New(f.buf[:inputLen]), nil
}

func (fixedBuffer) Release(*Arena) {}
