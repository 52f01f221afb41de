// Adapted from util/bufpool.go (PresleyHank-go-lib): a bounded pool of
// reusable scratch buffers backed by a channel, so concurrent writers
// to the same backend don't each allocate a fresh buffer for every
// line written to disk.
package logdom

import "bytes"

const bufpoolSize = 64

type bufpool struct {
	q chan *bytes.Buffer
}

func newBufpool(sz int) *bufpool {
	if sz <= 0 {
		sz = bufpoolSize
	}
	p := &bufpool{q: make(chan *bytes.Buffer, sz)}
	for i := 0; i < sz; i++ {
		p.q <- new(bytes.Buffer)
	}
	return p
}

// get returns a scratch buffer, allocating a new one if the pool is
// momentarily exhausted rather than blocking the caller — a log call
// must never stall waiting for a free buffer.
func (p *bufpool) get() *bytes.Buffer {
	select {
	case b := <-p.q:
		b.Reset()
		return b
	default:
		return new(bytes.Buffer)
	}
}

// put returns b to the pool. If the pool is full (this buffer was
// allocated on overflow), b is simply dropped for GC.
func (p *bufpool) put(b *bytes.Buffer) {
	select {
	case p.q <- b:
	default:
	}
}
