package owfalloc

import (
	lru "github.com/hashicorp/golang-lru"
)

// defaultPoolBuckets is the number of distinct size buckets a Pool keeps
// scratch buffers for. Picked small and fixed, since a codec reusing a
// Pool across many decodes on the same connection only ever touches a
// handful of distinct string/sample-array sizes in practice.
const defaultPoolBuckets = 64

// Pool wraps a bounded LRU of reusable scratch buffers, keyed by exact
// size, in front of an Allocator. Repeated decodes against the same
// connection tend to re-request the same handful of buffer sizes (a
// channel id, a namespace id, a fixed-width samples frame); the pool lets
// those allocations come back from cache instead of round-tripping
// through the allocator every time. Falls through to the wrapped
// Allocator on a cache miss. Only buffers handed back through Free are
// ever reused.
type Pool struct {
	alloc Allocator
	cache *lru.Cache
}

// NewPool wraps alloc with an LRU pool of up to defaultPoolBuckets
// distinct buffer sizes.
func NewPool(alloc Allocator) *Pool {
	cache, err := lru.New(defaultPoolBuckets)
	if err != nil {
		// lru.New only fails for a non-positive size, which
		// defaultPoolBuckets never is.
		panic(err)
	}
	return &Pool{alloc: alloc, cache: cache}
}

func (p *Pool) Alloc(n int) ([]byte, error) {
	if v, ok := p.cache.Get(n); ok {
		bufs := v.([][]byte)
		if len(bufs) > 0 {
			buf := bufs[len(bufs)-1]
			p.cache.Add(n, bufs[:len(bufs)-1])
			return buf[:n], nil
		}
	}
	return p.alloc.Alloc(n)
}

func (p *Pool) Realloc(buf []byte, n int) ([]byte, error) {
	return p.alloc.Realloc(buf, n)
}

// Free returns buf to the pool, bucketed by its capacity, instead of
// releasing it to the underlying allocator.
func (p *Pool) Free(buf []byte) {
	n := cap(buf)
	if n == 0 {
		return
	}
	var bufs [][]byte
	if v, ok := p.cache.Get(n); ok {
		bufs = v.([][]byte)
	}
	p.cache.Add(n, append(bufs, buf[:0:n]))
}

func (p *Pool) MaxSingleAlloc() int { return p.alloc.MaxSingleAlloc() }
