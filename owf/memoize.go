package owf

import "github.com/numinit/open-waveform-format/arith"

// staleSize is the memoization sentinel: a wire size that can never occur
// in practice (it would require a 4 GiB frame), used to mark a cached
// size as not-yet-computed or invalidated.
const staleSize = ^uint32(0)

// memoize caches a computed wire size. Unlike the reference implementation,
// which only ever writes memoize.length from inside Size() and can
// therefore go stale across a mutation performed between two Size()
// calls, every Push*/Set* method in this package calls invalidate()
// itself, so mutating an entity directly always clears its own cached size.
// Entities hold no back-references, so mutating a child that a parent
// already holds does not clear the parent's cached size; a parent whose
// Size() was called before such a mutation keeps returning the old value.
type memoize struct {
	value uint32
}

func (m *memoize) stale() bool {
	return m.value == staleSize
}

func (m *memoize) fetch() uint32 {
	return m.value
}

func (m *memoize) cache(v uint32) uint32 {
	m.value = v
	return v
}

func (m *memoize) invalidate() {
	m.value = staleSize
}

// sumSizes adds a running total with a newly computed component size,
// through overflow-safe addition.
func sumSizes(total, component uint32) (uint32, error) {
	return arith.AddU32(total, component)
}
