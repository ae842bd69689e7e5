package owf

// Package is the root entity: an ordered sequence of Channels. Dropping a
// Package drops everything transitively owned beneath it — in Go this
// falls out of the garbage collector once the last reference to the
// Package is released, so there is no explicit Destroy call anywhere in
// this package.
type Package struct {
	channels []*Channel
	size     memoize
}

// NewPackage constructs an empty Package.
func NewPackage() *Package {
	p := &Package{}
	p.size.invalidate()
	return p
}

func (p *Package) Channels() []*Channel { return p.channels }

// PushChannel appends a channel.
func (p *Package) PushChannel(c *Channel) {
	p.channels = append(p.channels, c)
	p.size.invalidate()
}

// Size returns the wire size: 4 (magic) + 4 (outer body length) +
// Σsize(channel).
func (p *Package) Size() (uint32, error) {
	if !p.size.stale() {
		return p.size.fetch(), nil
	}

	total := uint32(4 + 4)
	for _, c := range p.channels {
		sz, err := c.Size()
		if err != nil {
			return 0, err
		}
		var err2 error
		total, err2 = sumSizes(total, sz)
		if err2 != nil {
			return 0, err2
		}
	}

	return p.size.cache(total), nil
}

// Compare implements the package total order: a lexicographic compare of
// channels.
func (p *Package) Compare(other *Package) int {
	if len(p.channels) != len(other.channels) {
		if len(p.channels) < len(other.channels) {
			return -1
		}
		return 1
	}
	for i := range p.channels {
		if c := p.channels[i].Compare(other.channels[i]); c != 0 {
			return c
		}
	}
	return 0
}
