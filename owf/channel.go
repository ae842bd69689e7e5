package owf

// Channel owns an ordered sequence of Namespaces under an id, which may
// be empty.
type Channel struct {
	id         ByteString
	namespaces []*Namespace
	size       memoize
}

// NewChannel constructs a Channel with the given id.
func NewChannel(id string) *Channel {
	c := &Channel{id: NewByteString([]byte(id))}
	c.size.invalidate()
	return c
}

func (c *Channel) ID() ByteString          { return c.id }
func (c *Channel) Namespaces() []*Namespace { return c.namespaces }

func (c *Channel) SetID(id string) {
	c.id.Set([]byte(id))
	c.size.invalidate()
}

// PushNamespace appends a namespace.
func (c *Channel) PushNamespace(n *Namespace) {
	c.namespaces = append(c.namespaces, n)
	c.size.invalidate()
}

// Size returns the wire size: 4 (length header) + size(id) +
// Σsize(namespace).
func (c *Channel) Size() (uint32, error) {
	if !c.size.stale() {
		return c.size.fetch(), nil
	}

	idSize, err := c.id.Size()
	if err != nil {
		return 0, err
	}
	total, err := sumSizes(4, idSize)
	if err != nil {
		return 0, err
	}

	for _, ns := range c.namespaces {
		sz, err := ns.Size()
		if err != nil {
			return 0, err
		}
		total, err = sumSizes(total, sz)
		if err != nil {
			return 0, err
		}
	}

	return c.size.cache(total), nil
}

// Compare implements the channel total order: id, then a lexicographic
// compare of namespaces.
func (c *Channel) Compare(other *Channel) int {
	if cmp := c.id.Compare(other.id); cmp != 0 {
		return cmp
	}
	if len(c.namespaces) != len(other.namespaces) {
		if len(c.namespaces) < len(other.namespaces) {
			return -1
		}
		return 1
	}
	for i := range c.namespaces {
		if cmp := c.namespaces[i].Compare(other.namespaces[i]); cmp != 0 {
			return cmp
		}
	}
	return 0
}
