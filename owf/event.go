package owf

// Event is a single discrete occurrence inside a namespace: a timestamp
// plus a human-readable message. The timestamp must fall within the
// enclosing namespace's [t0, t0+dt) interval; that invariant is enforced
// by the codec at decode time and by Namespace.PushEvent at construction
// time.
type Event struct {
	T0      int64
	message ByteString
	size    memoize
}

// NewEvent constructs an Event with the given timestamp and message.
func NewEvent(t0 int64, message string) *Event {
	e := &Event{T0: t0, message: NewByteString([]byte(message))}
	e.size.invalidate()
	return e
}

func (e *Event) Message() ByteString { return e.message }

// SetMessage replaces the event message and invalidates the cached size.
func (e *Event) SetMessage(message string) {
	e.message.Set([]byte(message))
	e.size.invalidate()
}

// Size returns the wire size: 8 (timestamp) + size(message).
func (e *Event) Size() (uint32, error) {
	if !e.size.stale() {
		return e.size.fetch(), nil
	}
	msgSize, err := e.message.Size()
	if err != nil {
		return 0, err
	}
	total, err := sumSizes(8, msgSize)
	if err != nil {
		return 0, err
	}
	return e.size.cache(total), nil
}

// Compare implements the event total order: timestamp first, then
// message.
func (e *Event) Compare(other *Event) int {
	if e.T0 != other.T0 {
		if e.T0 < other.T0 {
			return -1
		}
		return 1
	}
	return e.message.Compare(other.message)
}
