package owf

import "fmt"

// ErrCoverage is returned by PushEvent/PushAlarm when a timestamp falls
// outside the namespace's half-open [t0, t0+dt) interval.
type ErrCoverage struct {
	NamespaceID    string
	T0             int64
	IntervalStart  int64
	IntervalEndExc int64
}

func (e *ErrCoverage) Error() string {
	return fmt.Sprintf("namespace %q: timestamp %d outside coverage interval [%d, %d)",
		e.NamespaceID, e.T0, e.IntervalStart, e.IntervalEndExc)
}

// Namespace owns Signals, Events, and Alarms under a [T0, T0+Dt) time
// interval. Every contained Event and Alarm timestamp must fall within
// that half-open interval.
type Namespace struct {
	id         ByteString
	T0         int64
	Dt         uint64
	signals    []*Signal
	events     []*Event
	alarms     []*Alarm
	size       memoize
}

// NewNamespace constructs a Namespace covering [t0, t0+dt).
func NewNamespace(id string, t0 int64, dt uint64) *Namespace {
	n := &Namespace{id: NewByteString([]byte(id)), T0: t0, Dt: dt}
	n.size.invalidate()
	return n
}

func (n *Namespace) ID() ByteString    { return n.id }
func (n *Namespace) Signals() []*Signal { return n.signals }
func (n *Namespace) Events() []*Event   { return n.events }
func (n *Namespace) Alarms() []*Alarm   { return n.alarms }

func (n *Namespace) SetID(id string) {
	n.id.Set([]byte(id))
	n.size.invalidate()
}

// Covers reports whether t falls within the namespace's half-open
// interval [T0, T0+Dt). t-T0 is computed via the two's-complement
// wraparound Go already gives int64 subtraction, then reinterpreted as
// uint64: for any t >= T0 that difference is exactly t-T0 mod 2^64, so
// this never needs to compute T0+Dt (which could overflow int64) at all.
func (n *Namespace) Covers(t int64) bool {
	if t < n.T0 {
		return false
	}
	diff := uint64(t - n.T0)
	return diff < n.Dt
}

// PushSignal appends a signal; signals carry no timestamp, so there is no
// coverage check.
func (n *Namespace) PushSignal(s *Signal) {
	n.signals = append(n.signals, s)
	n.size.invalidate()
}

// PushEvent appends an event after verifying it falls within the
// namespace's coverage interval.
func (n *Namespace) PushEvent(e *Event) error {
	if !n.Covers(e.T0) {
		return &ErrCoverage{NamespaceID: n.id.String(), T0: e.T0, IntervalStart: n.T0, IntervalEndExc: n.T0 + int64(n.Dt)}
	}
	n.events = append(n.events, e)
	n.size.invalidate()
	return nil
}

// PushAlarm appends an alarm after verifying it falls within the
// namespace's coverage interval.
func (n *Namespace) PushAlarm(a *Alarm) error {
	if !n.Covers(a.T0) {
		return &ErrCoverage{NamespaceID: n.id.String(), T0: a.T0, IntervalStart: n.T0, IntervalEndExc: n.T0 + int64(n.Dt)}
	}
	n.alarms = append(n.alarms, a)
	n.size.invalidate()
	return nil
}

// Size returns the wire size:
// 4 (length header) + 8 (t0) + 8 (dt) + size(id) +
// 4 + Σsize(signal) + 4 + Σsize(event) + 4 + Σsize(alarm)
func (n *Namespace) Size() (uint32, error) {
	if !n.size.stale() {
		return n.size.fetch(), nil
	}

	idSize, err := n.id.Size()
	if err != nil {
		return 0, err
	}

	total, err := sumSizes(4+8+8, idSize)
	if err != nil {
		return 0, err
	}

	signalsTotal := uint32(4)
	for _, s := range n.signals {
		sz, err := s.Size()
		if err != nil {
			return 0, err
		}
		signalsTotal, err = sumSizes(signalsTotal, sz)
		if err != nil {
			return 0, err
		}
	}
	total, err = sumSizes(total, signalsTotal)
	if err != nil {
		return 0, err
	}

	eventsTotal := uint32(4)
	for _, e := range n.events {
		sz, err := e.Size()
		if err != nil {
			return 0, err
		}
		eventsTotal, err = sumSizes(eventsTotal, sz)
		if err != nil {
			return 0, err
		}
	}
	total, err = sumSizes(total, eventsTotal)
	if err != nil {
		return 0, err
	}

	alarmsTotal := uint32(4)
	for _, a := range n.alarms {
		sz, err := a.Size()
		if err != nil {
			return 0, err
		}
		alarmsTotal, err = sumSizes(alarmsTotal, sz)
		if err != nil {
			return 0, err
		}
	}
	total, err = sumSizes(total, alarmsTotal)
	if err != nil {
		return 0, err
	}

	return n.size.cache(total), nil
}

// Compare implements the namespace total order: id, t0, dt, then
// lexicographic compares of signals, events, and alarms.
func (n *Namespace) Compare(other *Namespace) int {
	if c := n.id.Compare(other.id); c != 0 {
		return c
	}
	if n.T0 != other.T0 {
		if n.T0 < other.T0 {
			return -1
		}
		return 1
	}
	if n.Dt != other.Dt {
		if n.Dt < other.Dt {
			return -1
		}
		return 1
	}
	if c := compareSignals(n.signals, other.signals); c != 0 {
		return c
	}
	if c := compareEvents(n.events, other.events); c != 0 {
		return c
	}
	return compareAlarms(n.alarms, other.alarms)
}

func compareSignals(lhs, rhs []*Signal) int {
	if len(lhs) != len(rhs) {
		if len(lhs) < len(rhs) {
			return -1
		}
		return 1
	}
	for i := range lhs {
		if c := lhs[i].Compare(rhs[i]); c != 0 {
			return c
		}
	}
	return 0
}

func compareEvents(lhs, rhs []*Event) int {
	if len(lhs) != len(rhs) {
		if len(lhs) < len(rhs) {
			return -1
		}
		return 1
	}
	for i := range lhs {
		if c := lhs[i].Compare(rhs[i]); c != 0 {
			return c
		}
	}
	return 0
}

func compareAlarms(lhs, rhs []*Alarm) int {
	if len(lhs) != len(rhs) {
		if len(lhs) < len(rhs) {
			return -1
		}
		return 1
	}
	for i := range lhs {
		if c := lhs[i].Compare(rhs[i]); c != 0 {
			return c
		}
	}
	return 0
}
