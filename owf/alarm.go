package owf

// Alarm is an ongoing condition inside a namespace: a start timestamp, a
// duration, a severity level, a volume, two reserved bytes, a type
// string, and a message. The reserved bytes are never surfaced in the
// data model: per spec, the encoder always writes them as zero and the
// decoder accepts (and discards) any value it reads.
type Alarm struct {
	T0, Dt          int64
	Level, Volume   uint8
	atype, message  ByteString
	size            memoize
}

// NewAlarm constructs an Alarm. Dt is carried as int64 in the Go API for
// symmetry with T0, but is always written and interpreted as an unsigned
// 64-bit duration on the wire (see the "duration signedness" open
// question in the spec): a negative Dt will fail to encode.
func NewAlarm(t0, dt int64, level, volume uint8, atype, message string) *Alarm {
	a := &Alarm{
		T0: t0, Dt: dt, Level: level, Volume: volume,
		atype:   NewByteString([]byte(atype)),
		message: NewByteString([]byte(message)),
	}
	a.size.invalidate()
	return a
}

func (a *Alarm) Type() ByteString    { return a.atype }
func (a *Alarm) Message() ByteString { return a.message }

func (a *Alarm) SetType(t string) {
	a.atype.Set([]byte(t))
	a.size.invalidate()
}

func (a *Alarm) SetMessage(m string) {
	a.message.Set([]byte(m))
	a.size.invalidate()
}

// Size returns the wire size: 8 (t0) + 8 (dt) + 1 (level) + 1 (volume) +
// 2 (reserved) + size(type) + size(message).
func (a *Alarm) Size() (uint32, error) {
	if !a.size.stale() {
		return a.size.fetch(), nil
	}
	typeSize, err := a.atype.Size()
	if err != nil {
		return 0, err
	}
	msgSize, err := a.message.Size()
	if err != nil {
		return 0, err
	}
	total, err := sumSizes(8+8+1+1+2, typeSize)
	if err != nil {
		return 0, err
	}
	total, err = sumSizes(total, msgSize)
	if err != nil {
		return 0, err
	}
	return a.size.cache(total), nil
}

// Compare implements the alarm total order: t0, dt, level, volume, type,
// message, in that order.
func (a *Alarm) Compare(other *Alarm) int {
	if a.T0 != other.T0 {
		if a.T0 < other.T0 {
			return -1
		}
		return 1
	}
	if a.Dt != other.Dt {
		if a.Dt < other.Dt {
			return -1
		}
		return 1
	}
	if a.Level != other.Level {
		if a.Level < other.Level {
			return -1
		}
		return 1
	}
	if a.Volume != other.Volume {
		if a.Volume < other.Volume {
			return -1
		}
		return 1
	}
	if c := a.atype.Compare(other.atype); c != 0 {
		return c
	}
	return a.message.Compare(other.message)
}
