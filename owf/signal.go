package owf

import (
	"math"

	"github.com/numinit/open-waveform-format/arith"
)

// Signal is a time-series of f64 samples under a namespace. Samples carry
// no individual timestamps; their cadence is implicit from the enclosing
// Namespace's [t0, t0+dt) interval.
type Signal struct {
	id, unit ByteString
	samples  []float64
	size     memoize
}

// NewSignal constructs a Signal with the given id and unit.
func NewSignal(id, unit string) *Signal {
	s := &Signal{id: NewByteString([]byte(id)), unit: NewByteString([]byte(unit))}
	s.size.invalidate()
	return s
}

func (s *Signal) ID() ByteString      { return s.id }
func (s *Signal) Unit() ByteString    { return s.unit }
func (s *Signal) Samples() []float64  { return s.samples }
func (s *Signal) NumSamples() int     { return len(s.samples) }

// SetID replaces the signal id and invalidates the cached size.
func (s *Signal) SetID(id string) {
	s.id.Set([]byte(id))
	s.size.invalidate()
}

// SetUnit replaces the signal unit and invalidates the cached size.
func (s *Signal) SetUnit(unit string) {
	s.unit.Set([]byte(unit))
	s.size.invalidate()
}

// PushSample appends one sample.
func (s *Signal) PushSample(v float64) {
	s.samples = append(s.samples, v)
	s.size.invalidate()
}

// PushSamples appends an entire slice of samples in one call, matching
// the reference's owf_signal_push_samples bulk loader.
func (s *Signal) PushSamples(values []float64) {
	s.samples = append(s.samples, values...)
	s.size.invalidate()
}

// Size returns the wire size: size(id) + size(unit) + 4 (samples frame
// length header) + 8*len(samples).
func (s *Signal) Size() (uint32, error) {
	if !s.size.stale() {
		return s.size.fetch(), nil
	}

	idSize, err := s.id.Size()
	if err != nil {
		return 0, err
	}
	unitSize, err := s.unit.Size()
	if err != nil {
		return 0, err
	}

	samplesBytes, err := arith.MulU32(uint32(len(s.samples)), 8)
	if err != nil {
		return 0, err
	}
	samplesFrame, err := arith.AddU32(samplesBytes, 4)
	if err != nil {
		return 0, err
	}

	total, err := sumSizes(idSize, unitSize)
	if err != nil {
		return 0, err
	}
	total, err = sumSizes(total, samplesFrame)
	if err != nil {
		return 0, err
	}

	return s.size.cache(total), nil
}

// Compare implements the signal total order: id, then unit, then a
// byte-wise compare of the sample array (mirroring
// owf_array_binary_compare, which compares by length first, then by raw
// bytes). Each sample is compared by its IEEE-754 bit pattern as an
// unsigned integer, i.e. as its big-endian bytes, so NaNs and signed
// zeros still order totally.
func (s *Signal) Compare(other *Signal) int {
	if c := s.id.Compare(other.id); c != 0 {
		return c
	}
	if c := s.unit.Compare(other.unit); c != 0 {
		return c
	}
	if len(s.samples) != len(other.samples) {
		if len(s.samples) < len(other.samples) {
			return -1
		}
		return 1
	}
	for i := range s.samples {
		a, b := math.Float64bits(s.samples[i]), math.Float64bits(other.samples[i])
		if a < b {
			return -1
		} else if a > b {
			return 1
		}
	}
	return 0
}
