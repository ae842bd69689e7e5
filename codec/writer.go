package codec

import (
	"github.com/numinit/open-waveform-format/arith"
	"github.com/numinit/open-waveform-format/owf"
)

// Sink is the byte-sink callback the encoder pushes to. It blocks until
// it has consumed exactly len(src) bytes from src, returning false on
// any failure. As with Source, there is no partial-progress API: a false
// return aborts the entire encode.
type Sink func(src []byte) bool

// sampleBufSamples is the number of float64s batched through the stack
// buffer writeSamples uses to amortize per-write overhead, matching the
// reference's 32-double lookaside buffer.
const sampleBufSamples = 32

// Encoder serializes an in-memory owf.Package back to the OWF wire
// format, byte-for-byte identical to a conformant encoding, since every
// size it writes comes from the same memoized formulas the decoder's
// invariants are checked against.
type Encoder struct {
	sink Sink
}

// NewEncoder constructs an Encoder writing to sink.
func NewEncoder(sink Sink) *Encoder {
	return &Encoder{sink: sink}
}

func (e *Encoder) write(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	if !e.sink(b) {
		return newError(IOFailed, "write of %d bytes failed", len(b))
	}
	return nil
}

func (e *Encoder) writeU32(v uint32) error {
	b := u32ToBE(v)
	return e.write(b[:])
}

func (e *Encoder) writeU64(v uint64) error {
	b := u64ToBE(v)
	return e.write(b[:])
}

// auditAligned fails MisalignedSize if n is not a multiple of 4. Every
// length the encoder emits must satisfy this; a violation means the
// in-memory tree's size computation disagrees with the bytes about to be
// written, which is always a data-model bug rather than a recoverable
// condition.
func (e *Encoder) auditAligned(n uint32) error {
	if n%4 != 0 {
		return newError(MisalignedSize, "computed frame length %d is not 4-byte aligned", n)
	}
	return nil
}

func (e *Encoder) writeString(bs *owf.ByteString) error {
	sz, err := bs.Size()
	if err != nil {
		return mapArithErr(err)
	}
	length, err := arith.SubU32(sz, 4)
	if err != nil {
		return mapArithErr(err)
	}
	if err := e.auditAligned(length); err != nil {
		return err
	}
	if err := e.writeU32(length); err != nil {
		return err
	}
	if length == 0 {
		return nil
	}

	content := bs.Bytes()
	if err := e.write(content); err != nil {
		return err
	}
	if err := e.write([]byte{0x00}); err != nil {
		return err
	}
	pad := arith.Padding(uint32(len(content)) + 1)
	if pad > 0 {
		if err := e.write(make([]byte, pad)); err != nil {
			return err
		}
	}
	return nil
}

// writeSamples byteswaps samples into big-endian through a small stack
// buffer (32 doubles at a time), amortizing per-write overhead the way
// the reference writer does.
func (e *Encoder) writeSamples(samples []float64) error {
	total, err := arith.MulU32(uint32(len(samples)), 8)
	if err != nil {
		return mapArithErr(err)
	}
	if err := e.auditAligned(total); err != nil {
		return err
	}
	if err := e.writeU32(total); err != nil {
		return err
	}

	var buf [sampleBufSamples * 8]byte
	i := 0
	for i < len(samples) {
		chunk := sampleBufSamples
		if remaining := len(samples) - i; remaining < chunk {
			chunk = remaining
		}
		for j := 0; j < chunk; j++ {
			b := f64ToBEBits(samples[i+j])
			copy(buf[j*8:j*8+8], b[:])
		}
		if err := e.write(buf[:chunk*8]); err != nil {
			return err
		}
		i += chunk
	}
	return nil
}

func (e *Encoder) writeSignal(s *owf.Signal) error {
	if _, err := s.Size(); err != nil {
		return mapArithErr(err)
	}
	id := s.ID()
	unit := s.Unit()
	if err := e.writeString(&id); err != nil {
		return err
	}
	if err := e.writeString(&unit); err != nil {
		return err
	}
	return e.writeSamples(s.Samples())
}

func (e *Encoder) writeEvent(ev *owf.Event) error {
	if err := e.writeU64(uint64(ev.T0)); err != nil {
		return err
	}
	msg := ev.Message()
	return e.writeString(&msg)
}

func (e *Encoder) writeAlarm(a *owf.Alarm) error {
	if a.Dt < 0 {
		return newError(NegativeDuration, "alarm duration %d is negative", a.Dt)
	}
	if err := e.writeU64(uint64(a.T0)); err != nil {
		return err
	}
	if err := e.writeU64(uint64(a.Dt)); err != nil {
		return err
	}
	// Reserved bytes are always written as zero; the decoder accepts any
	// value on read (spec's "reserved bytes" open question).
	if err := e.write([]byte{a.Level, a.Volume, 0x00, 0x00}); err != nil {
		return err
	}
	atype := a.Type()
	if err := e.writeString(&atype); err != nil {
		return err
	}
	msg := a.Message()
	return e.writeString(&msg)
}

func (e *Encoder) writeNamespace(ns *owf.Namespace) error {
	size, err := ns.Size()
	if err != nil {
		return mapArithErr(err)
	}
	length, err := arith.SubU32(size, 4)
	if err != nil {
		return mapArithErr(err)
	}
	if err := e.auditAligned(length); err != nil {
		return err
	}
	if err := e.writeU32(length); err != nil {
		return err
	}
	if err := e.writeU64(uint64(ns.T0)); err != nil {
		return err
	}
	if err := e.writeU64(ns.Dt); err != nil {
		return err
	}
	id := ns.ID()
	if err := e.writeString(&id); err != nil {
		return err
	}

	signals := ns.Signals()
	signalsBody, err := sumComponentSizes(signals, func(s *owf.Signal) (uint32, error) { return s.Size() })
	if err != nil {
		return err
	}
	if err := e.writeU32(signalsBody); err != nil {
		return err
	}
	for _, s := range signals {
		if err := e.writeSignal(s); err != nil {
			return err
		}
	}

	events := ns.Events()
	eventsBody, err := sumComponentSizes(events, func(ev *owf.Event) (uint32, error) { return ev.Size() })
	if err != nil {
		return err
	}
	if err := e.writeU32(eventsBody); err != nil {
		return err
	}
	for _, ev := range events {
		if err := e.writeEvent(ev); err != nil {
			return err
		}
	}

	alarms := ns.Alarms()
	alarmsBody, err := sumComponentSizes(alarms, func(a *owf.Alarm) (uint32, error) { return a.Size() })
	if err != nil {
		return err
	}
	if err := e.writeU32(alarmsBody); err != nil {
		return err
	}
	for _, a := range alarms {
		if err := e.writeAlarm(a); err != nil {
			return err
		}
	}

	return nil
}

func (e *Encoder) writeChannel(ch *owf.Channel) error {
	size, err := ch.Size()
	if err != nil {
		return mapArithErr(err)
	}
	length, err := arith.SubU32(size, 4)
	if err != nil {
		return mapArithErr(err)
	}
	if err := e.auditAligned(length); err != nil {
		return err
	}
	if err := e.writeU32(length); err != nil {
		return err
	}
	id := ch.ID()
	if err := e.writeString(&id); err != nil {
		return err
	}
	for _, ns := range ch.Namespaces() {
		if err := e.writeNamespace(ns); err != nil {
			return err
		}
	}
	return nil
}

// Encode writes pkg to the sink, byte-for-byte matching a conformant
// decoder's expectations.
func (e *Encoder) Encode(pkg *owf.Package) error {
	size, err := pkg.Size()
	if err != nil {
		return mapArithErr(err)
	}
	bodyLen, err := arith.SubU32(size, 8)
	if err != nil {
		return mapArithErr(err)
	}
	if err := e.auditAligned(bodyLen); err != nil {
		return err
	}
	if err := e.writeU32(owf.Magic); err != nil {
		return err
	}
	if err := e.writeU32(bodyLen); err != nil {
		return err
	}
	for _, ch := range pkg.Channels() {
		if err := e.writeChannel(ch); err != nil {
			return err
		}
	}
	return nil
}

func sumComponentSizes[T any](items []T, size func(T) (uint32, error)) (uint32, error) {
	total := uint32(0)
	for _, item := range items {
		sz, err := size(item)
		if err != nil {
			return 0, mapArithErr(err)
		}
		var err2 error
		total, err2 = arith.AddU32(total, sz)
		if err2 != nil {
			return 0, mapArithErr(err2)
		}
	}
	return total, nil
}

// mapArithErr wraps an *arith.Error as the matching codec Kind, so a
// caller inspecting a failed Encode only ever sees the closed codec.Kind
// set rather than a mix of arith and codec error types.
func mapArithErr(err error) error {
	if ae, ok := err.(*arith.Error); ok {
		kind := ArithOverflow
		if ae.Kind == arith.Underflow {
			kind = ArithUnderflow
		}
		return newError(kind, "%v", ae)
	}
	return err
}
