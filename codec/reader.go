package codec

import (
	"bytes"

	"github.com/numinit/open-waveform-format/arith"
	"github.com/numinit/open-waveform-format/owf"
	"github.com/numinit/open-waveform-format/owfalloc"
)

// Source is the byte-source callback the decoder pulls from. It blocks
// until it has written exactly len(dst) bytes into dst, returning false
// on any failure (EOF, I/O error, or a caller-chosen abort). There is no
// partial-progress API: a false return aborts the entire decode.
type Source func(dst []byte) bool

// Decoder walks a framed OWF byte stream, validating structure as it
// goes, and either invokes a Visitor per discovered node (streaming mode,
// via Walk) or materializes the whole tree (DOM mode, via DecodeDOM).
//
// A Decoder is single-use: call one of Walk or DecodeDOM exactly once.
type Decoder struct {
	source Source
	alloc  owfalloc.Allocator

	segmentLength uint32
	skipLength    uint32
}

// DecoderOption configures a Decoder at construction time.
type DecoderOption func(*Decoder)

// WithAllocator overrides the default allocator.
func WithAllocator(alloc owfalloc.Allocator) DecoderOption {
	return func(d *Decoder) { d.alloc = alloc }
}

// NewDecoder constructs a Decoder reading from source.
func NewDecoder(source Source, opts ...DecoderOption) *Decoder {
	d := &Decoder{source: source, alloc: owfalloc.NewDefault()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Decoder) fail(kind Kind, format string, args ...interface{}) error {
	return newError(kind, format, args...)
}

// budgetErrKind classifies a failed arith.SubAligned32 call: a misaligned
// operand is always a corrupt/adversarial length field (AlignmentError),
// while a clean alignment with b > a is a legitimate budget exhaustion
// (OutOfBounds).
func budgetErrKind(err error) Kind {
	if ae, ok := err.(*arith.Error); ok && ae.Kind == arith.Alignment {
		return AlignmentError
	}
	return OutOfBounds
}

// readAndConsume performs the actual blocking read of n bytes, then
// decrements the current segment budget by n. The physical read always
// happens before the budget check, matching the reference: a source that
// genuinely runs out of bytes fails IOFailed even when the accounting
// would also have failed.
func (d *Decoder) readAndConsume(n int) ([]byte, error) {
	buf := make([]byte, n)
	if !d.source(buf) {
		return nil, d.fail(IOFailed, "read of %d bytes failed", n)
	}
	newLen, err := arith.SubAligned32(d.segmentLength, uint32(n))
	if err != nil {
		return nil, d.fail(budgetErrKind(err), "read of %d bytes exceeds remaining budget of %d", n, d.segmentLength)
	}
	d.segmentLength = newLen
	return buf, nil
}

// unwrapTop reads a 4-byte big-endian length, checks 4-alignment, runs cb
// against a segment budget set to that length, drains any pending skip,
// and checks the budget hit exactly zero. It returns the total frame size
// (length+4) but does not touch any enclosing budget — it's the primitive
// the top-level packet frame uses directly (there is no enclosing frame
// to restore) and that unwrap builds on for every nested frame.
func (d *Decoder) unwrapTop(cb func() error) (uint32, error) {
	lenBytes, err := d.readAndConsume(4)
	if err != nil {
		return 0, err
	}
	length := beToU32(lenBytes)
	if length%4 != 0 {
		return 0, d.fail(AlignmentError, "frame length was not 4-byte aligned (got %d bytes)", length)
	}

	d.segmentLength = length
	d.skipLength = 0

	if err := cb(); err != nil {
		return 0, err
	}

	if err := d.drainSkip(); err != nil {
		return 0, err
	}

	if d.segmentLength != 0 {
		return 0, d.fail(TrailingBytes, "%d trailing bytes when reading frame", d.segmentLength)
	}

	total, err := arith.AddU32(length, 4)
	if err != nil {
		return 0, d.fail(ArithOverflow, "frame length overflow")
	}
	return total, nil
}

// unwrap is the frame-entry primitive used for every nested frame: it
// saves the enclosing budget, runs unwrapTop, and restores the enclosing
// budget on either path (decremented by the frame just consumed on
// success, untouched on failure).
func (d *Decoder) unwrap(cb func() error) error {
	outer := d.segmentLength

	total, err := d.unwrapTop(cb)
	if err != nil {
		d.segmentLength = outer
		return err
	}

	newOuter, err := arith.SubAligned32(outer, total)
	if err != nil {
		d.segmentLength = outer
		return d.fail(budgetErrKind(err), "frame of %d bytes exceeds enclosing budget of %d", total, outer)
	}
	d.segmentLength = newOuter
	return nil
}

// drainSkip consumes and discards any bytes a Visitor asked to skip,
// through a fixed 256-byte scratch buffer so skipping never allocates.
func (d *Decoder) drainSkip() error {
	if d.skipLength == 0 {
		return nil
	}
	var scratch [256]byte
	remaining := d.skipLength
	for remaining > 0 {
		chunk := remaining
		if chunk > uint32(len(scratch)) {
			chunk = uint32(len(scratch))
		}
		if !d.source(scratch[:chunk]) {
			return d.fail(IOFailed, "read error while skipping")
		}
		remaining -= chunk
	}
	d.segmentLength = 0
	d.skipLength = 0
	return nil
}

// requestSkip marks the rest of the currently-open frame for discard; the
// enclosing unwrap call drains it once cb returns.
func (d *Decoder) requestSkip() {
	d.skipLength = d.segmentLength
}

// nestedMulti iterates unwrap(cb) until the current segment is exhausted.
// Used for a channel list and a namespace list, where each child carries
// its own length prefix.
func (d *Decoder) nestedMulti(cb func() error) error {
	for d.segmentLength > 0 {
		if err := d.unwrap(cb); err != nil {
			return err
		}
	}
	return nil
}

// multi iterates cb (which manages its own internal sub-frames) until the
// current segment is exhausted. Used for the signals/events/alarms
// groups, whose children carry no outer per-child length.
func (d *Decoder) multi(cb func() error) error {
	for d.segmentLength > 0 {
		if err := cb(); err != nil {
			return err
		}
	}
	return nil
}

func (d *Decoder) readString() (owf.ByteString, error) {
	var result owf.ByteString
	err := d.unwrap(func() error {
		length := d.segmentLength
		if length == 0 {
			result = owf.NewByteString(nil)
			return nil
		}
		buf, err := d.alloc.Alloc(int(length))
		if err != nil {
			return d.allocErr(err)
		}
		if !d.source(buf) {
			return d.fail(IOFailed, "string read error")
		}
		newLen, subErr := arith.SubAligned32(d.segmentLength, length)
		if subErr != nil {
			return d.fail(budgetErrKind(subErr), "string body of %d bytes exceeds remaining budget", length)
		}
		d.segmentLength = newLen

		if buf[len(buf)-1] != 0x00 {
			return d.fail(StringNotNullTerminated, "non-empty string frame did not end with a NUL byte")
		}
		idx := bytes.IndexByte(buf, 0x00)
		content := make([]byte, idx)
		copy(content, buf[:idx])
		result = owf.NewByteString(content)
		return nil
	})
	return result, err
}

func (d *Decoder) allocErr(err error) error {
	if ae, ok := err.(*owfalloc.Error); ok {
		switch ae.Kind {
		case owfalloc.ErrZero:
			return d.fail(AllocZero, "can't allocate zero bytes")
		case owfalloc.ErrTooLarge:
			return d.fail(AllocTooLarge, "allocation of %d bytes exceeds max of %d", ae.Size, ae.Max)
		default:
			return d.fail(AllocFailed, "%v", err)
		}
	}
	return d.fail(AllocFailed, "%v", err)
}

func (d *Decoder) readFixed64() (uint64, error) {
	buf, err := d.readAndConsume(8)
	if err != nil {
		return 0, err
	}
	return beToU64(buf), nil
}

func (d *Decoder) readSamples() ([]float64, error) {
	var samples []float64
	err := d.unwrap(func() error {
		length := d.segmentLength
		if length%8 != 0 {
			return d.fail(BadSampleLength, "samples frame length %d is not a multiple of 8", length)
		}
		if length == 0 {
			return nil
		}
		buf, err := d.alloc.Alloc(int(length))
		if err != nil {
			return d.allocErr(err)
		}
		if !d.source(buf) {
			return d.fail(IOFailed, "samples read error")
		}
		newLen, subErr := arith.SubAligned32(d.segmentLength, length)
		if subErr != nil {
			return d.fail(budgetErrKind(subErr), "samples body of %d bytes exceeds remaining budget", length)
		}
		d.segmentLength = newLen

		n := int(length / 8)
		samples = make([]float64, n)
		for i := 0; i < n; i++ {
			samples[i] = beBitsToF64(buf[i*8 : i*8+8])
		}
		return nil
	})
	return samples, err
}

func (d *Decoder) readSignal(ns *owf.Namespace, visit Visitor, materialize bool) error {
	id, err := d.readString()
	if err != nil {
		return err
	}
	unit, err := d.readString()
	if err != nil {
		return err
	}
	samples, err := d.readSamples()
	if err != nil {
		return err
	}

	sig := owf.NewSignal(id.String(), unit.String())
	sig.PushSamples(samples)

	if visit != nil {
		visit(signalNode(sig))
	}
	if materialize {
		ns.PushSignal(sig)
	}
	return nil
}

func (d *Decoder) readEvent(ns *owf.Namespace, visit Visitor, materialize bool) error {
	t0Raw, err := d.readFixed64()
	if err != nil {
		return err
	}
	t0 := int64(t0Raw)

	if !ns.Covers(t0) {
		return d.coverageErr(ns, t0)
	}

	message, err := d.readString()
	if err != nil {
		return err
	}

	evt := owf.NewEvent(t0, message.String())
	if visit != nil {
		visit(eventNode(evt))
	}
	if materialize {
		// Coverage was already checked above; PushEvent's own check can't fail here.
		_ = ns.PushEvent(evt)
	}
	return nil
}

func (d *Decoder) readAlarm(ns *owf.Namespace, visit Visitor, materialize bool) error {
	t0Raw, err := d.readFixed64()
	if err != nil {
		return err
	}
	t0 := int64(t0Raw)

	if !ns.Covers(t0) {
		return d.coverageErr(ns, t0)
	}

	dt, err := d.readFixed64()
	if err != nil {
		return err
	}

	detailsBuf, err := d.readAndConsume(4)
	if err != nil {
		return err
	}
	level, volume := detailsBuf[0], detailsBuf[1]
	// detailsBuf[2:4] are the reserved bytes: accepted but never surfaced.

	atype, err := d.readString()
	if err != nil {
		return err
	}
	message, err := d.readString()
	if err != nil {
		return err
	}

	alarm := owf.NewAlarm(t0, int64(dt), level, volume, atype.String(), message.String())
	if visit != nil {
		visit(alarmNode(alarm))
	}
	if materialize {
		_ = ns.PushAlarm(alarm)
	}
	return nil
}

func (d *Decoder) coverageErr(ns *owf.Namespace, t0 int64) error {
	e := newError(CoverageViolation, "timestamp %d outside namespace coverage interval", t0)
	e.NamespaceID = ns.ID().String()
	return e
}

func (d *Decoder) readNamespace(ch *owf.Channel, visit Visitor, materialize bool) error {
	t0Raw, err := d.readFixed64()
	if err != nil {
		return err
	}
	dt, err := d.readFixed64()
	if err != nil {
		return err
	}
	id, err := d.readString()
	if err != nil {
		return err
	}

	ns := owf.NewNamespace(id.String(), int64(t0Raw), dt)

	recurse := true
	if visit != nil {
		recurse = visit(namespaceNode(ns))
	}
	if materialize {
		ch.PushNamespace(ns)
	}
	if !recurse {
		d.requestSkip()
		return nil
	}

	if err := d.unwrap(func() error {
		return d.multi(func() error { return d.readSignal(ns, visit, materialize) })
	}); err != nil {
		return err
	}
	if err := d.unwrap(func() error {
		return d.multi(func() error { return d.readEvent(ns, visit, materialize) })
	}); err != nil {
		return err
	}
	if err := d.unwrap(func() error {
		return d.multi(func() error { return d.readAlarm(ns, visit, materialize) })
	}); err != nil {
		return err
	}
	return nil
}

func (d *Decoder) readChannel(pkg *owf.Package, visit Visitor, materialize bool) error {
	id, err := d.readString()
	if err != nil {
		return err
	}

	ch := owf.NewChannel(id.String())

	recurse := true
	if visit != nil {
		recurse = visit(channelNode(ch))
	}
	if materialize {
		pkg.PushChannel(ch)
	}
	if !recurse {
		d.requestSkip()
		return nil
	}

	return d.nestedMulti(func() error {
		return d.readNamespace(ch, visit, materialize)
	})
}

// Walk decodes the stream in streaming mode: visit is invoked for every
// discovered node and nothing is materialized into a tree. Returning
// false from visit skips the rest of the current node's subtree.
func (d *Decoder) Walk(visit Visitor) error {
	return d.decode(nil, visit, false)
}

// DecodeDOM decodes the entire stream into an owned owf.Package. An
// optional visitor may still observe (and skip) nodes as they're
// discovered; pass nil to materialize unconditionally.
func (d *Decoder) DecodeDOM(visit Visitor) (*owf.Package, error) {
	pkg := owf.NewPackage()
	if err := d.decode(pkg, visit, true); err != nil {
		return nil, err
	}
	return pkg, nil
}

func (d *Decoder) decode(pkg *owf.Package, visit Visitor, materialize bool) error {
	d.segmentLength = 4
	magicBuf, err := d.readAndConsume(4)
	if err != nil {
		return err
	}
	magic := beToU32(magicBuf)
	if magic != owf.Magic {
		return d.fail(BadMagic, "invalid magic header: %#08x", magic)
	}

	d.segmentLength = 4
	_, err = d.unwrapTop(func() error {
		return d.nestedMulti(func() error {
			return d.readChannel(pkg, visit, materialize)
		})
	})
	return err
}
