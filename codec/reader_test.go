package codec

import (
	"bytes"
	"testing"

	"github.com/numinit/open-waveform-format/owf"
)

// bufferSource returns a Source reading sequentially from data, failing
// once the remaining bytes can't satisfy a requested read.
func bufferSource(data []byte) Source {
	pos := 0
	return func(dst []byte) bool {
		if pos+len(dst) > len(data) {
			return false
		}
		copy(dst, data[pos:pos+len(dst)])
		pos += len(dst)
		return true
	}
}

func be32(v uint32) []byte {
	return []byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
}

func TestDecodeEmptyPackageRoundTrip(t *testing.T) {
	data := append(be32(owf.Magic), be32(0)...)
	pkg, err := NewDecoder(bufferSource(data)).DecodeDOM(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pkg.Channels()) != 0 {
		t.Fatalf("expected 0 channels, got %d", len(pkg.Channels()))
	}
}

func TestDecodeRejectsBadMagic(t *testing.T) {
	data := append(be32(0xDEADBEEF), be32(0)...)
	_, err := NewDecoder(bufferSource(data)).DecodeDOM(nil)
	if err == nil {
		t.Fatal("expected an error for bad magic")
	}
	ce, ok := err.(*Error)
	if !ok || ce.Kind != BadMagic {
		t.Fatalf("expected BadMagic, got %v", err)
	}
}

func TestDecodeRejectsTruncatedStream(t *testing.T) {
	// Claims a body of 16 bytes but supplies none.
	data := append(be32(owf.Magic), be32(16)...)
	_, err := NewDecoder(bufferSource(data)).DecodeDOM(nil)
	if err == nil {
		t.Fatal("expected an error for a truncated stream")
	}
	ce, ok := err.(*Error)
	if !ok || ce.Kind != IOFailed {
		t.Fatalf("expected IOFailed, got %v", err)
	}
}

func TestDecodeRejectsMisalignedLength(t *testing.T) {
	data := append(be32(owf.Magic), be32(5)...)
	_, err := NewDecoder(bufferSource(data)).DecodeDOM(nil)
	if err == nil {
		t.Fatal("expected an error for a misaligned length")
	}
	ce, ok := err.(*Error)
	if !ok || ce.Kind != AlignmentError {
		t.Fatalf("expected AlignmentError, got %v", err)
	}
}

func TestDecodeRejectsTrailingBytes(t *testing.T) {
	// A namespace frame whose fixed fields, empty id and three empty groups
	// are followed by 4 extra bytes its body never reads. (Channel bodies
	// can't carry trailing bytes: any residue is parsed as more namespaces.)
	var nsBody []byte
	nsBody = append(nsBody, make([]byte, 16)...) // t0, dt
	nsBody = append(nsBody, be32(0)...)          // empty id
	nsBody = append(nsBody, be32(0)...)          // empty signals group
	nsBody = append(nsBody, be32(0)...)          // empty events group
	nsBody = append(nsBody, be32(0)...)          // empty alarms group
	nsBody = append(nsBody, make([]byte, 4)...)  // junk trailing
	nsFrame := append(be32(uint32(len(nsBody))), nsBody...)

	channelBody := append(be32(0), nsFrame...) // empty channel id + one namespace
	channelFrame := append(be32(uint32(len(channelBody))), channelBody...)
	data := append(be32(owf.Magic), be32(uint32(len(channelFrame)))...)
	data = append(data, channelFrame...)

	_, err := NewDecoder(bufferSource(data)).DecodeDOM(nil)
	if err == nil {
		t.Fatal("expected an error for trailing bytes")
	}
	ce, ok := err.(*Error)
	if !ok || ce.Kind != TrailingBytes {
		t.Fatalf("expected TrailingBytes, got %v", err)
	}
}

func TestDecodeStringNotNullTerminated(t *testing.T) {
	// A channel whose id frame has length 4 but no NUL byte anywhere in it.
	idFrame := append(be32(4), []byte{'a', 'b', 'c', 'd'}...)
	chFrame := append(be32(uint32(len(idFrame))), idFrame...)
	data := append(be32(owf.Magic), be32(uint32(len(chFrame)))...)
	data = append(data, chFrame...)

	_, err := NewDecoder(bufferSource(data)).DecodeDOM(nil)
	if err == nil {
		t.Fatal("expected an error for a non-NUL-terminated string")
	}
	ce, ok := err.(*Error)
	if !ok || ce.Kind != StringNotNullTerminated {
		t.Fatalf("expected StringNotNullTerminated, got %v", err)
	}
}

func TestDecodeCoverageViolation(t *testing.T) {
	// Hand-built frame: magic, package body containing one channel with a
	// single empty-id namespace [0,10) whose events group holds one event
	// at t0=20, outside the namespace's coverage interval.
	t0Bytes := make([]byte, 8)
	dtBytes := make([]byte, 8)
	dtBytes[7] = 10 // dt = 10

	var nsBody []byte
	nsBody = append(nsBody, t0Bytes...)
	nsBody = append(nsBody, dtBytes...)
	nsBody = append(nsBody, be32(0)...) // empty id

	signalsGroup := be32(0) // empty signals group
	nsBody = append(nsBody, signalsGroup...)

	eventT0 := make([]byte, 8)
	eventT0[7] = 20 // t0 = 20, outside [0,10)
	eventMsg := be32(0) // empty message
	event := append(eventT0, eventMsg...)
	eventsGroup := append(be32(uint32(len(event))), event...)
	nsBody = append(nsBody, eventsGroup...)

	alarmsGroup := be32(0)
	nsBody = append(nsBody, alarmsGroup...)

	nsFrame := append(be32(uint32(len(nsBody))), nsBody...)

	chBody := append(be32(0), nsFrame...) // empty channel id + one namespace
	chFrame := append(be32(uint32(len(chBody))), chBody...)

	data := append(be32(owf.Magic), be32(uint32(len(chFrame)))...)
	data = append(data, chFrame...)

	_, err := NewDecoder(bufferSource(data)).DecodeDOM(nil)
	if err == nil {
		t.Fatal("expected a coverage violation error")
	}
	ce, ok := err.(*Error)
	if !ok || ce.Kind != CoverageViolation {
		t.Fatalf("expected CoverageViolation, got %v", err)
	}
}

func TestWalkVisitorSkipsChannelSubtree(t *testing.T) {
	pkg := owf.NewPackage()
	ch1 := owf.NewChannel("skip-me")
	ns := owf.NewNamespace("ns", 0, 100)
	sig := owf.NewSignal("s", "u")
	sig.PushSamples([]float64{1, 2, 3})
	ns.PushSignal(sig)
	ch1.PushNamespace(ns)

	ch2 := owf.NewChannel("keep-me")

	pkg.PushChannel(ch1)
	pkg.PushChannel(ch2)

	var buf bytes.Buffer
	if err := NewEncoder(bufferSink(&buf)).Encode(pkg); err != nil {
		t.Fatalf("unexpected encode error: %v", err)
	}

	var seenChannels []string
	var seenNamespaces int
	err := NewDecoder(bufferSource(buf.Bytes())).Walk(func(n Node) bool {
		if n.Channel != nil {
			seenChannels = append(seenChannels, n.Channel.ID().String())
			return n.Channel.ID().String() != "skip-me"
		}
		if n.Namespace != nil {
			seenNamespaces++
		}
		return true
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(seenChannels) != 2 {
		t.Fatalf("expected both channels to be visited, got %v", seenChannels)
	}
	if seenNamespaces != 0 {
		t.Fatalf("expected the skipped channel's namespace to never be visited, got %d", seenNamespaces)
	}
}

func TestWalkVisitorSkipsNamespaceSubtree(t *testing.T) {
	pkg := owf.NewPackage()
	ch := owf.NewChannel("c")
	ns := owf.NewNamespace("ns", 0, 100)
	sig := owf.NewSignal("s", "u")
	sig.PushSamples([]float64{1, 2, 3})
	ns.PushSignal(sig)
	ch.PushNamespace(ns)
	pkg.PushChannel(ch)

	var buf bytes.Buffer
	if err := NewEncoder(bufferSink(&buf)).Encode(pkg); err != nil {
		t.Fatalf("unexpected encode error: %v", err)
	}

	sawSignal := false
	err := NewDecoder(bufferSource(buf.Bytes())).Walk(func(n Node) bool {
		if n.Namespace != nil {
			return false
		}
		if n.Signal != nil {
			sawSignal = true
		}
		return true
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sawSignal {
		t.Fatal("expected the skipped namespace's signal to never be visited")
	}
}

func TestDecodeEmptyStringSizing(t *testing.T) {
	// A package with one channel whose id is the empty string.
	chBody := be32(0)
	chFrame := append(be32(uint32(len(chBody))), chBody...)
	data := append(be32(owf.Magic), be32(uint32(len(chFrame)))...)
	data = append(data, chFrame...)

	pkg, err := NewDecoder(bufferSource(data)).DecodeDOM(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pkg.Channels()) != 1 || pkg.Channels()[0].ID().String() != "" {
		t.Fatal("expected a single channel with an empty id")
	}
}
