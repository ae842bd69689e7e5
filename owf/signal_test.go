package owf

import "testing"

func TestSignalSizeEmpty(t *testing.T) {
	s := NewSignal("", "")
	sz, err := s.Size()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// size(id)=4 + size(unit)=4 + 4 (samples header) + 0 samples
	if sz != 4+4+4 {
		t.Fatalf("expected %d, got %d", 4+4+4, sz)
	}
}

func TestSignalSizeWithSamples(t *testing.T) {
	s := NewSignal("hi", "V")
	s.PushSample(1.0)
	s.PushSample(2.0)
	sz, err := s.Size()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// id "hi" -> 8, unit "V" -> 8, samples header 4 + 2*8 = 20
	if sz != 8+8+4+16 {
		t.Fatalf("expected %d, got %d", 8+8+4+16, sz)
	}
}

func TestSignalPushSamplesBulk(t *testing.T) {
	s := NewSignal("s", "u")
	s.PushSamples([]float64{1, 2, 3})
	if s.NumSamples() != 3 {
		t.Fatalf("expected 3 samples, got %d", s.NumSamples())
	}
}

func TestSignalSizeInvalidatedBySetID(t *testing.T) {
	s := NewSignal("a", "u")
	sz1, _ := s.Size()
	s.SetID("much longer id")
	sz2, _ := s.Size()
	if sz1 == sz2 {
		t.Fatal("expected size to change after SetID")
	}
}

func TestSignalCompareByID(t *testing.T) {
	a := NewSignal("a", "u")
	b := NewSignal("b", "u")
	if a.Compare(b) >= 0 {
		t.Fatal("expected a < b")
	}
}

func TestSignalCompareByUnitWhenIDEqual(t *testing.T) {
	a := NewSignal("s", "a")
	b := NewSignal("s", "b")
	if a.Compare(b) >= 0 {
		t.Fatal("expected a < b by unit")
	}
}

func TestSignalCompareBySampleLength(t *testing.T) {
	a := NewSignal("s", "u")
	b := NewSignal("s", "u")
	b.PushSample(1.0)
	if a.Compare(b) >= 0 {
		t.Fatal("expected fewer samples to compare less")
	}
}

func TestSignalCompareBySampleValues(t *testing.T) {
	a := NewSignal("s", "u")
	a.PushSample(1.0)
	b := NewSignal("s", "u")
	b.PushSample(2.0)
	if a.Compare(b) >= 0 {
		t.Fatal("expected 1.0 < 2.0")
	}
	if a.Compare(a) != 0 {
		t.Fatal("expected equal signals to compare equal")
	}
}
