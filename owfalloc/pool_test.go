package owfalloc

import "testing"

func TestPoolReusesFreedBuffer(t *testing.T) {
	p := NewPool(NewDefault())

	buf, err := p.Alloc(64)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	original := &buf[0]
	p.Free(buf)

	reused, err := p.Alloc(64)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if &reused[0] != original {
		t.Fatal("expected Alloc to reuse the freed buffer's backing array")
	}
}

func TestPoolFallsThroughOnMiss(t *testing.T) {
	p := NewPool(NewDefault())
	buf, err := p.Alloc(128)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(buf) != 128 {
		t.Fatalf("expected 128 bytes, got %d", len(buf))
	}
}

func TestPoolMaxSingleAlloc(t *testing.T) {
	p := NewPool(&Default{MaxAlloc: 100})
	if p.MaxSingleAlloc() != 100 {
		t.Fatalf("expected 100, got %d", p.MaxSingleAlloc())
	}
}
