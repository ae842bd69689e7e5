package owf

import "testing"

func TestPackageSizeEmpty(t *testing.T) {
	p := NewPackage()
	sz, err := p.Size()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sz != 8 {
		t.Fatalf("expected 8 (magic+length header only), got %d", sz)
	}
}

func TestPackageSizeWithChannel(t *testing.T) {
	p := NewPackage()
	p.PushChannel(NewChannel("BED_42"))
	sz, err := p.Size()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 8 (magic+length) + channel size (4+12=16)
	if sz != 8+16 {
		t.Fatalf("expected %d, got %d", 8+16, sz)
	}
}

func TestPackageSizeInvalidatedByPushChannel(t *testing.T) {
	p := NewPackage()
	sz1, _ := p.Size()
	p.PushChannel(NewChannel("c"))
	sz2, _ := p.Size()
	if sz1 == sz2 {
		t.Fatal("expected size to change after PushChannel")
	}
}

func TestPackageCompare(t *testing.T) {
	a := NewPackage()
	b := NewPackage()
	b.PushChannel(NewChannel("c"))
	if a.Compare(b) >= 0 {
		t.Fatal("expected fewer channels to compare less")
	}
	if a.Compare(a) != 0 {
		t.Fatal("expected equal packages to compare equal")
	}
}

func TestPackageCompareLexicographicByChannels(t *testing.T) {
	a := NewPackage()
	a.PushChannel(NewChannel("a"))
	b := NewPackage()
	b.PushChannel(NewChannel("b"))
	if a.Compare(b) >= 0 {
		t.Fatal("expected channel 'a' to sort before 'b'")
	}
}
