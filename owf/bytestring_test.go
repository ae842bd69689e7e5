package owf

import "testing"

func TestByteStringSizeEmpty(t *testing.T) {
	bs := NewByteString(nil)
	sz, err := bs.Size()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sz != 4 {
		t.Fatalf("expected 4 (header only), got %d", sz)
	}
}

func TestByteStringSizeNonEmpty(t *testing.T) {
	// "hi": content 2 + NUL 1 = 3, padded to 4, + 4-byte header = 8.
	bs := NewByteString([]byte("hi"))
	sz, err := bs.Size()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sz != 8 {
		t.Fatalf("expected 8, got %d", sz)
	}
}

func TestByteStringSizeThreeByteContent(t *testing.T) {
	// "abc": content 3 + NUL 1 = 4, padding 0, + 4-byte header = 8.
	bs := NewByteString([]byte("abc"))
	sz, err := bs.Size()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sz != 8 {
		t.Fatalf("expected 8, got %d", sz)
	}
}

func TestByteStringSizeSixByteContent(t *testing.T) {
	// "BED_42": content 6 + NUL 1 = 7, padding 1 = 8, + 4-byte header = 12.
	bs := NewByteString([]byte("BED_42"))
	sz, err := bs.Size()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sz != 12 {
		t.Fatalf("expected 12, got %d", sz)
	}
}

func TestByteStringSizeMemoized(t *testing.T) {
	bs := NewByteString([]byte("hi"))
	first, _ := bs.Size()
	second, _ := bs.Size()
	if first != second {
		t.Fatalf("expected memoized size to be stable, got %d then %d", first, second)
	}
}

func TestByteStringSetInvalidatesSize(t *testing.T) {
	bs := NewByteString([]byte("hi"))
	sz1, _ := bs.Size()
	bs.Set([]byte("much longer string"))
	sz2, _ := bs.Size()
	if sz1 == sz2 {
		t.Fatal("expected size to change after Set")
	}
}

func TestByteStringCompare(t *testing.T) {
	a := NewByteString([]byte("a"))
	b := NewByteString([]byte("b"))
	if a.Compare(b) >= 0 {
		t.Fatal("expected a < b")
	}
	if b.Compare(a) <= 0 {
		t.Fatal("expected b > a")
	}
	if a.Compare(a) != 0 {
		t.Fatal("expected a == a")
	}
}

func TestByteStringEqual(t *testing.T) {
	a := NewByteString([]byte("x"))
	b := NewByteString([]byte("x"))
	if !a.Equal(b) {
		t.Fatal("expected equal contents to compare equal")
	}
}
