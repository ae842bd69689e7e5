package owf

import "testing"

func TestAlarmSize(t *testing.T) {
	a := NewAlarm(0, 100, 1, 2, "t", "m")
	sz, err := a.Size()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 8+8+1+1+2 + size("t")=8 + size("m")=8
	if sz != 8+8+1+1+2+8+8 {
		t.Fatalf("expected %d, got %d", 8+8+1+1+2+8+8, sz)
	}
}

func TestAlarmCompareByT0(t *testing.T) {
	a := NewAlarm(1, 0, 0, 0, "t", "m")
	b := NewAlarm(2, 0, 0, 0, "t", "m")
	if a.Compare(b) >= 0 {
		t.Fatal("expected a < b by t0")
	}
}

func TestAlarmCompareByDtWhenT0Equal(t *testing.T) {
	a := NewAlarm(0, 1, 0, 0, "t", "m")
	b := NewAlarm(0, 2, 0, 0, "t", "m")
	if a.Compare(b) >= 0 {
		t.Fatal("expected a < b by dt")
	}
}

func TestAlarmCompareByLevelThenVolume(t *testing.T) {
	a := NewAlarm(0, 0, 1, 9, "t", "m")
	b := NewAlarm(0, 0, 2, 0, "t", "m")
	if a.Compare(b) >= 0 {
		t.Fatal("expected a < b by level")
	}

	c := NewAlarm(0, 0, 1, 1, "t", "m")
	d := NewAlarm(0, 0, 1, 2, "t", "m")
	if c.Compare(d) >= 0 {
		t.Fatal("expected c < d by volume when level is equal")
	}
}

func TestAlarmCompareByTypeThenMessage(t *testing.T) {
	a := NewAlarm(0, 0, 0, 0, "a", "z")
	b := NewAlarm(0, 0, 0, 0, "b", "a")
	if a.Compare(b) >= 0 {
		t.Fatal("expected a < b by type")
	}

	c := NewAlarm(0, 0, 0, 0, "t", "a")
	d := NewAlarm(0, 0, 0, 0, "t", "b")
	if c.Compare(d) >= 0 {
		t.Fatal("expected c < d by message when type is equal")
	}
}

func TestAlarmSetTypeAndMessageInvalidateSize(t *testing.T) {
	a := NewAlarm(0, 0, 0, 0, "t", "m")
	sz1, _ := a.Size()
	a.SetType("a much longer type string")
	sz2, _ := a.Size()
	if sz1 == sz2 {
		t.Fatal("expected size to change after SetType")
	}
	a.SetMessage("a much longer message string")
	sz3, _ := a.Size()
	if sz2 == sz3 {
		t.Fatal("expected size to change after SetMessage")
	}
}

// NewAlarm accepts a negative Dt without complaint; rejecting it is the
// encoder's job (see codec.Encoder.writeAlarm), since Dt is stored as
// int64 here purely for symmetry with T0.
func TestAlarmNegativeDtConstructs(t *testing.T) {
	a := NewAlarm(0, -1, 0, 0, "t", "m")
	if a.Dt != -1 {
		t.Fatalf("expected Dt to be stored as given, got %d", a.Dt)
	}
}
