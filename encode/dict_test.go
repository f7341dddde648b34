package encode

import "testing"

func TestMapDictSetGetLong(t *testing.T) {
	d := NewMapDict()
	if err := d.SetLong("foo", 42); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, err := d.GetLong("foo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 42 {
		t.Errorf("got %d, want 42", v)
	}
}

func TestMapDictGetLongMissingKey(t *testing.T) {
	d := NewMapDict()
	if _, err := d.GetLong("missing"); err == nil {
		t.Error("expected error for missing key")
	}
}

func TestMapDictGetLongWrongType(t *testing.T) {
	d := NewMapDict()
	d.SetString("foo", "bar")
	if _, err := d.GetLong("foo"); err == nil {
		t.Error("expected error for non-integer value")
	}
}

func TestMapDictGetOptLong(t *testing.T) {
	d := NewMapDict()
	if _, ok := d.GetOptLong("absent"); ok {
		t.Error("expected ok=false for absent key")
	}
	d.SetLong("present", 7)
	v, ok := d.GetOptLong("present")
	if !ok || v != 7 {
		t.Errorf("got (%d, %v), want (7, true)", v, ok)
	}
}

func TestMapDictDoublesRoundTrip(t *testing.T) {
	d := NewMapDict()
	want := []float64{1.5, 2.5, 3.5}
	if err := d.SetDoubles("vals", want); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := d.GetDoubles("vals")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestMapDictHas(t *testing.T) {
	d := NewMapDict()
	if d.Has("x") {
		t.Error("expected Has to be false before Set")
	}
	d.SetLong("x", 1)
	if !d.Has("x") {
		t.Error("expected Has to be true after Set")
	}
}

func TestMapDictGetDoubleCoercesInt(t *testing.T) {
	d := NewMapDict()
	d.SetLong("n", 3)
	v, err := d.GetDouble("n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 3.0 {
		t.Errorf("got %v, want 3.0", v)
	}
}
