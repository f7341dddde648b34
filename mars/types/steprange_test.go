package types

import "testing"

func TestStepRangeSingleValue(t *testing.T) {
	sr := NewStepRange("step", Settings{})
	out, err := sr.ExpandMany(Context{}, []string{"12"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || out[0] != "12" {
		t.Errorf("got %v, want [12]", out)
	}
}

func TestStepRangeToByExpansion(t *testing.T) {
	sr := NewStepRange("step", Settings{})
	out, err := sr.ExpandMany(Context{}, []string{"0/to/12/by/6"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"0", "6", "12"}
	if len(out) != len(want) {
		t.Fatalf("got %v, want %v", out, want)
	}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("index %d: got %q, want %q", i, out[i], want[i])
		}
	}
}

func TestStepRangeHyphenatedRange(t *testing.T) {
	sr := NewStepRange("step", Settings{})
	out, err := sr.ExpandMany(Context{}, []string{"0-24"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || out[0] != "0-24" {
		t.Errorf("got %v, want [0-24]", out)
	}
}

func TestStepRangeByZeroErrors(t *testing.T) {
	sr := NewStepRange("step", Settings{})
	_, err := sr.ExpandMany(Context{}, []string{"0/to/12/by/0"})
	if err == nil {
		t.Fatal("expected error for zero step")
	}
}

func TestStepRangeSlashList(t *testing.T) {
	sr := NewStepRange("step", Settings{})
	out, err := sr.ExpandMany(Context{}, []string{"0/6/12"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"0", "6", "12"}
	if len(out) != len(want) {
		t.Fatalf("got %v, want %v", out, want)
	}
}
