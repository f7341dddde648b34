package types

import (
	"testing"
)

func TestEnumExactMatch(t *testing.T) {
	e := NewEnum("levtype", Settings{Values: []string{"surface", "pressure"}})
	got, err := e.ExpandOne(Context{}, "surface")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "surface" {
		t.Errorf("got %q, want %q", got, "surface")
	}
}

func TestEnumCaseInsensitive(t *testing.T) {
	e := NewEnum("levtype", Settings{Values: []string{"surface", "pressure"}})
	got, err := e.ExpandOne(Context{}, "SURFACE")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "surface" {
		t.Errorf("got %q, want %q", got, "surface")
	}
}

func TestEnumPrefixBestMatch(t *testing.T) {
	e := NewEnum("levtype", Settings{Values: []string{"surface", "pressure"}})
	got, err := e.ExpandOne(Context{}, "surf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "surface" {
		t.Errorf("got %q, want %q", got, "surface")
	}
}

func TestEnumAmbiguousPrefix(t *testing.T) {
	e := NewEnum("levtype", Settings{Values: []string{"surface", "sound"}})
	_, err := e.ExpandOne(Context{}, "s")
	if err == nil {
		t.Fatal("expected ambiguous value error")
	}
	if _, ok := err.(*AmbiguousValueError); !ok {
		t.Errorf("got %T, want *AmbiguousValueError", err)
	}
}

func TestEnumUnknownValueErrors(t *testing.T) {
	e := NewEnum("levtype", Settings{Values: []string{"surface"}})
	_, err := e.ExpandOne(Context{}, "orbit")
	if err == nil {
		t.Fatal("expected error for unknown value")
	}
}

func TestEnumAlias(t *testing.T) {
	e := NewEnum("type", Settings{
		Values:  []string{"analysis"},
		Aliases: map[string]string{"an": "analysis"},
	})
	got, err := e.ExpandOne(Context{}, "an")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "analysis" {
		t.Errorf("got %q, want %q", got, "analysis")
	}
}

func TestEnumGroupExpansion(t *testing.T) {
	e := NewEnum("param", Settings{Values: []string{"surfwinds=10u/10v"}})
	out, err := e.ExpandMany(Context{}, []string{"surfwinds"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 || out[0] != "10u" || out[1] != "10v" {
		t.Errorf("got %v, want [10u 10v]", out)
	}
}

func TestEnumExpandManyDedups(t *testing.T) {
	e := NewEnum("levtype", Settings{Values: []string{"surface"}})
	out, err := e.ExpandMany(Context{}, []string{"surface", "SURFACE"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 {
		t.Errorf("got %v, want one deduplicated value", out)
	}
}

func TestEnumNoValuesPassesThrough(t *testing.T) {
	e := NewEnum("origin", Settings{})
	got, err := e.ExpandOne(Context{}, "ecmf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ecmf" {
		t.Errorf("got %q, want %q", got, "ecmf")
	}
}
