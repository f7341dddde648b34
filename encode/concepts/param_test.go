package concepts

import (
	"testing"

	"github.com/mmp/marskit/encode"
	"github.com/mmp/marskit/mars"
)

func newRequestWithParam(t *testing.T, param string) *mars.Request {
	t.Helper()
	req := mars.NewRequest("retrieve")
	if param != "" {
		if err := req.SetValues("param", []string{param}, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	return req
}

func TestMatchParamRequiresParamKeyword(t *testing.T) {
	req := newRequestWithParam(t, "")
	if _, ok := matchParam(req, encode.NewMapDict()); ok {
		t.Error("expected no match when param is absent")
	}
}

func TestParamDefaultKnownWMOParam(t *testing.T) {
	req := newRequestWithParam(t, "167")
	out := encode.NewMapDict()
	if err := paramDefault(req, encode.NewMapDict(), out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	discipline, _ := out.GetLong("discipline")
	category, _ := out.GetLong("parameterCategory")
	number, _ := out.GetLong("parameterNumber")
	if discipline != 0 || category != 0 || number != 0 {
		t.Errorf("got (%d,%d,%d), want (0,0,0)", discipline, category, number)
	}
}

func TestParamDefaultFallsBackToLocalUseForUnknownNumericParam(t *testing.T) {
	req := newRequestWithParam(t, "260015")
	out := encode.NewMapDict()
	if err := paramDefault(req, encode.NewMapDict(), out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	discipline, _ := out.GetLong("discipline")
	if discipline != 255 {
		t.Errorf("got discipline %d, want 255 for local-use fallback", discipline)
	}
}

func TestParamDefaultRejectsUnresolvableParam(t *testing.T) {
	req := newRequestWithParam(t, "not-a-param")
	out := encode.NewMapDict()
	err := paramDefault(req, encode.NewMapDict(), out)
	if err == nil {
		t.Fatal("expected error for an unresolvable non-numeric param")
	}
	if _, ok := err.(*encode.DeductionError); !ok {
		t.Errorf("got %T, want *encode.DeductionError", err)
	}
}
