package concepts

import (
	"testing"

	"github.com/mmp/marskit/encode"
	"github.com/mmp/marskit/mars"
)

func TestMatchGeneratingProcessPrefersExplicitModel(t *testing.T) {
	opt := encode.NewMapDict()
	opt.SetString("generatingProcess", "ifs")
	variant, ok := matchGeneratingProcess(mars.NewRequest("retrieve"), opt)
	if !ok || variant != "explicit" {
		t.Errorf("got (%q, %v), want (explicit, true)", variant, ok)
	}
}

func TestGeneratingProcessExplicitKnownModel(t *testing.T) {
	opt := encode.NewMapDict()
	opt.SetString("generatingProcess", "wam")
	out := encode.NewMapDict()

	if err := generatingProcessExplicit(mars.NewRequest("retrieve"), opt, out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	background, _ := out.GetLong("backgroundProcess")
	if background != 9 {
		t.Errorf("got backgroundProcess %d, want 9 for wam", background)
	}
}

func TestGeneratingProcessExplicitUnknownModelFallsBack(t *testing.T) {
	opt := encode.NewMapDict()
	opt.SetString("generatingProcess", "some-legacy-model")
	out := encode.NewMapDict()

	if err := generatingProcessExplicit(mars.NewRequest("retrieve"), opt, out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	background, _ := out.GetLong("backgroundProcess")
	if background != 255 {
		t.Errorf("got backgroundProcess %d, want 255 passthrough", background)
	}
}

func TestGeneratingProcessDefaultAnalysisVsForecast(t *testing.T) {
	req := mars.NewRequest("retrieve")
	req.SetValues("type", []string{"an"}, nil)
	out := encode.NewMapDict()
	if err := generatingProcessDefault(req, encode.NewMapDict(), out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	generating, _ := out.GetLong("typeOfGeneratingProcess")
	if generating != 0 {
		t.Errorf("got %d, want 0 for an analysis", generating)
	}

	req.SetValues("type", []string{"fc"}, nil)
	out = encode.NewMapDict()
	if err := generatingProcessDefault(req, encode.NewMapDict(), out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	generating, _ = out.GetLong("typeOfGeneratingProcess")
	if generating != 2 {
		t.Errorf("got %d, want 2 for a forecast", generating)
	}
}
