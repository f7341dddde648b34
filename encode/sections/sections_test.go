package sections

import (
	"testing"

	"github.com/mmp/marskit/encode"
)

func TestInitClimateDTSetsDataset(t *testing.T) {
	out := encode.NewMapDict()
	if err := initClimateDT(out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	dataset, err := out.GetString("dataset")
	if err != nil || dataset != "climate-dt" {
		t.Errorf("got (%q, %v), want climate-dt", dataset, err)
	}
	status, _ := out.GetLong("productionStatusOfProcessedData")
	if status != 12 {
		t.Errorf("got productionStatusOfProcessedData %d, want 12", status)
	}
}

func TestInitExtremesDTSetsDataset(t *testing.T) {
	out := encode.NewMapDict()
	if err := initExtremesDT(out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	dataset, err := out.GetString("dataset")
	if err != nil || dataset != "extremes-dt" {
		t.Errorf("got (%q, %v), want extremes-dt", dataset, err)
	}
}

func TestInitLatLonSetsTemplateZero(t *testing.T) {
	out := encode.NewMapDict()
	if err := initLatLon(out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	template, _ := out.GetLong("gridDefinitionTemplateNumber")
	if template != 0 {
		t.Errorf("got %d, want 0", template)
	}
}

func TestInitSphericalHarmonicsDefaultsTruncation(t *testing.T) {
	out := encode.NewMapDict()
	if err := initSphericalHarmonics(out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	template, _ := out.GetLong("gridDefinitionTemplateNumber")
	if template != 50 {
		t.Errorf("got template %d, want 50", template)
	}
	j, _ := out.GetLong("J")
	if j != 0 {
		t.Errorf("got J %d, want 0 default", j)
	}
}

func TestInitSphericalHarmonicsPreservesExistingTruncation(t *testing.T) {
	out := encode.NewMapDict()
	out.SetLong("J", 639)
	if err := initSphericalHarmonics(out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	j, _ := out.GetLong("J")
	if j != 639 {
		t.Errorf("got J %d, want 639 to be preserved", j)
	}
}

func TestInitAnalysisOrForecastSetsTemplate(t *testing.T) {
	out := encode.NewMapDict()
	if err := initAnalysisOrForecast(out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	template, _ := out.GetLong("productDefinitionTemplateNumber")
	if template != 0 {
		t.Errorf("got %d, want 0", template)
	}
}

func TestInitSimplePackingSetsTemplate(t *testing.T) {
	out := encode.NewMapDict()
	if err := initSimplePacking(out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	template, _ := out.GetLong("dataRepresentationTemplateNumber")
	if template != 0 {
		t.Errorf("got %d, want 0", template)
	}
}
