package concepts

import (
	"testing"

	"github.com/mmp/marskit/encode"
	"github.com/mmp/marskit/mars"
)

func TestMatchStatisticsRequiresVariantOption(t *testing.T) {
	if _, ok := matchStatistics(mars.NewRequest("retrieve"), encode.NewMapDict()); ok {
		t.Error("expected no match without a statistics.<variant> option")
	}
}

func TestMatchStatisticsFindsConfiguredVariant(t *testing.T) {
	opt := encode.NewMapDict()
	opt.SetLong("statistics.accumulation", 1)
	variant, ok := matchStatistics(mars.NewRequest("retrieve"), opt)
	if !ok || variant != "accumulation" {
		t.Errorf("got (%q, %v), want (accumulation, true)", variant, ok)
	}
}

func TestStatisticsEntrySetsTemplateAndProcess(t *testing.T) {
	out := encode.NewMapDict()
	if err := statisticsEntry("maximum", mars.NewRequest("retrieve"), encode.NewMapDict(), out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	template, _ := out.GetLong("productDefinitionTemplateNumber")
	process, _ := out.GetLong("typeOfStatisticalProcessing")
	if template != 8 {
		t.Errorf("got template %d, want 8", template)
	}
	if process != 2 {
		t.Errorf("got typeOfStatisticalProcessing %d, want 2 for maximum", process)
	}
}

func TestStatisticsEntryRejectsUnknownVariant(t *testing.T) {
	err := statisticsEntry("bogus", mars.NewRequest("retrieve"), encode.NewMapDict(), encode.NewMapDict())
	if err == nil {
		t.Fatal("expected error for unknown statistics variant")
	}
}
