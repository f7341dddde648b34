package concepts

import (
	"testing"

	"github.com/mmp/marskit/encode"
	"github.com/mmp/marskit/mars"
)

func TestMatchTablesDefaultsWithoutOverride(t *testing.T) {
	req := mars.NewRequest("retrieve")
	variant, ok := matchTables(req, encode.NewMapDict())
	if !ok || variant != "default" {
		t.Errorf("got (%q, %v), want (default, true)", variant, ok)
	}
}

func TestMatchTablesCustomWhenVersionConfigured(t *testing.T) {
	opt := encode.NewMapDict()
	opt.SetLong("tablesVersion", 19)
	variant, ok := matchTables(mars.NewRequest("retrieve"), opt)
	if !ok || variant != "custom" {
		t.Errorf("got (%q, %v), want (custom, true)", variant, ok)
	}
}

func TestTablesDefaultParsesDateAndTime(t *testing.T) {
	req := mars.NewRequest("retrieve")
	req.SetValues("date", []string{"20260115"}, nil)
	req.SetValues("time", []string{"1200"}, nil)
	req.SetValues("type", []string{"an"}, nil)
	out := encode.NewMapDict()

	if err := tablesDefault(req, encode.NewMapDict(), out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	year, _ := out.GetLong("year")
	month, _ := out.GetLong("month")
	day, _ := out.GetLong("day")
	hour, _ := out.GetLong("hour")
	if year != 2026 || month != 1 || day != 15 || hour != 12 {
		t.Errorf("got (%d,%d,%d,%d), want (2026,1,15,12)", year, month, day, hour)
	}
	typeOfProcessed, _ := out.GetLong("typeOfProcessedData")
	if typeOfProcessed != 0 {
		t.Errorf("got typeOfProcessedData %d, want 0 for an analysis", typeOfProcessed)
	}
}

func TestTablesCustomUsesConfiguredVersion(t *testing.T) {
	opt := encode.NewMapDict()
	opt.SetLong("tablesVersion", 19)
	opt.SetLong("localTablesVersion", 2)
	out := encode.NewMapDict()

	if err := tablesCustom(mars.NewRequest("retrieve"), opt, out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	version, _ := out.GetLong("tablesVersion")
	local, _ := out.GetLong("localTablesVersion")
	if version != 19 || local != 2 {
		t.Errorf("got (%d,%d), want (19,2)", version, local)
	}
}

func TestTablesCustomRequiresTablesVersion(t *testing.T) {
	if err := tablesCustom(mars.NewRequest("retrieve"), encode.NewMapDict(), encode.NewMapDict()); err == nil {
		t.Error("expected error when tablesVersion is missing")
	}
}
