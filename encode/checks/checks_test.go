package checks

import (
	"testing"

	"github.com/mmp/marskit/encode"
)

func TestCheckLocalUseSectionSkipsWhenUnset(t *testing.T) {
	out := encode.NewMapDict()
	if err := CheckLocalUseSection(encode.NewMapDict(), out, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCheckLocalUseSectionRequiresLocalDefinitionNumber(t *testing.T) {
	out := encode.NewMapDict()
	out.SetLong("setLocalDefinition", 1)
	if err := CheckLocalUseSection(encode.NewMapDict(), out, nil); err == nil {
		t.Error("expected error when localDefinitionNumber is missing")
	}
}

func TestCheckLocalUseSectionRequiresDataset(t *testing.T) {
	out := encode.NewMapDict()
	out.SetLong("setLocalDefinition", 1)
	out.SetLong("localDefinitionNumber", 1)
	if err := CheckLocalUseSection(encode.NewMapDict(), out, nil); err == nil {
		t.Error("expected error when dataset is missing")
	}
}

func TestCheckLocalUseSectionPasses(t *testing.T) {
	out := encode.NewMapDict()
	out.SetLong("setLocalDefinition", 1)
	out.SetLong("localDefinitionNumber", 1)
	out.SetString("dataset", "climate-dt")
	if err := CheckLocalUseSection(encode.NewMapDict(), out, nil); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCheckTemplateConsistencyRequiresGridTemplate(t *testing.T) {
	out := encode.NewMapDict()
	if err := CheckTemplateConsistency(encode.NewMapDict(), out, nil); err == nil {
		t.Error("expected error when gridDefinitionTemplateNumber was never set")
	}
}

func TestCheckTemplateConsistencyRequiresStatisticalProcessingForTemplate8(t *testing.T) {
	out := encode.NewMapDict()
	out.SetLong("gridDefinitionTemplateNumber", 0)
	out.SetLong("productDefinitionTemplateNumber", 8)
	if err := CheckTemplateConsistency(encode.NewMapDict(), out, nil); err == nil {
		t.Error("expected error when template 4.8 is missing typeOfStatisticalProcessing")
	}
}

func TestCheckTemplateConsistencyPasses(t *testing.T) {
	out := encode.NewMapDict()
	out.SetLong("gridDefinitionTemplateNumber", 0)
	out.SetLong("productDefinitionTemplateNumber", 8)
	out.SetLong("typeOfStatisticalProcessing", 1)
	if err := CheckTemplateConsistency(encode.NewMapDict(), out, nil); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
