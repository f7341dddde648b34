package decode

import (
	"testing"
	"time"

	"github.com/mmp/marskit/mars/language"
	"github.com/mmp/marskit/mars/types"
	"github.com/mmp/marskit/message"
	"github.com/mmp/marskit/product"
	"github.com/mmp/marskit/section"
)

func testMessage() *message.GRIB2Message {
	return &message.GRIB2Message{
		Section0: &section.Section0{Discipline: 0, Edition: 2},
		Section1: &section.Section1{
			ReferenceTime: time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC),
			TypeOfData:    1,
		},
		Section4: &section.Section4{
			Product: &product.Template40{
				ParameterCategory: 3,
				ParameterNumber:   1,
				ForecastTime:      24,
				FirstSurfaceType:  100,
				FirstSurfaceValue: 850,
			},
		},
	}
}

func TestDecodeGRIBWithoutLanguage(t *testing.T) {
	req, err := DecodeGRIB(testMessage(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	checks := map[string]string{
		"class":    "od",
		"stream":   "oper",
		"expver":   "0001",
		"domain":   "g",
		"date":     "20260115",
		"time":     "1200",
		"type":     "fc",
		"param":    "151",
		"step":     "24",
		"levtype":  "pl",
		"levelist": "850",
	}
	for key, want := range checks {
		vals, err := req.Values(key, false)
		if err != nil {
			t.Errorf("key %q: %v", key, err)
			continue
		}
		if len(vals) != 1 || vals[0] != want {
			t.Errorf("key %q: got %v, want [%s]", key, vals, want)
		}
	}
}

func TestDecodeGRIBMissingSections(t *testing.T) {
	if _, err := DecodeGRIB(nil, nil); err == nil {
		t.Error("expected error for nil message")
	}
	if _, err := DecodeGRIB(&message.GRIB2Message{}, nil); err == nil {
		t.Error("expected error for message missing sections 0/1")
	}
}

func TestDecodeGRIBWithLanguageExpandsDefaults(t *testing.T) {
	lang, err := language.NewLanguage("retrieve", []language.KeywordDef{
		{Name: "class", Settings: types.Settings{Class: "enum", Values: []string{"od"}, DefaultVals: []string{"od"}}},
		{Name: "stream", Settings: types.Settings{Class: "enum", Values: []string{"oper"}, DefaultVals: []string{"oper"}}},
		{Name: "expver", Settings: types.Settings{Class: "any", DefaultVals: []string{"0001"}}},
		{Name: "domain", Settings: types.Settings{Class: "enum", Values: []string{"g"}, DefaultVals: []string{"g"}}},
		{Name: "date", Settings: types.Settings{Class: "any"}},
		{Name: "time", Settings: types.Settings{Class: "any"}},
		{Name: "type", Settings: types.Settings{Class: "enum", Values: []string{"an", "fc", "pf", "cf"}}},
		{Name: "param", Settings: types.Settings{Class: "any"}},
		{Name: "step", Settings: types.Settings{Class: "any"}},
		{Name: "levtype", Settings: types.Settings{Class: "enum", Values: []string{"pl", "sfc", "sol", "ml"}}},
		{Name: "levelist", Settings: types.Settings{Class: "any"}},
	}, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error building language: %v", err)
	}

	req, err := DecodeGRIB(testMessage(), lang)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	vals, _ := req.Values("param", false)
	if len(vals) != 1 || vals[0] != "151" {
		t.Errorf("got param %v, want [151]", vals)
	}
}

func TestSurfaceFieldsUnsupportedTemplate(t *testing.T) {
	_, _, _, ok := surfaceFields(unsupportedProduct{})
	if ok {
		t.Error("expected ok=false for an unsupported product template")
	}
}

func TestTypeOfDataMapping(t *testing.T) {
	cases := map[uint8]string{0: "an", 1: "fc", 2: "pf", 3: "cf", 99: "fc"}
	for code, want := range cases {
		if got := typeOfData(code); got != want {
			t.Errorf("typeOfData(%d) = %q, want %q", code, got, want)
		}
	}
}

func TestLevelTypeNameMapping(t *testing.T) {
	cases := map[uint8]string{100: "pl", 1: "sfc", 106: "sol", 200: "ml"}
	for code, want := range cases {
		if got := levelTypeName(code); got != want {
			t.Errorf("levelTypeName(%d) = %q, want %q", code, got, want)
		}
	}
}

type unsupportedProduct struct{}

func (unsupportedProduct) TemplateNumber() int         { return 99 }
func (unsupportedProduct) GetParameterCategory() uint8 { return 0 }
func (unsupportedProduct) GetParameterNumber() uint8   { return 0 }
func (unsupportedProduct) String() string              { return "unsupported" }
