package concepts

import (
	"github.com/mmp/marskit/encode"
	"github.com/mmp/marskit/mars"
)

// backgroundProcessByModel is the explicit model -> backgroundProcess
// table SPEC_FULL.md §9 calls for in place of the legacy GRIB library's
// implicit side-effecting lookup: each entry maps a numerical weather
// prediction model name, as given by the recipe's "generatingProcess"
// option, to the GRIB2 backgroundProcess code ECMWF registers for it.
var backgroundProcessByModel = map[string]int64{
	"ifs":  0,
	"wam":  9,
	"nemo": 11,
}

// generatingProcess is the Preset-stage, ProductDefinition-section
// concept that sets typeOfGeneratingProcess/backgroundProcess/
// generatingProcessIdentifier. It has two variants: "explicit", used
// when the recipe names a model directly (the legacy "model" key,
// renamed to "generatingProcess" by Config's alias table), and
// "default", which derives typeOfGeneratingProcess from the request's own
// type and sets backgroundProcess 0 and generatingProcessIdentifier 255.
func init() {
	encode.RegisterConcept(&encode.Concept{
		Name:    "generatingProcess",
		Stage:   encode.StagePreset,
		Section: encode.SectionProductDefinition,
		Match:   matchGeneratingProcess,
		Entries: map[encode.Variant]encode.Entry{
			"explicit": generatingProcessExplicit,
			"default":  generatingProcessDefault,
		},
	})
}

func matchGeneratingProcess(req *mars.Request, opt encode.Dict) (encode.Variant, bool) {
	if opt.Has("generatingProcess") {
		return "explicit", true
	}
	return "default", true
}

func generatingProcessExplicit(req *mars.Request, opt encode.Dict, out encode.Dict) error {
	model, err := opt.GetString("generatingProcess")
	if err != nil {
		return err
	}
	background, ok := backgroundProcessByModel[model]
	if !ok {
		// Legacy models with no registered backgroundProcess fall back to
		// a passthrough identifier rather than failing encoding outright;
		// flagged here as the one remaining legacy side effect.
		background = 255
	}
	out.SetLong("backgroundProcess", background)
	out.SetLong("typeOfGeneratingProcess", 2) // forecast
	if id, ok := opt.GetOptLong("generatingProcessIdentifier"); ok {
		out.SetLong("generatingProcessIdentifier", id)
	} else {
		out.SetLong("generatingProcessIdentifier", 255)
	}
	return nil
}

func generatingProcessDefault(req *mars.Request, opt encode.Dict, out encode.Dict) error {
	typ := firstValue(req, "type")
	var generating int64
	switch typ {
	case "an":
		generating = 0
	case "fc", "cf", "pf":
		generating = 2
	default:
		generating = 2
	}
	out.SetLong("typeOfGeneratingProcess", generating)
	out.SetLong("backgroundProcess", 0)
	out.SetLong("generatingProcessIdentifier", 255)
	return nil
}
