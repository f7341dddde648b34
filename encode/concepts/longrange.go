package concepts

import (
	"fmt"

	"github.com/mmp/marskit/encode"
	"github.com/mmp/marskit/mars"
)

// longrangeStreams are the MARS streams that carry seasonal/long-range
// forecast products, the only ones the longrange concept applies to.
var longrangeStreams = map[string]bool{
	"mnfc": true,
	"mofc": true,
	"msmm": true,
	"mmsf": true,
}

// longrange is the Preset-stage, LocalUse-section concept that switches
// on GRIB2's local definition 15 (ECMWF long-range forecasts) when the
// request's stream is a seasonal one. Grounded on SPEC_FULL.md §4.I.
func init() {
	encode.RegisterConcept(&encode.Concept{
		Name:    "longrange",
		Stage:   encode.StagePreset,
		Section: encode.SectionLocalUse,
		Match:   matchLongrange,
		Entries: map[encode.Variant]encode.Entry{
			"default": longrangeDefault,
		},
	})
}

func matchLongrange(req *mars.Request, opt encode.Dict) (encode.Variant, bool) {
	if longrangeStreams[firstValue(req, "stream")] {
		return "default", true
	}
	return "", false
}

func longrangeDefault(req *mars.Request, opt encode.Dict, out encode.Dict) error {
	localDefinitionNumber := int64(15)
	if v, ok := opt.GetOptLong("localDefinitionNumber"); ok {
		localDefinitionNumber = v
	}
	if localDefinitionNumber != 15 {
		return fmt.Errorf("longrange: localDefinitionNumber %d is not a recognized long-range local definition", localDefinitionNumber)
	}
	out.SetLong("setLocalDefinition", 1)
	out.SetLong("localDefinitionNumber", localDefinitionNumber)
	if number := firstValue(req, "number"); number != "" {
		out.SetString("systemNumber", firstValue(req, "system"))
		out.SetString("methodNumber", firstValue(req, "method"))
	}
	return nil
}
