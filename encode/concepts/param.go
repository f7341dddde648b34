package concepts

import (
	"strconv"

	"github.com/mmp/marskit/encode"
	"github.com/mmp/marskit/mars"
)

// wmoCode identifies a GRIB2 parameter by WMO discipline/category/number,
// the encode-direction mirror of message.ParameterID.
type wmoCode struct {
	discipline, category, number int64
}

// paramIDTable maps a canonical MARS paramId (as mars/types.Param's
// Pass2 leaves it, after short-name resolution) to its WMO GRIB2 code.
// Grounded on the reverse of message/parameter.go's paramShortNames
// table, restricted to the entries that table covers.
var paramIDTable = map[string]wmoCode{
	"167": {0, 0, 0},  // 2t
	"168": {0, 0, 6},  // 2d
	"151": {0, 3, 1},  // msl
	"129": {0, 3, 4},  // z
	"130": {0, 0, 0},  // t
	"131": {0, 2, 2},  // u
	"132": {0, 2, 3},  // v
	"133": {0, 1, 0},  // q
	"135": {0, 2, 8},  // w
	"157": {0, 1, 1},  // r
	"228": {0, 1, 8},  // tp
	"164": {0, 6, 1},  // tcc
}

// param is the Preset-stage, ProductDefinition-section concept that
// decomposes the request's resolved "param" keyword into the
// discipline/parameterCategory/parameterNumber triple Section 0/4 carry.
// Grounded on SPEC_FULL.md §4.I, extending mars/types.Param's table
// lookup (decode/expand direction) with its encode-direction inverse.
func init() {
	encode.RegisterConcept(&encode.Concept{
		Name:    "param",
		Stage:   encode.StagePreset,
		Section: encode.SectionProductDefinition,
		Match:   matchParam,
		Entries: map[encode.Variant]encode.Entry{
			"default": paramDefault,
		},
	})
}

func matchParam(req *mars.Request, opt encode.Dict) (encode.Variant, bool) {
	if !req.Has("param") {
		return "", false
	}
	return "default", true
}

func paramDefault(req *mars.Request, opt encode.Dict, out encode.Dict) error {
	value := firstValue(req, "param")
	code, ok := paramIDTable[value]
	if !ok {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			// Unregistered numeric paramId: fall back to the local-use
			// parameter table (discipline 255, number from the low two
			// decimal digits, category from the two above them) rather
			// than failing.
			code = wmoCode{discipline: 255, category: (n / 100) % 100, number: n % 100}
		} else {
			return &encode.DeductionError{Keyword: "param", Message: "no WMO discipline/category/number mapping for " + value}
		}
	}
	out.SetLong("discipline", code.discipline)
	out.SetLong("parameterCategory", code.category)
	out.SetLong("parameterNumber", code.number)
	return nil
}
