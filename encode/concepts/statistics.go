package concepts

import (
	"strconv"
	"strings"

	"github.com/mmp/marskit/encode"
	"github.com/mmp/marskit/mars"
)

// statisticalProcessByVariant maps the legacy "time-statistics"
// subvariant (Config renames "time-statistics: X" to the option key
// "statistics.X") to GRIB2 Code Table 4.10's type of statistical
// processing, grounded on product/template48.go's StatisticalTimeRange.
var statisticalProcessByVariant = map[string]int64{
	"average":     0,
	"accumulation": 1,
	"maximum":     2,
	"minimum":     3,
	"difference":  4,
}

// statistics is the Preset-stage, ProductDefinition-section concept that
// switches the product definition template from 4.0 to 4.8 and populates
// its statistical-processing fields, one variant per
// statisticalProcessByVariant entry. It only matches when the recipe
// carries a "statistics.<variant>" option (Config's rename of the legacy
// "time-statistics" key).
func init() {
	entries := map[encode.Variant]encode.Entry{}
	for variant := range statisticalProcessByVariant {
		v := variant
		entries[encode.Variant(v)] = func(req *mars.Request, opt encode.Dict, out encode.Dict) error {
			return statisticsEntry(v, req, opt, out)
		}
	}
	encode.RegisterConcept(&encode.Concept{
		Name:    "statistics",
		Stage:   encode.StagePreset,
		Section: encode.SectionProductDefinition,
		Match:   matchStatistics,
		Entries: entries,
	})
}

func matchStatistics(req *mars.Request, opt encode.Dict) (encode.Variant, bool) {
	for variant := range statisticalProcessByVariant {
		if opt.Has("statistics." + variant) {
			return encode.Variant(variant), true
		}
	}
	return "", false
}

func statisticsEntry(variant string, req *mars.Request, opt encode.Dict, out encode.Dict) error {
	process, ok := statisticalProcessByVariant[variant]
	if !ok {
		return &encode.DeductionError{Keyword: "statistics", Message: "unknown variant " + variant}
	}
	out.SetLong("productDefinitionTemplateNumber", 8)
	out.SetLong("typeOfStatisticalProcessing", process)
	out.SetLong("indicatorOfUnitForTimeRange", 1) // hours

	length := statisticalRangeHours(firstValue(req, "step"))
	out.SetLong("lengthOfTimeRange", length)
	return nil
}

// statisticalRangeHours extracts the length of a "start-end" MARS step
// range (e.g. "0-24") in hours, or parses a plain step value as a
// zero-length instantaneous range.
func statisticalRangeHours(step string) int64 {
	if before, after, found := strings.Cut(step, "-"); found {
		start, err1 := strconv.Atoi(before)
		end, err2 := strconv.Atoi(after)
		if err1 == nil && err2 == nil && end >= start {
			return int64(end - start)
		}
	}
	return 0
}
