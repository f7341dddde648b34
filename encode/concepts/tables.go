package concepts

import (
	"github.com/mmp/marskit/encode"
	"github.com/mmp/marskit/mars"
)

// tables is the Allocate-stage, Identification-section concept that
// populates Section 1's master/local table versions and reference time
// from the request's date/time/type keywords. Grounded on SPEC_FULL.md
// §4.I's worked example of the same name.
func init() {
	encode.RegisterConcept(&encode.Concept{
		Name:    "tables",
		Stage:   encode.StageAllocate,
		Section: encode.SectionIdentification,
		Match:   matchTables,
		Entries: map[encode.Variant]encode.Entry{
			"default": tablesDefault,
			"custom":  tablesCustom,
		},
	})
}

func matchTables(req *mars.Request, opt encode.Dict) (encode.Variant, bool) {
	if opt.Has("tablesVersion") {
		return "custom", true
	}
	return "default", true
}

func tablesDefault(req *mars.Request, opt encode.Dict, out encode.Dict) error {
	return setIdentification(req, out, 31, 1)
}

func tablesCustom(req *mars.Request, opt encode.Dict, out encode.Dict) error {
	version, err := opt.GetLong("tablesVersion")
	if err != nil {
		return err
	}
	local := int64(1)
	if v, ok := opt.GetOptLong("localTablesVersion"); ok {
		local = v
	}
	return setIdentification(req, out, version, local)
}

func setIdentification(req *mars.Request, out encode.Dict, tablesVersion, localTablesVersion int64) error {
	out.SetLong("tablesVersion", tablesVersion)
	out.SetLong("localTablesVersion", localTablesVersion)
	out.SetLong("centre", 98)
	out.SetLong("subCentre", 0)
	out.SetLong("significanceOfReferenceTime", 1)

	if y, m, d, ok := parseDate(firstValue(req, "date")); ok {
		out.SetLong("year", int64(y))
		out.SetLong("month", int64(m))
		out.SetLong("day", int64(d))
	}
	h, mnt := parseTime(firstValue(req, "time"))
	out.SetLong("hour", int64(h))
	out.SetLong("minute", int64(mnt))
	out.SetLong("second", 0)

	out.SetLong("typeOfProcessedData", typeOfProcessedData(firstValue(req, "type")))
	out.SetLong("productionStatusOfProcessedData", 0)
	return nil
}
