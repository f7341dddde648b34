// Package sections implements the GRIB2 section initializers: per
// (section, template) routines that set the structural keys needed for
// an output message to carry that template, run before any concept for
// the section. Registered with package encode via RegisterSectionInit
// from each file's init(), the same registration-on-import pattern
// encode/concepts uses to avoid an encode <-> sections import cycle.
package sections

import "github.com/mmp/marskit/encode"

// Local-use section templates for the DestinE virtual data streams,
// grounded on SPEC_FULL.md §4.J's worked example.
const (
	TemplateClimateDT   = 1001
	TemplateExtremesDT  = 1002
)

func init() {
	encode.RegisterSectionInit(encode.SectionLocalUse, TemplateClimateDT, initClimateDT)
	encode.RegisterSectionInit(encode.SectionLocalUse, TemplateExtremesDT, initExtremesDT)
}

func initClimateDT(out encode.Dict) error {
	out.SetLong("setLocalDefinition", 1)
	out.SetLong("localDefinitionNumber", 1)
	out.SetLong("productionStatusOfProcessedData", 12)
	return out.SetString("dataset", "climate-dt")
}

func initExtremesDT(out encode.Dict) error {
	out.SetLong("setLocalDefinition", 1)
	out.SetLong("localDefinitionNumber", 1)
	out.SetLong("productionStatusOfProcessedData", 13)
	return out.SetString("dataset", "extremes-dt")
}
