package sections

import "github.com/mmp/marskit/encode"

// TemplateAnalysisOrForecast is Product Definition Template 4.0, the
// baseline instantaneous-parameter template the param/generatingProcess
// concepts populate; the statistics concept switches it to 4.8 itself
// once it knows the request names a statistical variant.
const TemplateAnalysisOrForecast = 0

func init() {
	encode.RegisterSectionInit(encode.SectionProductDefinition, TemplateAnalysisOrForecast, initAnalysisOrForecast)
}

func initAnalysisOrForecast(out encode.Dict) error {
	out.SetLong("productDefinitionTemplateNumber", TemplateAnalysisOrForecast)
	return nil
}
