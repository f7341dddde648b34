package sections

import "github.com/mmp/marskit/encode"

// TemplateSimplePacking is Data Representation Template 5.0, the only
// packing scheme serialize.go's data section writer implements; template
// 5.3 (complex packing) is decode-only per SPEC_FULL.md's non-goals.
const TemplateSimplePacking = 0

func init() {
	encode.RegisterSectionInit(encode.SectionDataRepresentation, TemplateSimplePacking, initSimplePacking)
}

func initSimplePacking(out encode.Dict) error {
	out.SetLong("dataRepresentationTemplateNumber", TemplateSimplePacking)
	return nil
}
