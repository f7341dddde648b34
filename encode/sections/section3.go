package sections

import "github.com/mmp/marskit/encode"

// TemplateSphericalHarmonics is Grid Definition Template 3.50: a
// spherical harmonic coefficient field rather than a point grid, used by
// spectral-space model output.
const TemplateSphericalHarmonics = 50

// TemplateLatLon is Grid Definition Template 3.0, the regular
// latitude/longitude grid serialize.go's writeLatLonGrid writes by
// default.
const TemplateLatLon = 0

func init() {
	encode.RegisterSectionInit(encode.SectionGridDefinition, TemplateSphericalHarmonics, initSphericalHarmonics)
	encode.RegisterSectionInit(encode.SectionGridDefinition, TemplateLatLon, initLatLon)
}

func initLatLon(out encode.Dict) error {
	out.SetLong("gridDefinitionTemplateNumber", TemplateLatLon)
	return nil
}

// initSphericalHarmonics sets the structural keys serialize.go's
// writeSpectralGrid reads: the grid definition template number plus the
// triangular truncation parameters (J, K, M — all equal for the common
// triangular truncation case).
func initSphericalHarmonics(out encode.Dict) error {
	out.SetLong("gridDefinitionTemplateNumber", TemplateSphericalHarmonics)
	if !out.Has("J") {
		out.SetLong("J", 0)
	}
	if !out.Has("K") {
		out.SetLong("K", 0)
	}
	if !out.Has("M") {
		out.SetLong("M", 0)
	}
	return nil
}
