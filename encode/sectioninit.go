package encode

import "fmt"

// SectionInitFunc sets the structural keys that make an output GRIB
// sample carry the requested template for one section, before any
// concept for that section runs. Registered per (section, template)
// pair by the encode/sections package.
type SectionInitFunc func(out Dict) error

type sectionInitKey struct {
	section  Section
	template int
}

var sectionInits = map[sectionInitKey]SectionInitFunc{}

// RegisterSectionInit adds fn as the initializer for (section, template).
// Called from encode/sections's init() functions.
func RegisterSectionInit(section Section, template int, fn SectionInitFunc) {
	sectionInits[sectionInitKey{section, template}] = fn
}

// sectionInit looks up the initializer for (section, template), if any.
func sectionInit(section Section, template int) (SectionInitFunc, bool) {
	fn, ok := sectionInits[sectionInitKey{section, template}]
	return fn, ok
}

// runSectionInit invokes the (section, template) initializer, returning a
// GenericError if none is registered.
func runSectionInit(section Section, template int, out Dict) error {
	fn, ok := sectionInit(section, template)
	if !ok {
		return &GenericError{Message: fmt.Sprintf("no initializer registered for section %s template %d", section, template)}
	}
	return fn(out)
}
