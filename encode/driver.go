package encode

import (
	"fmt"

	"github.com/mmp/marskit/mars"
)

// Encode turns an expanded MARS request plus a numeric payload into a
// complete wire-format GRIB2 message.
//
// For each section in ascending order, the section initializer for its
// configured template runs first (if one is registered); then, for each
// stage in turn (Allocate, Preset, Override, Runtime), every concept
// registered against that stage is given a chance to match req and
// populate the output dictionary. Section 7's payload is whatever the
// caller passes; serialize always packs it with simple packing (Template 5.0).
// Encoding is all-or-nothing: any concept or section-initializer failure
// aborts with no partial output.
func Encode(req *mars.Request, payload []float64, cfg *Config) ([]byte, error) {
	if req == nil {
		return nil, &GenericError{Message: "encode: nil request"}
	}
	if cfg == nil {
		cfg = &Config{Options: NewMapDict()}
	}
	if cfg.Options == nil {
		cfg.Options = NewMapDict()
	}

	out := NewMapDict()
	out.SetLong("numberOfDataPoints", int64(len(payload)))

	for s := Section(0); s < numSections; s++ {
		sc := cfg.Sections[int(s)]
		if fn, ok := sectionInit(s, sc.Template); ok {
			if err := fn(out); err != nil {
				return nil, &GenericError{Message: fmt.Sprintf("initializing section %s template %d: %v", s, sc.Template, err)}
			}
		}
	}

	for stage := StageAllocate; stage < numStages; stage++ {
		for _, c := range Concepts() {
			if c.Stage != stage {
				continue
			}
			opt := cfg.ConceptOptions(c.Section, c.Name)
			if _, err := c.apply(req, opt, out); err != nil {
				return nil, err
			}
		}
	}

	if cfg.ApplyChecks {
		for name, check := range Checks() {
			if err := check(cfg.Options, out, cfg); err != nil {
				return nil, &ValidationError{Check: name, Message: err.Error()}
			}
		}
	}

	return serialize(out, payload)
}
