// Package checks implements the post-encode validation layer: consistency
// checks run over the fully populated output dictionary once every concept
// has had a chance to run, when Config.ApplyChecks is set. Registered with
// package encode via RegisterCheck from init(), the same
// registration-on-import pattern encode/concepts and encode/sections use to
// avoid an encode <-> checks import cycle.
package checks

import (
	"fmt"

	"github.com/mmp/marskit/encode"
)

func init() {
	encode.RegisterCheck("localUseSection", CheckLocalUseSection)
	encode.RegisterCheck("templateConsistency", CheckTemplateConsistency)
}

// CheckLocalUseSection verifies that a request for a local-use section 2
// (setLocalDefinition != 0) also carries the localDefinitionNumber and
// dataset keys the DestinE virtual streams (encode/sections/section2.go) depend on,
// catching a recipe that names a local-use template but never runs the
// section initializer that populates it.
func CheckLocalUseSection(opt, out encode.Dict, cfg *encode.Config) error {
	setLocal, ok := out.GetOptLong("setLocalDefinition")
	if !ok || setLocal == 0 {
		return nil
	}
	if _, ok := out.GetOptLong("localDefinitionNumber"); !ok {
		return fmt.Errorf("setLocalDefinition is set but localDefinitionNumber is missing")
	}
	if dataset, err := out.GetString("dataset"); err != nil || dataset == "" {
		return fmt.Errorf("setLocalDefinition is set but dataset is missing")
	}
	return nil
}

// CheckTemplateConsistency verifies that the statistical Product
// Definition Template (4.8/4.11) carries a statistical-processing type
// and that the grid section's template number was actually set by a
// registered section initializer, catching a recipe naming an
// unregistered grid template (encode.Encode silently skips an unmatched
// section initializer lookup rather than failing).
func CheckTemplateConsistency(opt, out encode.Dict, cfg *encode.Config) error {
	if template, ok := out.GetOptLong("productDefinitionTemplateNumber"); ok && (template == 8 || template == 11) {
		if _, ok := out.GetOptLong("typeOfStatisticalProcessing"); !ok {
			return fmt.Errorf("product definition template %d requires typeOfStatisticalProcessing", template)
		}
	}
	if _, ok := out.GetOptLong("gridDefinitionTemplateNumber"); !ok {
		return fmt.Errorf("gridDefinitionTemplateNumber was never set; check the grid section's configured template is registered")
	}
	return nil
}
