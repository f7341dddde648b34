package encode

import (
	"fmt"

	"github.com/mmp/marskit/mars"
)

// Stage identifies when, within encoding one GRIB2 section, a concept
// runs. Concepts registered for the same (stage, section) run in catalog
// registration order.
type Stage int

const (
	StageAllocate Stage = iota
	StagePreset
	StageOverride
	StageRuntime
	numStages
)

func (s Stage) String() string {
	switch s {
	case StageAllocate:
		return "allocate"
	case StagePreset:
		return "preset"
	case StageOverride:
		return "override"
	case StageRuntime:
		return "runtime"
	default:
		return "unknown-stage"
	}
}

// Section identifies which GRIB2 section a concept populates.
type Section int

const (
	SectionIndicator Section = iota
	SectionIdentification
	SectionLocalUse
	SectionGridDefinition
	SectionProductDefinition
	SectionDataRepresentation
	numSections
)

func (s Section) String() string {
	switch s {
	case SectionIndicator:
		return "indicator"
	case SectionIdentification:
		return "identification"
	case SectionLocalUse:
		return "localUse"
	case SectionGridDefinition:
		return "gridDefinition"
	case SectionProductDefinition:
		return "productDefinition"
	case SectionDataRepresentation:
		return "dataRepresentation"
	default:
		return "unknown-section"
	}
}

// Variant is the name of the branch of a Concept that matched a given
// request, e.g. "default" or "custom".
type Variant string

// Matcher inspects an expanded MARS request and the static encoder
// options and decides whether, and as which Variant, its owning Concept
// applies. The second return value is false when the concept has nothing
// to contribute for this request.
type Matcher func(req *mars.Request, opt Dict) (Variant, bool)

// Entry populates out with the keys a Concept's matched Variant
// contributes, given the originating request and the static options.
type Entry func(req *mars.Request, opt Dict, out Dict) error

// Concept is one named, independently pluggable unit of GRIB2 encoding
// knowledge: a matcher that decides whether it applies to a request, and
// one Entry function per Variant it can produce. A Concept is registered
// against the (stage, section) slots it contributes to; most concepts
// occupy exactly one slot.
type Concept struct {
	Name    string
	Stage   Stage
	Section Section
	Match   Matcher
	Entries map[Variant]Entry
}

// apply runs c against req, returning (false, nil) if c's matcher found
// no applicable variant, or the error from c's chosen Entry wrapped with
// concept/variant/stage/section context.
func (c *Concept) apply(req *mars.Request, opt, out Dict) (bool, error) {
	variant, ok := c.Match(req, opt)
	if !ok {
		return false, nil
	}
	entry, ok := c.Entries[variant]
	if !ok {
		return false, &ConceptError{Concept: c.Name, Variant: string(variant), Stage: c.Stage, Section: c.Section,
			Err: fmt.Errorf("no entry registered for variant %q", variant)}
	}
	if err := entry(req, opt, out); err != nil {
		return true, &ConceptError{Concept: c.Name, Variant: string(variant), Stage: c.Stage, Section: c.Section, Err: err}
	}
	return true, nil
}

var registry []*Concept

// RegisterConcept adds c to the package-level concept catalog consulted
// by Encode. Concepts call this from an init() in the encode/concepts
// package; Encode's caller arranges for that package to be imported
// (blank or otherwise) so registration has run.
func RegisterConcept(c *Concept) {
	registry = append(registry, c)
}

// Concepts returns every registered concept, in registration order.
func Concepts() []*Concept {
	out := make([]*Concept, len(registry))
	copy(out, registry)
	return out
}
