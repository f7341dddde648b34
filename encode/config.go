package encode

import (
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
)

// legacyAliases renames recipe option keys still written in their
// original grib_api/eccodes spelling to the canonical vocabulary the
// concept matchers in encode/concepts expect.
var legacyAliases = map[string]string{
	"model":               "generatingProcess",
	"data-type":           "dataType",
	"reference-time":      "referenceTime",
	"direction-frequency": "wave.spectra",
	"period":              "wave.period",
}

// timeStatisticsLegacyKey is renamed to "statistics.<subvariant>" rather
// than a flat rename, since its value selects which statistics concept
// variant the recipe means.
const timeStatisticsLegacyKey = "time-statistics"

// SectionConfig is one GRIB2 section's recipe entry: the template number
// to initialize it with, plus any concept-specific sub-options keyed by
// concept name (the recipe's "type: <variant>" objects).
type SectionConfig struct {
	Template int                `yaml:"template"`
	Concepts map[string]MapDict `yaml:"concepts"`
}

// Config is a fully parsed encoder recipe (SPEC_FULL.md §6.6/§6.9): one
// SectionConfig per GRIB2 section, plus the flattened option dictionary
// concept matchers consult, and the post-encode check toggle.
type Config struct {
	Sections    [int(numSections)]SectionConfig
	Options     MapDict
	ApplyChecks bool
}

type rawConfig struct {
	Sections    map[string]SectionConfig `yaml:"sections"`
	Options     map[string]any           `yaml:"options"`
	ApplyChecks bool                     `yaml:"applyChecks"`
}

var sectionNames = map[string]Section{
	"indicator":          SectionIndicator,
	"identification":     SectionIdentification,
	"localUse":           SectionLocalUse,
	"gridDefinition":     SectionGridDefinition,
	"productDefinition":  SectionProductDefinition,
	"dataRepresentation": SectionDataRepresentation,
}

// LoadConfig parses a YAML encoder recipe from r, applying the legacy key
// renames documented in SPEC_FULL.md §6.6.
func LoadConfig(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading encoder recipe: %w", err)
	}

	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &GenericError{Message: fmt.Sprintf("parsing encoder recipe: %v", err)}
	}

	cfg := &Config{Options: NewMapDict(), ApplyChecks: raw.ApplyChecks}

	for k, v := range raw.Options {
		key := k
		switch {
		case k == timeStatisticsLegacyKey:
			if sub, ok := v.(string); ok {
				key = "statistics." + sub
			}
		default:
			if renamed, ok := legacyAliases[k]; ok {
				key = renamed
			}
		}
		cfg.Options[key] = v
	}

	for name, sc := range raw.Sections {
		section, ok := sectionNames[name]
		if !ok {
			return nil, &GenericError{Message: fmt.Sprintf("encoder recipe: unknown section %q", name)}
		}
		cfg.Sections[int(section)] = sc
	}

	return cfg, nil
}

// ConceptOptions returns the sub-options configured for conceptName under
// section, merged over Config's top-level Options (section-specific
// entries win), or just the top-level Options if the section carries no
// override for that concept.
func (c *Config) ConceptOptions(section Section, conceptName string) MapDict {
	out := NewMapDict()
	for k, v := range c.Options {
		out[k] = v
	}
	sc := c.Sections[int(section)]
	if sc.Concepts == nil {
		return out
	}
	if sub, ok := sc.Concepts[conceptName]; ok {
		for k, v := range sub {
			out[k] = v
		}
	}
	return out
}
