package language

import (
	"bytes"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/mmp/marskit/mars/types"
)

// languageSchema validates the structural shape of a verb's language YAML
// before it is unmarshaled into Go types, catching configuration mistakes
// (a "range" that isn't a 2-element array, a missing "type" field) at load
// time instead of surfacing them as confusing expansion-time errors.
const languageSchema = `{
  "type": "object",
  "required": ["verb", "keywords"],
  "properties": {
    "verb": {"type": "string"},
    "keywords": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "properties": {
          "type": {"type": "string"},
          "category": {"type": "string"},
          "flatten": {"type": "boolean"},
          "multiple": {"type": "boolean"},
          "default": {"type": "array", "items": {"type": "string"}},
          "values": {"type": "array", "items": {"type": "string"}},
          "aliases": {"type": "object"},
          "only": {"type": "object"},
          "never": {"type": "object"},
          "range": {"type": "array", "minItems": 2, "maxItems": 2}
        }
      }
    },
    "rules": {"type": "array"}
  }
}`

// document is the raw YAML shape of a verb's language file.
type document struct {
	Verb     string                    `yaml:"verb"`
	Keywords map[string]types.Settings `yaml:"keywords"`
	Rules    []ruleDocument            `yaml:"rules"`
}

// ruleDocument is the raw YAML shape of one context rule. Exactly one of
// Include/Exclude/Def/Undef should be non-empty/true, mirroring the four
// ContextRule variants.
type ruleDocument struct {
	When    map[string][]string `yaml:"when"`
	Target  string              `yaml:"target"`
	Include []string            `yaml:"include"`
	Exclude []string            `yaml:"exclude"`
	Def     []string            `yaml:"def"`
	Undef   bool                `yaml:"undef"`
}

func validateSchema(data []byte) error {
	schema, err := jsonschema.CompileString("language.json", languageSchema)
	if err != nil {
		return fmt.Errorf("compiling language schema: %w", err)
	}
	var asYAML map[string]any
	if err := yaml.Unmarshal(data, &asYAML); err != nil {
		return fmt.Errorf("parsing language YAML: %w", err)
	}
	if err := schema.Validate(normalizeForSchema(asYAML)); err != nil {
		return fmt.Errorf("language file failed schema validation: %w", err)
	}
	return nil
}

// normalizeForSchema converts map[string]any produced by go-yaml (whose
// keys may come back as any other scalar type for certain YAML styles)
// into the map[string]interface{} shape jsonschema expects.
func normalizeForSchema(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalizeForSchema(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalizeForSchema(val)
		}
		return out
	default:
		return v
	}
}

// LoadLanguage reads a single verb's language definition from r and
// builds a ready-to-use Language.
func LoadLanguage(r io.Reader, paramTables map[string]map[string]types.ParamTable) (*Language, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if err := validateSchema(data); err != nil {
		return nil, err
	}

	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding language YAML: %w", err)
	}

	keywords := make([]KeywordDef, 0, len(doc.Keywords))
	for name, settings := range doc.Keywords {
		keywords = append(keywords, KeywordDef{Name: name, Settings: settings})
	}

	var rules []ContextRule
	for _, rd := range doc.Rules {
		conds := make([]condition, 0, len(rd.When))
		for kw, vals := range rd.When {
			conds = append(conds, condition{Keyword: kw, Values: vals})
		}
		for _, c := range conds {
			switch {
			case len(rd.Include) > 0:
				rules = append(rules, &Include{condition: c, Target: rd.Target, Allowed: rd.Include})
			case len(rd.Exclude) > 0:
				rules = append(rules, &Exclude{condition: c, Target: rd.Target, Forbidden: rd.Exclude})
			case len(rd.Def) > 0:
				rules = append(rules, &Def{condition: c, Target: rd.Target, Default: rd.Def})
			case rd.Undef:
				rules = append(rules, &Undef{condition: c, Target: rd.Target})
			}
		}
	}

	return NewLanguage(doc.Verb, keywords, paramTables, rules)
}
