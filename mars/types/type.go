// Package types implements the MARS keyword type system: the per-keyword
// expansion, validation, and canonicalization rules applied while a
// Request is being processed by a Language.
package types

// Requestish is the narrow view of a mars.Request that a Type needs during
// Finalise/Pass2. It is defined here, rather than importing package mars
// directly, to avoid an import cycle between mars and mars/types (mars
// needs to hold a Type per Parameter, and types needs to inspect sibling
// Parameters on the owning Request).
type Requestish interface {
	Verb() string
	Has(name string) bool
	Values(name string, allowMissing bool) ([]string, error)
	SetValues(name string, values []string, typ Type) error
}

// Context carries the environment a Type expands under: the request's own
// inherited defaults plus any Def/Undef overlays contributed by
// ContextRules (see package language). It is deliberately a narrow map
// rather than a full Request so Types cannot mutate state outside their
// own keyword.
type Context struct {
	Defaults map[string][]string
	Strict   bool
}

// Type is the common interface implemented by every MARS keyword class
// (Enum, Integer, ToByList, Date, Time, StepRange, Param, Chem, Expver,
// Any). A Type is stateless with respect to any one Request: Finalise and
// Pass2 receive the owning Requestish explicitly rather than holding a
// reference to it, so a single Type instance can be shared by every
// Request processed by a Language.
type Type interface {
	// Name is the keyword this Type governs, e.g. "param", "date".
	Name() string

	// Category groups related keywords for documentation and matching
	// purposes (e.g. "data", "time"); purely informational.
	Category() string

	// Flatten reports whether this keyword's values should be iterated
	// over when a Request is flattened into single-value Requests.
	Flatten() bool

	// Multiple reports whether more than one value is permitted.
	Multiple() bool

	// Defaults returns the keyword's default value(s), applied when the
	// keyword is absent from a Request and not overridden by a context
	// Def/Undef rule.
	Defaults() []string

	// ExpandOne validates and canonicalizes a single value.
	ExpandOne(ctx Context, value string) (string, error)

	// ExpandMany validates and canonicalizes an entire value list,
	// expanding to/by ranges and de-duplicating as appropriate.
	ExpandMany(ctx Context, values []string) ([]string, error)

	// Filter returns the subset of values that match filterValues,
	// applying the same canonicalization Matches would.
	Filter(filterValues, values []string) []string

	// Matches reports whether any of values satisfies any of
	// matchValues, used by ContextRule.Include/Exclude.
	Matches(matchValues, values []string) bool

	// Count returns how many flattened Requests this value list expands
	// to, used for Request.Count().
	Count(values []string) int

	// Finalise runs once expansion of a Request's own keyword is
	// complete, before Pass2 of any keyword runs. Every built-in class
	// uses the no-op base implementation: enum groups are expanded in
	// ExpandMany and defaults are inserted by Language.Expand.
	Finalise(req Requestish) error

	// Pass2 runs after every keyword's ExpandMany has completed, letting
	// context-dependent keywords (param, chem) resolve a table keyed on
	// a sibling keyword (e.g. param's table depends on levtype).
	Pass2(ctx Context, req Requestish) error

	// Reset clears any lazily-loaded state (external value tables),
	// forcing the next expansion to reload it.
	Reset()

	// HasGroups reports whether this Type has enum-style value groups.
	HasGroups() bool

	// Group returns the members of the named group, or nil.
	Group(value string) []string
}

// Settings holds the fields common to every Type, populated directly from
// the language YAML definition via struct tags (see mars/language).
type Settings struct {
	KeywordName  string              `yaml:"-"`
	Class        string              `yaml:"type"`
	CategoryName string              `yaml:"category"`
	FlattenFlag  bool                `yaml:"flatten"`
	MultipleFlag bool                `yaml:"multiple"`
	DefaultVals  []string            `yaml:"default"`
	Only         map[string][]string `yaml:"only"`
	Never        map[string][]string `yaml:"never"`
	Aliases      map[string]string   `yaml:"aliases"`
	Values       []string            `yaml:"values"`
	Range        []int64             `yaml:"range"`
}

// base implements the common, non-expansion parts of Type. Concrete types
// embed it and override ExpandOne/ExpandMany/Matches/Pass2 as needed.
type base struct {
	Settings
}

func (b *base) Name() string          { return b.KeywordName }
func (b *base) Category() string      { return b.CategoryName }
func (b *base) Flatten() bool         { return b.FlattenFlag }
func (b *base) Multiple() bool        { return b.MultipleFlag }
func (b *base) Defaults() []string    { return b.DefaultVals }
func (b *base) HasGroups() bool       { return false }
func (b *base) Group(string) []string { return nil }
func (b *base) Reset()                {}

func (b *base) Finalise(req Requestish) error { return nil }
func (b *base) Pass2(Context, Requestish) error { return nil }

// OnlyNever exposes this keyword's declared Only/Never exclusivity
// constraints, used by language.Language.checkOnlyNever.
func (b *base) OnlyNever() (map[string][]string, map[string][]string) {
	return b.Only, b.Never
}

func (b *base) Count(values []string) int {
	if len(values) == 0 {
		return 1
	}
	return len(values)
}

func (b *base) Filter(filterValues, values []string) []string {
	if len(filterValues) == 0 {
		return values
	}
	want := make(map[string]bool, len(filterValues))
	for _, v := range filterValues {
		want[v] = true
	}
	var out []string
	for _, v := range values {
		if want[v] {
			out = append(out, v)
		}
	}
	return out
}

func (b *base) Matches(matchValues, values []string) bool {
	if len(matchValues) == 0 {
		return true
	}
	want := make(map[string]bool, len(matchValues))
	for _, v := range matchValues {
		want[v] = true
	}
	for _, v := range values {
		if want[v] {
			return true
		}
	}
	return false
}
