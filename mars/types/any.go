package types

// Any is the passthrough keyword class: values are accepted verbatim with
// no validation or canonicalization, used for free-form keywords such as
// "target" or "expect". Grounded on TypeAny from the metkit mars language.
type Any struct {
	base
}

// NewAny constructs an Any type.
func NewAny(name string, s Settings) *Any {
	a := &Any{base: base{Settings: s}}
	a.KeywordName = name
	return a
}

func (a *Any) ExpandOne(ctx Context, value string) (string, error) { return value, nil }

func (a *Any) ExpandMany(ctx Context, values []string) ([]string, error) { return values, nil }
