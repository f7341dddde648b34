package types

import (
	"fmt"
	"strconv"
)

// Integer implements the MARS "integer" keyword class: a numeric value
// validated against an optional inclusive range, grounded on TypeInteger
// from the metkit mars language.
type Integer struct {
	base
	Min, Max int64
	HasRange bool
}

// NewInteger constructs an Integer type. min/max are taken from the
// language file's "range" field, e.g. "range: [1, 100]".
func NewInteger(name string, s Settings, min, max int64, hasRange bool) *Integer {
	i := &Integer{base: base{Settings: s}, Min: min, Max: max, HasRange: hasRange}
	i.KeywordName = name
	return i
}

func (i *Integer) ExpandOne(ctx Context, value string) (string, error) {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return "", fmt.Errorf("%q is not a valid integer for %q", value, i.KeywordName)
	}
	if i.HasRange && (n < i.Min || n > i.Max) {
		return "", fmt.Errorf("%d is out of range [%d,%d] for %q", n, i.Min, i.Max, i.KeywordName)
	}
	return strconv.FormatInt(n, 10), nil
}

func (i *Integer) ExpandMany(ctx Context, values []string) ([]string, error) {
	out := make([]string, 0, len(values))
	for _, v := range values {
		ev, err := i.ExpandOne(ctx, v)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, nil
}
