package types

import (
	"fmt"
	"strconv"
)

// Expver implements the MARS "expver" keyword class: a four-character
// experiment version identifier. Purely numeric values are zero-padded to
// four digits; any other four-character string is accepted verbatim.
// Grounded on TypeExpver from the metkit mars language.
type Expver struct {
	base
}

// NewExpver constructs an Expver type.
func NewExpver(name string, s Settings) *Expver {
	e := &Expver{base: base{Settings: s}}
	e.KeywordName = name
	return e
}

func (e *Expver) ExpandOne(ctx Context, value string) (string, error) {
	if n, err := strconv.ParseInt(value, 10, 64); err == nil {
		if n < 0 || n > 9999 {
			return "", fmt.Errorf("expver %q out of range", value)
		}
		return fmt.Sprintf("%04d", n), nil
	}
	if len(value) != 4 {
		return "", fmt.Errorf("expver %q must be exactly 4 characters", value)
	}
	return value, nil
}

func (e *Expver) ExpandMany(ctx Context, values []string) ([]string, error) {
	out := make([]string, 0, len(values))
	for _, v := range values {
		ev, err := e.ExpandOne(ctx, v)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, nil
}
