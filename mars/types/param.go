package types

import (
	"fmt"
	"strconv"
	"strings"
)

// ParamTable resolves a MARS param value (short name, numeric paramId, or
// legacy "code.table" form) to its canonical paramId string, and back.
// Implementations are keyed by a table name selected at Pass2 time from a
// sibling keyword (levtype, origin, ...), mirroring metkit's pass2 table
// selection for TypeParam.
type ParamTable interface {
	// Canonical resolves value to its canonical paramId string, or
	// returns an error if the value is not in this table.
	Canonical(value string) (string, error)
}

// Param implements the MARS "param" keyword class: short name / numeric
// paramId / dotted legacy code.table resolution, with the active table
// selected by a sibling keyword via ExpandWith. Grounded on TypeParam from
// the metkit mars language.
type Param struct {
	base
	// ExpandWith names the sibling keyword (e.g. "levtype") whose value
	// selects which table this Param resolves against.
	ExpandWith string
	// Tables maps a sibling-keyword value to the ParamTable used when
	// that value is in effect; "" is the table used when ExpandWith is
	// unset or the sibling keyword is absent.
	Tables map[string]ParamTable

	pending []string // raw values awaiting Pass2 table resolution
}

// NewParam constructs a Param type.
func NewParam(name string, s Settings, expandWith string, tables map[string]ParamTable) *Param {
	p := &Param{ExpandWith: expandWith, Tables: tables}
	p.KeywordName = name
	p.Settings = s
	return p
}

// isLegacyForm reports whether value is the dotted "code.table" legacy
// param form, e.g. "130.128" (code 130 in table 128).
func isLegacyForm(value string) (table, code int, ok bool) {
	before, after, found := strings.Cut(value, ".")
	if !found {
		return 0, 0, false
	}
	c, err1 := strconv.Atoi(before)
	t, err2 := strconv.Atoi(after)
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return t, c, true
}

func (p *Param) ExpandOne(ctx Context, value string) (string, error) {
	// Numeric paramId and legacy forms pass through without a table;
	// short names are deferred to Pass2 once the table is known.
	if _, err := strconv.Atoi(value); err == nil {
		return value, nil
	}
	if _, _, ok := isLegacyForm(value); ok {
		return value, nil
	}
	p.pending = append(p.pending, value)
	return value, nil
}

func (p *Param) ExpandMany(ctx Context, values []string) ([]string, error) {
	out := make([]string, 0, len(values))
	for _, v := range values {
		ev, err := p.ExpandOne(ctx, v)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, nil
}

// Pass2 resolves any pending short-name values against the table selected
// by the sibling ExpandWith keyword, exactly mirroring TypeParam's
// pass2 pattern of re-running expansion once every keyword has an
// expanded value available.
func (p *Param) Pass2(ctx Context, req Requestish) error {
	if len(p.pending) == 0 || p.Tables == nil {
		return nil
	}
	selector := ""
	if p.ExpandWith != "" && req.Has(p.ExpandWith) {
		vals, err := req.Values(p.ExpandWith, true)
		if err == nil && len(vals) > 0 {
			selector = vals[0]
		}
	}
	table, ok := p.Tables[selector]
	if !ok {
		table, ok = p.Tables[""]
	}
	if !ok {
		return fmt.Errorf("no param table registered for %q=%q", p.ExpandWith, selector)
	}
	current, err := req.Values(p.KeywordName, true)
	if err != nil {
		return err
	}
	resolved := make([]string, len(current))
	for i, v := range current {
		if _, err := strconv.Atoi(v); err == nil {
			resolved[i] = v
			continue
		}
		if _, _, ok := isLegacyForm(v); ok {
			resolved[i] = v
			continue
		}
		canon, err := table.Canonical(v)
		if err != nil {
			return err
		}
		resolved[i] = canon
	}
	p.pending = nil
	return req.SetValues(p.KeywordName, resolved, p)
}
