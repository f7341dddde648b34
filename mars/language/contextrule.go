// Package language implements the per-verb MARS keyword language: the
// expansion pipeline (Expand), the Cartesian-product flatten iterator, and
// the ContextRule overlay mechanism that lets a keyword's valid values and
// defaults depend on other keywords already present on the request.
package language

import (
	"github.com/mmp/marskit/mars"
	"github.com/mmp/marskit/mars/types"
)

// ContextRule is a conditional overlay applied while expanding a request:
// it inspects one or more already-set keywords and, if they match,
// contributes extra value restrictions (Include/Exclude) or default
// overrides (Def/Undef) for a target keyword. Grounded line-for-line on
// ContextRule from the metkit mars language.
type ContextRule interface {
	// Applies reports whether this rule's condition matches req.
	Applies(req *mars.Request, types map[string]types.Type) bool
	// Apply contributes this rule's effect to the context being built
	// for target.
	Apply(ctx *types.Context, target string)
}

// condition is the shared "keyword matches one of values" test used by
// every rule variant.
type condition struct {
	Keyword string
	Values  []string
}

func (c condition) matches(req *mars.Request, reg map[string]types.Type) bool {
	vals, err := req.Values(c.Keyword, true)
	if err != nil || len(vals) == 0 {
		return false
	}
	if t, ok := reg[c.Keyword]; ok && t != nil {
		return t.Matches(c.Values, vals)
	}
	for _, v := range vals {
		for _, want := range c.Values {
			if v == want {
				return true
			}
		}
	}
	return false
}

// Include restricts the target keyword's acceptable values to Allowed
// whenever condition matches.
type Include struct {
	condition
	Target  string
	Allowed []string
}

func (r *Include) Applies(req *mars.Request, reg map[string]types.Type) bool {
	return r.matches(req, reg)
}

func (r *Include) Apply(ctx *types.Context, target string) {
	if target != r.Target {
		return
	}
	if ctx.Defaults == nil {
		ctx.Defaults = make(map[string][]string)
	}
	ctx.Defaults["@include:"+target] = r.Allowed
}

// Exclude forbids the target keyword from taking any of Forbidden whenever
// condition matches.
type Exclude struct {
	condition
	Target    string
	Forbidden []string
}

func (r *Exclude) Applies(req *mars.Request, reg map[string]types.Type) bool {
	return r.matches(req, reg)
}

func (r *Exclude) Apply(ctx *types.Context, target string) {
	if target != r.Target {
		return
	}
	if ctx.Defaults == nil {
		ctx.Defaults = make(map[string][]string)
	}
	ctx.Defaults["@exclude:"+target] = r.Forbidden
}

// Def overrides the target keyword's default value whenever condition
// matches.
type Def struct {
	condition
	Target  string
	Default []string
}

func (r *Def) Applies(req *mars.Request, reg map[string]types.Type) bool {
	return r.matches(req, reg)
}

func (r *Def) Apply(ctx *types.Context, target string) {
	if target != r.Target {
		return
	}
	if ctx.Defaults == nil {
		ctx.Defaults = make(map[string][]string)
	}
	ctx.Defaults[target] = r.Default
}

// Undef removes any default for the target keyword whenever condition
// matches, forcing the keyword to be explicit.
type Undef struct {
	condition
	Target string
}

func (r *Undef) Applies(req *mars.Request, reg map[string]types.Type) bool {
	return r.matches(req, reg)
}

func (r *Undef) Apply(ctx *types.Context, target string) {
	if target != r.Target {
		return
	}
	if ctx.Defaults == nil {
		ctx.Defaults = make(map[string][]string)
	}
	delete(ctx.Defaults, target)
	ctx.Defaults["@undef:"+target] = []string{"1"}
}
