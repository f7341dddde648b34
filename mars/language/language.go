package language

import (
	"fmt"
	"sort"

	"golang.org/x/exp/slices"

	"github.com/mmp/marskit/mars"
	"github.com/mmp/marskit/mars/types"
)

// KeywordDef is one keyword's YAML-sourced definition within a verb's
// language file, combining its Type settings with its declaration order
// (needed for Flatten's deterministic Cartesian-product order).
type KeywordDef struct {
	Name     string
	Settings types.Settings
}

// Language owns one verb's keyword registry and context rules. It is built
// once (typically by driver.ExpansionDriver from a YAML file) and reused
// across every Request for that verb.
type Language struct {
	Verb     string
	registry *types.Registry
	order    []string // declaration order, for stable Flatten iteration
	rules    []ContextRule
}

// NewLanguage constructs a Language for verb from its keyword definitions
// (in declaration order) and context rules.
func NewLanguage(verb string, keywords []KeywordDef, paramTables map[string]map[string]types.ParamTable, rules []ContextRule) (*Language, error) {
	reg := types.NewRegistry()
	order := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if _, err := reg.Build(kw.Name, kw.Settings, paramTables); err != nil {
			return nil, fmt.Errorf("verb %q: %w", verb, err)
		}
		order = append(order, kw.Name)
	}
	return &Language{Verb: verb, registry: reg, order: order, rules: rules}, nil
}

// contextFor builds the Context a keyword should expand under, applying
// every ContextRule whose condition currently matches req.
func (l *Language) contextFor(req *mars.Request, keyword string, strict bool) types.Context {
	ctx := types.Context{Strict: strict, Defaults: make(map[string][]string)}
	if t := l.registry.Get(keyword); t != nil {
		if d := t.Defaults(); len(d) > 0 {
			ctx.Defaults[keyword] = d
		}
	}
	reg := make(map[string]types.Type, len(l.order))
	for _, n := range l.order {
		reg[n] = l.registry.Get(n)
	}
	for _, rule := range l.rules {
		if rule.Applies(req, reg) {
			rule.Apply(&ctx, keyword)
		}
	}
	return ctx
}

// Expand runs the five-phase expansion pipeline for req:
//
//  1. apply inherit defaults for absent keywords not excluded by Undef;
//  2. for each present keyword, expand its raw values through its Type;
//  3. call Finalise on every Type that touched the request;
//  4. call Pass2 on every Type, letting context-dependent keywords
//     (param, chem) resolve against a now-fully-expanded sibling;
//  5. validate Only/Never exclusivity constraints.
//
// The returned Request is a new value; req is not mutated.
func (l *Language) Expand(req *mars.Request, inherit bool, strict bool) (*mars.Request, error) {
	out := mars.NewRequest(req.Verb())
	for _, p := range req.Parameters() {
		out.SetValues(p.Name(), append([]string(nil), p.Values()...), p.Type())
	}
	if strict {
		for _, p := range req.Parameters() {
			if l.registry.Get(p.Name()) == nil {
				return nil, &mars.UserError{Verb: req.Verb(), Keyword: p.Name(), Message: "unknown keyword"}
			}
		}
	}

	if inherit {
		for _, name := range l.order {
			if out.Has(name) {
				continue
			}
			ctx := l.contextFor(out, name, strict)
			if _, undef := ctx.Defaults["@undef:"+name]; undef {
				continue
			}
			if defs, ok := ctx.Defaults[name]; ok && len(defs) > 0 {
				out.SetValues(name, append([]string(nil), defs...), l.registry.Get(name))
			}
		}
	}

	touched := make([]string, 0, len(l.order))
	for _, name := range l.order {
		if !out.Has(name) {
			continue
		}
		t := l.registry.Get(name)
		if t == nil {
			return nil, &mars.UserError{Verb: req.Verb(), Keyword: name, Message: "unknown keyword"}
		}
		ctx := l.contextFor(out, name, strict)
		raw, _ := out.Values(name, true)
		expanded, err := t.ExpandMany(ctx, raw)
		if err != nil {
			return nil, &mars.UserError{Verb: req.Verb(), Keyword: name, Message: err.Error()}
		}
		if allow, ok := ctx.Defaults["@include:"+name]; ok {
			expanded = t.Filter(allow, expanded)
		}
		if forbid, ok := ctx.Defaults["@exclude:"+name]; ok {
			expanded = excludeValues(expanded, forbid)
		}
		out.SetValues(name, expanded, t)
		touched = append(touched, name)
	}

	for _, name := range touched {
		if err := l.registry.Get(name).Finalise(out); err != nil {
			return nil, &mars.UserError{Verb: req.Verb(), Keyword: name, Message: err.Error()}
		}
	}

	for _, name := range touched {
		ctx := l.contextFor(out, name, strict)
		if err := l.registry.Get(name).Pass2(ctx, out); err != nil {
			return nil, &mars.UserError{Verb: req.Verb(), Keyword: name, Message: err.Error()}
		}
	}

	if err := l.checkOnlyNever(out); err != nil {
		return nil, err
	}

	return out, nil
}

func excludeValues(values, forbid []string) []string {
	skip := make(map[string]bool, len(forbid))
	for _, f := range forbid {
		skip[f] = true
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if !skip[v] {
			out = append(out, v)
		}
	}
	return out
}

// checkOnlyNever enforces each keyword's declared Only/Never exclusivity
// against the other keywords present on the request.
func (l *Language) checkOnlyNever(req *mars.Request) error {
	for _, name := range l.order {
		if !req.Has(name) {
			continue
		}
		t := l.registry.Get(name)
		base, ok := t.(interface{ OnlyNever() (map[string][]string, map[string][]string) })
		if !ok {
			continue
		}
		only, never := base.OnlyNever()
		for other, allowed := range only {
			if req.Has(other) {
				vals, _ := req.Values(other, true)
				if !slices.ContainsFunc(vals, func(v string) bool { return slices.Contains(allowed, v) }) {
					return &mars.UserError{Verb: req.Verb(), Keyword: name,
						Message: fmt.Sprintf("requires %s to be one of %v", other, allowed)}
				}
			}
		}
		for other, forbidden := range never {
			if req.Has(other) {
				vals, _ := req.Values(other, true)
				if slices.ContainsFunc(vals, func(v string) bool { return slices.Contains(forbidden, v) }) {
					return &mars.UserError{Verb: req.Verb(), Keyword: name,
						Message: fmt.Sprintf("is incompatible with %s=%v", other, forbidden)}
				}
			}
		}
	}
	return nil
}

// Reset clears every keyword Type's lazily-built lookup state.
func (l *Language) Reset() {
	for _, name := range l.order {
		if t := l.registry.Get(name); t != nil {
			t.Reset()
		}
	}
}

// Flatten calls callback once for every single-valued Request obtained by
// taking the Cartesian product of every flattening keyword's values, in
// keyword declaration order (stable, matching Request.Count()). Iteration
// stops and returns callback's error the first time it returns non-nil.
func (l *Language) Flatten(req *mars.Request, callback func(*mars.Request) error) error {
	var flattening []string
	for _, name := range l.order {
		if !req.Has(name) {
			continue
		}
		t := l.registry.Get(name)
		if t != nil && t.Flatten() {
			flattening = append(flattening, name)
		}
	}
	sort.SliceStable(flattening, func(i, j int) bool {
		return slices.Index(l.order, flattening[i]) < slices.Index(l.order, flattening[j])
	})
	return l.flattenRec(req, flattening, 0, callback)
}

func (l *Language) flattenRec(req *mars.Request, keys []string, idx int, callback func(*mars.Request) error) error {
	if idx == len(keys) {
		return callback(req)
	}
	name := keys[idx]
	vals, _ := req.Values(name, true)
	if len(vals) == 0 {
		return l.flattenRec(req, keys, idx+1, callback)
	}
	for _, v := range vals {
		sub := mars.NewRequest(req.Verb())
		for _, p := range req.Parameters() {
			if p.Name() == name {
				sub.SetValues(p.Name(), []string{v}, p.Type())
			} else {
				sub.SetValues(p.Name(), append([]string(nil), p.Values()...), p.Type())
			}
		}
		if err := l.flattenRec(sub, keys, idx+1, callback); err != nil {
			return err
		}
	}
	return nil
}
