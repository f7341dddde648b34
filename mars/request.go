package mars

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/mmp/marskit/mars/types"
)

// Parameter is one named, multi-valued keyword of a Request. Its Typ field
// is nil until a Language has expanded the owning Request; unexpanded
// Parameters carry raw token values only.
type Parameter struct {
	name   string
	values []string
	typ    types.Type
}

// Name returns the parameter's keyword name.
func (p *Parameter) Name() string { return p.name }

// Values returns the parameter's raw or expanded value list.
func (p *Parameter) Values() []string { return p.values }

// Type returns the Type this parameter was expanded with, or nil if the
// owning Request has not been expanded yet.
func (p *Parameter) Type() types.Type { return p.typ }

// Request is a single MARS request: a verb plus an ordered set of unique
// named parameters. Grounded on MarsRequest from the metkit mars language.
type Request struct {
	verb   string
	params []*Parameter
	index  map[string]int
}

// NewRequest creates an empty Request for verb.
func NewRequest(verb string) *Request {
	return &Request{verb: verb, index: make(map[string]int)}
}

// Verb returns the request's verb (e.g. "retrieve").
func (r *Request) Verb() string { return r.verb }

// SetVerb changes the request's verb.
func (r *Request) SetVerb(verb string) { r.verb = verb }

// Has reports whether name is present on the request.
func (r *Request) Has(name string) bool {
	_, ok := r.index[strings.ToLower(name)]
	return ok
}

// Parameters returns every parameter in declaration order.
func (r *Request) Parameters() []*Parameter { return r.params }

// Values returns the raw values for name. If allowMissing is false and the
// keyword is absent, an error is returned; if true, a nil slice is
// returned instead.
func (r *Request) Values(name string, allowMissing bool) ([]string, error) {
	idx, ok := r.index[strings.ToLower(name)]
	if !ok {
		if allowMissing {
			return nil, nil
		}
		return nil, fmt.Errorf("request has no value for %q", name)
	}
	return r.params[idx].values, nil
}

// CountValues returns the number of raw values held for name.
func (r *Request) CountValues(name string) int {
	vals, _ := r.Values(name, true)
	return len(vals)
}

// Is reports whether name's values contain exactly value, case-insensitive.
func (r *Request) Is(name, value string) bool {
	vals, _ := r.Values(name, true)
	for _, v := range vals {
		if strings.EqualFold(v, value) {
			return true
		}
	}
	return false
}

// SetValues replaces (or creates) the parameter name with values and typ.
func (r *Request) SetValues(name string, values []string, typ types.Type) error {
	key := strings.ToLower(name)
	if idx, ok := r.index[key]; ok {
		r.params[idx].values = values
		r.params[idx].typ = typ
		return nil
	}
	r.index[key] = len(r.params)
	r.params = append(r.params, &Parameter{name: name, values: values, typ: typ})
	return nil
}

// Unset removes name from the request, if present.
func (r *Request) Unset(name string) {
	key := strings.ToLower(name)
	idx, ok := r.index[key]
	if !ok {
		return
	}
	r.params = append(r.params[:idx], r.params[idx+1:]...)
	delete(r.index, key)
	for k, v := range r.index {
		if v > idx {
			r.index[k] = v - 1
		}
	}
}

// Merge overlays other's parameters onto r, other's values winning on
// conflict, and returns r.
func (r *Request) Merge(other *Request) *Request {
	for _, p := range other.params {
		r.SetValues(p.name, append([]string(nil), p.values...), p.typ)
	}
	return r
}

// Subset returns a new Request holding only the named keys that are
// present on r.
func (r *Request) Subset(keys ...string) *Request {
	out := NewRequest(r.verb)
	for _, k := range keys {
		if idx, ok := r.index[strings.ToLower(k)]; ok {
			p := r.params[idx]
			out.SetValues(p.name, append([]string(nil), p.values...), p.typ)
		}
	}
	return out
}

// Count returns the number of single-valued Requests this Request would
// flatten to: the product of each flattening parameter's value count.
func (r *Request) Count() int {
	count := 1
	for _, p := range r.params {
		if p.typ == nil {
			count *= max(1, len(p.values))
			continue
		}
		if !p.typ.Flatten() {
			continue
		}
		count *= p.typ.Count(p.values)
	}
	return count
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Less provides a deterministic total order over Requests, sorting by verb
// then by each parameter's name and values in turn. Used to make
// expansion's output order reproducible.
func (r *Request) Less(other *Request) bool {
	if r.verb != other.verb {
		return r.verb < other.verb
	}
	a := append([]*Parameter(nil), r.params...)
	b := append([]*Parameter(nil), other.params...)
	sort.Slice(a, func(i, j int) bool { return a[i].name < a[j].name })
	sort.Slice(b, func(i, j int) bool { return b[i].name < b[j].name })
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i].name != b[i].name {
			return a[i].name < b[i].name
		}
		as, bs := strings.Join(a[i].values, "/"), strings.Join(b[i].values, "/")
		if as != bs {
			return as < bs
		}
	}
	return len(a) < len(b)
}

// String renders the request in canonical MARS syntax:
// verb,key1=v1/v2,key2=v1.
func (r *Request) String() string {
	var b strings.Builder
	b.WriteString(r.verb)
	for _, p := range r.params {
		b.WriteByte(',')
		b.WriteString(p.name)
		b.WriteByte('=')
		b.WriteString(strings.Join(quoteIfNeeded(p.values), "/"))
	}
	return b.String()
}

func quoteIfNeeded(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		if needsQuoting(v) {
			out[i] = "\"" + strings.ReplaceAll(v, "\"", "\\\"") + "\""
		} else {
			out[i] = v
		}
	}
	return out
}

func needsQuoting(v string) bool {
	if v == "" {
		return true
	}
	for _, r := range v {
		if !(isIdentRune(r)) {
			return true
		}
	}
	return false
}

func isIdentRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '_' || r == ':' || r == '-' || r == '.' || r == '@':
		return true
	}
	return false
}

// Dump writes a multi-line, indented rendering of the request to w,
// matching the original's verbose request-dump format used for
// diagnostics and logs.
func (r *Request) Dump(w io.Writer, cr, tab string, includeVerb bool) {
	if includeVerb {
		fmt.Fprintf(w, "%s%s%s", r.verb, cr, tab)
	}
	for i, p := range r.params {
		if i > 0 {
			fmt.Fprintf(w, ",%s%s", cr, tab)
		}
		fmt.Fprintf(w, "%s = %s", p.name, strings.Join(p.values, "/"))
	}
	fmt.Fprint(w, cr)
}
