package types

import (
	"fmt"
	"strings"
)

// AmbiguousValueError is returned when an enum prefix or best-match lookup
// matches more than one candidate value.
type AmbiguousValueError struct {
	Keyword    string
	Value      string
	Candidates []string
}

func (e *AmbiguousValueError) Error() string {
	return fmt.Sprintf("%s: %q is ambiguous, matches %v", e.Keyword, e.Value, e.Candidates)
}

// Enum implements the MARS "enum" keyword class: a closed, case-insensitive
// set of values with optional aliases and named groups, resolved either by
// exact match or by a longest-unambiguous-prefix best match.
//
// Grounded on TypeEnum from the metkit mars language (alias table, value
// groups, best-match resolution, lazy external values file).
type Enum struct {
	base

	canonical map[string]string   // lowercased alias/value -> canonical value
	order     []string            // canonical values in declaration order
	groups    map[string][]string // canonical group name -> member values
	built     bool
}

// NewEnum constructs an Enum type from its language settings. The alias
// table is built lazily on first use (mirrors readValuesFile's
// sync.Once-guarded external load in the original).
func NewEnum(name string, s Settings) *Enum {
	e := &Enum{base: base{Settings: s}}
	e.KeywordName = name
	return e
}

func (e *Enum) ensureBuilt() {
	if e.built {
		return
	}
	e.canonical = make(map[string]string)
	e.groups = make(map[string][]string)
	for _, v := range e.Values {
		canon := v
		if group, member, ok := strings.Cut(v, "="); ok {
			// "group=member1/member2" declares member1, member2 as a
			// group addressable by the group name.
			members := strings.Split(member, "/")
			e.groups[strings.ToLower(group)] = members
			e.canonical[strings.ToLower(group)] = group
			canon = group
		}
		e.canonical[strings.ToLower(canon)] = canon
		e.order = append(e.order, canon)
	}
	for alias, target := range e.Aliases {
		e.canonical[strings.ToLower(alias)] = e.resolveCanonical(target)
	}
	e.built = true
}

func (e *Enum) resolveCanonical(v string) string {
	if c, ok := e.canonical[strings.ToLower(v)]; ok {
		return c
	}
	return v
}

func (e *Enum) HasGroups() bool {
	e.ensureBuilt()
	return len(e.groups) > 0
}

func (e *Enum) Group(value string) []string {
	e.ensureBuilt()
	return e.groups[strings.ToLower(value)]
}

func (e *Enum) Reset() {
	e.built = false
	e.canonical = nil
	e.order = nil
	e.groups = nil
}

// lookup resolves value to its canonical form, trying an exact
// case-insensitive match first and falling back to a longest-prefix best
// match against every known alias. It returns an AmbiguousValueError if
// more than one alias shares the same prefix.
func (e *Enum) lookup(value string) (string, error) {
	e.ensureBuilt()
	lower := strings.ToLower(value)
	if c, ok := e.canonical[lower]; ok {
		return c, nil
	}
	if len(e.Values) == 0 {
		// No closed value set declared: pass through unchanged (covers
		// enums whose values come purely from an external table).
		return value, nil
	}
	var candidates []string
	seen := make(map[string]bool)
	for alias, canon := range e.canonical {
		if strings.HasPrefix(alias, lower) && !seen[canon] {
			candidates = append(candidates, canon)
			seen[canon] = true
		}
	}
	switch len(candidates) {
	case 0:
		return "", fmt.Errorf("%q is not a valid value for %q", value, e.KeywordName)
	case 1:
		return candidates[0], nil
	default:
		return "", &AmbiguousValueError{Keyword: e.KeywordName, Value: value, Candidates: candidates}
	}
}

func (e *Enum) ExpandOne(ctx Context, value string) (string, error) {
	canon, err := e.lookup(value)
	if err != nil {
		return "", err
	}
	if group := e.Group(canon); group != nil {
		// A bare group name on its own expands to its first member;
		// ExpandMany is responsible for expanding it to every member.
		if len(group) > 0 {
			return group[0], nil
		}
	}
	return canon, nil
}

func (e *Enum) ExpandMany(ctx Context, values []string) ([]string, error) {
	var out []string
	for _, v := range values {
		canon, err := e.lookup(v)
		if err != nil {
			return nil, err
		}
		if group := e.Group(canon); group != nil {
			out = append(out, group...)
			continue
		}
		out = append(out, canon)
	}
	return dedupStable(out), nil
}

func (e *Enum) Matches(matchValues, values []string) bool {
	e.ensureBuilt()
	want := make(map[string]bool, len(matchValues))
	for _, v := range matchValues {
		canon, err := e.lookup(v)
		if err != nil {
			canon = v
		}
		want[canon] = true
	}
	for _, v := range values {
		canon, err := e.lookup(v)
		if err != nil {
			canon = v
		}
		if want[canon] {
			return true
		}
	}
	return false
}

func dedupStable(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
