package types

import "fmt"

// Registry builds and caches the Type instances for every keyword declared
// by a Language's YAML definition.
type Registry struct {
	types map[string]Type
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{types: make(map[string]Type)}
}

// Build constructs a Type for name from its Settings and stores it, per
// the class-to-constructor mapping declared by the language file's "type"
// field (enum, integer, date, time, range, param, chem, expver, any).
func (r *Registry) Build(name string, s Settings, paramTables map[string]map[string]ParamTable) (Type, error) {
	switch s.Class {
	case "", "enum":
		return r.set(name, NewEnum(name, s)), nil
	case "integer":
		if len(s.Range) == 2 {
			return r.set(name, NewInteger(name, s, s.Range[0], s.Range[1], true)), nil
		}
		return r.set(name, NewInteger(name, s, 0, 0, false)), nil
	case "date":
		return r.set(name, NewDate(name, s, nil)), nil
	case "time":
		return r.set(name, NewTime(name, s)), nil
	case "range", "step":
		return r.set(name, NewStepRange(name, s)), nil
	case "param":
		return r.set(name, NewParam(name, s, "levtype", paramTables[name])), nil
	case "chem":
		return r.set(name, NewChem(name, s, "levtype", paramTables[name])), nil
	case "expver":
		return r.set(name, NewExpver(name, s)), nil
	case "any":
		return r.set(name, NewAny(name, s)), nil
	default:
		return nil, fmt.Errorf("unknown type class %q for keyword %q", s.Class, name)
	}
}

func (r *Registry) set(name string, t Type) Type {
	r.types[name] = t
	return t
}

// Get returns the Type registered for name, or nil.
func (r *Registry) Get(name string) Type {
	return r.types[name]
}

// Names returns every registered keyword name.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.types))
	for n := range r.types {
		names = append(names, n)
	}
	return names
}
