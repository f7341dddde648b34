// Package encode implements the GRIB2 encoding pipeline: turning an
// expanded MARS request plus a numeric payload into wire-format GRIB2
// bytes, by running a catalog of per-keyword concepts against a
// section-by-section, stage-by-stage dictionary.
package encode

import "fmt"

// Sentinel values used throughout the encoding pipeline to distinguish
// "key genuinely absent", "key present but invalid for this context", and
// "key not applicable to the chosen template" from ordinary integer
// values. Carried verbatim from the grib_api/eccodes convention these
// concepts are grounded on.
const (
	Missing       = 999997
	Invalid       = 999998
	NotApplicable = 999999
)

// Dict is the key/value store concepts read from and write to while
// populating one GRIB2 message. Implementations are free to back onto any
// storage; MapDict is the in-memory default used by Encode.
type Dict interface {
	Has(key string) bool

	GetLong(key string) (int64, error)
	GetDouble(key string) (float64, error)
	GetString(key string) (string, error)
	GetDoubles(key string) ([]float64, error)

	// GetOptLong returns the value and true if key is present, or
	// (0, false) if it is absent. It never errors: a present key that
	// fails to parse as an integer simply returns false.
	GetOptLong(key string) (int64, bool)

	SetLong(key string, v int64) error
	SetDouble(key string, v float64) error
	SetString(key string, v string) error
	SetDoubles(key string, v []float64) error
}

// MapDict is the concrete, map-backed Dict implementation used to
// accumulate the output of an Encode run and to represent the static
// "opt" dictionary a Config produces as concept input.
type MapDict map[string]any

// NewMapDict returns an empty MapDict.
func NewMapDict() MapDict { return make(MapDict) }

func (d MapDict) Has(key string) bool {
	_, ok := d[key]
	return ok
}

func (d MapDict) GetLong(key string) (int64, error) {
	v, ok := d[key]
	if !ok {
		return 0, fmt.Errorf("dict: key %q not set", key)
	}
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case float64:
		return int64(n), nil
	default:
		return 0, fmt.Errorf("dict: key %q is %T, not an integer", key, v)
	}
}

func (d MapDict) GetDouble(key string) (float64, error) {
	v, ok := d[key]
	if !ok {
		return 0, fmt.Errorf("dict: key %q not set", key)
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int64:
		return float64(n), nil
	case int:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("dict: key %q is %T, not a double", key, v)
	}
}

func (d MapDict) GetString(key string) (string, error) {
	v, ok := d[key]
	if !ok {
		return "", fmt.Errorf("dict: key %q not set", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("dict: key %q is %T, not a string", key, v)
	}
	return s, nil
}

func (d MapDict) GetDoubles(key string) ([]float64, error) {
	v, ok := d[key]
	if !ok {
		return nil, fmt.Errorf("dict: key %q not set", key)
	}
	vals, ok := v.([]float64)
	if !ok {
		return nil, fmt.Errorf("dict: key %q is %T, not []float64", key, v)
	}
	return vals, nil
}

func (d MapDict) GetOptLong(key string) (int64, bool) {
	n, err := d.GetLong(key)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (d MapDict) SetLong(key string, v int64) error    { d[key] = v; return nil }
func (d MapDict) SetDouble(key string, v float64) error { d[key] = v; return nil }
func (d MapDict) SetString(key string, v string) error  { d[key] = v; return nil }
func (d MapDict) SetDoubles(key string, v []float64) error {
	d[key] = v
	return nil
}
