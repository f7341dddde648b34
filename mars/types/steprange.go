package types

import (
	"fmt"
	"strconv"
	"strings"
)

// stepValue is the Step[T] domain element for the StepRange keyword class:
// a forecast step in hours, optionally expressed as a hyphenated range
// "a-b" (e.g. "0-6" for an accumulated/averaged period). Grounded on
// TypeRange from the metkit mars language.
type stepValue struct {
	from, to int64
	isRange  bool
	unit     string // "" (hours) or a suffix like "m" for minutes
}

func (s stepValue) Add(n int64) stepValue {
	if s.isRange {
		width := s.to - s.from
		return stepValue{from: s.from + n, to: s.from + n + width, isRange: true, unit: s.unit}
	}
	return stepValue{from: s.from + n, unit: s.unit}
}

func (s stepValue) Compare(other stepValue) int {
	switch {
	case s.from < other.from:
		return -1
	case s.from > other.from:
		return 1
	default:
		return 0
	}
}

func (s stepValue) Format() string {
	if s.isRange {
		return fmt.Sprintf("%d-%d%s", s.from, s.to, s.unit)
	}
	return fmt.Sprintf("%d%s", s.from, s.unit)
}

// StepRange implements the "step" keyword class.
type StepRange struct {
	ToByList[stepValue]
}

// NewStepRange constructs a StepRange type.
func NewStepRange(name string, s Settings) *StepRange {
	sr := &StepRange{}
	sr.KeywordName = name
	sr.Settings = s
	sr.Parse = parseStepToken
	sr.ParseStep = parseStepDelta
	return sr
}

func parseStepToken(tok string) (stepValue, error) {
	unit := ""
	num := tok
	if n := len(tok); n > 0 {
		last := tok[n-1]
		if last < '0' || last > '9' {
			unit = string(last)
			num = tok[:n-1]
		}
	}
	if from, to, ok := strings.Cut(num, "-"); ok {
		f, err1 := strconv.ParseInt(from, 10, 64)
		t, err2 := strconv.ParseInt(to, 10, 64)
		if err1 != nil || err2 != nil {
			return stepValue{}, fmt.Errorf("invalid step range %q", tok)
		}
		return stepValue{from: f, to: t, isRange: true, unit: unit}, nil
	}
	n, err := strconv.ParseInt(num, 10, 64)
	if err != nil {
		return stepValue{}, fmt.Errorf("invalid step %q", tok)
	}
	return stepValue{from: n, unit: unit}, nil
}

func parseStepDelta(tok string) (int64, error) {
	v, err := parseStepToken(tok)
	if err != nil {
		return 0, err
	}
	return v.from, nil
}
