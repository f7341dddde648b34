package types

import (
	"fmt"
	"strconv"
	"strings"
)

// timeValue is the Step[T] domain element for the Time keyword class:
// minutes since midnight. Grounded on TypeTime from the metkit mars
// language, which accepts H, HH, HHmm, HHMM, and "<N>h<M>m" forms.
type timeValue struct {
	minutes int
}

func (t timeValue) Add(n int64) timeValue {
	m := (t.minutes + int(n)) % 1440
	if m < 0 {
		m += 1440
	}
	return timeValue{minutes: m}
}

func (t timeValue) Compare(other timeValue) int {
	switch {
	case t.minutes < other.minutes:
		return -1
	case t.minutes > other.minutes:
		return 1
	default:
		return 0
	}
}

// Format renders the time as four-digit HHMM with leading zeros, e.g.
// "0600", "1200" or "0030".
func (t timeValue) Format() string {
	h, m := t.minutes/60, t.minutes%60
	return fmt.Sprintf("%02d%02d", h, m)
}

// Time implements the "time" keyword class.
type Time struct {
	ToByList[timeValue]
}

// NewTime constructs a Time type.
func NewTime(name string, s Settings) *Time {
	t := &Time{}
	t.KeywordName = name
	t.Settings = s
	t.Parse = parseTimeToken
	t.ParseStep = parseTimeStep
	return t
}

func parseTimeToken(tok string) (timeValue, error) {
	if strings.ContainsAny(tok, "hHmM") && !isAllDigits(tok) {
		return parseHourMinuteSuffix(tok)
	}
	switch len(tok) {
	case 1, 2: // H or HH
		h, err := strconv.Atoi(tok)
		if err != nil || h < 0 || h > 23 {
			return timeValue{}, fmt.Errorf("invalid time %q", tok)
		}
		return timeValue{minutes: h * 60}, nil
	case 3: // Hmm
		h, err1 := strconv.Atoi(tok[:1])
		m, err2 := strconv.Atoi(tok[1:])
		if err1 != nil || err2 != nil || h > 23 || m > 59 {
			return timeValue{}, fmt.Errorf("invalid time %q", tok)
		}
		return timeValue{minutes: h*60 + m}, nil
	case 4: // HHmm / HHMM
		h, err1 := strconv.Atoi(tok[:2])
		m, err2 := strconv.Atoi(tok[2:])
		if err1 != nil || err2 != nil || h > 23 || m > 59 {
			return timeValue{}, fmt.Errorf("invalid time %q", tok)
		}
		return timeValue{minutes: h*60 + m}, nil
	default:
		return timeValue{}, fmt.Errorf("invalid time %q", tok)
	}
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// parseHourMinuteSuffix parses the "<N>h<M>m" / "<N>h" / "<M>m" forms.
func parseHourMinuteSuffix(tok string) (timeValue, error) {
	lower := strings.ToLower(tok)
	var hours, minutes int
	rest := lower
	if idx := strings.IndexByte(rest, 'h'); idx >= 0 {
		h, err := strconv.Atoi(rest[:idx])
		if err != nil {
			return timeValue{}, fmt.Errorf("invalid time %q", tok)
		}
		hours = h
		rest = rest[idx+1:]
	}
	rest = strings.TrimSuffix(rest, "m")
	if rest != "" {
		m, err := strconv.Atoi(rest)
		if err != nil {
			return timeValue{}, fmt.Errorf("invalid time %q", tok)
		}
		minutes = m
	}
	return timeValue{minutes: hours*60 + minutes}, nil
}

func parseTimeStep(tok string) (int64, error) {
	v, err := parseTimeToken(tok)
	if err != nil {
		return 0, err
	}
	return int64(v.minutes), nil
}
