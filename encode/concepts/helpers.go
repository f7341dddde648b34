// Package concepts implements the GRIB2 encoding concept catalog:
// tables, longrange, generatingProcess, param, statistics, and ensemble.
// Each file registers one concept with package encode from an init(),
// the same registration-on-import pattern database/sql drivers and
// image codecs use to let a leaf package (encode) avoid importing its
// own plugins directly.
package concepts

import (
	"strconv"
	"strings"

	"github.com/mmp/marskit/mars"
)

// firstValue returns the first raw value of keyword on req, or "" if the
// keyword is absent or empty.
func firstValue(req *mars.Request, keyword string) string {
	vals, err := req.Values(keyword, true)
	if err != nil || len(vals) == 0 {
		return ""
	}
	return vals[0]
}

// parseDate splits an 8-digit YYYYMMDD MARS date value into its
// components; ok is false if value isn't in that form.
func parseDate(value string) (year, month, day int, ok bool) {
	if len(value) != 8 {
		return 0, 0, 0, false
	}
	y, err1 := strconv.Atoi(value[0:4])
	m, err2 := strconv.Atoi(value[4:6])
	d, err3 := strconv.Atoi(value[6:8])
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, 0, 0, false
	}
	return y, m, d, true
}

// parseTime splits a MARS time value ("0", "1200", "0600") into hour and
// minute.
func parseTime(value string) (hour, minute int) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, 0
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, 0
	}
	return n / 100, n % 100
}

// typeOfProcessedData maps a MARS "type" value to GRIB2 Code Table 1.4.
func typeOfProcessedData(typ string) int64 {
	switch strings.ToLower(typ) {
	case "an":
		return 0
	case "fc":
		return 1
	case "cf":
		return 3
	case "pf":
		return 4
	default:
		return 1
	}
}
