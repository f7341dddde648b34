// Package decode turns parsed wire messages (message.GRIB2Message, ODB
// column frames) back into MARS requests, the inverse direction of
// package encode. Grounded on message/parameter.go's ParameterID and
// mars/language's Expand, it canonicalizes whatever raw keys a message
// carries through the same MARS retrieve language the request parser
// uses, so "param=2t" and "param=167" decode to the same request.
package decode

import (
	"fmt"

	"github.com/mmp/marskit/mars"
	"github.com/mmp/marskit/mars/language"
	"github.com/mmp/marskit/message"
	"github.com/mmp/marskit/product"
)

// wmoParamIDs maps a WMO discipline/category/number triple to its
// canonical MARS numeric paramId, the decode-direction mirror of
// encode/concepts/param.go's paramIDTable, both grounded on
// message/parameter.go's paramShortNames.
var wmoParamIDs = map[[3]uint8]string{
	{0, 0, 0}: "167", // 2t (and t, disambiguated below by level type)
	{0, 0, 6}: "168", // 2d
	{0, 3, 1}: "151", // msl
	{0, 3, 4}: "129", // z
	{0, 2, 2}: "131", // u
	{0, 2, 3}: "132", // v
	{0, 1, 0}: "133", // q
	{0, 2, 8}: "135", // w
	{0, 1, 1}: "157", // r
	{0, 1, 8}: "228", // tp
	{0, 6, 1}: "164", // tcc
}

// DecodeGRIB builds a "retrieve" Request from a parsed GRIB2 message's
// sections, deriving class/stream/expver/domain defaults and the
// date/time/type/param/levtype/levelist keywords from Sections 0, 1 and 4.
// When lang is non-nil the raw request is run through Language.Expand so
// that canonicalization (short-name param resolution, defaulted keywords)
// matches what a hand-written MARS request would produce; when lang is
// nil the raw, uncanonicalized request is returned, since no keyword
// language is embedded in this package.
func DecodeGRIB(msg *message.GRIB2Message, lang *language.Language) (*mars.Request, error) {
	if msg == nil {
		return nil, fmt.Errorf("decode: nil message")
	}
	if msg.Section0 == nil || msg.Section1 == nil {
		return nil, fmt.Errorf("decode: message missing section 0 or 1")
	}

	req := mars.NewRequest("retrieve")
	if err := req.SetValues("class", []string{"od"}, nil); err != nil {
		return nil, err
	}
	if err := req.SetValues("stream", []string{"oper"}, nil); err != nil {
		return nil, err
	}
	if err := req.SetValues("expver", []string{"0001"}, nil); err != nil {
		return nil, err
	}
	if err := req.SetValues("domain", []string{"g"}, nil); err != nil {
		return nil, err
	}

	ref := msg.Section1.ReferenceTime
	if err := req.SetValues("date", []string{ref.Format("20060102")}, nil); err != nil {
		return nil, err
	}
	if err := req.SetValues("time", []string{ref.Format("1504")}, nil); err != nil {
		return nil, err
	}

	if err := req.SetValues("type", []string{typeOfData(msg.Section1.TypeOfData)}, nil); err != nil {
		return nil, err
	}

	if msg.Section4 != nil && msg.Section4.Product != nil {
		p := msg.Section4.Product
		key := [3]uint8{msg.Section0.Discipline, p.GetParameterCategory(), p.GetParameterNumber()}
		paramID, ok := wmoParamIDs[key]
		if !ok {
			paramID = fmt.Sprintf("%d.%d.%d", msg.Section0.Discipline, p.GetParameterCategory(), p.GetParameterNumber())
		}
		if err := req.SetValues("param", []string{paramID}, nil); err != nil {
			return nil, err
		}

		forecastTime, surfaceType, surfaceValue, ok := surfaceFields(p)
		if err := req.SetValues("step", []string{fmt.Sprintf("%d", forecastTime)}, nil); err != nil {
			return nil, err
		}
		if ok && surfaceType != 0 {
			if err := req.SetValues("levtype", []string{levelTypeName(surfaceType)}, nil); err != nil {
				return nil, err
			}
			if err := req.SetValues("levelist", []string{fmt.Sprintf("%d", surfaceValue)}, nil); err != nil {
				return nil, err
			}
		}
	}

	if lang == nil {
		return req, nil
	}
	return lang.Expand(req, true, false)
}

// surfaceFields extracts the forecast time and first-fixed-surface fields
// from a decoded product, which only Template40 and Template48 carry
// (statistical templates share Template 4.0's layout for these fields).
func surfaceFields(p product.Product) (forecastTime uint32, surfaceType uint8, surfaceValue uint32, ok bool) {
	switch t := p.(type) {
	case *product.Template40:
		return t.ForecastTime, t.FirstSurfaceType, t.FirstSurfaceValue, true
	case *product.Template48:
		return t.ForecastTime, t.FirstSurfaceType, t.FirstSurfaceValue, true
	default:
		return 0, 0, 0, false
	}
}

// typeOfData maps GRIB2 Code Table 1.4 (type of processed data) to the
// MARS "type" keyword's analysis/forecast vocabulary.
func typeOfData(code uint8) string {
	switch code {
	case 0:
		return "an"
	case 1:
		return "fc"
	case 2:
		return "pf"
	case 3:
		return "cf"
	default:
		return "fc"
	}
}

// levelTypeName maps GRIB2 Code Table 4.5 (fixed surface types) to the
// MARS "levtype" keyword's vocabulary, restricted to the surfaces the
// worked examples in SPEC_FULL.md use.
func levelTypeName(code uint8) string {
	switch code {
	case 100:
		return "pl"
	case 1:
		return "sfc"
	case 106:
		return "sol"
	default:
		return "ml"
	}
}
