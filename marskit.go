// Package marskit provides a MARS request language (tokenizer, parser,
// keyword expansion) paired with a GRIB2/GRIB1/BUFR/ODB message splitter,
// decoder, and encoder.
//
// Basic usage:
//
//	reqs, err := marskit.ParseRequests(strings.NewReader(`retrieve,param=2t/msl,levtype=sfc`))
//
//	fields, err := marskit.Read(file)
package marskit

import (
	"io"

	"github.com/mmp/marskit/encode"
	"github.com/mmp/marskit/mars"
	"github.com/mmp/marskit/mars/language"
	"github.com/mmp/marskit/message"
	"github.com/mmp/marskit/message/decode"
)

// Request is a parsed MARS request: a verb plus an ordered set of
// keyword/value-list parameters.
type Request = mars.Request

// ParseRequests tokenizes and parses every request found in r. When strict
// is true, unknown syntax produces a ParseError instead of being skipped.
func ParseRequests(r io.Reader, strict bool) ([]*Request, error) {
	return mars.ParseRequests(r, strict)
}

// GRIB2 is a single decoded field: values, coordinates, and metadata
// extracted from one GRIB2 message.
type GRIB2 = message.GRIB2

// ReadOption configures Read/ReadWithOptions.
type ReadOption = message.ReadOption

// Read parses and decodes every GRIB2 message in r.
func Read(r io.ReadSeeker) ([]*GRIB2, error) {
	return message.Read(r)
}

// ReadWithOptions parses and decodes GRIB2 messages from r, applying opts
// (worker count, context, filters).
func ReadWithOptions(r io.ReadSeeker, opts ...ReadOption) ([]*GRIB2, error) {
	return message.ReadWithOptions(r, opts...)
}

// EncodeConfig is a parsed encoder recipe: one section template plus
// concept options per GRIB2 section, loaded from YAML with LoadConfig.
type EncodeConfig = encode.Config

// LoadEncodeConfig parses a YAML encoder recipe from r. Callers must
// blank-import encode/concepts and encode/sections (and encode/checks, if
// Config.ApplyChecks is used) to register the concepts and section
// initializers EncodeGRIB dispatches against.
func LoadEncodeConfig(r io.Reader) (*EncodeConfig, error) {
	return encode.LoadConfig(r)
}

// EncodeGRIB renders req and payload into a wire-format GRIB2 message
// under cfg. See LoadEncodeConfig for the registration requirement.
func EncodeGRIB(req *Request, payload []float64, cfg *EncodeConfig) ([]byte, error) {
	return encode.Encode(req, payload, cfg)
}

// DecodeGRIB reconstructs a "retrieve" Request from a parsed GRIB2
// message's sections. lang may be nil, in which case the returned
// request's keys are not canonicalized against a MARS keyword language.
func DecodeGRIB(msg *message.GRIB2Message, lang *language.Language) (*Request, error) {
	return decode.DecodeGRIB(msg, lang)
}

// DecodeODB groups an ODB stream's frames into column-spans and returns
// the distinct values seen per column.
func DecodeODB(data []byte) (map[string][]string, error) {
	return decode.DecodeODB(data)
}

var (
	WithWorkers           = message.WithWorkers
	WithSequential        = message.WithSequential
	WithContext           = message.WithContext
	WithSkipErrors        = message.WithSkipErrors
	WithFilter            = message.WithFilter
	WithParameterCategory = message.WithParameterCategory
	WithParameterNumber   = message.WithParameterNumber
	WithDiscipline        = message.WithDiscipline
	WithCenter            = message.WithCenter
)
