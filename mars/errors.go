// Package mars implements parsing, printing, and representation of MARS
// (Meteorological Archival and Retrieval System) requests.
package mars

import (
	"fmt"

	"github.com/mmp/marskit/mars/types"
)

// ParseError represents a syntax error encountered while tokenizing or
// parsing a MARS request. It carries the source line so callers can point
// a user at the offending text.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// UserError indicates that a request was syntactically valid but violates
// a semantic rule of the language: an unknown verb, an unknown keyword, or
// a value rejected by a type's validation.
type UserError struct {
	Verb    string
	Keyword string
	Message string
}

func (e *UserError) Error() string {
	if e.Keyword != "" {
		return fmt.Sprintf("%s/%s: %s", e.Verb, e.Keyword, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Verb, e.Message)
}

// AmbiguousValueError is returned when an enum prefix or best-match lookup
// matches more than one candidate value. It is declared in package types,
// where Enum raises it.
type AmbiguousValueError = types.AmbiguousValueError
