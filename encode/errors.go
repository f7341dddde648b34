package encode

import "fmt"

// DeductionError reports that a key required to encode a GRIB2 message
// could not be deduced from the MARS request: either the keyword is
// absent, or its value has no known mapping to a GRIB2 code.
type DeductionError struct {
	Keyword string
	Message string
}

func (e *DeductionError) Error() string {
	return fmt.Sprintf("cannot deduce %q: %s", e.Keyword, e.Message)
}

// ConceptError wraps a failure inside a Concept's matcher or entry with
// the (concept, variant, stage, section) context it failed under, the way
// the driver's dispatch loop always attributes failures to the slot that
// produced them.
type ConceptError struct {
	Concept string
	Variant string
	Stage   Stage
	Section Section
	Err     error
}

func (e *ConceptError) Error() string {
	return fmt.Sprintf("concept %q (variant %q, stage %s, section %s): %v",
		e.Concept, e.Variant, e.Stage, e.Section, e.Err)
}

func (e *ConceptError) Unwrap() error { return e.Err }

// ValidationError reports a failed post-encode check (Config.ApplyChecks).
type ValidationError struct {
	Check   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("check %q failed: %s", e.Check, e.Message)
}

// GenericError covers configuration inconsistencies that don't fit the
// other kinds: an unregistered section initializer, a duplicate concept
// for the same slot, a malformed recipe.
type GenericError struct {
	Message string
}

func (e *GenericError) Error() string { return e.Message }
