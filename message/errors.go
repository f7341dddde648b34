// Package message implements the format-agnostic meteorological message
// splitter (GRIB1, GRIB2, BUFR, ODB) and the GRIB2 message decoder built
// on top of the section/product/data/tables/grid packages.
package message

import "fmt"

// ParseError represents an error during message parsing. It includes
// context about where in the file the error occurred.
type ParseError struct {
	Section    int // Which section (0-7), or -1 if file-level
	Offset     int // Byte offset in file where error occurred
	Message    string
	Underlying error
}

func (e *ParseError) Error() string {
	if e.Section == -1 {
		if e.Underlying != nil {
			return fmt.Sprintf("at offset %d: %s: %v", e.Offset, e.Message, e.Underlying)
		}
		return fmt.Sprintf("at offset %d: %s", e.Offset, e.Message)
	}
	if e.Underlying != nil {
		return fmt.Sprintf("section %d at offset %d: %s: %v", e.Section, e.Offset, e.Message, e.Underlying)
	}
	return fmt.Sprintf("section %d at offset %d: %s", e.Section, e.Offset, e.Message)
}

func (e *ParseError) Unwrap() error { return e.Underlying }

// UnsupportedTemplateError indicates a template number that isn't implemented.
type UnsupportedTemplateError struct {
	Section        int
	TemplateNumber int
}

func (e *UnsupportedTemplateError) Error() string {
	sectionName := "unknown"
	switch e.Section {
	case 3:
		sectionName = "grid definition"
	case 4:
		sectionName = "product definition"
	case 5:
		sectionName = "data representation"
	}
	return fmt.Sprintf("unsupported %s template %d in section %d", sectionName, e.TemplateNumber, e.Section)
}

// InvalidFormatError indicates that the data is not a message of the
// expected format.
type InvalidFormatError struct {
	Message string
	Offset  int
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid message format at offset %d: %s", e.Offset, e.Message)
}
