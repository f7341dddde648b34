package message

import (
	"fmt"

	"github.com/mmp/marskit/section"
)

// GRIB2Message represents a complete parsed GRIB2 message: all eight
// sections, decoded from RawMessage.Data. Grounded on Message from the
// teacher's message.go, renamed to avoid colliding with the
// format-agnostic RawMessage this package also exports.
type GRIB2Message struct {
	Section0 *section.Section0
	Section1 *section.Section1
	Section2 *section.Section2
	Section3 *section.Section3
	Section4 *section.Section4
	Section5 *section.Section5
	Section6 *section.Section6
	Section7 *section.Section7

	RawData []byte
}

// ParseGRIB2Message parses a complete GRIB2 message from raw bytes. The
// input must contain a single message starting with "GRIB" and ending
// with "7777". Multi-field messages (sections 3-7 repeating) are not
// supported.
func ParseGRIB2Message(data []byte) (*GRIB2Message, error) {
	if err := ValidateMessageStructure(data); err != nil {
		return nil, err
	}

	msg := &GRIB2Message{RawData: data}
	offset := 0

	sec0, err := section.ParseSection0(data[offset : offset+16])
	if err != nil {
		return nil, &ParseError{Section: 0, Offset: offset, Message: "failed to parse Section 0", Underlying: err}
	}
	msg.Section0 = sec0
	offset += 16

	sec1, err := parseSectionAt(data, offset, 1)
	if err != nil {
		return nil, err
	}
	msg.Section1 = sec1.(*section.Section1)
	offset += int(msg.Section1.Length)

	if offset < len(data)-4 && data[offset+4] == 2 {
		sec2, err := parseSectionAt(data, offset, 2)
		if err != nil {
			return nil, err
		}
		msg.Section2 = sec2.(*section.Section2)
		offset += int(msg.Section2.Length)
	}

	sec3, err := parseSectionAt(data, offset, 3)
	if err != nil {
		return nil, err
	}
	msg.Section3 = sec3.(*section.Section3)
	offset += int(msg.Section3.Length)

	sec4, err := parseSectionAt(data, offset, 4)
	if err != nil {
		return nil, err
	}
	msg.Section4 = sec4.(*section.Section4)
	offset += int(msg.Section4.Length)

	sec5, err := parseSectionAt(data, offset, 5)
	if err != nil {
		return nil, err
	}
	msg.Section5 = sec5.(*section.Section5)
	offset += int(msg.Section5.Length)

	numGridPoints := msg.Section3.NumDataPoints
	sec6Data := extractSectionData(data, offset)
	if sec6Data == nil {
		return nil, &ParseError{Section: 6, Offset: offset, Message: "failed to extract section 6 data"}
	}
	sec6, err := section.ParseSection6(sec6Data, numGridPoints)
	if err != nil {
		return nil, &ParseError{Section: 6, Offset: offset, Message: "failed to parse Section 6", Underlying: err}
	}
	msg.Section6 = sec6
	offset += int(sec6.Length)

	sec7, err := parseSectionAt(data, offset, 7)
	if err != nil {
		return nil, err
	}
	msg.Section7 = sec7.(*section.Section7)

	return msg, nil
}

func extractSectionData(data []byte, offset int) []byte {
	if offset+5 > len(data) {
		return nil
	}
	length := uint32(data[offset])<<24 | uint32(data[offset+1])<<16 | uint32(data[offset+2])<<8 | uint32(data[offset+3])
	if offset+int(length) > len(data) {
		return nil
	}
	return data[offset : offset+int(length)]
}

func parseSectionAt(data []byte, offset int, expectedSection uint8) (interface{}, error) {
	sectionData := extractSectionData(data, offset)
	if sectionData == nil {
		return nil, &ParseError{Section: int(expectedSection), Offset: offset,
			Message: fmt.Sprintf("failed to extract section %d data", expectedSection)}
	}
	switch expectedSection {
	case 1:
		return section.ParseSection1(sectionData)
	case 2:
		return section.ParseSection2(sectionData)
	case 3:
		return section.ParseSection3(sectionData)
	case 4:
		return section.ParseSection4(sectionData)
	case 5:
		return section.ParseSection5(sectionData)
	case 7:
		return section.ParseSection7(sectionData)
	default:
		return nil, &ParseError{Section: int(expectedSection), Offset: offset,
			Message: fmt.Sprintf("unsupported section number: %d", expectedSection)}
	}
}

// DecodeData decodes the data values from this message using its data
// representation (Section 5), bitmap (Section 6), and packed data
// (Section 7).
func (m *GRIB2Message) DecodeData() ([]float64, error) {
	if m.Section5 == nil || m.Section5.Representation == nil {
		return nil, fmt.Errorf("message has no data representation (Section 5)")
	}
	if m.Section7 == nil {
		return nil, fmt.Errorf("message has no data section (Section 7)")
	}
	var bitmap []bool
	if m.Section6 != nil && m.Section6.HasBitmap() {
		bitmap = m.Section6.Bitmap
	}
	values, err := m.Section5.Representation.Decode(m.Section7.Data, bitmap)
	if err != nil {
		return nil, fmt.Errorf("failed to decode data: %w", err)
	}
	return values, nil
}

// Coordinates returns the lat/lon coordinates for this message's grid.
func (m *GRIB2Message) Coordinates() (latitudes, longitudes []float64, err error) {
	if m.Section3 == nil || m.Section3.Grid == nil {
		return nil, nil, fmt.Errorf("message has no grid definition (Section 3)")
	}
	switch grid := m.Section3.Grid.(type) {
	case interface{ Coordinates() ([]float64, []float64) }:
		lats, lons := grid.Coordinates()
		return lats, lons, nil
	default:
		return nil, nil, fmt.Errorf("grid type %T does not support coordinate generation", m.Section3.Grid)
	}
}

func (m *GRIB2Message) String() string {
	if m.Section0 == nil {
		return "Invalid GRIB2 message"
	}
	discipline := "Unknown"
	if m.Section0 != nil {
		discipline = m.Section0.DisciplineName()
	}
	grid := "Unknown"
	if m.Section3 != nil && m.Section3.Grid != nil {
		grid = m.Section3.Grid.String()
	}
	product := "Unknown"
	if m.Section4 != nil && m.Section4.Product != nil {
		product = m.Section4.Product.String()
	}
	return fmt.Sprintf("GRIB2 Message: Discipline=%s, Grid=%s, Product=%s", discipline, grid, product)
}
