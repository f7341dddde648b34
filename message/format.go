package message

import "fmt"

// Format identifies the wire framing of a meteorological message.
type Format int

const (
	FormatUnknown Format = iota
	FormatGRIB1
	FormatGRIB2
	FormatBUFR
	FormatODB
)

func (f Format) String() string {
	switch f {
	case FormatGRIB1:
		return "GRIB1"
	case FormatGRIB2:
		return "GRIB2"
	case FormatBUFR:
		return "BUFR"
	case FormatODB:
		return "ODB"
	default:
		return "unknown"
	}
}

// RawMessage is one framed, unparsed message extracted from a stream by
// the Splitter: its format, its byte range, and (for in-memory sources)
// its raw bytes.
type RawMessage struct {
	Format Format
	Start  int
	Length int
	Data   []byte
}

// detectFormat inspects the magic bytes at the start of data and returns
// the framing they indicate, or FormatUnknown.
func detectFormat(data []byte) Format {
	if len(data) >= 4 && data[0] == 'G' && data[1] == 'R' && data[2] == 'I' && data[3] == 'B' {
		if len(data) >= 8 {
			// GRIB2 uses an 8-byte total length field at offset 8..16;
			// GRIB1 encodes edition at byte 7 and a 3-byte length at
			// offset 4..7.
			if data[7] == 2 {
				return FormatGRIB2
			}
			if data[7] == 1 {
				return FormatGRIB1
			}
		}
		return FormatGRIB2
	}
	if len(data) >= 4 && data[0] == 'B' && data[1] == 'U' && data[2] == 'F' && data[3] == 'R' {
		return FormatBUFR
	}
	if len(data) >= 5 && data[0] == 0xFF && data[1] == 0xFF && data[2] == 'O' && data[3] == 'D' && data[4] == 'A' {
		return FormatODB
	}
	return FormatUnknown
}

// messageLength returns the total byte length of the message starting at
// data (header only; data need not contain the whole message), following
// each format's own length encoding.
func messageLength(format Format, data []byte) (int, error) {
	switch format {
	case FormatGRIB2:
		if len(data) < 16 {
			return 0, fmt.Errorf("need 16 bytes for GRIB2 section 0, have %d", len(data))
		}
		length := uint64(data[8])<<56 | uint64(data[9])<<48 | uint64(data[10])<<40 | uint64(data[11])<<32 |
			uint64(data[12])<<24 | uint64(data[13])<<16 | uint64(data[14])<<8 | uint64(data[15])
		return int(length), nil
	case FormatGRIB1:
		if len(data) < 8 {
			return 0, fmt.Errorf("need 8 bytes for GRIB1 section 0, have %d", len(data))
		}
		length := int(data[4])<<16 | int(data[5])<<8 | int(data[6])
		return length, nil
	case FormatBUFR:
		if len(data) < 8 {
			return 0, fmt.Errorf("need 8 bytes for BUFR section 0, have %d", len(data))
		}
		length := int(data[4])<<16 | int(data[5])<<8 | int(data[6])
		return length, nil
	default:
		return 0, fmt.Errorf("unsupported format %s", format)
	}
}

// endMarker returns the expected trailing marker bytes for format, used to
// validate message framing ("7777" for GRIB1/2, "7777" for BUFR).
func endMarker(format Format) string {
	switch format {
	case FormatGRIB1, FormatGRIB2, FormatBUFR:
		return "7777"
	default:
		return ""
	}
}
