package message

import (
	"bufio"
	"io"
)

// MessageBoundary records where one message begins and how long it is
// within a larger byte slice or stream, without parsing its contents.
type MessageBoundary struct {
	Format Format
	Start  int
	Length int
	Index  int
}

// FindMessages scans data for message boundaries across every supported
// format (GRIB1, GRIB2, BUFR; ODB framing is handled separately by
// FindODBFrames since it has no per-message length prefix). It does not
// parse message content, only framing, so it is fast enough to run before
// parallel decoding begins.
func FindMessages(data []byte) ([]MessageBoundary, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var boundaries []MessageBoundary
	offset := 0
	index := 0

	for offset < len(data) {
		if offset+4 > len(data) {
			return boundaries, &ParseError{Section: -1, Offset: offset, Message: "incomplete magic number at end of stream"}
		}

		format := detectFormat(data[offset:])
		if format == FormatUnknown {
			return nil, &InvalidFormatError{Offset: offset, Message: "unrecognized message magic number"}
		}

		length, err := messageLength(format, data[offset:])
		if err != nil {
			return nil, &ParseError{Section: 0, Offset: offset, Message: "failed to read section 0 length", Underlying: err}
		}

		messageEnd := offset + length
		if messageEnd > len(data) {
			return nil, &ParseError{Section: 0, Offset: offset,
				Message: "message length exceeds available data"}
		}

		if marker := endMarker(format); marker != "" {
			if messageEnd < len(marker) || string(data[messageEnd-len(marker):messageEnd]) != marker {
				return nil, &ParseError{Section: -1, Offset: messageEnd - len(marker),
					Message: "expected end marker " + marker}
			}
		}

		boundaries = append(boundaries, MessageBoundary{
			Format: format,
			Start:  offset,
			Length: length,
			Index:  index,
		})

		offset = messageEnd
		index++
	}

	return boundaries, nil
}

// odbHeaderLen is the length of an ODB stream's header: the 5-byte
// signature detectFormat recognizes plus the 1-byte stream version that
// follows it, before the first frame begins.
const odbHeaderLen = 6

// FindODBFrames scans an ODB-framed byte slice for its column-span frames.
// Unlike GRIB/BUFR, ODB has no single length-prefixed envelope per
// message: a stream is the 6-byte header (5-byte signature plus a version byte)
// followed by a sequence of self-delimited frames, each a 4-byte
// big-endian frame length (inclusive of the length field itself) followed
// by that many bytes of column-definition and row data. FindMessages does
// not handle this shape, so ODB streams are split with this function
// instead; message/decode's DecodeODB groups the resulting frames into
// spans by column set.
func FindODBFrames(data []byte) ([]MessageBoundary, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if detectFormat(data) != FormatODB {
		return nil, &InvalidFormatError{Offset: 0, Message: "not an ODB stream"}
	}
	if len(data) < odbHeaderLen {
		return nil, &ParseError{Section: -1, Offset: 0, Message: "ODB stream shorter than its header"}
	}

	var boundaries []MessageBoundary
	offset := odbHeaderLen
	index := 0

	for offset < len(data) {
		if offset+4 > len(data) {
			return nil, &ParseError{Section: -1, Offset: offset, Message: "incomplete ODB frame length"}
		}
		length := int(data[offset])<<24 | int(data[offset+1])<<16 | int(data[offset+2])<<8 | int(data[offset+3])
		if length < 4 {
			return nil, &ParseError{Section: -1, Offset: offset, Message: "ODB frame length must be at least 4"}
		}
		if offset+length > len(data) {
			return nil, &ParseError{Section: -1, Offset: offset, Message: "ODB frame length exceeds available data"}
		}

		boundaries = append(boundaries, MessageBoundary{
			Format: FormatODB,
			Start:  offset,
			Length: length,
			Index:  index,
		})

		offset += length
		index++
	}

	return boundaries, nil
}

// SplitMessages splits data into individual framed messages.
func SplitMessages(data []byte) ([]RawMessage, error) {
	boundaries, err := FindMessages(data)
	if err != nil {
		return nil, err
	}
	out := make([]RawMessage, len(boundaries))
	for i, b := range boundaries {
		out[i] = RawMessage{Format: b.Format, Start: b.Start, Length: b.Length, Data: data[b.Start : b.Start+b.Length]}
	}
	return out, nil
}

// Splitter incrementally reads framed messages from a streaming source,
// without requiring the whole input in memory. Grounded on
// FindMessagesInStream, generalized from GRIB2-only to every supported
// format.
type Splitter struct {
	r      *bufio.Reader
	offset int
	index  int
}

// NewSplitter wraps r for streaming message splitting.
func NewSplitter(r io.Reader) *Splitter {
	return &Splitter{r: bufio.NewReaderSize(r, 64*1024)}
}

// Next returns the next framed message, or io.EOF once the stream is
// exhausted.
func (s *Splitter) Next() (*RawMessage, error) {
	header, err := s.r.Peek(16)
	if err == io.EOF && len(header) == 0 {
		return nil, io.EOF
	}
	if err != nil && err != bufio.ErrBufferFull && len(header) < 8 {
		return nil, &ParseError{Section: -1, Offset: s.offset, Message: "incomplete header at end of stream"}
	}

	format := detectFormat(header)
	if format == FormatUnknown {
		return nil, &InvalidFormatError{Offset: s.offset, Message: "unrecognized message magic number"}
	}

	length, err := messageLength(format, header)
	if err != nil {
		return nil, &ParseError{Section: 0, Offset: s.offset, Message: "failed to read length", Underlying: err}
	}

	buf := make([]byte, length)
	if _, err := io.ReadFull(s.r, buf); err != nil {
		return nil, &ParseError{Section: -1, Offset: s.offset, Message: "failed to read complete message", Underlying: err}
	}

	if marker := endMarker(format); marker != "" {
		if string(buf[len(buf)-len(marker):]) != marker {
			return nil, &ParseError{Section: -1, Offset: s.offset + length - len(marker), Message: "expected end marker " + marker}
		}
	}

	msg := &RawMessage{Format: format, Start: s.offset, Length: length, Data: buf}
	s.offset += length
	s.index++
	return msg, nil
}

// ValidateMessageStructure performs a basic validation of a single
// message's framing: magic number, declared length matches the slice
// length, and the trailing end marker is present.
func ValidateMessageStructure(data []byte) error {
	if len(data) < 8 {
		return &ParseError{Section: -1, Offset: 0, Message: "message too short"}
	}
	format := detectFormat(data)
	if format == FormatUnknown {
		return &InvalidFormatError{Offset: 0, Message: "unrecognized magic number"}
	}
	length, err := messageLength(format, data)
	if err != nil {
		return &ParseError{Section: 0, Offset: 0, Message: "invalid section 0", Underlying: err}
	}
	if length != len(data) {
		return &ParseError{Section: 0, Offset: 0,
			Message: "declared length does not match data length"}
	}
	if marker := endMarker(format); marker != "" {
		if string(data[len(data)-len(marker):]) != marker {
			return &ParseError{Section: -1, Offset: len(data) - len(marker), Message: "expected end marker " + marker}
		}
	}
	return nil
}
