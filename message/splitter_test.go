package message

import (
	"bytes"
	"testing"
)

func makeGRIB2Shell(body []byte) []byte {
	total := 16 + len(body) + 4
	data := make([]byte, 0, total)
	data = append(data, 'G', 'R', 'I', 'B')
	data = append(data, 0, 0)
	data = append(data, 0) // discipline
	data = append(data, 2) // edition
	length := make([]byte, 8)
	n := uint64(total)
	for i := 7; i >= 0; i-- {
		length[i] = byte(n)
		n >>= 8
	}
	data = append(data, length...)
	data = append(data, body...)
	data = append(data, '7', '7', '7', '7')
	return data
}

func TestFindMessagesSingle(t *testing.T) {
	msg := makeGRIB2Shell([]byte{1, 2, 3})
	boundaries, err := FindMessages(msg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(boundaries) != 1 {
		t.Fatalf("got %d boundaries, want 1", len(boundaries))
	}
	if boundaries[0].Format != FormatGRIB2 {
		t.Errorf("got format %v, want GRIB2", boundaries[0].Format)
	}
	if boundaries[0].Length != len(msg) {
		t.Errorf("got length %d, want %d", boundaries[0].Length, len(msg))
	}
}

func TestFindMessagesMultiple(t *testing.T) {
	a := makeGRIB2Shell([]byte{1})
	b := makeGRIB2Shell([]byte{2, 3})
	data := append(append([]byte{}, a...), b...)

	boundaries, err := FindMessages(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(boundaries) != 2 {
		t.Fatalf("got %d boundaries, want 2", len(boundaries))
	}
	if boundaries[0].Start != 0 || boundaries[1].Start != len(a) {
		t.Errorf("unexpected boundary offsets: %+v", boundaries)
	}
}

func TestFindMessagesUnknownFormat(t *testing.T) {
	_, err := FindMessages([]byte("NOPE...."))
	if err == nil {
		t.Fatal("expected error for unrecognized magic number")
	}
	if _, ok := err.(*InvalidFormatError); !ok {
		t.Errorf("got %T, want *InvalidFormatError", err)
	}
}

func TestFindMessagesMissingEndMarker(t *testing.T) {
	msg := makeGRIB2Shell([]byte{1, 2, 3})
	msg[len(msg)-1] = 'X'
	_, err := FindMessages(msg)
	if err == nil {
		t.Fatal("expected error for missing end marker")
	}
}

func TestSplitMessagesRoundTrip(t *testing.T) {
	msg := makeGRIB2Shell([]byte{9, 9, 9})
	out, err := SplitMessages(msg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || !bytes.Equal(out[0].Data, msg) {
		t.Errorf("split result does not match input message")
	}
}

func TestSplitterStreamsMessages(t *testing.T) {
	a := makeGRIB2Shell([]byte{1})
	b := makeGRIB2Shell([]byte{2, 3})
	data := append(append([]byte{}, a...), b...)

	s := NewSplitter(bytes.NewReader(data))
	first, err := s.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(first.Data, a) {
		t.Errorf("first message mismatch")
	}
	second, err := s.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(second.Data, b) {
		t.Errorf("second message mismatch")
	}
	if _, err := s.Next(); err == nil {
		t.Error("expected io.EOF at end of stream")
	}
}

func TestValidateMessageStructureLengthMismatch(t *testing.T) {
	msg := makeGRIB2Shell([]byte{1, 2, 3})
	err := ValidateMessageStructure(msg[:len(msg)-1])
	if err == nil {
		t.Fatal("expected error for truncated message")
	}
}

func makeODBStream(frames [][]byte) []byte {
	data := []byte{0xFF, 0xFF, 'O', 'D', 'A', 1}
	for _, f := range frames {
		data = append(data, f...)
	}
	return data
}

func makeODBFrame(payload []byte) []byte {
	length := 4 + len(payload)
	frame := make([]byte, 4, length)
	frame[0] = byte(length >> 24)
	frame[1] = byte(length >> 16)
	frame[2] = byte(length >> 8)
	frame[3] = byte(length)
	return append(frame, payload...)
}

func TestFindODBFramesSplitsFrames(t *testing.T) {
	f1 := makeODBFrame([]byte{1, 2, 3})
	f2 := makeODBFrame([]byte{4, 5})
	data := makeODBStream([][]byte{f1, f2})

	boundaries, err := FindODBFrames(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(boundaries) != 2 {
		t.Fatalf("got %d boundaries, want 2", len(boundaries))
	}
	if boundaries[0].Length != len(f1) || boundaries[1].Length != len(f2) {
		t.Errorf("unexpected frame lengths: %+v", boundaries)
	}
}

func TestFindODBFramesRejectsNonODB(t *testing.T) {
	_, err := FindODBFrames(makeGRIB2Shell([]byte{1}))
	if err == nil {
		t.Fatal("expected error for non-ODB data")
	}
}
