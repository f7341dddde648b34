package internal

import (
	"math"
	"testing"
)

func TestWriterRoundTrip(t *testing.T) {
	w := NewWriter()
	w.Uint8(0x42)
	w.Uint16(0xABCD)
	w.Uint32(0xDEADBEEF)
	w.Uint64(0x0123456789ABCDEF)
	w.Float32(3.5)
	w.Float64(-2.25)
	w.Raw([]byte{1, 2, 3})

	r := NewReader(w.Bytes())

	if got, _ := r.Uint8(); got != 0x42 {
		t.Errorf("Uint8: got %#x, want 0x42", got)
	}
	if got, _ := r.Uint16(); got != 0xABCD {
		t.Errorf("Uint16: got %#x, want 0xABCD", got)
	}
	if got, _ := r.Uint32(); got != 0xDEADBEEF {
		t.Errorf("Uint32: got %#x, want 0xDEADBEEF", got)
	}
	if got, _ := r.Uint64(); got != 0x0123456789ABCDEF {
		t.Errorf("Uint64: got %#x, want 0x0123456789ABCDEF", got)
	}
	if got, _ := r.Float32(); got != 3.5 {
		t.Errorf("Float32: got %v, want 3.5", got)
	}
	if got, _ := r.Float64(); got != -2.25 {
		t.Errorf("Float64: got %v, want -2.25", got)
	}
	tail, _ := r.Bytes(3)
	if string(tail) != "\x01\x02\x03" {
		t.Errorf("Raw tail: got %v, want [1 2 3]", tail)
	}
}

func TestWriterInt16SignMagnitude(t *testing.T) {
	tests := []struct {
		v    int16
		want uint16
	}{
		{0, 0x0000},
		{100, 0x0064},
		{-100, 0x8064},
		{32767, 0x7FFF},
		{-32767, 0xFFFF},
	}

	for _, tt := range tests {
		w := NewWriter()
		w.Int16(tt.v)
		r := NewReader(w.Bytes())
		got, _ := r.Uint16()
		if got != tt.want {
			t.Errorf("Int16(%d): got %#x, want %#x", tt.v, got, tt.want)
		}

		r2 := NewReader(w.Bytes())
		roundTrip, err := r2.Int16()
		if err != nil {
			t.Fatalf("Int16(%d): unexpected error: %v", tt.v, err)
		}
		if roundTrip != tt.v {
			t.Errorf("Int16(%d) round trip: got %d", tt.v, roundTrip)
		}
	}
}

func TestWriterPatchUint32(t *testing.T) {
	w := NewWriter()
	w.Uint32(0) // placeholder length
	w.Raw([]byte{0xAA, 0xBB, 0xCC})

	if err := w.PatchUint32(0, uint32(w.Len())); err != nil {
		t.Fatalf("PatchUint32: unexpected error: %v", err)
	}

	r := NewReader(w.Bytes())
	length, _ := r.Uint32()
	if length != 7 {
		t.Errorf("patched length: got %d, want 7", length)
	}

	if err := w.PatchUint32(100, 1); err == nil {
		t.Error("expected out-of-bounds error, got nil")
	}
}

func TestWriterPatchUint64(t *testing.T) {
	w := NewWriter()
	w.Uint64(0) // placeholder length
	w.Raw([]byte{0xAA, 0xBB, 0xCC})

	if err := w.PatchUint64(0, uint64(w.Len())); err != nil {
		t.Fatalf("PatchUint64: unexpected error: %v", err)
	}

	r := NewReader(w.Bytes())
	length, _ := r.Uint64()
	if length != 11 {
		t.Errorf("patched length: got %d, want 11", length)
	}

	if err := w.PatchUint64(100, 1); err == nil {
		t.Error("expected out-of-bounds error, got nil")
	}
}

func TestBitWriterRoundTrip(t *testing.T) {
	bw := NewBitWriter()
	if err := bw.WriteBits(0b101, 3); err != nil {
		t.Fatalf("WriteBits: unexpected error: %v", err)
	}
	if err := bw.WriteBits(0xFF, 8); err != nil {
		t.Fatalf("WriteBits: unexpected error: %v", err)
	}
	if err := bw.WriteBits(0b1, 1); err != nil {
		t.Fatalf("WriteBits: unexpected error: %v", err)
	}

	data := bw.Bytes()

	br := NewBitReader(data)
	if got, _ := br.ReadBits(3); got != 0b101 {
		t.Errorf("ReadBits(3): got %b, want 101", got)
	}
	if got, _ := br.ReadBits(8); got != 0xFF {
		t.Errorf("ReadBits(8): got %#x, want 0xFF", got)
	}
	if got, _ := br.ReadBits(1); got != 1 {
		t.Errorf("ReadBits(1): got %d, want 1", got)
	}
}

func TestBitWriterSignedBits(t *testing.T) {
	tests := []struct {
		v     int64
		nbits int
	}{
		{0, 8},
		{127, 8},
		{-128, 8},
		{-1, 12},
		{2047, 12},
	}

	for _, tt := range tests {
		bw := NewBitWriter()
		if err := bw.WriteSignedBits(tt.v, tt.nbits); err != nil {
			t.Fatalf("WriteSignedBits(%d, %d): unexpected error: %v", tt.v, tt.nbits, err)
		}
		br := NewBitReader(bw.Bytes())
		got, err := br.ReadSignedBits(tt.nbits)
		if err != nil {
			t.Fatalf("ReadSignedBits: unexpected error: %v", err)
		}
		if got != tt.v {
			t.Errorf("round trip %d bits: got %d, want %d", tt.nbits, got, tt.v)
		}
	}
}

func TestBitWriterBitLen(t *testing.T) {
	bw := NewBitWriter()
	bw.WriteBits(1, 3)
	if bw.BitLen() != 3 {
		t.Errorf("BitLen: got %d, want 3", bw.BitLen())
	}
	bw.WriteBits(1, 5)
	if bw.BitLen() != 8 {
		t.Errorf("BitLen: got %d, want 8", bw.BitLen())
	}
	bw.WriteBits(1, 1)
	if bw.BitLen() != 9 {
		t.Errorf("BitLen: got %d, want 9", bw.BitLen())
	}
}

func TestWriterFloatSpecialValues(t *testing.T) {
	w := NewWriter()
	w.Float64(math.Inf(1))
	r := NewReader(w.Bytes())
	got, _ := r.Float64()
	if !math.IsInf(got, 1) {
		t.Errorf("Float64(+Inf): got %v", got)
	}
}
