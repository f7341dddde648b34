package encode_test

import (
	"testing"

	"github.com/mmp/marskit/encode"
	_ "github.com/mmp/marskit/encode/checks"
	_ "github.com/mmp/marskit/encode/concepts"
	_ "github.com/mmp/marskit/encode/sections"
	"github.com/mmp/marskit/mars"
)

func testRequest(t *testing.T) *mars.Request {
	t.Helper()
	req := mars.NewRequest("retrieve")
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	must(req.SetValues("class", []string{"od"}, nil))
	must(req.SetValues("stream", []string{"oper"}, nil))
	must(req.SetValues("type", []string{"fc"}, nil))
	must(req.SetValues("date", []string{"20260115"}, nil))
	must(req.SetValues("time", []string{"0000"}, nil))
	must(req.SetValues("step", []string{"24"}, nil))
	must(req.SetValues("param", []string{"167"}, nil))
	return req
}

func TestEncodeProducesValidGRIB2Envelope(t *testing.T) {
	req := testRequest(t)
	payload := []float64{280.1, 281.2, 282.3, 279.9}

	out, err := encode.Encode(req, payload, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(out) < 20 {
		t.Fatalf("output too short: %d bytes", len(out))
	}
	if string(out[0:4]) != "GRIB" {
		t.Errorf("got magic %q, want GRIB", out[0:4])
	}
	if string(out[len(out)-4:]) != "7777" {
		t.Errorf("got end marker %q, want 7777", out[len(out)-4:])
	}
	if out[7] != 2 {
		t.Errorf("got edition %d, want 2", out[7])
	}
}

func TestEncodeRejectsNilRequest(t *testing.T) {
	if _, err := encode.Encode(nil, nil, nil); err == nil {
		t.Error("expected error for nil request")
	}
}

func TestEncodeFailsOnUnmappedParam(t *testing.T) {
	req := testRequest(t)
	if err := req.SetValues("param", []string{"not-a-real-param"}, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := encode.Encode(req, []float64{1, 2}, nil)
	if err == nil {
		t.Fatal("expected error for an unmappable param value")
	}
}

func TestEncodeWithApplyChecksPasses(t *testing.T) {
	req := testRequest(t)
	cfg := &encode.Config{Options: encode.NewMapDict(), ApplyChecks: true}

	if _, err := encode.Encode(req, []float64{1, 2, 3}, cfg); err != nil {
		t.Fatalf("unexpected error with checks enabled: %v", err)
	}
}

func TestEncodeEmptyPayload(t *testing.T) {
	req := testRequest(t)
	out, err := encode.Encode(req, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out[0:4]) != "GRIB" {
		t.Errorf("expected a well-formed envelope even with an empty payload")
	}
}
