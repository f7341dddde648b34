package decode

import (
	"sort"
	"testing"

	"github.com/mmp/marskit/internal"
)

func buildODBFrame(t *testing.T, columns []odbColumn, rows [][]interface{}) []byte {
	t.Helper()

	body := internal.NewWriter()
	body.Uint16(uint16(len(columns)))
	for _, c := range columns {
		body.Uint8(uint8(len(c.name)))
		body.Raw([]byte(c.name))
		body.Uint8(uint8(c.typ))
	}
	body.Uint32(uint32(len(rows)))
	for _, row := range rows {
		for i, col := range columns {
			switch col.typ {
			case odbColumnLong:
				body.Int64(int64(row[i].(int)))
			case odbColumnDouble:
				body.Float64(row[i].(float64))
			default:
				s := row[i].(string)
				body.Uint16(uint16(len(s)))
				body.Raw([]byte(s))
			}
		}
	}

	payload := body.Bytes()
	frame := internal.NewWriter()
	frame.Uint32(uint32(4 + len(payload)))
	frame.Raw(payload)
	return frame.Bytes()
}

func buildODBStream(frames ...[]byte) []byte {
	data := []byte{0xFF, 0xFF, 'O', 'D', 'A', 1}
	for _, f := range frames {
		data = append(data, f...)
	}
	return data
}

func TestParseODBFrameRoundTrip(t *testing.T) {
	columns := []odbColumn{{name: "obsvalue", typ: odbColumnDouble}, {name: "statid", typ: odbColumnString}}
	frameBytes := buildODBFrame(t, columns, [][]interface{}{
		{12.5, "STN1"},
		{13.0, "STN2"},
	})

	frame, err := parseODBFrame(frameBytes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(frame.columns) != 2 || frame.columns[0].name != "obsvalue" || frame.columns[1].name != "statid" {
		t.Fatalf("unexpected columns: %+v", frame.columns)
	}
	if len(frame.rows) != 2 || frame.rows[1][1] != "STN2" {
		t.Fatalf("unexpected rows: %+v", frame.rows)
	}
}

func TestColumnSetKeyDistinguishesColumnSets(t *testing.T) {
	a := columnSetKey([]odbColumn{{name: "x"}, {name: "y"}})
	b := columnSetKey([]odbColumn{{name: "x"}, {name: "z"}})
	if a == b {
		t.Error("expected different column sets to produce different keys")
	}
	same := columnSetKey([]odbColumn{{name: "x"}, {name: "y"}})
	if a != same {
		t.Error("expected identical column sets to produce identical keys")
	}
}

func TestDecodeODBCollectsDistinctValues(t *testing.T) {
	columns := []odbColumn{{name: "statid", typ: odbColumnString}, {name: "count", typ: odbColumnLong}}
	f1 := buildODBFrame(t, columns, [][]interface{}{
		{"STN1", 1},
		{"STN2", 2},
	})
	f2 := buildODBFrame(t, columns, [][]interface{}{
		{"STN1", 3},
	})
	stream := buildODBStream(f1, f2)

	out, err := DecodeODB(stream)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	statids := append([]string{}, out["statid"]...)
	sort.Strings(statids)
	if len(statids) != 2 || statids[0] != "STN1" || statids[1] != "STN2" {
		t.Errorf("got statid values %v, want [STN1 STN2]", statids)
	}

	counts := append([]string{}, out["count"]...)
	sort.Strings(counts)
	if len(counts) != 3 {
		t.Errorf("got %d distinct count values, want 3", len(counts))
	}
}

func TestDecodeODBRejectsTruncatedFrame(t *testing.T) {
	columns := []odbColumn{{name: "x", typ: odbColumnLong}}
	f := buildODBFrame(t, columns, [][]interface{}{{1}})
	stream := buildODBStream(f)
	truncated := stream[:len(stream)-2]

	if _, err := DecodeODB(truncated); err == nil {
		t.Error("expected error for truncated ODB stream")
	}
}

func TestDecodeODBEmptyStream(t *testing.T) {
	out, err := DecodeODB(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("expected empty result, got %v", out)
	}
}
