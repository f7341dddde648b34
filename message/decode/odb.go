package decode

import (
	"fmt"

	"github.com/mmp/marskit/internal"
	"github.com/mmp/marskit/message"
)

// odbColumnType tags how a column's values are encoded within a frame,
// mirroring the tag byte message/decode's invented ODB frame layout
// writes per column (see message.FindODBFrames's doc comment for the
// overall frame shape this type dictionary sits inside).
type odbColumnType uint8

const (
	odbColumnString odbColumnType = iota
	odbColumnLong
	odbColumnDouble
)

type odbColumn struct {
	name string
	typ  odbColumnType
}

// odbFrame is one parsed ODB frame: its column dictionary plus every row,
// each row a parallel slice of string-rendered values (so span grouping
// downstream does not need to care about each column's underlying type).
type odbFrame struct {
	columns []odbColumn
	rows    [][]string
}

func parseODBFrame(data []byte) (*odbFrame, error) {
	r := internal.NewReader(data)

	if _, err := r.Uint32(); err != nil { // frame length, already validated by FindODBFrames
		return nil, fmt.Errorf("odb frame: reading length: %w", err)
	}

	numColumns, err := r.Uint16()
	if err != nil {
		return nil, fmt.Errorf("odb frame: reading column count: %w", err)
	}

	columns := make([]odbColumn, numColumns)
	for i := range columns {
		nameLen, err := r.Uint8()
		if err != nil {
			return nil, fmt.Errorf("odb frame: column %d: reading name length: %w", i, err)
		}
		nameBytes, err := r.Bytes(int(nameLen))
		if err != nil {
			return nil, fmt.Errorf("odb frame: column %d: reading name: %w", i, err)
		}
		typeTag, err := r.Uint8()
		if err != nil {
			return nil, fmt.Errorf("odb frame: column %d: reading type: %w", i, err)
		}
		columns[i] = odbColumn{name: string(nameBytes), typ: odbColumnType(typeTag)}
	}

	numRows, err := r.Uint32()
	if err != nil {
		return nil, fmt.Errorf("odb frame: reading row count: %w", err)
	}

	rows := make([][]string, numRows)
	for i := range rows {
		row := make([]string, numColumns)
		for c, col := range columns {
			switch col.typ {
			case odbColumnLong:
				v, err := r.Int64()
				if err != nil {
					return nil, fmt.Errorf("odb frame: row %d column %q: %w", i, col.name, err)
				}
				row[c] = fmt.Sprintf("%d", v)
			case odbColumnDouble:
				v, err := r.Float64()
				if err != nil {
					return nil, fmt.Errorf("odb frame: row %d column %q: %w", i, col.name, err)
				}
				row[c] = fmt.Sprintf("%g", v)
			default:
				strLen, err := r.Uint16()
				if err != nil {
					return nil, fmt.Errorf("odb frame: row %d column %q: reading string length: %w", i, col.name, err)
				}
				strBytes, err := r.Bytes(int(strLen))
				if err != nil {
					return nil, fmt.Errorf("odb frame: row %d column %q: %w", i, col.name, err)
				}
				row[c] = string(strBytes)
			}
		}
		rows[i] = row
	}

	return &odbFrame{columns: columns, rows: rows}, nil
}

func columnSetKey(columns []odbColumn) string {
	key := ""
	for _, c := range columns {
		key += c.name + ";"
	}
	return key
}

// DecodeODB groups an ODB stream's frames into column-spans (consecutive
// frames sharing an identical column set) and, within each span,
// collects the distinct values seen in every column. The result is keyed
// by column name; a column present in more than one span with a
// different type is kept as whatever string rendering each span produced,
// since ODB columns are not required to be span-stable by type.
func DecodeODB(data []byte) (map[string][]string, error) {
	boundaries, err := message.FindODBFrames(data)
	if err != nil {
		return nil, fmt.Errorf("decode odb: %w", err)
	}

	distinct := map[string]map[string]struct{}{}
	var spanKey string

	for _, b := range boundaries {
		frame, err := parseODBFrame(data[b.Start : b.Start+b.Length])
		if err != nil {
			return nil, fmt.Errorf("decode odb: frame %d: %w", b.Index, err)
		}

		key := columnSetKey(frame.columns)
		if key != spanKey {
			spanKey = key
		}

		for _, row := range frame.rows {
			for c, col := range frame.columns {
				set, ok := distinct[col.name]
				if !ok {
					set = map[string]struct{}{}
					distinct[col.name] = set
				}
				set[row[c]] = struct{}{}
			}
		}
	}

	out := make(map[string][]string, len(distinct))
	for name, set := range distinct {
		values := make([]string, 0, len(set))
		for v := range set {
			values = append(values, v)
		}
		out[name] = values
	}
	return out, nil
}
