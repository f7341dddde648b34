// Package testutil provides utilities for testing GRIB2 parsing against reference implementations.
package testutil

import (
	"bytes"
	"fmt"
	"os"

	"github.com/mmp/marskit"
)

// ParseMarskit parses a GRIB2 file using the marskit library (this
// implementation).
//
// Returns a map of field keys (parameter:level) to FieldData structures.
func ParseMarskit(gribFile string) (map[string]*FieldData, error) {
	data, err := os.ReadFile(gribFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %v", err)
	}

	fields, err := marskit.Read(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("marskit parse failed: %v", err)
	}

	fieldMap := make(map[string]*FieldData)

	for _, field := range fields {
		paramName := field.Parameter.String()
		key := fmt.Sprintf("%s:%s", paramName, field.Level)

		fd := &FieldData{
			RefTime:    field.ReferenceTime,
			VerTime:    field.ReferenceTime,
			Field:      paramName,
			Level:      field.Level,
			Latitudes:  field.Latitudes,
			Longitudes: field.Longitudes,
			Values:     field.Data,
			Source:     "marskit",
		}

		fieldMap[key] = fd
	}

	return fieldMap, nil
}
