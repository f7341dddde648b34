// Package testutil provides utilities for testing GRIB2 parsing against reference implementations.
package testutil

import (
	"fmt"
	"strings"
)

// IntegrationTestResult holds the results of comparing marskit against wgrib2.
type IntegrationTestResult struct {
	FileName string

	// Field comparisons
	TotalFields       int
	FieldsCompared    int
	Wgrib2Comparisons []*ComparisonResult

	// Summary
	AllWgrib2Match bool
	Errors         []string
}

// CompareImplementations compares marskit against wgrib2 for a given GRIB2 file.
//
// maxULP specifies the maximum ULP difference allowed for floating-point comparisons.
// Typically 10-100 ULPs is reasonable for numerical accuracy differences.
//
// For large files (many messages), wgrib2 CSV comparison is skipped to avoid memory issues.
func CompareImplementations(gribFile string, maxULP int64) (*IntegrationTestResult, error) {
	result := &IntegrationTestResult{
		FileName:          gribFile,
		Wgrib2Comparisons: []*ComparisonResult{},
		AllWgrib2Match:    true,
	}

	fields, err := ParseMarskit(gribFile)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("marskit parse failed: %v", err))
		return result, nil // Return result with error, don't fail completely
	}

	// Skip wgrib2 CSV for large files (CSV output can be huge - millions of lines)
	// Only use wgrib2 for files with < 100 messages
	if len(fields) < 100 {
		wgrib2Fields, err := ParseWgrib2CSV(gribFile)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("wgrib2 parse failed: %v", err))
		} else {
			compareAgainstReference(fields, wgrib2Fields, maxULP, result)
		}
	} else {
		result.Errors = append(result.Errors, fmt.Sprintf("Skipping wgrib2 CSV comparison (file has %d messages, limit is 100)", len(fields)))
	}

	result.TotalFields = len(fields)

	return result, nil
}

// compareAgainstReference compares marskit fields against wgrib2's reference output.
func compareAgainstReference(
	fields, refFields map[string]*FieldData,
	maxULP int64,
	result *IntegrationTestResult,
) {
	for key, field := range fields {
		refField, exists := refFields[key]
		if !exists {
			refField = findMatchingField(field, refFields)
			if refField == nil {
				result.Errors = append(result.Errors,
					fmt.Sprintf("field %s not found in reference implementation", key))
				result.AllWgrib2Match = false
				continue
			}
		}

		comparison := CompareFields(field, refField, maxULP)
		comparison.Source = fmt.Sprintf("marskit vs %s", refField.Source)

		result.Wgrib2Comparisons = append(result.Wgrib2Comparisons, comparison)
		if !comparison.MetadataMatch || !comparison.CoordinatesMatch || !comparison.DataMatch {
			result.AllWgrib2Match = false
		}

		result.FieldsCompared++
	}
}

// findMatchingField attempts to find a matching field by fuzzy matching on field name.
func findMatchingField(target *FieldData, candidates map[string]*FieldData) *FieldData {
	// Try exact level match first
	for _, candidate := range candidates {
		if candidate.Level == target.Level {
			// Check if field names are similar (case-insensitive partial match)
			targetField := strings.ToLower(target.Field)
			candidateField := strings.ToLower(candidate.Field)

			if targetField == candidateField ||
				strings.Contains(targetField, candidateField) ||
				strings.Contains(candidateField, targetField) {
				return candidate
			}
		}
	}

	return nil
}

// String returns a human-readable summary of the integration test result.
func (r *IntegrationTestResult) String() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Integration Test Results: %s\n", r.FileName))
	b.WriteString(fmt.Sprintf("Total fields: %d, Compared: %d\n\n", r.TotalFields, r.FieldsCompared))

	if len(r.Wgrib2Comparisons) > 0 {
		b.WriteString("=== Comparison vs wgrib2 ===\n")
		if r.AllWgrib2Match {
			b.WriteString("✓ All fields match within tolerance\n")
		} else {
			b.WriteString("✗ Some fields have differences\n")
		}

		for _, comp := range r.Wgrib2Comparisons {
			if !comp.MetadataMatch || !comp.CoordinatesMatch || !comp.DataMatch {
				b.WriteString(comp.String())
				b.WriteString("\n")
			}
		}
	}

	if len(r.Errors) > 0 {
		b.WriteString("\n=== Errors ===\n")
		for _, err := range r.Errors {
			b.WriteString(fmt.Sprintf("  - %s\n", err))
		}
	}

	return b.String()
}

// Passed returns true if all comparisons passed.
func (r *IntegrationTestResult) Passed() bool {
	return r.AllWgrib2Match && len(r.Errors) == 0
}
