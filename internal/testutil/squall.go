// Package testutil provides utilities for testing GRIB2 parsing against reference implementations.
package testutil

import (
	"fmt"
	"os"

	grib "github.com/wxmet/mars2grib"
)

// ParseMgrib2 parses a GRIB2 file using squall (this implementation).
//
// Returns a map of field keys (parameter:level) to FieldData structures.
func ParseMgrib2(gribFile string) (map[string]*FieldData, error) {
	// Open GRIB2 file
	file, err := os.Open(gribFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %v", err)
	}
	defer func() {
		_ = file.Close()
	}()

	// Parse with squall (use sequential + skip errors for robustness)
	fields, err := grib.ReadWithOptions(file,
		grib.WithSequential(),
		grib.WithSkipErrors())
	if err != nil {
		return nil, fmt.Errorf("squall parse failed: %v", err)
	}

	// Convert to FieldData map
	fieldMap := make(map[string]*FieldData, len(fields))

	for _, field := range fields {
		// TODO: Calculate verification time from forecast time
		// For now, use reference time for both
		verTime := field.ReferenceTime

		// Use short name for comparison with wgrib2 (if available)
		fieldName := field.Parameter.ShortName()
		if fieldName == "" {
			// Fall back to full name if no short name exists
			fieldName = field.Parameter.String()
		}

		key := fmt.Sprintf("%s:%s", fieldName, field.Level)

		latitudes := make([]float64, len(field.Latitudes))
		longitudes := make([]float64, len(field.Longitudes))
		values := make([]float64, len(field.Data))
		for i, v := range field.Latitudes {
			latitudes[i] = float64(v)
		}
		for i, v := range field.Longitudes {
			longitudes[i] = float64(v)
		}
		for i, v := range field.Data {
			values[i] = float64(v)
		}

		fieldMap[key] = &FieldData{
			RefTime:    field.ReferenceTime,
			VerTime:    verTime,
			Field:      fieldName,
			Level:      field.Level,
			Latitudes:  latitudes,
			Longitudes: longitudes,
			Values:     values,
			Source:     "squall",
		}
	}

	return fieldMap, nil
}
