package main

import (
	"strconv"
	"strings"

	"hypocalc/adapters/excel"
	"hypocalc/internal/errors"
)

// parseObservationSpec turns a raw-sample specification into observations.
// Two forms are accepted:
//
//	"10 12 9 11 13"              inline values, space or comma separated
//	"@values.xlsx:Sheet1:A"      file reference; sheet and column optional
func parseObservationSpec(spec string) ([]float64, error) {
	spec = strings.TrimSpace(spec)
	if strings.HasPrefix(spec, "@") {
		return readObservationFile(strings.TrimPrefix(spec, "@"))
	}
	return parseInlineObservations(spec)
}

func parseInlineObservations(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
	values := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, errors.InvalidInput("invalid numeric value " + strconv.Quote(f) + "; use numbers separated by spaces")
		}
		values = append(values, v)
	}
	return values, nil
}

func readObservationFile(ref string) ([]float64, error) {
	path, sheet, column := ref, "", "A"
	if parts := strings.SplitN(ref, ":", 3); len(parts) > 1 {
		path = parts[0]
		if parts[1] != "" {
			sheet = parts[1]
		}
		if len(parts) == 3 && parts[2] != "" {
			column = parts[2]
		}
	}
	return excel.NewSampleReader(path).ReadColumn(sheet, column)
}
