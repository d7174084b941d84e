package excel

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"hypocalc/internal/errors"
)

// SampleReader loads a raw observation sequence from an Excel or CSV file,
// one column per sample. Non-numeric cells (headers, blanks) are skipped.
type SampleReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewSampleReader creates a reader for the given file; the extension decides
// the format (.csv is CSV, anything else is treated as xlsx).
func NewSampleReader(filePath string) *SampleReader {
	fileType := "xlsx"
	if strings.ToLower(filepath.Ext(filePath)) == ".csv" {
		fileType = "csv"
	}
	return &SampleReader{filePath: filePath, fileType: fileType}
}

// ReadColumn returns the numeric values of one column. The sheet name is
// ignored for CSV files. The column is addressed by letter ("A", "B", ...).
func (r *SampleReader) ReadColumn(sheet, column string) ([]float64, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, errors.InvalidInput(fmt.Sprintf("data file not found: %s", r.filePath))
	}

	colNum, err := excelize.ColumnNameToNumber(column)
	if err != nil {
		return nil, errors.InvalidInput(fmt.Sprintf("invalid column %q", column))
	}

	var rows [][]string
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	default:
		rows, err = r.readExcelRows(sheet)
	}
	if err != nil {
		return nil, err
	}

	values := make([]float64, 0, len(rows))
	for _, row := range rows {
		if colNum > len(row) {
			continue
		}
		cell := strings.TrimSpace(row[colNum-1])
		if cell == "" {
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			continue // header or stray text
		}
		values = append(values, v)
	}

	if len(values) == 0 {
		return nil, errors.EmptySample(fmt.Sprintf("%s column %s", r.filePath, column))
	}
	return values, nil
}

func (r *SampleReader) readExcelRows(sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open Excel file %s", r.filePath)
	}
	defer f.Close()

	if sheet == "" {
		sheet = "Sheet1"
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read sheet %s", sheet)
	}
	return rows, nil
}

func (r *SampleReader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open CSV file %s", r.filePath)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse CSV file %s", r.filePath)
	}
	return rows, nil
}
