package importer

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rcalloway/timebill/internal/derive"
	"github.com/xuri/excelize/v2"
)

// Result is one imported file reduced to canonical rows.
type Result struct {
	Source  string
	Rows    []derive.Row
	Skipped []derive.SkippedRow
}

// ImportFile reads a timesheet spreadsheet and normalizes it. The
// format is picked by extension: .xlsx/.xlsm workbooks go through
// excelize, anything else is treated as CSV. The first row of the
// sheet is the header row.
func ImportFile(path string, mapping derive.ColumnMapping) (*Result, error) {
	var grid [][]string
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		grid, err = ReadWorkbookGrid(path)
	default:
		grid, err = ReadCSVGrid(path)
	}
	if err != nil {
		return nil, err
	}

	normalizer := derive.Normalizer{Mapping: mapping}
	rows, skipped := normalizer.NormalizeGrid(grid)
	return &Result{Source: path, Rows: rows, Skipped: skipped}, nil
}

// ReadWorkbookGrid returns the cell grid of a workbook's first sheet.
func ReadWorkbookGrid(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}
	grid, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", sheet, err)
	}
	return grid, nil
}

// ReadCSVGrid returns the cell grid of a CSV file. Parsing is
// permissive: ragged rows and loose quoting are accepted, since
// payroll exports are rarely strict CSV.
func ReadCSVGrid(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening csv: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	grid, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	return grid, nil
}
