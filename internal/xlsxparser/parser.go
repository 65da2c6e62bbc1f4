// =============================================================================
// Coupon Settlement System - XLSX Record Parser
// =============================================================================
//
// This module reads a redemption spreadsheet into an ordered sequence of
// RawRecords. The pipeline is agnostic to the source format: the first
// non-empty row of the first sheet is the header, and every following
// non-empty row becomes one record keyed by those headers. No schema
// knowledge lives here; classification happens downstream.
//
// =============================================================================

package xlsxparser

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/pastelceo-blip/coupon-settlement-system/internal/types"
)

// Parse reads the first sheet of an XLSX file into RawRecords in sheet
// order. A file with no sheets is an error; a sheet with only a header (or
// nothing) yields an empty record set, which the classifier maps to
// SchemaUnknown.
func Parse(path string) ([]types.RawRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("spreadsheet has no sheets")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	return RecordsFromRows(rows), nil
}

// RecordsFromRows converts raw sheet rows into records. The first non-empty
// row supplies the column names; cells beyond the header width are ignored
// and missing trailing cells are simply absent from the record.
func RecordsFromRows(rows [][]string) []types.RawRecord {
	headerIdx := -1
	for i, row := range rows {
		if !isRowEmpty(row) {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil
	}

	headers := make([]string, len(rows[headerIdx]))
	for i, h := range rows[headerIdx] {
		headers[i] = strings.TrimSpace(h)
	}

	var records []types.RawRecord
	for _, row := range rows[headerIdx+1:] {
		if isRowEmpty(row) {
			continue
		}

		record := make(types.RawRecord, len(headers))
		for i, cell := range row {
			if i >= len(headers) || headers[i] == "" {
				continue
			}
			record[headers[i]] = cell
		}
		records = append(records, record)
	}

	return records
}

// isRowEmpty checks if a row contains only empty cells.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
