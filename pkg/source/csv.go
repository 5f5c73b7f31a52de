// pkg/source/csv.go
//
// Input collaborators: the raw sales table is read from a local CSV or XLSX
// file. Unreadable input is the one hard failure in the system; no transform
// runs and no partial output is written.
package source

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/LucasFSouza552/MegaSuperVendas/pkg/model"
)

// Read loads a table from path, dispatching on the file extension.
func Read(path string) (*model.Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ReadCSV(path)
	case ".xlsx":
		return ReadXLSX(path)
	default:
		return nil, fmt.Errorf("unsupported input format %q (expected .csv or .xlsx)", filepath.Ext(path))
	}
}

// ReadCSV reads a header-first CSV file into a table. Empty fields become
// null cells; all other cells are loaded as raw strings for the normalizers
// to interpret.
func ReadCSV(path string) (*model.Table, error) {
	logger := zap.L().Named("source")

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("input file %s has no header row", path)
	}

	table := tableFromRecords(records)
	logger.Info("Loaded input table",
		zap.String("path", path),
		zap.Int("rows", table.Len()),
		zap.Int("columns", len(table.Columns)))
	return table, nil
}

// tableFromRecords builds a table from a header row plus data rows. Cells
// beyond a short row's length are null, as are empty fields.
func tableFromRecords(records [][]string) *model.Table {
	table := model.NewTable(records[0])
	for _, record := range records[1:] {
		row := make(model.Row, len(table.Columns))
		for i, col := range table.Columns {
			if i >= len(record) || record[i] == "" {
				row[col] = nil
				continue
			}
			row[col] = record[i]
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}
