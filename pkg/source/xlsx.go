// pkg/source/xlsx.go
package source

import (
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/LucasFSouza552/MegaSuperVendas/pkg/model"
)

// ReadXLSX reads the first sheet of an XLSX workbook into a table. The first
// row is the header; cells are loaded as raw strings like the CSV reader.
func ReadXLSX(path string) (*model.Table, error) {
	logger := zap.L().Named("source")

	workbook, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}

	records, err := workbook.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("sheet %q has no header row", sheets[0])
	}

	table := tableFromRecords(records)
	logger.Info("Loaded input table",
		zap.String("path", path),
		zap.String("sheet", sheets[0]),
		zap.Int("rows", table.Len()),
		zap.Int("columns", len(table.Columns)))
	return table, nil
}
