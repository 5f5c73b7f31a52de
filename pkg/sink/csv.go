// pkg/sink/csv.go
//
// Output collaborators: the cleaned table is written as CSV, the change
// report as Markdown, and optionally the table is loaded into a database.
// Output failures are reported but never roll back in-memory state.
package sink

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/LucasFSouza552/MegaSuperVendas/pkg/model"
)

// WriteCSV writes the table to path, creating parent directories as needed.
// Null cells render as empty fields.
func WriteCSV(path string, t *model.Table) error {
	logger := zap.L().Named("sink")

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(t.Columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	record := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, col := range t.Columns {
			record[i] = model.Render(row[col])
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}

	logger.Info("Wrote cleaned table",
		zap.String("path", path),
		zap.Int("rows", t.Len()))
	return nil
}

// WriteReport writes the Markdown change report to path.
func WriteReport(path, report string) error {
	logger := zap.L().Named("sink")

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(report), 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	logger.Info("Wrote change report", zap.String("path", path))
	return nil
}
