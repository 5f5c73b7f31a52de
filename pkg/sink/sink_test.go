// pkg/sink/sink_test.go
package sink

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/LucasFSouza552/MegaSuperVendas/pkg/model"
)

func TestWriteCSV(t *testing.T) {
	tbl := model.NewTable([]string{"PRODUTO", "VALOR"})
	tbl.Rows = []model.Row{
		{"PRODUTO": "Mouse", "VALOR": 10.5},
		{"PRODUTO": nil, "VALOR": 1234.0},
	}

	path := filepath.Join(t.TempDir(), "out", "compras.csv")
	if err := WriteCSV(path, tbl); err != nil {
		t.Fatalf("WriteCSV returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "PRODUTO,VALOR" {
		t.Errorf("header wrong: %q", lines[0])
	}
	if lines[1] != "Mouse,10.5" {
		t.Errorf("float cells must render without trailing zeros: %q", lines[1])
	}
	if lines[2] != ",1234" {
		t.Errorf("null cells must render empty: %q", lines[2])
	}
}

func TestWriteReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result", "relatorio.md")
	if err := WriteReport(path, "# Relatório\n"); err != nil {
		t.Fatalf("WriteReport returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}
	if string(data) != "# Relatório\n" {
		t.Errorf("report content wrong: %q", data)
	}
}
