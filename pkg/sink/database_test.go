// pkg/sink/database_test.go
package sink

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/LucasFSouza552/MegaSuperVendas/pkg/config"
	"github.com/LucasFSouza552/MegaSuperVendas/pkg/model"
)

func TestDatabaseSinkSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vendas.db")
	cfg := &config.SinkConfig{
		Driver:    "sqlite",
		Path:      path,
		Table:     "compras_normalizadas",
		BatchSize: 2,
	}

	tbl := model.NewTable([]string{"PRODUTO", "VALOR"})
	tbl.Schema.Kinds["VALOR"] = model.KindNumeric
	tbl.Rows = []model.Row{
		{"PRODUTO": "Mouse", "VALOR": 10.5},
		{"PRODUTO": "Teclado", "VALOR": 99.9},
		{"PRODUTO": nil, "VALOR": nil},
	}

	ctx := context.Background()
	db, err := NewDatabaseSink(ctx, cfg)
	if err != nil {
		t.Fatalf("NewDatabaseSink returned error: %v", err)
	}
	defer db.Close()

	rows, err := db.Load(ctx, tbl)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if rows != 3 {
		t.Errorf("expected 3 inserted rows, got %d", rows)
	}

	check, err := sqlx.Open("sqlite", path)
	if err != nil {
		t.Fatalf("opening database for verification: %v", err)
	}
	defer check.Close()

	var count int
	if err := check.Get(&count, `SELECT COUNT(*) FROM "compras_normalizadas"`); err != nil {
		t.Fatalf("counting rows: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 rows in table, got %d", count)
	}

	var price float64
	if err := check.Get(&price, `SELECT "VALOR" FROM "compras_normalizadas" WHERE "PRODUTO" = 'Mouse'`); err != nil {
		t.Fatalf("reading a row back: %v", err)
	}
	if price != 10.5 {
		t.Errorf("expected price 10.5, got %v", price)
	}
}

func TestDatabaseSinkReplacesTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vendas.db")
	cfg := &config.SinkConfig{
		Driver:    "sqlite",
		Path:      path,
		Table:     "compras_normalizadas",
		BatchSize: 10,
	}

	tbl := model.NewTable([]string{"PRODUTO"})
	tbl.Rows = []model.Row{{"PRODUTO": "Mouse"}}

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		db, err := NewDatabaseSink(ctx, cfg)
		if err != nil {
			t.Fatalf("NewDatabaseSink returned error: %v", err)
		}
		if _, err := db.Load(ctx, tbl); err != nil {
			t.Fatalf("Load returned error: %v", err)
		}
		db.Close()
	}

	check, err := sqlx.Open("sqlite", path)
	if err != nil {
		t.Fatalf("opening database for verification: %v", err)
	}
	defer check.Close()

	var count int
	if err := check.Get(&count, `SELECT COUNT(*) FROM "compras_normalizadas"`); err != nil {
		t.Fatalf("counting rows: %v", err)
	}
	if count != 1 {
		t.Errorf("reload must replace the table, got %d rows", count)
	}
}
