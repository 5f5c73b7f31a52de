// pkg/sink/database.go
package sink

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/LucasFSouza552/MegaSuperVendas/pkg/config"
	"github.com/LucasFSouza552/MegaSuperVendas/pkg/model"
)

// DatabaseSink loads the cleaned table into a relational database. Two
// drivers are supported: postgres and sqlite (pure-Go driver).
type DatabaseSink struct {
	db     *sqlx.DB
	cfg    *config.SinkConfig
	logger *zap.Logger
}

// NewDatabaseSink connects to the configured database and verifies the
// connection.
func NewDatabaseSink(ctx context.Context, cfg *config.SinkConfig) (*DatabaseSink, error) {
	logger := zap.L().Named("db-sink")

	logger.Info("Connecting to sink database",
		zap.String("driver", cfg.Driver),
		zap.String("table", cfg.Table))

	db, err := sqlx.Open(driverName(cfg.Driver), cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sink connection: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to sink database: %w", err)
	}

	return &DatabaseSink{db: db, cfg: cfg, logger: logger}, nil
}

// Close closes the database connection
func (s *DatabaseSink) Close() error {
	s.logger.Info("Closing sink database connection")
	return s.db.Close()
}

// Load replaces the destination table with the cleaned rows and returns the
// number of rows inserted. Inserts run in batches.
func (s *DatabaseSink) Load(ctx context.Context, t *model.Table) (int64, error) {
	if err := s.recreateTable(ctx, t); err != nil {
		return 0, err
	}

	quoted := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		quoted[i] = fmt.Sprintf("%q", col)
	}
	columnStr := strings.Join(quoted, ", ")

	placeholderRow := "(" + strings.TrimRight(strings.Repeat("?,", len(t.Columns)), ",") + ")"

	var total int64
	for start := 0; start < t.Len(); start += s.cfg.BatchSize {
		end := start + s.cfg.BatchSize
		if end > t.Len() {
			end = t.Len()
		}
		batch := t.Rows[start:end]

		placeholders := make([]string, len(batch))
		args := make([]any, 0, len(batch)*len(t.Columns))
		for i, row := range batch {
			placeholders[i] = placeholderRow
			for _, col := range t.Columns {
				args = append(args, sinkValue(row[col]))
			}
		}

		query := s.db.Rebind(fmt.Sprintf("INSERT INTO %q (%s) VALUES %s",
			s.cfg.Table, columnStr, strings.Join(placeholders, ", ")))
		result, err := s.db.ExecContext(ctx, query, args...)
		if err != nil {
			return total, fmt.Errorf("batch insert failed: %w", err)
		}
		if affected, err := result.RowsAffected(); err != nil {
			s.logger.Warn("Couldn't get rows affected", zap.Error(err))
		} else {
			total += affected
		}
	}

	s.logger.Info("Loaded cleaned table",
		zap.String("table", s.cfg.Table),
		zap.Int64("rows", total))
	return total, nil
}

// recreateTable drops and recreates the destination table from the cleaned
// table's schema: numeric columns as double precision, everything else text.
func (s *DatabaseSink) recreateTable(ctx context.Context, t *model.Table) error {
	defs := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		sqlType := "TEXT"
		if t.Schema.Kinds[col] == model.KindNumeric {
			sqlType = "DOUBLE PRECISION"
			if s.cfg.Driver == "sqlite" {
				sqlType = "REAL"
			}
		}
		defs[i] = fmt.Sprintf("%q %s", col, sqlType)
	}

	if _, err := s.db.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %q", s.cfg.Table)); err != nil {
		return fmt.Errorf("failed to drop existing table: %w", err)
	}
	createSQL := fmt.Sprintf("CREATE TABLE %q (\n\t%s\n)", s.cfg.Table, strings.Join(defs, ",\n\t"))
	if _, err := s.db.ExecContext(ctx, createSQL); err != nil {
		return fmt.Errorf("failed to create table %s: %w", s.cfg.Table, err)
	}

	s.logger.Info("Created sink table", zap.String("table", s.cfg.Table))
	return nil
}

// sinkValue converts a cell to a driver-friendly value
func sinkValue(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case float64, string:
		return val
	default:
		return model.ToString(val)
	}
}

func driverName(driver string) string {
	if driver == "sqlite" {
		return "sqlite"
	}
	return "postgres"
}
