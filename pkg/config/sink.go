// pkg/config/sink.go
package config

import (
	"errors"
	"fmt"
	"os"
)

// SinkConfig holds connection parameters for the optional database sink.
// Two drivers are supported: "postgres" (server) and "sqlite" (local file).
type SinkConfig struct {
	Driver string

	// Postgres
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string

	// SQLite
	Path string

	// Destination table and insert batching
	Table     string
	BatchSize int
}

// LoadSinkConfig loads the sink configuration from environment variables.
// Returns nil when VENDAS_SINK_DRIVER is unset: the database load is optional
// and the CSV/report outputs are always written.
func LoadSinkConfig() (*SinkConfig, error) {
	driver := os.Getenv("VENDAS_SINK_DRIVER")
	if driver == "" {
		return nil, nil
	}

	cfg := &SinkConfig{
		Driver:    driver,
		Table:     getEnv("VENDAS_SINK_TABLE", "compras_normalizadas"),
		BatchSize: getEnvAsInt("VENDAS_SINK_BATCH_SIZE", 500),
	}

	switch driver {
	case "postgres":
		user := os.Getenv("POSTGRES_USER")
		if user == "" {
			return nil, errors.New("POSTGRES_USER environment variable is required")
		}
		password := os.Getenv("POSTGRES_PASSWORD")
		if password == "" {
			return nil, errors.New("POSTGRES_PASSWORD environment variable is required")
		}
		database := os.Getenv("POSTGRES_DB")
		if database == "" {
			return nil, errors.New("POSTGRES_DB environment variable is required")
		}

		cfg.Host = getEnv("POSTGRES_HOST", "localhost")
		cfg.Port = getEnvAsInt("POSTGRES_PORT", 5432)
		cfg.User = user
		cfg.Password = password
		cfg.Database = database
		cfg.SSLMode = getEnv("POSTGRES_SSLMODE", "disable")
	case "sqlite":
		cfg.Path = getEnv("VENDAS_SINK_PATH", "result/compras_normalizadas.sqlite")
	default:
		return nil, fmt.Errorf("unsupported sink driver %q", driver)
	}

	return cfg, nil
}

// Validate ensures the sink configuration is usable
func (c *SinkConfig) Validate() error {
	switch c.Driver {
	case "postgres":
		if c.Database == "" {
			return errors.New("postgres sink requires a database name")
		}
	case "sqlite":
		if c.Path == "" {
			return errors.New("sqlite sink requires a file path")
		}
	default:
		return fmt.Errorf("unsupported sink driver %q", c.Driver)
	}

	if c.Table == "" {
		return errors.New("sink table name is required")
	}

	if c.BatchSize <= 0 {
		return errors.New("sink batch size must be positive")
	}

	return nil
}

// DSN returns the driver-specific data source name
func (c *SinkConfig) DSN() string {
	switch c.Driver {
	case "postgres":
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			c.Host,
			c.Port,
			c.User,
			c.Password,
			c.Database,
			c.SSLMode,
		)
	case "sqlite":
		return c.Path
	default:
		return ""
	}
}
