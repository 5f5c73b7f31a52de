// pkg/config/config.go
package config

import (
	"errors"
	"os"
	"strconv"
)

// Config represents the application configuration
type Config struct {
	// Paths
	InputPath  string
	OutputPath string
	ReportPath string
	RulesPath  string

	// Logging
	LogLevel  string
	LogFormat string

	// Optional database sink for the cleaned table
	Sink *SinkConfig
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		InputPath:  getEnv("VENDAS_INPUT", "dataframe/vendas_modificado.csv"),
		OutputPath: getEnv("VENDAS_OUTPUT", "result/compras_normalizadas.csv"),
		ReportPath: getEnv("VENDAS_REPORT", "result/relatorio_alteracoes.md"),
		RulesPath:  getEnv("VENDAS_RULES", ""),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		LogFormat:  getEnv("LOG_FORMAT", "console"),
	}

	sinkCfg, err := LoadSinkConfig()
	if err != nil {
		return nil, errors.New("failed to load sink configuration: " + err.Error())
	}
	cfg.Sink = sinkCfg

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures all required configuration is present and valid
func (c *Config) Validate() error {
	if c.InputPath == "" {
		return errors.New("input path is required")
	}

	if c.OutputPath == "" {
		return errors.New("output path is required")
	}

	if c.ReportPath == "" {
		return errors.New("report path is required")
	}

	if c.Sink != nil {
		if err := c.Sink.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// Helper functions for environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
