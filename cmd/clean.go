// cmd/clean.go
package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/LucasFSouza552/MegaSuperVendas/pkg/config"
	"github.com/LucasFSouza552/MegaSuperVendas/pkg/model"
	"github.com/LucasFSouza552/MegaSuperVendas/pkg/pipeline"
	"github.com/LucasFSouza552/MegaSuperVendas/pkg/report"
	"github.com/LucasFSouza552/MegaSuperVendas/pkg/sink"
	"github.com/LucasFSouza552/MegaSuperVendas/pkg/source"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Run the full cleaning pipeline over the sales dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runClean(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}

func runClean(ctx context.Context) error {
	// Load environment variables from a .env file if present
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	applyFlags(cfg)

	logger, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	rules, err := config.LoadRules(cfg.RulesPath)
	if err != nil {
		return fmt.Errorf("failed to load cleaning rules: %w", err)
	}

	raw, err := source.Read(cfg.InputPath)
	if err != nil {
		return pipeline.NewError(pipeline.ErrorCategoryInput, "read_input", err)
	}
	logger.Info("Loaded raw dataset",
		zap.String("path", cfg.InputPath),
		zap.Int("rows", raw.Len()),
		zap.Int("columns", len(raw.Columns)))

	result := pipeline.New(rules, logger).Run(raw)

	// Diff against the raw snapshot before the output header rename, so the
	// primary key is still addressable by its input name.
	changeReport := report.Generate(raw, result.Table, report.Options{
		RemovedKeySample:    rules.RemovedKeySample,
		InconsistencySample: rules.InconsistencySample,
		RunID:               result.Metrics.RunID,
	})
	cleaned := result.Table.RenameUpper()

	var outputErr error
	if err := sink.WriteCSV(cfg.OutputPath, cleaned); err != nil {
		outputErr = pipeline.NewError(pipeline.ErrorCategoryOutput, "write_csv", err)
		logger.Error("Failed to write cleaned table", zap.Error(err))
	}
	if err := sink.WriteReport(cfg.ReportPath, changeReport); err != nil {
		if outputErr == nil {
			outputErr = pipeline.NewError(pipeline.ErrorCategoryOutput, "write_report", err)
		}
		logger.Error("Failed to write change report", zap.Error(err))
	}

	if cfg.Sink != nil {
		if err := loadIntoDatabase(ctx, cfg, cleaned, logger); err != nil {
			if outputErr == nil {
				outputErr = pipeline.NewError(pipeline.ErrorCategoryOutput, "load_database", err)
			}
			logger.Error("Failed to load cleaned table into database", zap.Error(err))
		}
	}

	logger.Info("Cleaning run finished",
		zap.String("runID", result.Metrics.RunID),
		zap.Int("rowsIn", raw.Len()),
		zap.Int("rowsOut", result.Table.Len()),
		zap.Int("warnings", len(result.Warnings)),
		zap.Duration("duration", result.Metrics.Duration()))

	return outputErr
}

// loadIntoDatabase pushes the cleaned table into the configured sink database.
func loadIntoDatabase(ctx context.Context, cfg *config.Config, cleaned *model.Table, logger *zap.Logger) error {
	db, err := sink.NewDatabaseSink(ctx, cfg.Sink)
	if err != nil {
		return err
	}
	defer db.Close()

	rows, err := db.Load(ctx, cleaned)
	if err != nil {
		return err
	}
	logger.Info("Database load complete",
		zap.String("table", cfg.Sink.Table),
		zap.Int64("rows", rows))
	return nil
}

// applyFlags lets command-line flags override environment configuration.
func applyFlags(cfg *config.Config) {
	if inputFlag != "" {
		cfg.InputPath = inputFlag
	}
	if outputFlag != "" {
		cfg.OutputPath = outputFlag
	}
	if reportFlag != "" {
		cfg.ReportPath = reportFlag
	}
	if rulesFlag != "" {
		cfg.RulesPath = rulesFlag
	}
}

// newLogger builds a zap logger from the configured level and format.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	zapCfg := zap.NewProductionConfig()
	if cfg.LogFormat == "console" {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(time.RFC3339)
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg.Build()
}
