// pkg/pipeline/pipeline.go
package pipeline

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/LucasFSouza552/MegaSuperVendas/pkg/config"
	"github.com/LucasFSouza552/MegaSuperVendas/pkg/derive"
	"github.com/LucasFSouza552/MegaSuperVendas/pkg/impute"
	"github.com/LucasFSouza552/MegaSuperVendas/pkg/model"
	"github.com/LucasFSouza552/MegaSuperVendas/pkg/normalize"
	"github.com/LucasFSouza552/MegaSuperVendas/pkg/reconcile"
)

// StageFunc transforms the working table in place and reports warnings.
type StageFunc func(*model.Table, *config.Rules) ([]model.Warning, error)

// Stage is one skippable unit of the cleaning pipeline. When any required
// column is absent the stage is skipped, logged and recorded, never failed.
type Stage struct {
	Name     string
	Requires []string
	Run      StageFunc
}

// Result is the outcome of a cleaning run: the cleaned table, accumulated
// warnings and per-stage metrics. Only input loading can fail hard; stage
// failures degrade to warnings.
type Result struct {
	Table    *model.Table
	Warnings []model.Warning
	Metrics  *RunMetrics
}

// Pipeline runs the fixed sequence of cleaning stages over a sales table.
type Pipeline struct {
	stages []Stage
	rules  *config.Rules
	logger *zap.Logger
}

// New creates a pipeline with the canonical stage order for the sales schema.
func New(rules *config.Rules, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		rules:  rules,
		logger: logger.Named("pipeline"),
		stages: buildStages(rules),
	}
}

// buildStages assembles the fixed stage sequence. Normalizers run first, then
// entity reconciliation, statistical imputation and derived-field policy.
func buildStages(rules *config.Rules) []Stage {
	return []Stage{
		{Name: "trim_whitespace", Run: normalize.TrimWhitespace},
		{Name: "normalize_status", Requires: []string{model.ColStatus}, Run: normalize.NormalizeStatus},
		{Name: "strip_special_chars", Requires: rules.SpecialCharColumns, Run: normalize.StripSpecialChars},
		{Name: "parse_monetary", Requires: []string{model.ColPrice}, Run: normalize.ParseMonetary},
		{Name: "title_case_text", Run: normalize.TitleCaseText},
		{Name: "format_cep", Requires: []string{model.ColPostalCode}, Run: normalize.FormatPostalCode},
		{Name: "parse_datetime", Requires: []string{model.ColDate, model.ColTime}, Run: normalize.ParseDatetime},
		{Name: "coerce_types", Run: normalize.CoerceTypes},
		{Name: "dedupe_products", Requires: []string{model.ColProduct}, Run: reconcile.DedupeProducts},
		{Name: "reconcile_brands", Requires: []string{model.ColProduct, model.ColBrand}, Run: reconcile.ReconcileBrands},
		{Name: "fill_sellers", Requires: []string{model.ColPurchaseID, model.ColSeller}, Run: reconcile.FillSellers},
		{Name: "impute_prices", Requires: []string{model.ColPrice, model.ColProduct, model.ColBrand}, Run: impute.ImputePrices},
		{Name: "fill_numeric_gaps", Requires: []string{model.ColPrice, model.ColShipping}, Run: impute.FillNumericGaps},
		{Name: "fill_shipping_by_city", Requires: []string{model.ColCity, model.ColShipping}, Run: impute.FillShippingByCity},
		{Name: "clamp_negatives", Run: derive.ClampNegatives},
		{Name: "compute_totals", Requires: []string{model.ColPrice, model.ColQuantity}, Run: derive.ComputeTotals},
		{Name: "drop_null_sellers", Requires: []string{model.ColSeller}, Run: derive.DropNullSellers},
		{Name: "drop_mandatory_nulls", Requires: []string{model.ColPrice, model.ColQuantity, model.ColTotal}, Run: derive.DropMandatoryNulls},
		{Name: "fill_defaults", Run: derive.FillDefaults},
		{Name: "drop_duplicates", Run: derive.DropDuplicates},
	}
}

// Stages returns the names of the configured stages in execution order.
func (p *Pipeline) Stages() []string {
	names := make([]string, len(p.stages))
	for i, s := range p.stages {
		names[i] = s.Name
	}
	return names
}

// Run executes every stage in order over a working copy of the input table.
// The input is never mutated, so the caller can diff it against the result.
func (p *Pipeline) Run(input *model.Table) *Result {
	metrics := NewRunMetrics(p.logger)
	working := input.Clone()
	var warnings []model.Warning

	p.logger.Info("Starting cleaning run",
		zap.String("runID", metrics.RunID),
		zap.Int("rows", working.Len()),
		zap.Int("columns", len(working.Columns)))

	for _, stage := range p.stages {
		sm := StageMetrics{Name: stage.Name, RowsIn: working.Len()}
		if missing := working.MissingColumns(stage.Requires); len(missing) > 0 {
			sm.Skipped = true
			sm.MissingColumns = missing
			sm.RowsOut = working.Len()
			metrics.RecordStage(sm)
			p.logger.Info("Skipping stage",
				zap.String("stage", stage.Name),
				zap.Strings("missingColumns", missing))
			continue
		}

		start := time.Now()
		snapshot := working.Clone()
		stageWarnings, err := runStage(stage, working, p.rules)
		sm.Duration = time.Since(start)

		if err != nil {
			// Stage boundary: discard partial work, keep the input table,
			// downgrade to a warning and continue with remaining stages.
			working = snapshot
			sm.Failed = true
			stageWarnings = []model.Warning{{
				Stage:  stage.Name,
				Reason: NewError(ErrorCategoryStage, stage.Name, err).Error(),
				Rows:   working.Len(),
			}}
			p.logger.Error("Stage failed, keeping its input table",
				zap.String("stage", stage.Name),
				zap.Error(err))
		}

		warnings = append(warnings, stageWarnings...)
		sm.Warnings = len(stageWarnings)
		sm.RowsOut = working.Len()
		metrics.RecordStage(sm)

		p.logger.Debug("Stage complete",
			zap.String("stage", stage.Name),
			zap.Duration("duration", sm.Duration),
			zap.Int("rowsIn", sm.RowsIn),
			zap.Int("rowsOut", sm.RowsOut),
			zap.Int("warnings", sm.Warnings))
	}

	metrics.Finish()
	metrics.LogSummary()

	return &Result{Table: working, Warnings: warnings, Metrics: metrics}
}

// runStage invokes a stage with panic containment.
func runStage(stage Stage, t *model.Table, rules *config.Rules) (warnings []model.Warning, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("stage panicked: %v", r)
		}
	}()
	return stage.Run(t, rules)
}
