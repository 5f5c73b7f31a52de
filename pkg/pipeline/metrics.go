// pkg/pipeline/metrics.go
package pipeline

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StageMetrics tracks metrics for a single pipeline stage
type StageMetrics struct {
	Name           string
	Duration       time.Duration
	RowsIn         int
	RowsOut        int
	Warnings       int
	Skipped        bool
	MissingColumns []string
	Failed         bool
}

// RunMetrics tracks metrics for an entire cleaning run
type RunMetrics struct {
	RunID     string
	StartTime time.Time
	EndTime   time.Time
	Stages    []StageMetrics
	logger    *zap.Logger
}

// NewRunMetrics creates a new run metrics tracker with a fresh run ID
func NewRunMetrics(logger *zap.Logger) *RunMetrics {
	return &RunMetrics{
		RunID:     uuid.New().String(),
		StartTime: time.Now(),
		Stages:    make([]StageMetrics, 0),
		logger:    logger,
	}
}

// RecordStage appends the metrics of a completed (or skipped) stage
func (m *RunMetrics) RecordStage(sm StageMetrics) {
	m.Stages = append(m.Stages, sm)
}

// Finish marks the end of the run
func (m *RunMetrics) Finish() {
	m.EndTime = time.Now()
}

// Duration returns the total duration of the run
func (m *RunMetrics) Duration() time.Duration {
	if m.EndTime.IsZero() {
		return time.Since(m.StartTime)
	}
	return m.EndTime.Sub(m.StartTime)
}

// TotalWarnings returns the warning count across all stages
func (m *RunMetrics) TotalWarnings() int {
	total := 0
	for _, sm := range m.Stages {
		total += sm.Warnings
	}
	return total
}

// SkippedStages returns the names of stages skipped for missing columns
func (m *RunMetrics) SkippedStages() []string {
	var skipped []string
	for _, sm := range m.Stages {
		if sm.Skipped {
			skipped = append(skipped, sm.Name)
		}
	}
	return skipped
}

// LogSummary emits a structured summary of the run
func (m *RunMetrics) LogSummary() {
	if m.logger == nil {
		return
	}

	rowsIn, rowsOut := 0, 0
	failed := 0
	for _, sm := range m.Stages {
		if sm.Skipped {
			continue
		}
		if rowsIn == 0 {
			rowsIn = sm.RowsIn
		}
		rowsOut = sm.RowsOut
		if sm.Failed {
			failed++
		}
	}

	m.logger.Info("Cleaning run complete",
		zap.String("runID", m.RunID),
		zap.Duration("duration", m.Duration()),
		zap.Int("stages", len(m.Stages)),
		zap.Strings("skippedStages", m.SkippedStages()),
		zap.Int("failedStages", failed),
		zap.Int("rowsIn", rowsIn),
		zap.Int("rowsOut", rowsOut),
		zap.Int("warnings", m.TotalWarnings()))
}
