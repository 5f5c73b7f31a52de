// pkg/pipeline/error.go
package pipeline

import "fmt"

// ErrorCategory classifies failures during a cleaning run
type ErrorCategory int

const (
	// Error categories with increasing severity
	ErrorCategoryNone ErrorCategory = iota
	// ErrorCategoryCell covers per-cell conversion failures; values become
	// null and the run continues
	ErrorCategoryCell
	// ErrorCategoryStage covers whole-stage failures; the stage's input
	// table is kept and the run continues
	ErrorCategoryStage
	// ErrorCategoryOutput covers sink write failures; computed state is kept
	ErrorCategoryOutput
	// ErrorCategoryInput covers unreadable input; the run aborts before any
	// transform
	ErrorCategoryInput
)

// String returns a string representation of the error category
func (ec ErrorCategory) String() string {
	switch ec {
	case ErrorCategoryNone:
		return "None"
	case ErrorCategoryCell:
		return "Cell"
	case ErrorCategoryStage:
		return "Stage"
	case ErrorCategoryOutput:
		return "Output"
	case ErrorCategoryInput:
		return "Input"
	default:
		return fmt.Sprintf("Unknown(%d)", ec)
	}
}

// Fatal reports whether the category aborts the run
func (ec ErrorCategory) Fatal() bool {
	return ec == ErrorCategoryInput
}

// Error is a categorized pipeline error
type Error struct {
	Category ErrorCategory
	Stage    string
	Err      error
}

// NewError wraps err with a category and the stage it occurred in
func NewError(category ErrorCategory, stage string, err error) *Error {
	return &Error{Category: category, Stage: stage, Err: err}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s error in %s: %v", e.Category, e.Stage, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
