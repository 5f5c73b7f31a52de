// pkg/model/warning.go
package model

import "fmt"

// Warning records a non-fatal issue raised by a pipeline stage: a conversion
// failure, a skipped transform, or a degraded result. Warnings accumulate
// across the run and never abort it.
type Warning struct {
	Stage  string
	Column string
	Reason string
	Rows   int
}

func (w Warning) String() string {
	if w.Column != "" {
		return fmt.Sprintf("%s: column %q: %s (%d rows)", w.Stage, w.Column, w.Reason, w.Rows)
	}
	return fmt.Sprintf("%s: %s (%d rows)", w.Stage, w.Reason, w.Rows)
}
