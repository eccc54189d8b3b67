package model

import (
	"time"

	"github.com/google/uuid"
)

// Warning is a recoverable, non-fatal issue accumulated in the
// diagnostics bag; it never affects exit status. report.Write does not
// render warnings.
type Warning struct {
	Kind    string
	Message string
}

// PhaseTiming records how long one orchestrator phase took.
type PhaseTiming struct {
	Phase    string
	Elapsed  time.Duration
}

// DiagnosticsBag accumulates warnings, counts, and phase timings across a
// run and returned by the Orchestrator in its Outcome; the report writer
// does not receive it, and the CLI uses only its SolverStatus. A new
// bag is stamped with a RunID purely for log correlation; nothing in the
// decision pipeline reads it.
type DiagnosticsBag struct {
	RunID uuid.UUID

	Warnings []Warning
	Timings  []PhaseTiming

	TotalProcessed   int
	MissingCount     int
	DuplicateCount   int
	SolverStatus     string
}

// NewDiagnosticsBag creates an empty bag stamped with a fresh run ID.
func NewDiagnosticsBag() *DiagnosticsBag {
	return &DiagnosticsBag{RunID: uuid.New()}
}

func (d *DiagnosticsBag) Warn(kind, message string) {
	d.Warnings = append(d.Warnings, Warning{Kind: kind, Message: message})
}

func (d *DiagnosticsBag) RecordPhase(phase string, elapsed time.Duration) {
	d.Timings = append(d.Timings, PhaseTiming{Phase: phase, Elapsed: elapsed})
}
