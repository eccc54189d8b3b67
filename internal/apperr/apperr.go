// Package apperr defines the typed error kinds used across the pipeline
// and the exit-status mapping for the CLI.
package apperr

import "fmt"

// Kind identifies one of the error categories from the error handling design.
type Kind string

const (
	InvalidSurveyRow       Kind = "InvalidSurveyRow"
	InvalidRoster          Kind = "InvalidRoster"
	UnresolvablePreference Kind = "UnresolvablePreference"
	DuplicateEmail         Kind = "DuplicateEmail"
	Infeasible             Kind = "Infeasible"
	SolverTimeout          Kind = "SolverTimeout"
	InternalSolverError    Kind = "InternalSolverError"
)

// fatal reports whether a Kind always terminates the run when raised as an
// error (as opposed to being recorded as a warning in the diagnostics bag).
func (k Kind) fatal() bool {
	switch k {
	case Infeasible, SolverTimeout, InternalSolverError, InvalidRoster:
		return true
	default:
		return false
	}
}

// Error is the typed error wrapper threaded through the pipeline, modeled
// on the appErrors.Wrap(err, code, status, msg) shape used for service
// errors elsewhere in the pack, simplified for a CLI with no HTTP status.
type Error struct {
	Kind  Kind
	Msg   string
	Cause error
}

func Wrap(cause error, kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg, Cause: cause}
}

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Cause }

func (e *Error) Fatal() bool { return e.Kind.fatal() }

// ExitCode implements the exit-status table from the external interfaces
// section: 0 success, 2 Infeasible, 3 SolverTimeout (no feasible solution),
// 4 input validation failure.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var appErr *Error
	if ae, ok := err.(*Error); ok {
		appErr = ae
	} else {
		return 1
	}
	switch appErr.Kind {
	case Infeasible:
		return 2
	case SolverTimeout:
		return 3
	case InvalidRoster, InvalidSurveyRow:
		return 4
	default:
		return 1
	}
}
