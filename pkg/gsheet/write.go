package gsheet

import (
	"context"
	"errors"

	"github.com/ukaji3/gsheet-go/pkg/gsheet/backend"
)

// WriteFailure classifies a rejected grid write.
type WriteFailure int

const (
	// FailureNone means the write succeeded.
	FailureNone WriteFailure = iota
	// FailureRejected means the payload did not fit the grid.
	FailureRejected
	// FailureRemote means the service returned an error.
	FailureRemote
	// FailureCanceled means the context ended first.
	FailureCanceled
	// FailureUnknown covers every other error.
	FailureUnknown
)

func (f WriteFailure) String() string {
	switch f {
	case FailureNone:
		return "none"
	case FailureRejected:
		return "rejected"
	case FailureRemote:
		return "remote"
	case FailureCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// WriteResult is the outcome of a grid write. Write failures are reported
// here rather than as errors; callers check OK.
type WriteResult struct {
	Reason WriteFailure
	Err    error
}

// OK reports whether the write was applied.
func (r WriteResult) OK() bool { return r.Reason == FailureNone }

func writeResult(err error) WriteResult {
	switch {
	case err == nil:
		return WriteResult{}
	case errors.Is(err, backend.ErrOutOfBounds):
		return WriteResult{Reason: FailureRejected, Err: err}
	case errors.Is(err, backend.ErrRemote):
		return WriteResult{Reason: FailureRemote, Err: err}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return WriteResult{Reason: FailureCanceled, Err: err}
	default:
		return WriteResult{Reason: FailureUnknown, Err: err}
	}
}
