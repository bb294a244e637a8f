package flow

import "time"

// Result is the single outcome object of a flow run. It is immutable
// once produced: callers never see an error from Execute, only this.
type Result struct {
	RunID        string
	Success      bool
	ErrorMessage string
	Results      map[string]any
	StartedAt    time.Time
	FinishedAt   time.Time
}

// Elapsed returns the wall-clock duration of the run.
func (r Result) Elapsed() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

func successResult(runID string, startedAt time.Time, results map[string]any) Result {
	return Result{
		RunID:      runID,
		Success:    true,
		Results:    results,
		StartedAt:  startedAt,
		FinishedAt: time.Now(),
	}
}

// failureResult keeps whatever partial results had accumulated before
// the failing node; the failing node itself is never present.
func failureResult(runID, message string, startedAt time.Time, partial map[string]any) Result {
	return Result{
		RunID:        runID,
		Success:      false,
		ErrorMessage: message,
		Results:      partial,
		StartedAt:    startedAt,
		FinishedAt:   time.Now(),
	}
}
