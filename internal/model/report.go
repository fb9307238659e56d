package model

import "time"

// Stage identifies where a pipeline run currently is.
type Stage string

const (
	StageFetching  Stage = "FETCHING"
	StageTraining  Stage = "TRAINING"
	StageNotifying Stage = "NOTIFYING"
	StageDone      Stage = "DONE"
)

// UnitFailure records one contained per-symbol or per-subscriber failure.
// Failures here never aborted the run; they are carried for the run report.
type UnitFailure struct {
	Unit   string // symbol code or subscriber email
	Reason string
}

// RunReport summarizes one pipeline run across all three stages.
type RunReport struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time

	Fetched     int
	FetchFailed []UnitFailure

	Trained     int
	TrainFailed []UnitFailure

	Notified     int
	NotifyFailed []UnitFailure

	// ResolverErr is set when the subscription store was unreachable and the
	// notify stage was aborted for all subscribers.
	ResolverErr string
}
