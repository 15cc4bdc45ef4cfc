package models

/*
Batch prediction job statuses, shared by the CLI and the worker so progress
output and logs use the same words.
*/

const (
	JobStatusEnqueued  = "enqueued"
	JobStatusCompleted = "completed"
	JobStatusFailed    = "failed"
	JobStatusSkipped   = "skipped"
)
