package store

import (
	"context"

	"github.com/hibiken/asynq"

	"librisk/internal/models"
	"librisk/internal/tasks"
)

// --- History Store ---

// HistoryStore is the append-only, per-user log of classified problems.
// Every method is scoped to one user; no method reads or mutates another
// user's records.
type HistoryStore interface {
	// AppendProblem stores report for userID, creating the user lazily.
	// On success report.ID and report.CreatedAt are set.
	AppendProblem(ctx context.Context, userID string, report *models.ProblemReport) error
	// ListProblemsByUser returns the user's records, most recent first.
	// limit <= 0 returns all of them.
	ListProblemsByUser(ctx context.Context, userID string, limit int) ([]*models.ProblemReport, error)
	// ClearProblemsByUser deletes every record of userID and reports how many
	// were removed. Clearing an empty history is not an error.
	ClearProblemsByUser(ctx context.Context, userID string) (int64, error)

	Ping(ctx context.Context) error
	Close() error
}

// --- User Store ---

type UserStore interface {
	// EnsureUser returns the user, creating it on first sight.
	EnsureUser(ctx context.Context, userID string) (*models.User, error)
}

// Store is what a storage driver provides.
type Store interface {
	HistoryStore
	UserStore
}

// --- Job Client ---

type JobClient interface {
	Enqueue(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
	EnqueuePredictionJob(ctx context.Context, p tasks.PredictionPayload) (*asynq.TaskInfo, error)
	Close() error
}
