package primary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"librisk/internal/models"
	"librisk/internal/store"
)

// --- User Store Implementation ---

// EnsureUser returns the user row for userID, inserting it on first sight.
func (s *StoreImpl) EnsureUser(ctx context.Context, userID string) (*models.User, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, store.ErrEmptyUserID
	}
	query := `
		INSERT INTO users (id, created_at) VALUES ($1, $2)
		ON CONFLICT (id) DO NOTHING`
	if _, err := s.db.Exec(ctx, query, userID, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("insert user %q: %w", userID, err)
	}

	user := &models.User{}
	err := s.db.QueryRow(ctx, `SELECT id, created_at FROM users WHERE id = $1`, userID).
		Scan(&user.ID, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select user %q: %w", userID, err)
	}
	return user, nil
}

// --- History Store Implementation ---

// AppendProblem inserts report for userID, creating the user row in the same
// transaction.
func (s *StoreImpl) AppendProblem(ctx context.Context, userID string, report *models.ProblemReport) error {
	if strings.TrimSpace(userID) == "" {
		return store.ErrEmptyUserID
	}
	if report == nil {
		return store.ErrNilReport
	}

	solutions := report.Solutions
	if solutions == nil {
		solutions = []string{}
	}
	solutionsJSON, err := json.Marshal(solutions)
	if err != nil {
		return fmt.Errorf("marshal solutions: %w", err)
	}
	createdAt := report.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	createdAt = createdAt.UTC()

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(ctx,
		`INSERT INTO users (id, created_at) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`,
		userID, createdAt,
	); err != nil {
		return fmt.Errorf("insert user %q: %w", userID, err)
	}

	query := `
		INSERT INTO problems (user_id, problem_text, category, confidence, solutions, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	var id int64
	if err := tx.QueryRow(ctx, query,
		userID,
		report.ProblemText,
		report.Category,
		report.Confidence,
		json.RawMessage(solutionsJSON),
		createdAt,
	).Scan(&id); err != nil {
		return fmt.Errorf("insert problem: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit problem: %w", err)
	}

	report.ID = id
	report.UserID = userID
	report.CreatedAt = createdAt
	return nil
}

// ListProblemsByUser returns the user's reports, most recent first.
func (s *StoreImpl) ListProblemsByUser(ctx context.Context, userID string, limit int) ([]*models.ProblemReport, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, store.ErrEmptyUserID
	}

	query := `
		SELECT id, user_id, problem_text, category, confidence, solutions, created_at
		FROM problems
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`
	args := []any{userID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query problems for user %q: %w", userID, err)
	}
	defer rows.Close()

	reports := make([]*models.ProblemReport, 0)
	for rows.Next() {
		var (
			r             models.ProblemReport
			solutionsJSON []byte
		)
		if err := rows.Scan(&r.ID, &r.UserID, &r.ProblemText, &r.Category, &r.Confidence, &solutionsJSON, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan problem row: %w", err)
		}
		if err := json.Unmarshal(solutionsJSON, &r.Solutions); err != nil {
			return nil, fmt.Errorf("decode solutions of problem %d: %w", r.ID, err)
		}
		reports = append(reports, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate problem rows: %w", err)
	}
	return reports, nil
}

// ClearProblemsByUser deletes every report of userID. The user row stays.
func (s *StoreImpl) ClearProblemsByUser(ctx context.Context, userID string) (int64, error) {
	if strings.TrimSpace(userID) == "" {
		return 0, store.ErrEmptyUserID
	}
	tag, err := s.db.Exec(ctx, `DELETE FROM problems WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("delete problems for user %q: %w", userID, err)
	}
	return tag.RowsAffected(), nil
}
