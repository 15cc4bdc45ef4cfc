package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"librisk/internal/models"
	"librisk/internal/store"
)

// --- User Store Implementation ---

// EnsureUser returns the user row for userID, inserting it on first sight.
func (s *StoreImpl) EnsureUser(ctx context.Context, userID string) (*models.User, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, store.ErrEmptyUserID
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, created_at) VALUES (?, ?) ON CONFLICT (id) DO NOTHING`,
		userID, time.Now().UTC(),
	); err != nil {
		return nil, fmt.Errorf("insert user %q: %w", userID, err)
	}

	user := &models.User{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, created_at FROM users WHERE id = ?`, userID,
	).Scan(&user.ID, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select user %q: %w", userID, err)
	}
	return user, nil
}

// --- History Store Implementation ---

// AppendProblem inserts report for userID. The user row is created in the
// same transaction so a report never exists without its owner.
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

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO users (id, created_at) VALUES (?, ?) ON CONFLICT (id) DO NOTHING`,
		userID, createdAt,
	); err != nil {
		return fmt.Errorf("insert user %q: %w", userID, err)
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO problems (user_id, problem_text, category, confidence, solutions, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		userID, report.ProblemText, report.Category, report.Confidence, string(solutionsJSON), createdAt,
	)
	if err != nil {
		return fmt.Errorf("insert problem: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("read inserted problem id: %w", err)
	}
	if err := tx.Commit(); err != nil {
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

	query := `SELECT id, user_id, problem_text, category, confidence, solutions, created_at
		FROM problems
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC`
	args := []any{userID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query problems for user %q: %w", userID, err)
	}
	defer rows.Close()

	reports := make([]*models.ProblemReport, 0)
	for rows.Next() {
		var (
			r             models.ProblemReport
			solutionsJSON string
		)
		if err := rows.Scan(&r.ID, &r.UserID, &r.ProblemText, &r.Category, &r.Confidence, &solutionsJSON, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan problem row: %w", err)
		}
		if err := json.Unmarshal([]byte(solutionsJSON), &r.Solutions); err != nil {
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
	res, err := s.db.ExecContext(ctx, `DELETE FROM problems WHERE user_id = ?`, userID)
	if err != nil {
		return 0, fmt.Errorf("delete problems for user %q: %w", userID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("read deleted row count: %w", err)
	}
	return n, nil
}
