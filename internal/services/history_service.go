package services

import (
	"context"
	"fmt"
	"strings"

	"librisk/internal/models"
	"librisk/internal/store"
)

// HistoryService exposes a user's own classification history.
type HistoryService struct {
	store        store.Store
	defaultLimit int
}

// NewHistoryService creates a HistoryService. defaultLimit applies when a
// caller passes limit 0; a negative default means unlimited.
func NewHistoryService(s store.Store, defaultLimit int) *HistoryService {
	return &HistoryService{store: s, defaultLimit: defaultLimit}
}

// List returns userID's reports, most recent first. limit < 0 returns all.
func (h *HistoryService) List(ctx context.Context, userID string, limit int) ([]*models.ProblemReport, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, models.ErrMissingIdentity
	}
	if limit == 0 {
		limit = h.defaultLimit
	}
	reports, err := h.store.ListProblemsByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: list history: %v", models.ErrStorage, err)
	}
	if reports == nil {
		return []*models.ProblemReport{}, nil
	}
	return reports, nil
}

// Clear deletes userID's reports and returns how many were removed.
func (h *HistoryService) Clear(ctx context.Context, userID string) (int64, error) {
	if strings.TrimSpace(userID) == "" {
		return 0, models.ErrMissingIdentity
	}
	n, err := h.store.ClearProblemsByUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("%w: clear history: %v", models.ErrStorage, err)
	}
	return n, nil
}

// EnsureUser records userID on first sight.
func (h *HistoryService) EnsureUser(ctx context.Context, userID string) (*models.User, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, models.ErrMissingIdentity
	}
	u, err := h.store.EnsureUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: ensure user: %v", models.ErrStorage, err)
	}
	return u, nil
}
