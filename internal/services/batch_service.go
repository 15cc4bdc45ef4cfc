package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"librisk/internal/models"
	"librisk/internal/store"
	"librisk/internal/tasks"
)

// BatchItem is the outcome for one input line of a batch.
type BatchItem struct {
	Line   int
	Text   string
	Status string // one of the models.JobStatus* values
	Result *PredictionResult
	TaskID string
	Err    error
}

// BatchService classifies many problems for one user, either inline or
// through the job queue.
type BatchService struct {
	predictions *PredictionService
	jobClient   store.JobClient
}

// NewBatchService creates a BatchService. jobClient may be nil when only
// inline runs are needed.
func NewBatchService(ps *PredictionService, jc store.JobClient) *BatchService {
	return &BatchService{predictions: ps, jobClient: jc}
}

// RunSync classifies every non-blank line in order. A failing line does not
// stop the batch; ErrModelUnavailable does, since no line could succeed.
func (s *BatchService) RunSync(ctx context.Context, userID string, lines []string) ([]BatchItem, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, models.ErrMissingIdentity
	}
	items := make([]BatchItem, 0, len(lines))
	for i, line := range lines {
		if err := ctx.Err(); err != nil {
			return items, err
		}
		item := BatchItem{Line: i + 1, Text: strings.TrimSpace(line)}
		if item.Text == "" {
			item.Status = models.JobStatusSkipped
			items = append(items, item)
			continue
		}
		res, err := s.predictions.Predict(ctx, userID, item.Text)
		if errors.Is(err, models.ErrModelUnavailable) {
			return items, err
		}
		if err != nil {
			item.Status = models.JobStatusFailed
			item.Err = err
		} else {
			item.Status = models.JobStatusCompleted
			item.Result = res
		}
		items = append(items, item)
	}
	return items, nil
}

// Enqueue submits one prediction job per non-blank line.
func (s *BatchService) Enqueue(ctx context.Context, userID string, lines []string) ([]BatchItem, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, models.ErrMissingIdentity
	}
	if s.jobClient == nil {
		return nil, fmt.Errorf("batch enqueue: job client is not configured")
	}
	items := make([]BatchItem, 0, len(lines))
	for i, line := range lines {
		item := BatchItem{Line: i + 1, Text: strings.TrimSpace(line)}
		if item.Text == "" {
			item.Status = models.JobStatusSkipped
			items = append(items, item)
			continue
		}
		info, err := s.jobClient.EnqueuePredictionJob(ctx, tasks.PredictionPayload{UserID: userID, Text: item.Text, Line: item.Line})
		if err != nil {
			item.Status = models.JobStatusFailed
			item.Err = err
			log.WithError(err).WithField("line", item.Line).Warn("Failed to enqueue prediction job")
		} else {
			item.Status = models.JobStatusEnqueued
			item.TaskID = info.ID
		}
		items = append(items, item)
	}
	return items, nil
}
