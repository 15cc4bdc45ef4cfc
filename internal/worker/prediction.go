package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
	log "github.com/sirupsen/logrus"

	"librisk/internal/models"
	"librisk/internal/services"
	"librisk/internal/tasks"
)

// Predictor is the part of PredictionService the worker needs.
type Predictor interface {
	Predict(ctx context.Context, userID, rawText string) (*services.PredictionResult, error)
}

// PredictionDeps holds what HandlePredictionJob needs.
type PredictionDeps struct {
	Predictor Predictor
}

// HandlePredictionJob classifies the task's text and records it in the
// user's history. Failed jobs are never retried.
func HandlePredictionJob(deps PredictionDeps) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		p, err := tasks.ParsePredictionPayload(t)
		if err != nil {
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		logger := log.WithFields(log.Fields{
			"task_type": t.Type(),
			"user_id":   p.UserID,
			"line":      p.Line,
		})

		res, err := deps.Predictor.Predict(ctx, p.UserID, p.Text)
		if err != nil {
			// Every prediction error is final; a retry would replay the same input.
			entry := logger.WithError(err)
			if errors.Is(err, models.ErrInput) || errors.Is(err, models.ErrModelUnavailable) {
				entry.Warn("Prediction job rejected")
			} else {
				entry.Error("Prediction job failed")
			}
			return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
		}

		logger.WithFields(log.Fields{
			"category":   res.Category,
			"confidence": res.Confidence,
			"report_id":  res.ReportID,
			"status":     models.JobStatusCompleted,
		}).Info("Prediction job completed")
		return nil
	}
}

// RegisterHandlers registers every task handler on mux.
func RegisterHandlers(mux *asynq.ServeMux, deps PredictionDeps) {
	log.Infof("Registering %s handler", tasks.TypePredictionJob)
	mux.HandleFunc(tasks.TypePredictionJob, HandlePredictionJob(deps))
}
