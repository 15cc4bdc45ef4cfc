package tasks

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hibiken/asynq"
)

// Defines constants for task types used in Asynq.

const (
	// TypePredictionJob classifies one problem description for one user.
	TypePredictionJob = "prediction:classify"

	// QueuePredictions is the queue prediction jobs are enqueued on.
	QueuePredictions = "predictions"
)

// PredictionPayload is the JSON body of a TypePredictionJob task.
type PredictionPayload struct {
	UserID string `json:"user_id"`
	Text   string `json:"text"`
	// Line is the 1-based source line when the job came from a batch file.
	Line int `json:"line,omitempty"`
}

// NewPredictionTask builds a prediction task on the predictions queue.
func NewPredictionTask(p PredictionPayload) (*asynq.Task, error) {
	if strings.TrimSpace(p.UserID) == "" {
		return nil, fmt.Errorf("prediction task: empty user id")
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("prediction task: marshal payload: %w", err)
	}
	return asynq.NewTask(TypePredictionJob, b, asynq.Queue(QueuePredictions)), nil
}

// ParsePredictionPayload decodes the payload of a TypePredictionJob task.
func ParsePredictionPayload(t *asynq.Task) (PredictionPayload, error) {
	var p PredictionPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return p, fmt.Errorf("prediction task: decode payload: %w", err)
	}
	return p, nil
}
