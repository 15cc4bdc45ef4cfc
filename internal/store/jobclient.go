package store

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	log "github.com/sirupsen/logrus"

	"librisk/internal/tasks"
)

// AsynqJobClient is a concrete JobClient backed by Redis through asynq.
type AsynqJobClient struct {
	client *asynq.Client
}

var _ JobClient = (*AsynqJobClient)(nil)

// NewAsynqJobClient creates a job client for the Redis instance described by
// opts.
func NewAsynqJobClient(opts asynq.RedisClientOpt) (*AsynqJobClient, error) {
	if opts.Addr == "" {
		return nil, fmt.Errorf("redis address cannot be empty")
	}
	return &AsynqJobClient{client: asynq.NewClient(opts)}, nil
}

func (jc *AsynqJobClient) Close() error {
	return jc.client.Close()
}

// Enqueue enqueues a task.
func (jc *AsynqJobClient) Enqueue(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if jc.client == nil {
		return nil, fmt.Errorf("AsynqJobClient internal client is not initialized")
	}
	info, err := jc.client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		log.WithError(err).WithField("task_type", task.Type()).Error("Failed to enqueue task")
		return nil, err
	}
	log.WithFields(log.Fields{
		"task_type": task.Type(),
		"task_id":   info.ID,
		"queue":     info.Queue,
	}).Debug("Enqueued task")
	return info, nil
}

// EnqueuePredictionJob enqueues the classification of p.Text on behalf of
// p.UserID.
func (jc *AsynqJobClient) EnqueuePredictionJob(ctx context.Context, p tasks.PredictionPayload) (*asynq.TaskInfo, error) {
	task, err := tasks.NewPredictionTask(p)
	if err != nil {
		return nil, err
	}
	info, err := jc.Enqueue(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("enqueue prediction job for user %s: %w", p.UserID, err)
	}
	return info, nil
}
