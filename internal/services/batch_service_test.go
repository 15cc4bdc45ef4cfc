package services

import (
	"context"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"librisk/internal/artifact/artifacttest"
	"librisk/internal/models"
	"librisk/internal/tasks"
	"librisk/pkg/categorizer"
)

func TestBatchService_RunSync(t *testing.T) {
	history := new(MockStore)
	expectAppend(history, "u1", 1)
	svc := newTestPredictionService(t, artifacttest.Bundle(t, categorizer.VotingSoft), history)
	batch := NewBatchService(svc, nil)

	items, err := batch.RunSync(context.Background(), "u1", []string{"سرقة كتاب", "  ", "الكمبيوتر مش شغال"})
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, models.JobStatusCompleted, items[0].Status)
	assert.Equal(t, "أمنية", items[0].Result.Category)
	assert.Equal(t, models.JobStatusSkipped, items[1].Status)
	assert.Equal(t, 2, items[1].Line)
	assert.Equal(t, "تقنية", items[2].Result.Category)
	history.AssertNumberOfCalls(t, "AppendProblem", 2)
}

func TestBatchService_RunSyncStopsWithoutModel(t *testing.T) {
	svc := newTestPredictionService(t, nil, new(MockStore))
	items, err := NewBatchService(svc, nil).RunSync(context.Background(), "u1", []string{"سرقة كتاب"})
	assert.ErrorIs(t, err, models.ErrModelUnavailable)
	assert.Empty(t, items)
}

func TestBatchService_Enqueue(t *testing.T) {
	jc := new(MockJobClient)
	jc.On("EnqueuePredictionJob", mock.Anything, tasks.PredictionPayload{UserID: "u1", Text: "سرقة كتاب", Line: 1}).
		Return(&asynq.TaskInfo{ID: "task-1", Queue: tasks.QueuePredictions}, nil)
	jc.On("EnqueuePredictionJob", mock.Anything, tasks.PredictionPayload{UserID: "u1", Text: "تسريب مية", Line: 3}).
		Return(nil, errors.New("redis down"))

	batch := NewBatchService(nil, jc)
	items, err := batch.Enqueue(context.Background(), "u1", []string{"سرقة كتاب", "", "تسريب مية"})
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, models.JobStatusEnqueued, items[0].Status)
	assert.Equal(t, "task-1", items[0].TaskID)
	assert.Equal(t, models.JobStatusSkipped, items[1].Status)
	assert.Equal(t, models.JobStatusFailed, items[2].Status)
	assert.Error(t, items[2].Err)
	jc.AssertExpectations(t)
	jc.AssertNotCalled(t, "Enqueue", mock.Anything, mock.Anything)
}

func TestBatchService_EnqueueNeedsClient(t *testing.T) {
	_, err := NewBatchService(nil, nil).Enqueue(context.Background(), "u1", []string{"نص"})
	assert.Error(t, err)
}
