package store

import (
	"context"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"librisk/internal/tasks"
)

func TestNewAsynqJobClient_RequiresAddr(t *testing.T) {
	_, err := NewAsynqJobClient(asynq.RedisClientOpt{})
	assert.Error(t, err)
}

func TestEnqueuePredictionJob_RejectsEmptyUser(t *testing.T) {
	// asynq connects lazily, so no Redis is needed to reach payload validation.
	jc, err := NewAsynqJobClient(asynq.RedisClientOpt{Addr: "127.0.0.1:0"})
	require.NoError(t, err)
	defer jc.Close()

	info, err := jc.EnqueuePredictionJob(context.Background(), tasks.PredictionPayload{Text: "سرقة كتاب", Line: 4})
	assert.Error(t, err)
	assert.Nil(t, info)
}
