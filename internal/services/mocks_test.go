package services

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/mock"

	"librisk/internal/models"
	"librisk/internal/tasks"
	"librisk/internal/vectorizer"
	"librisk/pkg/categorizer"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) AppendProblem(ctx context.Context, userID string, report *models.ProblemReport) error {
	args := m.Called(ctx, userID, report)
	return args.Error(0)
}

func (m *MockStore) ListProblemsByUser(ctx context.Context, userID string, limit int) ([]*models.ProblemReport, error) {
	args := m.Called(ctx, userID, limit)
	reports, _ := args.Get(0).([]*models.ProblemReport)
	return reports, args.Error(1)
}

func (m *MockStore) ClearProblemsByUser(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) EnsureUser(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *MockStore) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockStore) Close() error {
	return m.Called().Error(0)
}

type MockJobClient struct {
	mock.Mock
}

func (m *MockJobClient) Enqueue(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	args := m.Called(ctx, task)
	info, _ := args.Get(0).(*asynq.TaskInfo)
	return info, args.Error(1)
}

func (m *MockJobClient) EnqueuePredictionJob(ctx context.Context, p tasks.PredictionPayload) (*asynq.TaskInfo, error) {
	args := m.Called(ctx, p)
	info, _ := args.Get(0).(*asynq.TaskInfo)
	return info, args.Error(1)
}

func (m *MockJobClient) Close() error {
	return m.Called().Error(0)
}

// brokenClassifier fails every call.
type brokenClassifier struct {
	dim int
}

func (b brokenClassifier) Classify(vectorizer.SparseVector) (categorizer.Prediction, error) {
	return categorizer.Prediction{}, stubError("corrupt node reference")
}

func (b brokenClassifier) Classes() []int { return []int{0, 1, 2} }
func (b brokenClassifier) Dim() int       { return b.dim }

type stubError string

func (e stubError) Error() string { return string(e) }
