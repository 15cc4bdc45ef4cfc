package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"librisk/internal/artifact"
	"librisk/internal/artifact/artifacttest"
	"librisk/internal/categories"
	"librisk/internal/models"
	"librisk/internal/textnorm"
	"librisk/internal/vectorizer"
	"librisk/pkg/categorizer"
)

func newTestPredictionService(t *testing.T, bundle *artifact.Bundle, history *MockStore) *PredictionService {
	t.Helper()
	var trained map[string][]string
	if bundle != nil {
		trained = bundle.Solutions
	}
	resolver, err := categories.NewDefaultResolver(trained, categories.DefaultMaxSolutions)
	require.NoError(t, err)
	svc := NewPredictionService(bundle, textnorm.New(textnorm.DefaultOptions()), resolver, history, DefaultPredictionOptions())
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func expectAppend(history *MockStore, userID string, id int64) *mock.Call {
	return history.On("AppendProblem", mock.Anything, userID, mock.AnythingOfType("*models.ProblemReport")).
		Run(func(args mock.Arguments) {
			args.Get(2).(*models.ProblemReport).ID = id
		}).
		Return(nil)
}

func TestPredict_TechnicalProblem(t *testing.T) {
	history := new(MockStore)
	expectAppend(history, "u1", 7).Once()
	svc := newTestPredictionService(t, artifacttest.Bundle(t, categorizer.VotingSoft), history)

	res, err := svc.Predict(context.Background(), "u1", "الكمبيوتر مش شغال")
	require.NoError(t, err)

	assert.Equal(t, "تقنية", res.Category)
	assert.Equal(t, 100.0, res.Confidence)
	assert.Equal(t, int64(7), res.ReportID)
	assert.NotEmpty(t, res.Description)
	assert.NotEmpty(t, res.Solutions)
	assert.LessOrEqual(t, len(res.Solutions), categories.DefaultMaxSolutions)
	history.AssertExpectations(t)

	report := history.Calls[0].Arguments.Get(2).(*models.ProblemReport)
	assert.Equal(t, "الكمبيوتر مش شغال", report.ProblemText)
	assert.Equal(t, res.Category, report.Category)
	assert.Equal(t, res.Confidence, report.Confidence)
	assert.Equal(t, res.Solutions, report.Solutions)
	assert.Equal(t, "u1", report.UserID)
}

func TestPredict_TrainedSolutionsAreCapped(t *testing.T) {
	history := new(MockStore)
	expectAppend(history, "u1", 1)
	svc := newTestPredictionService(t, artifacttest.Bundle(t, categorizer.VotingSoft), history)

	res, err := svc.Predict(context.Background(), "u1", "سرقة كتاب")
	require.NoError(t, err)

	assert.Equal(t, "أمنية", res.Category)
	assert.Equal(t, 75.0, res.Confidence)
	assert.Equal(t, artifacttest.Solutions()["أمنية"][:5], res.Solutions)
	require.Len(t, res.Probabilities, 3)
	assert.Equal(t, models.LabelScore{Label: "أمنية", Confidence: 75}, res.Probabilities[0])
	assert.Equal(t, models.LabelScore{Label: "تقنية", Confidence: 12.5}, res.Probabilities[1])
	assert.Equal(t, models.LabelScore{Label: "بيئية", Confidence: 12.5}, res.Probabilities[2])
}

func TestPredict_ConfidenceRoundedToTwoDecimals(t *testing.T) {
	history := new(MockStore)
	expectAppend(history, "u1", 1)
	svc := newTestPredictionService(t, artifacttest.Bundle(t, categorizer.VotingSoft), history)

	res, err := svc.Predict(context.Background(), "u1", "نص لا يعرفه النموذج أبدا")
	require.NoError(t, err)
	assert.Equal(t, "أمنية", res.Category)
	assert.Equal(t, 41.67, res.Confidence)
}

func TestPredict_HardVotingUsesDefaultConfidence(t *testing.T) {
	history := new(MockStore)
	expectAppend(history, "u1", 1)
	svc := newTestPredictionService(t, artifacttest.Bundle(t, categorizer.VotingHard), history)

	res, err := svc.Predict(context.Background(), "u1", "سرقة كتاب")
	require.NoError(t, err)
	assert.Equal(t, "أمنية", res.Category)
	assert.Equal(t, 100.0, res.Confidence)
	assert.Empty(t, res.Probabilities)

	svc.opts.DefaultConfidence = 80
	res, err = svc.Predict(context.Background(), "u1", "سرقة كتاب")
	require.NoError(t, err)
	assert.Equal(t, 80.0, res.Confidence)
}

func TestPredict_ProbabilitiesCanBeDisabled(t *testing.T) {
	history := new(MockStore)
	expectAppend(history, "u1", 1)
	svc := newTestPredictionService(t, artifacttest.Bundle(t, categorizer.VotingSoft), history)
	svc.opts.IncludeProbabilities = false

	res, err := svc.Predict(context.Background(), "u1", "سرقة كتاب")
	require.NoError(t, err)
	assert.Empty(t, res.Probabilities)
	assert.Equal(t, 75.0, res.Confidence)
}

func TestPredict_BlankInputNeverReachesModelOrStore(t *testing.T) {
	history := new(MockStore)
	svc := newTestPredictionService(t, artifacttest.Bundle(t, categorizer.VotingSoft), history)

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := svc.Predict(context.Background(), "u1", text)
		assert.ErrorIs(t, err, models.ErrInput)
		assert.Equal(t, models.MsgInputRequired, models.PublicMessage(err))
	}
	history.AssertNotCalled(t, "AppendProblem", mock.Anything, mock.Anything, mock.Anything)
}

func TestPredict_MissingIdentity(t *testing.T) {
	history := new(MockStore)
	svc := newTestPredictionService(t, artifacttest.Bundle(t, categorizer.VotingSoft), history)

	_, err := svc.Predict(context.Background(), "", "سرقة كتاب")
	assert.ErrorIs(t, err, models.ErrMissingIdentity)
	assert.ErrorIs(t, err, models.ErrInput)
	history.AssertNotCalled(t, "AppendProblem", mock.Anything, mock.Anything, mock.Anything)
}

func TestPredict_ModelUnavailable(t *testing.T) {
	history := new(MockStore)
	svc := newTestPredictionService(t, nil, history)
	assert.False(t, svc.ModelLoaded())

	_, err := svc.Predict(context.Background(), "u1", "سرقة كتاب")
	assert.ErrorIs(t, err, models.ErrModelUnavailable)
	history.AssertNotCalled(t, "AppendProblem", mock.Anything, mock.Anything, mock.Anything)
}

func TestPredict_ClassificationFailureDoesNotAppend(t *testing.T) {
	vec, err := vectorizer.NewTFIDF(artifacttest.VectorizerParams())
	require.NoError(t, err)
	bundle, err := artifact.NewBundle(vec, brokenClassifier{dim: vec.Dim()}, artifacttest.Labels, artifacttest.Mapping(), nil)
	require.NoError(t, err)

	history := new(MockStore)
	svc := newTestPredictionService(t, bundle, history)

	_, err = svc.Predict(context.Background(), "u1", "سرقة كتاب")
	assert.ErrorIs(t, err, models.ErrClassification)
	assert.Equal(t, models.MsgPredictionFailed, models.PublicMessage(err))
	assert.NotContains(t, models.PublicMessage(err), "corrupt")
	history.AssertNotCalled(t, "AppendProblem", mock.Anything, mock.Anything, mock.Anything)
}

func TestPredict_StorageFailureFailsTheCall(t *testing.T) {
	history := new(MockStore)
	history.On("AppendProblem", mock.Anything, "u1", mock.Anything).Return(errors.New("disk full"))
	svc := newTestPredictionService(t, artifacttest.Bundle(t, categorizer.VotingSoft), history)

	res, err := svc.Predict(context.Background(), "u1", "سرقة كتاب")
	assert.Nil(t, res)
	assert.ErrorIs(t, err, models.ErrStorage)
	assert.Equal(t, models.MsgStorageFailed, models.PublicMessage(err))
}

func TestRoundPercent(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{41.666666, 41.67},
		{-3, 0},
		{100.0001, 100},
		{62.5, 62.5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, roundPercent(tt.in))
	}
}
