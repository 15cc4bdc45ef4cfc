package tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"librisk/internal/app"
	"librisk/internal/artifact/artifacttest"
	"librisk/internal/categories"
	"librisk/internal/config"
	"librisk/internal/models"
	"librisk/internal/services"
	"librisk/pkg/categorizer"
)

func newTestApp(t *testing.T) *app.App {
	t.Helper()
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)
	cfg.Database.DSN = ":memory:"
	cfg.Model.Dir = artifacttest.WriteDir(t)
	require.NoError(t, cfg.Validate())

	a, err := app.NewApp(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a
}

// A technical complaint flows through every stage and lands in history.
func TestScenario_TechnicalProblemIsRecorded(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	res, err := a.PredictionService.Predict(ctx, "u1", "الكمبيوتر مش شغال")
	require.NoError(t, err)
	assert.Contains(t, a.Bundle.Labels, res.Category)
	assert.NotEmpty(t, res.Description)
	assert.NotEmpty(t, res.Solutions)
	assert.LessOrEqual(t, len(res.Solutions), 5)

	history, err := a.HistoryService.List(ctx, "u1", 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, res.ReportID, history[0].ID)
}

func TestScenario_EmptyInputLeavesHistoryAlone(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	_, err := a.PredictionService.Predict(ctx, "u1", "")
	require.ErrorIs(t, err, models.ErrInput)
	assert.Equal(t, models.MsgInputRequired, models.PublicMessage(err))

	history, err := a.HistoryService.List(ctx, "u1", 0)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestScenario_TwoCallsMostRecentFirst(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	_, err := a.PredictionService.Predict(ctx, "u1", "سرقة كتاب")
	require.NoError(t, err)
	_, err = a.PredictionService.Predict(ctx, "u1", "فيه تسريب مية في المخزن")
	require.NoError(t, err)

	history, err := a.HistoryService.List(ctx, "u1", 0)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "فيه تسريب مية في المخزن", history[0].ProblemText)
	assert.Equal(t, "سرقة كتاب", history[1].ProblemText)
}

func TestScenario_ClearOnlyAffectsOwner(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	for _, text := range []string{"سرقة كتاب", "الكمبيوتر مش شغال", "تسريب مية"} {
		_, err := a.PredictionService.Predict(ctx, "alice", text)
		require.NoError(t, err)
		_, err = a.PredictionService.Predict(ctx, "bob", text)
		require.NoError(t, err)
	}

	n, err := a.HistoryService.Clear(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	alice, err := a.HistoryService.List(ctx, "alice", 0)
	require.NoError(t, err)
	assert.Empty(t, alice)

	bob, err := a.HistoryService.List(ctx, "bob", 0)
	require.NoError(t, err)
	assert.Len(t, bob, 3)
	for _, r := range bob {
		assert.Equal(t, "bob", r.UserID)
	}
}

func TestScenario_NearSynonymLabelFallsBack(t *testing.T) {
	a := newTestApp(t)

	res := a.Resolver.Resolve("أمني")
	assert.Equal(t, "أمنية", res.Category)
	assert.Equal(t, categories.MatchSubstring, res.Match)
	assert.NotEmpty(t, res.Solutions)
}

func TestScenario_NearSynonymLabelThroughPredict(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()
	bundle := artifacttest.BundleWithLabels(t, categorizer.VotingSoft, artifacttest.MasculineLabels)
	svc := services.NewPredictionService(bundle, a.Normalizer, a.Resolver, a.Store, services.DefaultPredictionOptions())

	res, err := svc.Predict(ctx, "u1", "سرقة كتاب")
	require.NoError(t, err)

	want := a.Resolver.Resolve("أمنية")
	assert.Equal(t, "أمني", res.Category)
	assert.Equal(t, want.Description, res.Description)
	assert.Equal(t, want.Solutions, res.Solutions)
	assert.NotEqual(t, categories.DefaultCategory().Description, res.Description)
	assert.Equal(t, 75.0, res.Confidence)

	history, err := a.HistoryService.List(ctx, "u1", 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, res.ReportID, history[0].ID)
	assert.Equal(t, "أمني", history[0].Category)
	assert.Equal(t, want.Solutions, history[0].Solutions)
}

func TestConfidenceStaysInBounds(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	for _, text := range []string{"سرقة كتاب", "الكمبيوتر مش شغال", "xyz", "مشكلة غريبة جدا في المكتبة", "١٢٣ !!!"} {
		res, err := a.PredictionService.Predict(ctx, "u1", text)
		require.NoError(t, err, text)
		assert.GreaterOrEqual(t, res.Confidence, 0.0)
		assert.LessOrEqual(t, res.Confidence, 100.0)
	}
}
