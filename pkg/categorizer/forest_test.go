package categorizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"librisk/internal/artifact/artifacttest"
	"librisk/internal/vectorizer"
	"librisk/pkg/categorizer"
)

func dense(values ...float64) vectorizer.SparseVector {
	v := vectorizer.SparseVector{Dim: len(values)}
	for i, x := range values {
		if x != 0 {
			v.Indices = append(v.Indices, i)
			v.Values = append(v.Values, x)
		}
	}
	return v
}

func TestForest_SoftVoting(t *testing.T) {
	forest, err := categorizer.NewForest(artifacttest.ForestParams(categorizer.VotingSoft))
	require.NoError(t, err)

	testCases := []struct {
		name      string
		vec       vectorizer.SparseVector
		wantClass int
		wantProba []float64
	}{
		{
			name:      "computer bigram",
			vec:       dense(0, 0, 0.5, 0.5, 0, 0, 0.7),
			wantClass: 1,
			wantProba: []float64{0, 1, 0},
		},
		{
			name:      "theft",
			vec:       dense(0.7, 0.7, 0, 0, 0, 0, 0),
			wantClass: 0,
			wantProba: []float64{0.75, 0.125, 0.125},
		},
		{
			name:      "leak",
			vec:       dense(0, 0, 0, 0, 0.7, 0.7, 0),
			wantClass: 2,
			wantProba: []float64{0.25, 0.125, 0.625},
		},
		{
			name:      "zero vector",
			vec:       dense(0, 0, 0, 0, 0, 0, 0),
			wantClass: 0,
			wantProba: []float64{5.0 / 12, 7.0 / 24, 7.0 / 24},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			pred, err := forest.Classify(tc.vec)
			require.NoError(t, err)
			assert.Equal(t, tc.wantClass, pred.ClassID)
			require.True(t, pred.HasProbabilities())
			assert.InDeltaSlice(t, tc.wantProba, pred.Probabilities, 1e-9)

			var sum float64
			for _, p := range pred.Probabilities {
				sum += p
			}
			assert.InDelta(t, 1.0, sum, 1e-9)
		})
	}
}

func TestForest_HardVotingHasNoDistribution(t *testing.T) {
	forest, err := categorizer.NewForest(artifacttest.ForestParams(categorizer.VotingHard))
	require.NoError(t, err)

	pred, err := forest.Classify(dense(0, 0, 0, 0, 0.7, 0.7, 0))
	require.NoError(t, err)
	// tree A votes class 2, tree B votes class 0; tie goes to the lower position.
	assert.Equal(t, 0, pred.ClassID)
	assert.False(t, pred.HasProbabilities())
	assert.Zero(t, pred.MaxProbability())

	pred, err = forest.Classify(dense(0, 0, 0.5, 0.5, 0, 0, 0.7))
	require.NoError(t, err)
	assert.Equal(t, 1, pred.ClassID)
}

func TestForest_ClassifyRejectsBadVectors(t *testing.T) {
	forest, err := categorizer.NewForest(artifacttest.ForestParams(categorizer.VotingSoft))
	require.NoError(t, err)

	_, err = forest.Classify(dense(1, 2, 3))
	assert.Error(t, err)

	_, err = forest.Classify(vectorizer.SparseVector{Dim: 7, Indices: []int{3, 1}, Values: []float64{1, 1}})
	assert.Error(t, err)
}

func TestNewForest_Validation(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(p *categorizer.ForestParams)
	}{
		{name: "unknown voting", mutate: func(p *categorizer.ForestParams) { p.Voting = "weighted" }},
		{name: "no features", mutate: func(p *categorizer.ForestParams) { p.NFeatures = 0 }},
		{name: "no classes", mutate: func(p *categorizer.ForestParams) { p.Classes = nil }},
		{name: "no trees", mutate: func(p *categorizer.ForestParams) { p.Trees = nil }},
		{name: "child points backwards", mutate: func(p *categorizer.ForestParams) { p.Trees[0].ChildrenLeft[1] = 0 }},
		{name: "feature out of range", mutate: func(p *categorizer.ForestParams) { p.Trees[1].Feature[0] = 99 }},
		{name: "empty leaf", mutate: func(p *categorizer.ForestParams) { p.Trees[1].Value[2] = []float64{0, 0, 0} }},
		{name: "short leaf", mutate: func(p *categorizer.ForestParams) { p.Trees[1].Value[1] = []float64{1} }},
		{name: "ragged arrays", mutate: func(p *categorizer.ForestParams) { p.Trees[1].Threshold = p.Trees[1].Threshold[:1] }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := artifacttest.ForestParams(categorizer.VotingSoft)
			tc.mutate(&p)
			_, err := categorizer.NewForest(p)
			assert.Error(t, err)
		})
	}
}

func TestForest_DefaultsToSoftVoting(t *testing.T) {
	forest, err := categorizer.NewForest(artifacttest.ForestParams(""))
	require.NoError(t, err)
	assert.Equal(t, categorizer.VotingSoft, forest.Voting())
	assert.Equal(t, 7, forest.Dim())
}
