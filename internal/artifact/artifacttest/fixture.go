// Package artifacttest provides a small, hand-computed model for tests.
//
// Expected predictions with the default normalizer:
//
//	"الكمبيوتر مش شغال"        -> تقنية  100
//	"سرقة كتاب"                -> أمنية  75
//	"فيه تسريب مية في المخزن"  -> بيئية  62.5
//	anything without known terms -> أمنية 41.67
package artifacttest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"librisk/internal/artifact"
	"librisk/internal/models"
	"librisk/internal/vectorizer"
	"librisk/pkg/categorizer"
)

// Labels in class order.
var Labels = []string{"أمنية", "تقنية", "بيئية"}

// MasculineLabels spells class 0 as "أمني", a variant the curated table only
// reaches by substring.
var MasculineLabels = []string{"أمني", "تقنية", "بيئية"}

// VectorizerParams returns a seven-term vocabulary with unit IDF.
func VectorizerParams() vectorizer.Params {
	return vectorizer.Params{
		Vocabulary: map[string]int{
			"سرقه":           0,
			"كتاب":           1,
			"الكمبيوتر":      2,
			"شغال":           3,
			"تسريب":          4,
			"ميه":            5,
			"الكمبيوتر شغال": 6,
		},
		IDF:        []float64{1, 1, 1, 1, 1, 1, 1},
		NgramRange: [2]int{1, 2},
		Norm:       vectorizer.NormL2,
		Lowercase:  true,
	}
}

// ForestParams returns two trees: the first splits on theft, computer and
// leak terms, the second on the "computer working" bigram.
func ForestParams(voting string) categorizer.ForestParams {
	return categorizer.ForestParams{
		ModelType: "RandomForestClassifier",
		Voting:    voting,
		NFeatures: 7,
		Classes:   []int{0, 1, 2},
		Trees: []categorizer.TreeParams{
			{
				ChildrenLeft:  []int{1, 3, -1, 5, -1, -1, -1},
				ChildrenRight: []int{2, 4, -1, 6, -1, -1, -1},
				Feature:       []int{0, 2, -2, 4, -2, -2, -2},
				Threshold:     []float64{0, 0, -2, 0, -2, -2, -2},
				Value: [][]float64{
					{6, 5, 4}, {1, 5, 4}, {5, 0, 0}, {1, 1, 4},
					{0, 4, 0}, {1, 1, 1}, {0, 0, 3},
				},
			},
			{
				ChildrenLeft:  []int{1, -1, -1},
				ChildrenRight: []int{2, -1, -1},
				Feature:       []int{6, -2, -2},
				Threshold:     []float64{0, -2, -2},
				Value:         [][]float64{{2, 3, 1}, {2, 1, 1}, {0, 2, 0}},
			},
		},
	}
}

// Mapping is the class id -> label table.
func Mapping() map[int]string {
	return mappingFor(Labels)
}

func mappingFor(labels []string) map[int]string {
	m := make(map[int]string, len(labels))
	for id, label := range labels {
		m[id] = label
	}
	return m
}

// Solutions is the trained solutions table. تقنية is deliberately absent so
// the curated list is used.
func Solutions() map[string][]string {
	return map[string][]string{
		"أمنية": {"تركيب كاميرات مراقبة", "توظيف حراس أمن", "تركيب بوابات إلكترونية", "وضع شرائح أمان على الكتب", "جرد دوري للمقتنيات", "تسجيل الزوار"},
		"بيئية": {"إصلاح التسريبات فوراً", "تركيب أجهزة لقياس الرطوبة"},
	}
}

// Info is the training metadata.
func Info() models.ModelInfo {
	return models.ModelInfo{
		TrainingDate: "2025-01-15T10:00:00",
		Accuracy:     0.87,
		NumSamples:   1200,
		NumFeatures:  7,
		ModelType:    "RandomForestClassifier",
		Categories:   Labels,
	}
}

// Bundle builds the fixture in memory.
func Bundle(t testing.TB, voting string) *artifact.Bundle {
	t.Helper()
	return BundleWithLabels(t, voting, Labels)
}

// BundleWithLabels builds the fixture with labels in place of Labels. It
// must have one entry per class.
func BundleWithLabels(t testing.TB, voting string, labels []string) *artifact.Bundle {
	t.Helper()
	vec, err := vectorizer.NewTFIDF(VectorizerParams())
	require.NoError(t, err)
	forest, err := categorizer.NewForest(ForestParams(voting))
	require.NoError(t, err)
	b, err := artifact.NewBundle(vec, forest, labels, mappingFor(labels), Solutions())
	require.NoError(t, err)
	return b
}

// WriteDir writes every artifact file into a fresh temp directory.
func WriteDir(t testing.TB) string {
	t.Helper()
	dir := t.TempDir()
	files := artifact.DefaultFiles()

	mapping := map[string]string{}
	for id, label := range Mapping() {
		mapping[jsonKey(id)] = label
	}

	write := func(name string, v interface{}) {
		data, err := json.MarshalIndent(v, "", "  ")
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
	}
	write(files.Vectorizer, VectorizerParams())
	write(files.Classifier, ForestParams(categorizer.VotingSoft))
	write(files.Labels, Labels)
	write(files.CategoryMapping, mapping)
	write(files.Solutions, Solutions())
	write(files.Info, Info())
	return dir
}

func jsonKey(id int) string {
	b, _ := json.Marshal(id)
	return string(b)
}
