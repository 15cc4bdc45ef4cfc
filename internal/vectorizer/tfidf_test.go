package vectorizer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEncoder(t *testing.T, mutate func(*Params)) *TFIDF {
	t.Helper()
	p := Params{
		Vocabulary: map[string]int{
			"الكمبيوتر":       0,
			"شغال":            1,
			"الكمبيوتر شغال":  2,
			"تسريب":           3,
		},
		IDF:        []float64{1, 2, 1, 1.5},
		NgramRange: [2]int{1, 2},
		Norm:       NormL2,
		Lowercase:  true,
	}
	if mutate != nil {
		mutate(&p)
	}
	enc, err := NewTFIDF(p)
	require.NoError(t, err)
	return enc
}

func TestTFIDF_EncodeUnigramsAndBigrams(t *testing.T) {
	enc := newTestEncoder(t, nil)

	vec := enc.Encode("الكمبيوتر شغال")
	require.NoError(t, vec.Validate())
	assert.Equal(t, 4, vec.Dim)
	assert.Equal(t, []int{0, 1, 2}, vec.Indices)

	norm := math.Sqrt(1 + 4 + 1)
	assert.InDelta(t, 1/norm, vec.At(0), 1e-9)
	assert.InDelta(t, 2/norm, vec.At(1), 1e-9)
	assert.InDelta(t, 1/norm, vec.At(2), 1e-9)
	assert.Zero(t, vec.At(3))
}

func TestTFIDF_EncodeUnknownAndEmpty(t *testing.T) {
	enc := newTestEncoder(t, nil)

	for _, text := range []string{"", "كلام غير معروف", "!!!"} {
		vec := enc.Encode(text)
		assert.Equal(t, 4, vec.Dim)
		assert.Zero(t, vec.NNZ(), "text %q", text)
		assert.Empty(t, vec.Values)
	}
}

func TestTFIDF_RepeatedTermsAndSublinear(t *testing.T) {
	raw := newTestEncoder(t, func(p *Params) { p.Norm = NormNone })
	vec := raw.Encode("تسريب تسريب تسريب")
	assert.InDelta(t, 4.5, vec.At(3), 1e-9)

	sub := newTestEncoder(t, func(p *Params) { p.Norm = NormNone; p.SublinearTF = true })
	vec = sub.Encode("تسريب تسريب تسريب")
	assert.InDelta(t, (1+math.Log(3))*1.5, vec.At(3), 1e-9)
}

func TestTFIDF_LowercaseAndShortTokens(t *testing.T) {
	enc, err := NewTFIDF(Params{
		Vocabulary: map[string]int{"wifi": 0, "router": 1},
		IDF:        []float64{1, 1},
		NgramRange: [2]int{1, 1},
		Norm:       NormL1,
		Lowercase:  true,
	})
	require.NoError(t, err)

	vec := enc.Encode("WiFi a ROUTER")
	assert.InDelta(t, 0.5, vec.At(0), 1e-9)
	assert.InDelta(t, 0.5, vec.At(1), 1e-9)
}

func TestNewTFIDF_Validation(t *testing.T) {
	testCases := []struct {
		name   string
		params Params
	}{
		{name: "empty idf", params: Params{}},
		{name: "size mismatch", params: Params{Vocabulary: map[string]int{"a": 0}, IDF: []float64{1, 1}}},
		{name: "index out of range", params: Params{Vocabulary: map[string]int{"ab": 2}, IDF: []float64{1}}},
		{name: "duplicate index", params: Params{Vocabulary: map[string]int{"ab": 0, "cd": 0}, IDF: []float64{1, 1}}},
		{name: "bad ngram range", params: Params{Vocabulary: map[string]int{"ab": 0}, IDF: []float64{1}, NgramRange: [2]int{2, 1}}},
		{name: "bad norm", params: Params{Vocabulary: map[string]int{"ab": 0}, IDF: []float64{1}, Norm: "max"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewTFIDF(tc.params)
			assert.Error(t, err)
		})
	}
}

func TestSparseVector_Validate(t *testing.T) {
	assert.NoError(t, SparseVector{Dim: 3, Indices: []int{0, 2}, Values: []float64{1, 2}}.Validate())
	assert.Error(t, SparseVector{Dim: 3, Indices: []int{2, 0}, Values: []float64{1, 2}}.Validate())
	assert.Error(t, SparseVector{Dim: 2, Indices: []int{2}, Values: []float64{1}}.Validate())
	assert.Error(t, SparseVector{Dim: 3, Indices: []int{0}, Values: nil}.Validate())
}
