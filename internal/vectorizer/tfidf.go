// Package vectorizer turns normalized text into TF-IDF features using the
// vocabulary and IDF weights exported by the training job.
package vectorizer

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Norm names accepted in Params.Norm.
const (
	NormL2   = "l2"
	NormL1   = "l1"
	NormNone = ""
)

// Params is the trained vectorizer state as exported by the training job.
type Params struct {
	Vocabulary  map[string]int `json:"vocabulary"`
	IDF         []float64      `json:"idf"`
	NgramRange  [2]int         `json:"ngram_range"`
	SublinearTF bool           `json:"sublinear_tf"`
	Norm        string         `json:"norm"`
	Lowercase   bool           `json:"lowercase"`
}

// TFIDF is immutable after construction and safe for concurrent use.
type TFIDF struct {
	vocab     map[string]int
	idf       []float64
	minN      int
	maxN      int
	sublinear bool
	norm      string
	lowercase bool
}

// NewTFIDF validates p and builds an encoder. Dimensionality is len(p.IDF).
func NewTFIDF(p Params) (*TFIDF, error) {
	if len(p.IDF) == 0 {
		return nil, errors.New("vectorizer: idf weights are empty")
	}
	if len(p.Vocabulary) != len(p.IDF) {
		return nil, fmt.Errorf("vectorizer: vocabulary has %d terms but idf has %d weights", len(p.Vocabulary), len(p.IDF))
	}
	seen := make([]bool, len(p.IDF))
	for term, idx := range p.Vocabulary {
		if idx < 0 || idx >= len(p.IDF) {
			return nil, fmt.Errorf("vectorizer: term %q has index %d outside [0,%d)", term, idx, len(p.IDF))
		}
		if seen[idx] {
			return nil, fmt.Errorf("vectorizer: index %d assigned to more than one term", idx)
		}
		seen[idx] = true
	}
	minN, maxN := p.NgramRange[0], p.NgramRange[1]
	if minN == 0 && maxN == 0 {
		minN, maxN = 1, 1
	}
	if minN < 1 || maxN < minN {
		return nil, fmt.Errorf("vectorizer: invalid ngram range [%d,%d]", minN, maxN)
	}
	switch p.Norm {
	case NormL2, NormL1, NormNone:
	default:
		return nil, fmt.Errorf("vectorizer: unsupported norm %q", p.Norm)
	}

	return &TFIDF{
		vocab:     p.Vocabulary,
		idf:       p.IDF,
		minN:      minN,
		maxN:      maxN,
		sublinear: p.SublinearTF,
		norm:      p.Norm,
		lowercase: p.Lowercase,
	}, nil
}

// Dim is the trained dimensionality.
func (t *TFIDF) Dim() int {
	return len(t.idf)
}

// Encode returns the weighted term-frequency vector for text. Terms outside
// the vocabulary are ignored; text without known terms yields a zero vector.
func (t *TFIDF) Encode(text string) SparseVector {
	counts := make(map[int]float64)
	tokens := t.tokenize(text)
	for n := t.minN; n <= t.maxN; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			term := tokens[i]
			if n > 1 {
				term = strings.Join(tokens[i:i+n], " ")
			}
			if idx, ok := t.vocab[term]; ok {
				counts[idx]++
			}
		}
	}

	vec := SparseVector{Dim: len(t.idf)}
	if len(counts) == 0 {
		return vec
	}
	vec.Indices = make([]int, 0, len(counts))
	for idx := range counts {
		vec.Indices = append(vec.Indices, idx)
	}
	sort.Ints(vec.Indices)

	vec.Values = make([]float64, len(vec.Indices))
	for k, idx := range vec.Indices {
		tf := counts[idx]
		if t.sublinear {
			tf = 1 + math.Log(tf)
		}
		vec.Values[k] = tf * t.idf[idx]
	}
	normalize(vec.Values, t.norm)
	return vec
}

// tokenize mirrors the trainer's default token pattern: runs of at least two
// word characters.
func (t *TFIDF) tokenize(text string) []string {
	if t.lowercase {
		text = strings.ToLower(text)
	}
	words := strings.FieldsFunc(text, func(r rune) bool {
		return !(r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r))
	})
	tokens := words[:0]
	for _, w := range words {
		if utf8.RuneCountInString(w) >= 2 {
			tokens = append(tokens, w)
		}
	}
	return tokens
}

func normalize(values []float64, norm string) {
	var total float64
	switch norm {
	case NormL2:
		for _, v := range values {
			total += v * v
		}
		total = math.Sqrt(total)
	case NormL1:
		for _, v := range values {
			total += math.Abs(v)
		}
	default:
		return
	}
	if total == 0 {
		return
	}
	for i := range values {
		values[i] /= total
	}
}
