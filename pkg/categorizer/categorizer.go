package categorizer

import (
	"librisk/internal/vectorizer"
)

// Prediction is the raw classifier output. ClassID is the label-encoder id
// of the winning class; Probabilities is aligned with Classifier.Classes and
// is nil when the model cannot estimate probabilities.
type Prediction struct {
	ClassID       int
	Probabilities []float64
}

// HasProbabilities reports whether a distribution is available.
func (p Prediction) HasProbabilities() bool {
	return len(p.Probabilities) > 0
}

// MaxProbability returns the largest probability, or 0 without a distribution.
func (p Prediction) MaxProbability() float64 {
	var best float64
	for _, v := range p.Probabilities {
		if v > best {
			best = v
		}
	}
	return best
}

// Classifier maps a feature vector to a class.
type Classifier interface {
	Classify(vec vectorizer.SparseVector) (Prediction, error)
	// Classes lists label-encoder ids in output order.
	Classes() []int
	// Dim is the feature dimensionality the model was trained on.
	Dim() int
}
