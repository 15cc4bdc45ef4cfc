package categorizer

import (
	"errors"
	"fmt"

	"librisk/internal/vectorizer"
)

// Voting modes for the tree ensemble.
const (
	VotingSoft = "soft"
	VotingHard = "hard"
)

// treeLeaf marks a node without children, as in the exporter's arrays.
const treeLeaf = -1

// TreeParams is one decision tree in parallel-array form. A node i is a leaf
// when ChildrenLeft[i] == -1; otherwise samples with
// x[Feature[i]] <= Threshold[i] go left.
type TreeParams struct {
	ChildrenLeft  []int       `json:"children_left"`
	ChildrenRight []int       `json:"children_right"`
	Feature       []int       `json:"feature"`
	Threshold     []float64   `json:"threshold"`
	Value         [][]float64 `json:"value"`
}

// ForestParams is the exported ensemble.
type ForestParams struct {
	ModelType string       `json:"model_type"`
	Voting    string       `json:"voting"`
	NFeatures int          `json:"n_features"`
	Classes   []int        `json:"classes"`
	Trees     []TreeParams `json:"trees"`
}

// Forest is an immutable ensemble of decision trees, safe for concurrent use.
type Forest struct {
	voting    string
	nFeatures int
	classes   []int
	trees     []TreeParams
}

var _ Classifier = (*Forest)(nil)

// NewForest validates the exported arrays so that Classify cannot loop or
// index out of range.
func NewForest(p ForestParams) (*Forest, error) {
	voting := p.Voting
	if voting == "" {
		voting = VotingSoft
	}
	if voting != VotingSoft && voting != VotingHard {
		return nil, fmt.Errorf("forest: unsupported voting %q", p.Voting)
	}
	if p.NFeatures <= 0 {
		return nil, errors.New("forest: n_features must be positive")
	}
	if len(p.Classes) == 0 {
		return nil, errors.New("forest: no classes")
	}
	if len(p.Trees) == 0 {
		return nil, errors.New("forest: no trees")
	}
	for i, tree := range p.Trees {
		if err := validateTree(tree, p.NFeatures, len(p.Classes)); err != nil {
			return nil, fmt.Errorf("forest: tree %d: %w", i, err)
		}
	}
	return &Forest{
		voting:    voting,
		nFeatures: p.NFeatures,
		classes:   p.Classes,
		trees:     p.Trees,
	}, nil
}

func validateTree(t TreeParams, nFeatures, nClasses int) error {
	n := len(t.ChildrenLeft)
	if n == 0 {
		return errors.New("empty tree")
	}
	if len(t.ChildrenRight) != n || len(t.Feature) != n || len(t.Threshold) != n || len(t.Value) != n {
		return errors.New("node arrays differ in length")
	}
	for i := 0; i < n; i++ {
		left, right := t.ChildrenLeft[i], t.ChildrenRight[i]
		if left == treeLeaf {
			if len(t.Value[i]) != nClasses {
				return fmt.Errorf("leaf %d has %d values, want %d", i, len(t.Value[i]), nClasses)
			}
			var sum float64
			for _, v := range t.Value[i] {
				if v < 0 {
					return fmt.Errorf("leaf %d has a negative value", i)
				}
				sum += v
			}
			if sum == 0 {
				return fmt.Errorf("leaf %d is empty", i)
			}
			continue
		}
		// Children always follow their parent; this also rules out cycles.
		if left <= i || left >= n || right <= i || right >= n {
			return fmt.Errorf("node %d has invalid children (%d, %d)", i, left, right)
		}
		if f := t.Feature[i]; f < 0 || f >= nFeatures {
			return fmt.Errorf("node %d splits on feature %d outside [0,%d)", i, f, nFeatures)
		}
	}
	return nil
}

// Classes implements Classifier.
func (f *Forest) Classes() []int {
	return f.classes
}

// Dim implements Classifier.
func (f *Forest) Dim() int {
	return f.nFeatures
}

// Voting returns the ensemble's voting mode.
func (f *Forest) Voting() string {
	return f.voting
}

// Classify implements Classifier. Ties go to the lowest class position.
func (f *Forest) Classify(vec vectorizer.SparseVector) (Prediction, error) {
	if vec.Dim != f.nFeatures {
		return Prediction{}, fmt.Errorf("forest: vector has dimension %d, model expects %d", vec.Dim, f.nFeatures)
	}
	if err := vec.Validate(); err != nil {
		return Prediction{}, fmt.Errorf("forest: %w", err)
	}

	scores := make([]float64, len(f.classes))
	for i := range f.trees {
		leaf, err := f.leafValue(&f.trees[i], vec)
		if err != nil {
			return Prediction{}, fmt.Errorf("forest: tree %d: %w", i, err)
		}
		if f.voting == VotingHard {
			scores[argmax(leaf)]++
			continue
		}
		var sum float64
		for _, v := range leaf {
			sum += v
		}
		for c, v := range leaf {
			scores[c] += v / sum
		}
	}

	best := argmax(scores)
	pred := Prediction{ClassID: f.classes[best]}
	if f.voting == VotingSoft {
		n := float64(len(f.trees))
		for c := range scores {
			scores[c] /= n
		}
		pred.Probabilities = scores
	}
	return pred, nil
}

func (f *Forest) leafValue(t *TreeParams, vec vectorizer.SparseVector) ([]float64, error) {
	node := 0
	for steps := 0; steps <= len(t.ChildrenLeft); steps++ {
		if node < 0 || node >= len(t.ChildrenLeft) {
			return nil, fmt.Errorf("node index %d out of range", node)
		}
		if t.ChildrenLeft[node] == treeLeaf {
			return t.Value[node], nil
		}
		if vec.At(t.Feature[node]) <= t.Threshold[node] {
			node = t.ChildrenLeft[node]
		} else {
			node = t.ChildrenRight[node]
		}
	}
	return nil, errors.New("traversal did not reach a leaf")
}

func argmax(xs []float64) int {
	best := 0
	for i, v := range xs {
		if v > xs[best] {
			best = i
		}
	}
	return best
}
