package vectorizer

import (
	"fmt"
	"sort"
)

// SparseVector is a fixed-width feature vector storing only non-zero entries.
// Indices are strictly increasing.
type SparseVector struct {
	Dim     int
	Indices []int
	Values  []float64
}

// At returns the value at index i, or 0 for an absent entry.
func (v SparseVector) At(i int) float64 {
	k := sort.SearchInts(v.Indices, i)
	if k < len(v.Indices) && v.Indices[k] == i {
		return v.Values[k]
	}
	return 0
}

// NNZ is the number of stored (non-zero) entries.
func (v SparseVector) NNZ() int {
	return len(v.Indices)
}

// Validate checks the structural invariants of the vector.
func (v SparseVector) Validate() error {
	if len(v.Indices) != len(v.Values) {
		return fmt.Errorf("sparse vector has %d indices but %d values", len(v.Indices), len(v.Values))
	}
	prev := -1
	for _, i := range v.Indices {
		if i <= prev || i >= v.Dim {
			return fmt.Errorf("sparse vector index %d out of order or range (dim %d)", i, v.Dim)
		}
		prev = i
	}
	return nil
}
