// Package categories maps predicted labels to curated category metadata.
package categories

import (
	"errors"
	"fmt"
	"strings"

	"librisk/internal/models"
)

// DefaultMaxSolutions caps the suggestions returned per category.
const DefaultMaxSolutions = 5

// MatchKind records how a label was resolved.
type MatchKind string

const (
	MatchExact     MatchKind = "exact"
	MatchAlias     MatchKind = "alias"
	MatchSubstring MatchKind = "substring"
	MatchDefault   MatchKind = "default"
)

// Resolution is the category metadata for one label.
type Resolution struct {
	Category    string
	Description string
	Solutions   []string
	Match       MatchKind
}

// Resolver is immutable after construction and safe for concurrent use.
type Resolver struct {
	table        []models.Category
	byName       map[string]int
	byAlias      map[string]int
	fallback     models.Category
	maxSolutions int
}

// NewResolver builds a resolver over table (kept in the given order) and the
// default category. Trained solutions override a category's curated list
// when non-empty. Every category must end up with at least one solution.
func NewResolver(table []models.Category, fallback models.Category, trained map[string][]string, maxSolutions int) (*Resolver, error) {
	if maxSolutions < 1 {
		return nil, fmt.Errorf("categories: max solutions must be at least 1, got %d", maxSolutions)
	}
	if fallback.Name == "" {
		return nil, errors.New("categories: default category needs a name")
	}

	r := &Resolver{
		table:        make([]models.Category, 0, len(table)),
		byName:       make(map[string]int, len(table)),
		byAlias:      make(map[string]int),
		maxSolutions: maxSolutions,
	}
	for _, c := range table {
		if c.Name == "" {
			return nil, errors.New("categories: category without a name")
		}
		if _, dup := r.byName[c.Name]; dup {
			return nil, fmt.Errorf("categories: duplicate category %q", c.Name)
		}
		c.Solutions = pickSolutions(trained[c.Name], c.Solutions, maxSolutions)
		if len(c.Solutions) == 0 {
			return nil, fmt.Errorf("categories: category %q has no solutions", c.Name)
		}
		r.byName[c.Name] = len(r.table)
		r.table = append(r.table, c)
	}
	for i, c := range r.table {
		for _, alias := range c.Aliases {
			if _, taken := r.byName[alias]; taken {
				continue
			}
			if _, taken := r.byAlias[alias]; !taken {
				r.byAlias[alias] = i
			}
		}
	}

	fallback.Solutions = pickSolutions(trained[fallback.Name], fallback.Solutions, maxSolutions)
	if len(fallback.Solutions) == 0 {
		return nil, fmt.Errorf("categories: default category %q has no solutions", fallback.Name)
	}
	r.fallback = fallback
	return r, nil
}

// NewDefaultResolver uses the curated table and default category.
func NewDefaultResolver(trained map[string][]string, maxSolutions int) (*Resolver, error) {
	return NewResolver(CuratedTable(), DefaultCategory(), trained, maxSolutions)
}

// Resolve looks label up by exact name or alias, then by substring
// containment in either direction over the table in declaration order, and
// finally falls back to the default category.
func (r *Resolver) Resolve(label string) Resolution {
	label = strings.TrimSpace(label)
	if label == "" {
		return r.resolution(r.fallback, MatchDefault)
	}
	if i, ok := r.byName[label]; ok {
		return r.resolution(r.table[i], MatchExact)
	}
	if label == r.fallback.Name {
		return r.resolution(r.fallback, MatchExact)
	}
	if i, ok := r.byAlias[label]; ok {
		return r.resolution(r.table[i], MatchAlias)
	}
	for _, c := range r.table {
		if strings.Contains(label, c.Name) || strings.Contains(c.Name, label) {
			return r.resolution(c, MatchSubstring)
		}
	}
	return r.resolution(r.fallback, MatchDefault)
}

// Categories returns the table names in declaration order followed by the
// default category.
func (r *Resolver) Categories() []string {
	names := make([]string, 0, len(r.table)+1)
	for _, c := range r.table {
		names = append(names, c.Name)
	}
	return append(names, r.fallback.Name)
}

// MaxSolutions is the configured cap.
func (r *Resolver) MaxSolutions() int {
	return r.maxSolutions
}

func (r *Resolver) resolution(c models.Category, kind MatchKind) Resolution {
	solutions := make([]string, len(c.Solutions))
	copy(solutions, c.Solutions)
	return Resolution{
		Category:    c.Name,
		Description: c.Description,
		Solutions:   solutions,
		Match:       kind,
	}
}

// pickSolutions prefers the trained list, trimming blanks and duplicates,
// and caps the result.
func pickSolutions(trained, curated []string, max int) []string {
	if out := cleanSolutions(trained, max); len(out) > 0 {
		return out
	}
	return cleanSolutions(curated, max)
}

func cleanSolutions(in []string, max int) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
		if len(out) == max {
			break
		}
	}
	return out
}
