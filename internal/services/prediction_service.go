package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"librisk/internal/artifact"
	"librisk/internal/categories"
	"librisk/internal/models"
	"librisk/internal/store"
	"librisk/internal/textnorm"
)

// PredictionService runs the classification pipeline and records each
// successful result in the caller's history.
type PredictionService struct {
	bundle     *artifact.Bundle
	normalizer *textnorm.Normalizer
	resolver   *categories.Resolver
	history    store.HistoryStore
	opts       PredictionOptions
	now        func() time.Time
}

// NewPredictionService wires the pipeline. bundle may be nil when the model
// failed to load; Predict then reports ErrModelUnavailable.
func NewPredictionService(bundle *artifact.Bundle, normalizer *textnorm.Normalizer, resolver *categories.Resolver, history store.HistoryStore, opts PredictionOptions) *PredictionService {
	if normalizer == nil {
		normalizer = textnorm.New(textnorm.DefaultOptions())
	}
	return &PredictionService{
		bundle:     bundle,
		normalizer: normalizer,
		resolver:   resolver,
		history:    history,
		opts:       opts,
		now:        time.Now,
	}
}

// ModelLoaded reports whether a model is available for Predict.
func (s *PredictionService) ModelLoaded() bool {
	return s.bundle != nil
}

// Predict classifies rawText for userID. The report is appended only once
// the full result exists; an append failure fails the call.
func (s *PredictionService) Predict(ctx context.Context, userID, rawText string) (*PredictionResult, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, models.ErrMissingIdentity
	}
	text := strings.TrimSpace(rawText)
	if text == "" {
		return nil, fmt.Errorf("%w: problem text is empty", models.ErrInput)
	}
	if s.bundle == nil || s.resolver == nil {
		return nil, models.ErrModelUnavailable
	}

	result, err := s.classify(text)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Classification failed")
		return nil, fmt.Errorf("%w: %v", models.ErrClassification, err)
	}

	report := &models.ProblemReport{
		UserID:      userID,
		ProblemText: text,
		Category:    result.Category,
		Confidence:  result.Confidence,
		Solutions:   result.Solutions,
		CreatedAt:   s.now(),
	}
	if err := s.history.AppendProblem(ctx, userID, report); err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Failed to append problem report")
		return nil, fmt.Errorf("%w: append report: %v", models.ErrStorage, err)
	}
	result.ReportID = report.ID

	log.WithFields(log.Fields{
		"user_id":    userID,
		"category":   result.Category,
		"confidence": result.Confidence,
		"report_id":  report.ID,
	}).Debug("Prediction recorded")
	return result, nil
}

// classify runs normalize, encode, classify and resolve. It has no side
// effects.
func (s *PredictionService) classify(text string) (*PredictionResult, error) {
	normalized := s.normalizer.Normalize(text)
	vec := s.bundle.Vectorizer.Encode(normalized)
	if vec.NNZ() == 0 {
		log.WithField("normalized", normalized).Debug("No known terms in text")
	}

	pred, err := s.bundle.Classifier.Classify(vec)
	if err != nil {
		return nil, err
	}
	label, err := s.bundle.Label(pred.ClassID)
	if err != nil {
		return nil, err
	}

	res := s.resolver.Resolve(label)
	category := label
	if strings.TrimSpace(label) == "" {
		category = res.Category
	}

	confidence := s.opts.DefaultConfidence
	if pred.HasProbabilities() {
		confidence = pred.MaxProbability() * 100
	}

	result := &PredictionResult{
		Category:    category,
		Description: res.Description,
		Confidence:  roundPercent(confidence),
		Solutions:   res.Solutions,
	}
	if s.opts.IncludeProbabilities && pred.HasProbabilities() {
		result.Probabilities = s.distribution(pred.Probabilities)
	}
	return result, nil
}

// distribution pairs probabilities with labels, highest first. Ties keep
// class order.
func (s *PredictionService) distribution(probs []float64) []models.LabelScore {
	classes := s.bundle.Classifier.Classes()
	scores := make([]models.LabelScore, 0, len(probs))
	for i, p := range probs {
		if i >= len(classes) {
			break
		}
		label, err := s.bundle.Label(classes[i])
		if err != nil {
			continue
		}
		scores = append(scores, models.LabelScore{Label: label, Confidence: roundPercent(p * 100)})
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Confidence > scores[j].Confidence
	})
	return scores
}

// roundPercent clamps to [0, 100] and rounds to two decimals.
func roundPercent(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		v = 100
	}
	return math.Round(v*100) / 100
}
