package services

import "librisk/internal/models"

// PredictionResult is the outcome of one successful Predict call.
type PredictionResult struct {
	Category    string `json:"category"`
	Description string `json:"description"`
	// Confidence is a percentage in [0, 100] rounded to two decimals.
	Confidence float64  `json:"confidence"`
	Solutions  []string `json:"solutions"`
	// Probabilities is the per-label distribution, highest first. Empty when
	// the model has no probability estimates or they were not requested.
	Probabilities []models.LabelScore `json:"probabilities,omitempty"`
	ReportID      int64               `json:"reportId"`
}

// PredictionOptions tunes PredictionService.
type PredictionOptions struct {
	// DefaultConfidence is reported when the classifier has no distribution.
	DefaultConfidence    float64
	IncludeProbabilities bool
}

// DefaultPredictionOptions returns the options used when none are configured.
func DefaultPredictionOptions() PredictionOptions {
	return PredictionOptions{DefaultConfidence: 100, IncludeProbabilities: true}
}
