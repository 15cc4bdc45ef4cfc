package models

import (
	"time"
)

// User is an opaque caller identity. It carries no attributes beyond the
// identifier and the time it was first seen.
type User struct {
	ID        string    `db:"id" json:"id"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// ProblemReport is one classified problem owned by a single user.
// Reports are append-only; nothing updates a stored report.
type ProblemReport struct {
	ID          int64     `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"-"`
	ProblemText string    `db:"problem_text" json:"problem"`
	Category    string    `db:"category" json:"category"`
	Confidence  float64   `db:"confidence" json:"confidence"` // percentage, 0-100
	Solutions   []string  `db:"solutions" json:"solutions"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// Category is a curated risk category with its remediation suggestions.
type Category struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Solutions   []string `json:"solutions"`
	Aliases     []string `json:"aliases,omitempty"`
}

// ModelInfo is the metadata the training job writes next to the model.
type ModelInfo struct {
	TrainingDate string   `json:"training_date"`
	Accuracy     float64  `json:"accuracy"`
	NumSamples   int      `json:"num_samples"`
	NumFeatures  int      `json:"num_features"`
	ModelType    string   `json:"model_type"`
	Categories   []string `json:"categories"`
}

// LabelScore is one entry of a probability distribution over labels.
type LabelScore struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}
