// Package artifact loads the immutable model files produced by the training
// job. A Bundle is built once at startup and shared read-only.
package artifact

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	log "github.com/sirupsen/logrus"

	"librisk/internal/models"
	"librisk/internal/vectorizer"
	"librisk/pkg/categorizer"
)

// Files names the artifact files inside the model directory.
type Files struct {
	Vectorizer      string `mapstructure:"vectorizer"`
	Classifier      string `mapstructure:"classifier"`
	Labels          string `mapstructure:"labels"`
	CategoryMapping string `mapstructure:"category_mapping"`
	Solutions       string `mapstructure:"solutions"`
	Info            string `mapstructure:"info"`
}

// DefaultFiles are the names the training job writes.
func DefaultFiles() Files {
	return Files{
		Vectorizer:      "vectorizer.json",
		Classifier:      "model.json",
		Labels:          "labels.json",
		CategoryMapping: "category_mapping.json",
		Solutions:       "solutions.json",
		Info:            "model_info.json",
	}
}

// Bundle is the loaded model state.
type Bundle struct {
	Vectorizer      *vectorizer.TFIDF
	Classifier      categorizer.Classifier
	Labels          []string
	CategoryMapping map[int]string
	// Solutions is the trained category -> solutions table; may be empty.
	Solutions map[string][]string
}

// NewBundle checks that the pieces agree with each other.
func NewBundle(vec *vectorizer.TFIDF, clf categorizer.Classifier, labels []string, mapping map[int]string, solutions map[string][]string) (*Bundle, error) {
	if vec == nil || clf == nil {
		return nil, errors.New("artifact: vectorizer and classifier are required")
	}
	if len(labels) == 0 {
		return nil, errors.New("artifact: label set is empty")
	}
	if vec.Dim() != clf.Dim() {
		return nil, fmt.Errorf("artifact: vectorizer dimension %d does not match classifier dimension %d", vec.Dim(), clf.Dim())
	}
	known := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		known[l] = struct{}{}
	}
	for id, label := range mapping {
		if _, ok := known[label]; !ok {
			return nil, fmt.Errorf("artifact: class %d maps to %q which is not in the label set", id, label)
		}
	}
	for _, id := range clf.Classes() {
		if _, ok := mapping[id]; !ok {
			return nil, fmt.Errorf("artifact: classifier class %d has no label mapping", id)
		}
	}
	if solutions == nil {
		solutions = map[string][]string{}
	}
	return &Bundle{
		Vectorizer:      vec,
		Classifier:      clf,
		Labels:          labels,
		CategoryMapping: mapping,
		Solutions:       solutions,
	}, nil
}

// Label resolves a classifier class id to its label string.
func (b *Bundle) Label(classID int) (string, error) {
	label, ok := b.CategoryMapping[classID]
	if !ok {
		return "", fmt.Errorf("artifact: no label for class %d", classID)
	}
	return label, nil
}

// Load reads every required artifact from dir. Any failure means the model
// is unavailable; the caller decides whether that is fatal.
func Load(dir string, files Files) (*Bundle, error) {
	var vecParams vectorizer.Params
	if err := readJSON(dir, files.Vectorizer, &vecParams); err != nil {
		return nil, err
	}
	vec, err := vectorizer.NewTFIDF(vecParams)
	if err != nil {
		return nil, fmt.Errorf("artifact: %s: %w", files.Vectorizer, err)
	}

	var forestParams categorizer.ForestParams
	if err := readJSON(dir, files.Classifier, &forestParams); err != nil {
		return nil, err
	}
	forest, err := categorizer.NewForest(forestParams)
	if err != nil {
		return nil, fmt.Errorf("artifact: %s: %w", files.Classifier, err)
	}

	var labels []string
	if err := readJSON(dir, files.Labels, &labels); err != nil {
		return nil, err
	}

	var rawMapping map[string]string
	if err := readJSON(dir, files.CategoryMapping, &rawMapping); err != nil {
		return nil, err
	}
	mapping := make(map[int]string, len(rawMapping))
	for k, v := range rawMapping {
		id, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("artifact: %s: class key %q is not an integer", files.CategoryMapping, k)
		}
		mapping[id] = v
	}

	solutions := map[string][]string{}
	if files.Solutions != "" {
		err := readJSON(dir, files.Solutions, &solutions)
		switch {
		case errors.Is(err, os.ErrNotExist):
			log.Warnf("Solutions file %s not found, using curated solutions only", files.Solutions)
		case err != nil:
			return nil, err
		}
	}

	bundle, err := NewBundle(vec, forest, labels, mapping, solutions)
	if err != nil {
		return nil, err
	}
	log.Infof("Loaded model from %s: %d labels, %d features, %s voting", dir, len(labels), vec.Dim(), forest.Voting())
	return bundle, nil
}

// LoadInfo reads the training metadata. It is independent of Load so model
// information stays available when the model itself is broken. A missing
// file yields empty metadata.
func LoadInfo(dir string, files Files) (*models.ModelInfo, error) {
	info := &models.ModelInfo{}
	if files.Info == "" {
		return info, nil
	}
	err := readJSON(dir, files.Info, info)
	if errors.Is(err, os.ErrNotExist) {
		log.Warnf("Model info file %s not found", files.Info)
		return &models.ModelInfo{}, nil
	}
	if err != nil {
		return nil, err
	}
	return info, nil
}

func readJSON(dir, name string, dest interface{}) error {
	if name == "" {
		return errors.New("artifact: file name not configured")
	}
	path := filepath.Join(dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("artifact: read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("artifact: decode %s: %w", path, err)
	}
	return nil
}
