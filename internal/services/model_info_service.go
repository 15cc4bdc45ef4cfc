package services

import (
	"librisk/internal/models"
)

// ModelInfoService reports training metadata. It works without a loaded
// model so operators can still see what was trained.
type ModelInfoService struct {
	info      *models.ModelInfo
	loaded    bool
	fallbacks []string
}

// NewModelInfoService wraps info. categories is used when info lists none.
func NewModelInfoService(info *models.ModelInfo, loaded bool, categories []string) *ModelInfoService {
	if info == nil {
		info = &models.ModelInfo{}
	}
	return &ModelInfoService{info: info, loaded: loaded, fallbacks: categories}
}

// Info returns a copy of the metadata.
func (m *ModelInfoService) Info() models.ModelInfo {
	out := *m.info
	if len(out.Categories) == 0 {
		out.Categories = m.fallbacks
	}
	out.Categories = append([]string{}, out.Categories...)
	return out
}

// ModelLoaded reports whether the classifier itself loaded.
func (m *ModelInfoService) ModelLoaded() bool {
	return m.loaded
}
