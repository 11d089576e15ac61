package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/chroma-excellence/chromaqa/internal/domain/checklist"
	"github.com/chroma-excellence/chromaqa/internal/infrastructure/persistence/models"
)

type TemplateMapper interface {
	ToModel(t *checklist.Template) (*models.TemplateModel, error)
	ToDomain(m *models.TemplateModel) (*checklist.Template, error)
}

type TemplateMapperImpl struct{}

func NewTemplateMapper() TemplateMapper {
	return &TemplateMapperImpl{}
}

func (mp *TemplateMapperImpl) ToModel(t *checklist.Template) (*models.TemplateModel, error) {
	if t == nil {
		return nil, fmt.Errorf("template cannot be nil")
	}

	sections, err := json.Marshal(t.Sections)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sections: %w", err)
	}

	return &models.TemplateModel{
		Version:  t.Version,
		Type:     t.Type,
		Title:    t.Title,
		Sections: datatypes.JSON(sections),
	}, nil
}

func (mp *TemplateMapperImpl) ToDomain(m *models.TemplateModel) (*checklist.Template, error) {
	if m == nil {
		return nil, fmt.Errorf("template model cannot be nil")
	}

	var sections []checklist.Section
	if err := json.Unmarshal(m.Sections, &sections); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sections for template %s: %w", m.Version, err)
	}

	return &checklist.Template{
		Version:  m.Version,
		Type:     m.Type,
		Title:    m.Title,
		Sections: sections,
	}, nil
}
