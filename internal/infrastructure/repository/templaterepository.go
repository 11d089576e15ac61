package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/chroma-excellence/chromaqa/internal/domain/checklist"
	"github.com/chroma-excellence/chromaqa/internal/infrastructure/persistence/mappers"
	"github.com/chroma-excellence/chromaqa/internal/infrastructure/persistence/models"
)

type templateRepository struct {
	db     *gorm.DB
	mapper mappers.TemplateMapper
}

func NewTemplateRepository(db *gorm.DB) checklist.TemplateRepository {
	return &templateRepository{
		db:     db,
		mapper: mappers.NewTemplateMapper(),
	}
}

func (r *templateRepository) GetByVersion(ctx context.Context, version string) (*checklist.Template, error) {
	var model models.TemplateModel
	err := r.db.WithContext(ctx).Where("version = ?", version).First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find template: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

func (r *templateRepository) GetLatestByType(ctx context.Context, reportType string) (*checklist.Template, error) {
	var model models.TemplateModel
	err := r.db.WithContext(ctx).
		Where("type = ?", reportType).
		Order("created_at DESC").
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find latest template: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

// Save inserts a new template version. Versions are immutable, so an
// existing row with the same version is left untouched.
func (r *templateRepository) Save(ctx context.Context, template *checklist.Template) error {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.TemplateModel{}).
		Where("version = ?", template.Version).
		Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check template version: %w", err)
	}
	if count > 0 {
		return nil
	}

	model, err := r.mapper.ToModel(template)
	if err != nil {
		return fmt.Errorf("failed to map template: %w", err)
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save template: %w", err)
	}
	return nil
}

func (r *templateRepository) List(ctx context.Context) ([]*checklist.Template, error) {
	var rows []models.TemplateModel
	if err := r.db.WithContext(ctx).Order("type ASC, created_at DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	templates := make([]*checklist.Template, 0, len(rows))
	for i := range rows {
		t, err := r.mapper.ToDomain(&rows[i])
		if err != nil {
			return nil, fmt.Errorf("failed to map template %s: %w", rows[i].Version, err)
		}
		templates = append(templates, t)
	}
	return templates, nil
}
