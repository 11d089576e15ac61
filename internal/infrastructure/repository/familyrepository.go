package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/chroma-excellence/chromaqa/internal/domain/portal"
	"github.com/chroma-excellence/chromaqa/internal/infrastructure/persistence/mappers"
	"github.com/chroma-excellence/chromaqa/internal/infrastructure/persistence/models"
	"github.com/chroma-excellence/chromaqa/internal/shared/errors"
)

type familyRepository struct {
	db     *gorm.DB
	mapper mappers.FamilyMapper
}

func NewFamilyRepository(db *gorm.DB) portal.FamilyRepository {
	return &familyRepository{
		db:     db,
		mapper: mappers.NewFamilyMapper(),
	}
}

func (r *familyRepository) Save(ctx context.Context, f *portal.Family) error {
	model := r.mapper.ToModel(f)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save family: %w", err)
	}
	return f.SetID(model.ID)
}

func (r *familyRepository) Update(ctx context.Context, f *portal.Family) error {
	model := r.mapper.ToModel(f)
	result := r.db.WithContext(ctx).
		Model(&models.FamilyModel{}).
		Where("id = ?", model.ID).
		Select("name", "pin_hash", "active").
		Updates(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update family: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("family %d not found", model.ID))
	}
	return nil
}

func (r *familyRepository) GetByID(ctx context.Context, familyID uint) (*portal.Family, error) {
	var model models.FamilyModel
	err := r.db.WithContext(ctx).First(&model, familyID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find family: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

func (r *familyRepository) ListActive(ctx context.Context) ([]*portal.Family, error) {
	var rows []models.FamilyModel
	if err := r.db.WithContext(ctx).Where("active = ?", true).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list families: %w", err)
	}

	families := make([]*portal.Family, 0, len(rows))
	for i := range rows {
		f, err := r.mapper.ToDomain(&rows[i])
		if err != nil {
			return nil, fmt.Errorf("failed to map family %d: %w", rows[i].ID, err)
		}
		families = append(families, f)
	}
	return families, nil
}
