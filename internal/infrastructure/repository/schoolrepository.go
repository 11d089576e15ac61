package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/chroma-excellence/chromaqa/internal/domain/school"
	"github.com/chroma-excellence/chromaqa/internal/infrastructure/persistence/mappers"
	"github.com/chroma-excellence/chromaqa/internal/infrastructure/persistence/models"
	"github.com/chroma-excellence/chromaqa/internal/shared/errors"
)

type schoolRepository struct {
	db     *gorm.DB
	mapper mappers.SchoolMapper
}

func NewSchoolRepository(db *gorm.DB) school.Repository {
	return &schoolRepository{
		db:     db,
		mapper: mappers.NewSchoolMapper(),
	}
}

func (r *schoolRepository) Save(ctx context.Context, s *school.School) error {
	model := r.mapper.ToModel(s)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save school: %w", err)
	}
	return s.SetID(model.ID)
}

func (r *schoolRepository) Update(ctx context.Context, s *school.School) error {
	model := r.mapper.ToModel(s)
	result := r.db.WithContext(ctx).
		Model(&models.SchoolModel{}).
		Where("id = ?", model.ID).
		Select("name", "region", "address", "active", "updated_at").
		Updates(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update school: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("school %d not found", model.ID))
	}
	return nil
}

func (r *schoolRepository) Delete(ctx context.Context, schoolID uint) error {
	result := r.db.WithContext(ctx).Delete(&models.SchoolModel{}, schoolID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete school: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("school %d not found", schoolID))
	}
	return nil
}

func (r *schoolRepository) GetByID(ctx context.Context, schoolID uint) (*school.School, error) {
	var model models.SchoolModel
	err := r.db.WithContext(ctx).First(&model, schoolID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find school: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

func (r *schoolRepository) List(ctx context.Context, filter school.Filter) ([]*school.School, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.SchoolModel{})

	if filter.Region != nil {
		query = query.Where("region = ?", *filter.Region)
	}
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}
	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count schools: %w", err)
	}

	query = query.Order("name ASC")
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var rows []models.SchoolModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list schools: %w", err)
	}

	schools := make([]*school.School, 0, len(rows))
	for i := range rows {
		s, err := r.mapper.ToDomain(&rows[i])
		if err != nil {
			return nil, 0, fmt.Errorf("failed to map school %d: %w", rows[i].ID, err)
		}
		schools = append(schools, s)
	}

	return schools, total, nil
}
