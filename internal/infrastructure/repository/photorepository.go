package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/chroma-excellence/chromaqa/internal/domain/report"
	"github.com/chroma-excellence/chromaqa/internal/infrastructure/persistence/mappers"
	"github.com/chroma-excellence/chromaqa/internal/infrastructure/persistence/models"
	"github.com/chroma-excellence/chromaqa/internal/shared/errors"
)

type photoRepository struct {
	db     *gorm.DB
	mapper mappers.PhotoMapper
}

func NewPhotoRepository(db *gorm.DB) report.PhotoRepository {
	return &photoRepository{
		db:     db,
		mapper: mappers.NewPhotoMapper(),
	}
}

func (r *photoRepository) Save(ctx context.Context, photo *report.Photo) error {
	model := r.mapper.ToModel(photo)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save photo: %w", err)
	}
	photo.ID = model.ID
	return nil
}

func (r *photoRepository) GetByReportID(ctx context.Context, reportID uint) ([]*report.Photo, error) {
	var rows []models.PhotoModel
	err := r.db.WithContext(ctx).
		Where("report_id = ?", reportID).
		Order("uploaded_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}

	photos := make([]*report.Photo, 0, len(rows))
	for i := range rows {
		photos = append(photos, r.mapper.ToDomain(&rows[i]))
	}
	return photos, nil
}

func (r *photoRepository) Delete(ctx context.Context, photoID uint) error {
	result := r.db.WithContext(ctx).Delete(&models.PhotoModel{}, photoID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete photo: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("photo %d not found", photoID))
	}
	return nil
}

func (r *photoRepository) DeleteByReportID(ctx context.Context, reportID uint) error {
	err := r.db.WithContext(ctx).
		Where("report_id = ?", reportID).
		Delete(&models.PhotoModel{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete photos for report %d: %w", reportID, err)
	}
	return nil
}
