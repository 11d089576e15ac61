package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/chroma-excellence/chromaqa/internal/domain/report"
	"github.com/chroma-excellence/chromaqa/internal/infrastructure/persistence/mappers"
	"github.com/chroma-excellence/chromaqa/internal/infrastructure/persistence/models"
)

type summaryRepository struct {
	db     *gorm.DB
	mapper mappers.SummaryMapper
}

func NewSummaryRepository(db *gorm.DB) report.SummaryRepository {
	return &summaryRepository{
		db:     db,
		mapper: mappers.NewSummaryMapper(),
	}
}

// Save marks any current summary for the report as superseded and inserts
// the new one in a single transaction.
func (r *summaryRepository) Save(ctx context.Context, summary *report.Summary) error {
	model := r.mapper.ToModel(summary)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.SummaryModel{}).
			Where("report_id = ? AND superseded = ?", model.ReportID, false).
			Update("superseded", true).Error; err != nil {
			return err
		}
		return tx.Create(model).Error
	})
	if err != nil {
		return fmt.Errorf("failed to save summary: %w", err)
	}

	summary.ID = model.ID
	return nil
}

func (r *summaryRepository) GetCurrentByReportID(ctx context.Context, reportID uint) (*report.Summary, error) {
	var model models.SummaryModel
	err := r.db.WithContext(ctx).
		Where("report_id = ? AND superseded = ?", reportID, false).
		Order("generated_at DESC").
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find summary: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

func (r *summaryRepository) DeleteByReportID(ctx context.Context, reportID uint) error {
	err := r.db.WithContext(ctx).
		Where("report_id = ?", reportID).
		Delete(&models.SummaryModel{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete summaries for report %d: %w", reportID, err)
	}
	return nil
}
