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

// allowedReportOrderByFields whitelists sortable columns to prevent SQL
// injection through the sort parameter.
var allowedReportOrderByFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"updated_at":      true,
	"inspection_date": true,
	"status":          true,
}

type reportRepository struct {
	db     *gorm.DB
	mapper mappers.ReportMapper
}

func NewReportRepository(db *gorm.DB) report.Repository {
	return &reportRepository{
		db:     db,
		mapper: mappers.NewReportMapper(),
	}
}

func (r *reportRepository) Save(ctx context.Context, rep *report.Report) error {
	model, err := r.mapper.ToModel(rep)
	if err != nil {
		return fmt.Errorf("failed to map report: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}

	return rep.SetID(model.ID)
}

// Update writes the aggregate only if the persisted row still carries the
// version the caller last observed. A non-matching version means another
// writer got there first and the caller must reload.
func (r *reportRepository) Update(ctx context.Context, rep *report.Report, expectedVersion int) error {
	model, err := r.mapper.ToModel(rep)
	if err != nil {
		return fmt.Errorf("failed to map report: %w", err)
	}

	result := r.db.WithContext(ctx).
		Model(&models.ReportModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Select("status", "responses", "closing_notes", "version", "updated_at").
		Updates(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update report: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&models.ReportModel{}).
			Where("id = ?", model.ID).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check report existence: %w", err)
		}
		if count == 0 {
			return errors.NewNotFoundError(fmt.Sprintf("report %d not found", model.ID))
		}
		return errors.NewConflictError(fmt.Sprintf("report %d was modified concurrently", model.ID))
	}

	return nil
}

func (r *reportRepository) Delete(ctx context.Context, reportID uint) error {
	result := r.db.WithContext(ctx).Delete(&models.ReportModel{}, reportID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete report: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("report %d not found", reportID))
	}
	return nil
}

func (r *reportRepository) GetByID(ctx context.Context, reportID uint) (*report.Report, error) {
	var model models.ReportModel
	err := r.db.WithContext(ctx).First(&model, reportID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find report: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *reportRepository) List(ctx context.Context, filter report.Filter) ([]*report.Report, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ReportModel{})

	if filter.SchoolID != nil {
		query = query.Where("school_id = ?", *filter.SchoolID)
	}
	if filter.AuthorID != nil {
		query = query.Where("author_id = ?", *filter.AuthorID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.Type != nil {
		query = query.Where("report_type = ?", *filter.Type)
	}
	if filter.Search != "" {
		query = query.Where("closing_notes LIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count reports: %w", err)
	}

	sortBy := filter.SortBy
	if !allowedReportOrderByFields[sortBy] {
		sortBy = "created_at"
	}
	sortOrder := "DESC"
	if filter.SortOrder == "asc" {
		sortOrder = "ASC"
	}
	query = query.Order(fmt.Sprintf("%s %s", sortBy, sortOrder))

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var rows []models.ReportModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list reports: %w", err)
	}

	reports := make([]*report.Report, 0, len(rows))
	for i := range rows {
		rep, err := r.mapper.ToDomain(&rows[i])
		if err != nil {
			return nil, 0, fmt.Errorf("failed to map report %d: %w", rows[i].ID, err)
		}
		reports = append(reports, rep)
	}

	return reports, total, nil
}

func (r *reportRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}

	var rows []statusCount
	err := r.db.WithContext(ctx).
		Model(&models.ReportModel{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count reports by status: %w", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
