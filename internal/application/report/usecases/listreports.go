package usecases

import (
	"context"
	"time"

	"github.com/chroma-excellence/chromaqa/internal/domain/capability"
	"github.com/chroma-excellence/chromaqa/internal/domain/report"
	vo "github.com/chroma-excellence/chromaqa/internal/domain/report/valueobjects"
	"github.com/chroma-excellence/chromaqa/internal/shared/errors"
	"github.com/chroma-excellence/chromaqa/internal/shared/logger"
)

type ListReportsQuery struct {
	Actor     Actor
	SchoolID  *uint
	Status    *string
	Type      *string
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

type ReportListItem struct {
	ReportID        uint   `json:"report_id"`
	SchoolID        uint   `json:"school_id"`
	AuthorID        uint   `json:"author_id"`
	ReportType      string `json:"report_type"`
	TemplateVersion string `json:"template_version"`
	InspectionDate  string `json:"inspection_date"`
	Status          string `json:"status"`
	Version         int    `json:"version"`
	UpdatedAt       string `json:"updated_at"`
}

type ListReportsResult struct {
	Reports  []ReportListItem `json:"reports"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

// allowedSortFields is the ordering whitelist; anything else falls back
// to created_at.
var allowedSortFields = map[string]bool{
	"created_at":      true,
	"updated_at":      true,
	"inspection_date": true,
	"status":          true,
}

type ListReportsUseCase struct {
	reportRepo report.Repository
	registry   *capability.Registry
	logger     logger.Interface
}

func NewListReportsUseCase(
	reportRepo report.Repository,
	registry *capability.Registry,
	logger logger.Interface,
) *ListReportsUseCase {
	return &ListReportsUseCase{
		reportRepo: reportRepo,
		registry:   registry,
		logger:     logger,
	}
}

func (uc *ListReportsUseCase) Execute(ctx context.Context, query ListReportsQuery) (*ListReportsResult, error) {
	if err := query.Actor.validate(); err != nil {
		return nil, err
	}

	filter := report.Filter{
		SchoolID:  query.SchoolID,
		Type:      query.Type,
		Search:    query.Search,
		Page:      query.Page,
		PageSize:  query.PageSize,
		SortBy:    query.SortBy,
		SortOrder: query.SortOrder,
	}

	if query.Status != nil {
		status, err := vo.NewReportStatus(*query.Status)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		filter.Status = &status
	}

	// view_all sees everything; view_own is forced onto the actor's own
	// reports regardless of what the query asked for.
	if !uc.registry.Has(query.Actor.Role, capability.ViewAllReports) {
		if !uc.registry.Has(query.Actor.Role, capability.ViewOwnReports) {
			return nil, errors.NewForbiddenError(
				"not allowed to list reports",
				capability.ViewOwnReports.String(),
			)
		}
		actorID := query.Actor.ID
		filter.AuthorID = &actorID
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	if filter.PageSize > 100 {
		filter.PageSize = 100
	}
	if !allowedSortFields[filter.SortBy] {
		filter.SortBy = "created_at"
	}
	if filter.SortOrder != "asc" {
		filter.SortOrder = "desc"
	}

	reports, total, err := uc.reportRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list reports", "error", err)
		return nil, errors.NewCollaboratorError("list reports", err)
	}

	items := make([]ReportListItem, 0, len(reports))
	for _, r := range reports {
		items = append(items, ReportListItem{
			ReportID:        r.ID(),
			SchoolID:        r.SchoolID(),
			AuthorID:        r.AuthorID(),
			ReportType:      r.ReportType(),
			TemplateVersion: r.TemplateVersion(),
			InspectionDate:  r.InspectionDate().Format("2006-01-02"),
			Status:          r.Status().String(),
			Version:         r.Version(),
			UpdatedAt:       r.UpdatedAt().Format(time.RFC3339),
		})
	}

	return &ListReportsResult{
		Reports:  items,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}
