package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/chroma-excellence/chromaqa/internal/domain/capability"
	"github.com/chroma-excellence/chromaqa/internal/domain/checklist"
	"github.com/chroma-excellence/chromaqa/internal/domain/report"
	"github.com/chroma-excellence/chromaqa/internal/shared/errors"
	"github.com/chroma-excellence/chromaqa/internal/shared/logger"
)

type GetReportQuery struct {
	Actor    Actor
	ReportID uint
}

type PhotoView struct {
	ID          uint   `json:"id"`
	SectionKey  string `json:"section_key"`
	StoragePath string `json:"storage_path"`
	Caption     string `json:"caption,omitempty"`
	UploadedAt  string `json:"uploaded_at"`
}

type SummaryView struct {
	Content     string `json:"content"`
	ContentHash string `json:"content_hash"`
	GeneratedAt string `json:"generated_at"`
}

type ReportDetail struct {
	ReportID        uint                  `json:"report_id"`
	SchoolID        uint                  `json:"school_id"`
	AuthorID        uint                  `json:"author_id"`
	ReportType      string                `json:"report_type"`
	TemplateVersion string                `json:"template_version"`
	InspectionDate  string                `json:"inspection_date"`
	Status          string                `json:"status"`
	Responses       checklist.ResponseSet `json:"responses"`
	ClosingNotes    string                `json:"closing_notes,omitempty"`
	Version         int                   `json:"version"`
	Progress        checklist.Progress    `json:"progress"`
	Score           float64               `json:"score"`
	Photos          []PhotoView           `json:"photos"`
	Summary         *SummaryView          `json:"summary,omitempty"`
	CreatedAt       string                `json:"created_at"`
	UpdatedAt       string                `json:"updated_at"`
}

type GetReportUseCase struct {
	reportRepo   report.Repository
	templateRepo checklist.TemplateRepository
	photoRepo    report.PhotoRepository
	summaryRepo  report.SummaryRepository
	registry     *capability.Registry
	logger       logger.Interface
}

func NewGetReportUseCase(
	reportRepo report.Repository,
	templateRepo checklist.TemplateRepository,
	photoRepo report.PhotoRepository,
	summaryRepo report.SummaryRepository,
	registry *capability.Registry,
	logger logger.Interface,
) *GetReportUseCase {
	return &GetReportUseCase{
		reportRepo:   reportRepo,
		templateRepo: templateRepo,
		photoRepo:    photoRepo,
		summaryRepo:  summaryRepo,
		registry:     registry,
		logger:       logger,
	}
}

func (uc *GetReportUseCase) Execute(ctx context.Context, query GetReportQuery) (*ReportDetail, error) {
	if err := query.Actor.validate(); err != nil {
		return nil, err
	}
	if query.ReportID == 0 {
		return nil, errors.NewValidationError("report ID is required")
	}

	r, err := uc.reportRepo.GetByID(ctx, query.ReportID)
	if err != nil {
		uc.logger.Errorw("failed to get report", "report_id", query.ReportID, "error", err)
		return nil, errors.NewCollaboratorError("get report", err)
	}
	if r == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("report %d not found", query.ReportID))
	}

	viewAll := uc.registry.Has(query.Actor.Role, capability.ViewAllReports)
	viewOwn := uc.registry.Has(query.Actor.Role, capability.ViewOwnReports)
	if !r.CanBeViewedBy(query.Actor.ID, viewAll, viewOwn) {
		return nil, errors.NewForbiddenError(
			"not allowed to view this report",
			capability.ViewAllReports.String(),
		)
	}

	tpl, err := uc.templateRepo.GetByVersion(ctx, r.TemplateVersion())
	if err != nil {
		uc.logger.Errorw("failed to get template", "version", r.TemplateVersion(), "error", err)
		return nil, errors.NewCollaboratorError("get template", err)
	}
	if tpl == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("checklist template version %s not found", r.TemplateVersion()))
	}

	photos, err := uc.photoRepo.GetByReportID(ctx, query.ReportID)
	if err != nil {
		uc.logger.Errorw("failed to get report photos", "report_id", query.ReportID, "error", err)
		return nil, errors.NewCollaboratorError("get report photos", err)
	}

	summary, err := uc.summaryRepo.GetCurrentByReportID(ctx, query.ReportID)
	if err != nil {
		uc.logger.Errorw("failed to get report summary", "report_id", query.ReportID, "error", err)
		return nil, errors.NewCollaboratorError("get report summary", err)
	}

	detail := &ReportDetail{
		ReportID:        r.ID(),
		SchoolID:        r.SchoolID(),
		AuthorID:        r.AuthorID(),
		ReportType:      r.ReportType(),
		TemplateVersion: r.TemplateVersion(),
		InspectionDate:  r.InspectionDate().Format("2006-01-02"),
		Status:          r.Status().String(),
		Responses:       r.Responses(),
		ClosingNotes:    r.ClosingNotes(),
		Version:         r.Version(),
		Progress:        r.Progress(tpl),
		Score:           r.Score(tpl),
		Photos:          make([]PhotoView, 0, len(photos)),
		CreatedAt:       r.CreatedAt().Format(time.RFC3339),
		UpdatedAt:       r.UpdatedAt().Format(time.RFC3339),
	}

	for _, p := range photos {
		detail.Photos = append(detail.Photos, PhotoView{
			ID:          p.ID,
			SectionKey:  p.SectionKey,
			StoragePath: p.StoragePath,
			Caption:     p.Caption,
			UploadedAt:  p.UploadedAt.Format(time.RFC3339),
		})
	}

	if summary != nil {
		detail.Summary = &SummaryView{
			Content:     summary.Content,
			ContentHash: summary.ContentHash,
			GeneratedAt: summary.GeneratedAt.Format(time.RFC3339),
		}
	}

	return detail, nil
}
