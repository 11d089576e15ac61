package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/chroma-excellence/chromaqa/internal/domain/capability"
	"github.com/chroma-excellence/chromaqa/internal/domain/checklist"
	"github.com/chroma-excellence/chromaqa/internal/domain/report"
	"github.com/chroma-excellence/chromaqa/internal/shared/clock"
	"github.com/chroma-excellence/chromaqa/internal/shared/errors"
	"github.com/chroma-excellence/chromaqa/internal/shared/logger"
)

type ExportReportQuery struct {
	Actor    Actor
	ReportID uint
}

type ExportResult struct {
	ReportID    uint    `json:"report_id"`
	Status      string  `json:"status"`
	Score       float64 `json:"score"`
	SummaryHTML string  `json:"summary_html,omitempty"`
	ExportedAt  string  `json:"exported_at"`
}

// ExportReportUseCase renders a report for external consumption. The AI
// summary markdown is rendered and sanitized before it leaves the
// service; raw markdown never reaches the export surface.
type ExportReportUseCase struct {
	reportRepo   report.Repository
	templateRepo checklist.TemplateRepository
	summaryRepo  report.SummaryRepository
	renderer     SummaryRenderer
	registry     *capability.Registry
	clock        clock.Clock
	logger       logger.Interface
}

func NewExportReportUseCase(
	reportRepo report.Repository,
	templateRepo checklist.TemplateRepository,
	summaryRepo report.SummaryRepository,
	renderer SummaryRenderer,
	registry *capability.Registry,
	clock clock.Clock,
	logger logger.Interface,
) *ExportReportUseCase {
	return &ExportReportUseCase{
		reportRepo:   reportRepo,
		templateRepo: templateRepo,
		summaryRepo:  summaryRepo,
		renderer:     renderer,
		registry:     registry,
		clock:        clock,
		logger:       logger,
	}
}

func (uc *ExportReportUseCase) Execute(ctx context.Context, query ExportReportQuery) (*ExportResult, error) {
	uc.logger.Infow("executing export report use case", "report_id", query.ReportID, "actor_id", query.Actor.ID)

	if err := query.Actor.validate(); err != nil {
		return nil, err
	}
	if query.ReportID == 0 {
		return nil, errors.NewValidationError("report ID is required")
	}

	if err := requireCapability(uc.registry, query.Actor, capability.ExportReports); err != nil {
		return nil, err
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

	result := &ExportResult{
		ReportID:   r.ID(),
		Status:     r.Status().String(),
		Score:      r.Score(tpl),
		ExportedAt: uc.clock.Now().Format(time.RFC3339),
	}

	summary, err := uc.summaryRepo.GetCurrentByReportID(ctx, query.ReportID)
	if err != nil {
		uc.logger.Errorw("failed to get report summary", "report_id", query.ReportID, "error", err)
		return nil, errors.NewCollaboratorError("get report summary", err)
	}
	if summary != nil {
		html, err := uc.renderer.RenderHTML(summary.Content)
		if err != nil {
			uc.logger.Errorw("failed to render summary", "report_id", query.ReportID, "error", err)
			return nil, errors.NewCollaboratorError("render summary", err)
		}
		result.SummaryHTML = html
	}

	return result, nil
}
