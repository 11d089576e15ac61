package usecases

import (
	"context"
	"fmt"

	"github.com/chroma-excellence/chromaqa/internal/domain/capability"
	"github.com/chroma-excellence/chromaqa/internal/domain/checklist"
	"github.com/chroma-excellence/chromaqa/internal/domain/report"
	"github.com/chroma-excellence/chromaqa/internal/shared/errors"
	"github.com/chroma-excellence/chromaqa/internal/shared/logger"
)

type GetProgressQuery struct {
	Actor    Actor
	ReportID uint
}

type SectionProgressView struct {
	Key      string `json:"key"`
	Title    string `json:"title"`
	Answered int    `json:"answered"`
	Total    int    `json:"total"`
	Percent  int    `json:"percent"`
}

type ProgressResult struct {
	ReportID          uint                  `json:"report_id"`
	Answered          int                   `json:"answered"`
	Total             int                   `json:"total"`
	Percent           int                   `json:"percent"`
	Complete          bool                  `json:"complete"`
	Score             float64               `json:"score"`
	Sections          []SectionProgressView `json:"sections"`
	IncompleteSection *string               `json:"incomplete_section,omitempty"`
}

type GetProgressUseCase struct {
	reportRepo   report.Repository
	templateRepo checklist.TemplateRepository
	registry     *capability.Registry
	logger       logger.Interface
}

func NewGetProgressUseCase(
	reportRepo report.Repository,
	templateRepo checklist.TemplateRepository,
	registry *capability.Registry,
	logger logger.Interface,
) *GetProgressUseCase {
	return &GetProgressUseCase{
		reportRepo:   reportRepo,
		templateRepo: templateRepo,
		registry:     registry,
		logger:       logger,
	}
}

func (uc *GetProgressUseCase) Execute(ctx context.Context, query GetProgressQuery) (*ProgressResult, error) {
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

	responses := r.Responses()
	overall := checklist.TemplateProgress(tpl, responses)

	result := &ProgressResult{
		ReportID: r.ID(),
		Answered: overall.Answered,
		Total:    overall.Total,
		Percent:  overall.Percent,
		Complete: overall.Complete(),
		Score:    checklist.Score(tpl, responses),
		Sections: make([]SectionProgressView, 0, len(tpl.Sections)),
	}

	for _, section := range tpl.Sections {
		p := checklist.SectionProgress(section, responses)
		result.Sections = append(result.Sections, SectionProgressView{
			Key:      section.Key,
			Title:    section.Title,
			Answered: p.Answered,
			Total:    p.Total,
			Percent:  p.Percent,
		})
	}

	if incomplete := checklist.FirstIncompleteSection(tpl, responses); incomplete != nil {
		key := incomplete.Key
		result.IncompleteSection = &key
	}

	return result, nil
}
