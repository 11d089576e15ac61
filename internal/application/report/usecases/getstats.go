package usecases

import (
	"context"
	"math"

	"github.com/chroma-excellence/chromaqa/internal/domain/capability"
	"github.com/chroma-excellence/chromaqa/internal/domain/checklist"
	"github.com/chroma-excellence/chromaqa/internal/domain/report"
	vo "github.com/chroma-excellence/chromaqa/internal/domain/report/valueobjects"
	"github.com/chroma-excellence/chromaqa/internal/shared/errors"
	"github.com/chroma-excellence/chromaqa/internal/shared/logger"
)

type GetStatsQuery struct {
	Actor    Actor
	SchoolID *uint
}

type StatsResult struct {
	TotalByStatus        map[string]int64 `json:"total_by_status"`
	ApprovedCount        int              `json:"approved_count"`
	AverageApprovedScore float64          `json:"average_approved_score"`
}

// GetStatsUseCase aggregates report counts and the mean score across
// approved reports. Scores are always recomputed from responses against
// the report's template version; they are never read from a stored
// column.
type GetStatsUseCase struct {
	reportRepo   report.Repository
	templateRepo checklist.TemplateRepository
	registry     *capability.Registry
	logger       logger.Interface
}

func NewGetStatsUseCase(
	reportRepo report.Repository,
	templateRepo checklist.TemplateRepository,
	registry *capability.Registry,
	logger logger.Interface,
) *GetStatsUseCase {
	return &GetStatsUseCase{
		reportRepo:   reportRepo,
		templateRepo: templateRepo,
		registry:     registry,
		logger:       logger,
	}
}

func (uc *GetStatsUseCase) Execute(ctx context.Context, query GetStatsQuery) (*StatsResult, error) {
	if err := query.Actor.validate(); err != nil {
		return nil, err
	}

	if err := requireCapability(uc.registry, query.Actor, capability.ViewAllReports); err != nil {
		return nil, err
	}

	counts, err := uc.reportRepo.CountByStatus(ctx)
	if err != nil {
		uc.logger.Errorw("failed to count reports", "error", err)
		return nil, errors.NewCollaboratorError("count reports", err)
	}

	approved := vo.StatusApproved
	filter := report.Filter{
		SchoolID: query.SchoolID,
		Status:   &approved,
		Page:     1,
		PageSize: 1000,
	}

	templates := make(map[string]*checklist.Template)
	var scoreSum float64
	var scored int

	for {
		reports, _, err := uc.reportRepo.List(ctx, filter)
		if err != nil {
			uc.logger.Errorw("failed to list approved reports", "error", err)
			return nil, errors.NewCollaboratorError("list approved reports", err)
		}

		for _, r := range reports {
			tpl, ok := templates[r.TemplateVersion()]
			if !ok {
				tpl, err = uc.templateRepo.GetByVersion(ctx, r.TemplateVersion())
				if err != nil {
					uc.logger.Errorw("failed to get template", "version", r.TemplateVersion(), "error", err)
					return nil, errors.NewCollaboratorError("get template", err)
				}
				templates[r.TemplateVersion()] = tpl
			}
			if tpl == nil {
				uc.logger.Warnw("approved report references unknown template", "report_id", r.ID(), "version", r.TemplateVersion())
				continue
			}
			scoreSum += r.Score(tpl)
			scored++
		}

		if len(reports) < filter.PageSize {
			break
		}
		filter.Page++
	}

	result := &StatsResult{
		TotalByStatus: counts,
		ApprovedCount: scored,
	}
	if scored > 0 {
		result.AverageApprovedScore = math.Round(scoreSum/float64(scored)*100) / 100
	}

	return result, nil
}
