package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/chroma-excellence/chromaqa/internal/domain/capability"
	"github.com/chroma-excellence/chromaqa/internal/domain/report"
	"github.com/chroma-excellence/chromaqa/internal/shared/clock"
	"github.com/chroma-excellence/chromaqa/internal/shared/errors"
	"github.com/chroma-excellence/chromaqa/internal/shared/logger"
)

type StartReviewCommand struct {
	Actor           Actor
	ReportID        uint
	ExpectedVersion int
}

type StartReviewUseCase struct {
	reportRepo report.Repository
	registry   *capability.Registry
	clock      clock.Clock
	logger     logger.Interface
}

func NewStartReviewUseCase(
	reportRepo report.Repository,
	registry *capability.Registry,
	clock clock.Clock,
	logger logger.Interface,
) *StartReviewUseCase {
	return &StartReviewUseCase{
		reportRepo: reportRepo,
		registry:   registry,
		clock:      clock,
		logger:     logger,
	}
}

func (uc *StartReviewUseCase) Execute(ctx context.Context, cmd StartReviewCommand) (*TransitionResult, error) {
	uc.logger.Infow("executing start review use case", "report_id", cmd.ReportID, "actor_id", cmd.Actor.ID)

	if err := cmd.Actor.validate(); err != nil {
		return nil, err
	}
	if cmd.ReportID == 0 {
		return nil, errors.NewValidationError("report ID is required")
	}
	if cmd.ExpectedVersion <= 0 {
		return nil, errors.NewValidationError("expected version is required")
	}

	if err := requireCapability(uc.registry, cmd.Actor, capability.ViewAllReports); err != nil {
		return nil, err
	}

	r, err := uc.reportRepo.GetByID(ctx, cmd.ReportID)
	if err != nil {
		uc.logger.Errorw("failed to get report", "report_id", cmd.ReportID, "error", err)
		return nil, errors.NewCollaboratorError("get report", err)
	}
	if r == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("report %d not found", cmd.ReportID))
	}

	oldStatus := r.Status()
	if err := r.StartReview(uc.clock.Now()); err != nil {
		uc.logger.Warnw("start review refused", "report_id", cmd.ReportID, "error", err)
		return nil, err
	}

	if err := uc.reportRepo.Update(ctx, r, cmd.ExpectedVersion); err != nil {
		uc.logger.Errorw("failed to update report", "report_id", cmd.ReportID, "error", err)
		if errors.IsConflictError(err) {
			return nil, err
		}
		return nil, errors.NewCollaboratorError("update report", err)
	}

	uc.logger.Infow("report moved to review", "report_id", cmd.ReportID)

	return &TransitionResult{
		ReportID:  r.ID(),
		OldStatus: oldStatus.String(),
		NewStatus: r.Status().String(),
		Version:   r.Version(),
		UpdatedAt: r.UpdatedAt().Format(time.RFC3339),
	}, nil
}
