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

type ReworkReportCommand struct {
	Actor           Actor
	ReportID        uint
	ExpectedVersion int
}

// ReworkReportUseCase reopens a rejected report as a draft so the author
// can address the rejection.
type ReworkReportUseCase struct {
	reportRepo report.Repository
	registry   *capability.Registry
	clock      clock.Clock
	logger     logger.Interface
}

func NewReworkReportUseCase(
	reportRepo report.Repository,
	registry *capability.Registry,
	clock clock.Clock,
	logger logger.Interface,
) *ReworkReportUseCase {
	return &ReworkReportUseCase{
		reportRepo: reportRepo,
		registry:   registry,
		clock:      clock,
		logger:     logger,
	}
}

func (uc *ReworkReportUseCase) Execute(ctx context.Context, cmd ReworkReportCommand) (*TransitionResult, error) {
	uc.logger.Infow("executing rework report use case", "report_id", cmd.ReportID, "actor_id", cmd.Actor.ID)

	if err := cmd.Actor.validate(); err != nil {
		return nil, err
	}
	if cmd.ReportID == 0 {
		return nil, errors.NewValidationError("report ID is required")
	}
	if cmd.ExpectedVersion <= 0 {
		return nil, errors.NewValidationError("expected version is required")
	}

	r, err := uc.reportRepo.GetByID(ctx, cmd.ReportID)
	if err != nil {
		uc.logger.Errorw("failed to get report", "report_id", cmd.ReportID, "error", err)
		return nil, errors.NewCollaboratorError("get report", err)
	}
	if r == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("report %d not found", cmd.ReportID))
	}

	editAll := uc.registry.Has(cmd.Actor.Role, capability.EditAllReports)
	if !editAll && !r.IsOwnedBy(cmd.Actor.ID) {
		return nil, errors.NewForbiddenError(
			"only the report author may reopen it",
			capability.EditAllReports.String(),
		)
	}

	oldStatus := r.Status()
	if err := r.Rework(uc.clock.Now()); err != nil {
		uc.logger.Warnw("rework refused", "report_id", cmd.ReportID, "error", err)
		return nil, err
	}

	if err := uc.reportRepo.Update(ctx, r, cmd.ExpectedVersion); err != nil {
		uc.logger.Errorw("failed to update report", "report_id", cmd.ReportID, "error", err)
		if errors.IsConflictError(err) {
			return nil, err
		}
		return nil, errors.NewCollaboratorError("update report", err)
	}

	uc.logger.Infow("report reopened for rework", "report_id", cmd.ReportID)

	return &TransitionResult{
		ReportID:  r.ID(),
		OldStatus: oldStatus.String(),
		NewStatus: r.Status().String(),
		Version:   r.Version(),
		UpdatedAt: r.UpdatedAt().Format(time.RFC3339),
	}, nil
}
