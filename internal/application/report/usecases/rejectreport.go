package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/chroma-excellence/chromaqa/internal/domain/capability"
	"github.com/chroma-excellence/chromaqa/internal/domain/report"
	"github.com/chroma-excellence/chromaqa/internal/domain/shared/events"
	"github.com/chroma-excellence/chromaqa/internal/shared/clock"
	"github.com/chroma-excellence/chromaqa/internal/shared/errors"
	"github.com/chroma-excellence/chromaqa/internal/shared/logger"
)

type RejectReportCommand struct {
	Actor           Actor
	ReportID        uint
	ExpectedVersion int
	Reason          string
}

type RejectReportUseCase struct {
	reportRepo report.Repository
	registry   *capability.Registry
	publisher  events.EventPublisher
	clock      clock.Clock
	logger     logger.Interface
}

func NewRejectReportUseCase(
	reportRepo report.Repository,
	registry *capability.Registry,
	publisher events.EventPublisher,
	clock clock.Clock,
	logger logger.Interface,
) *RejectReportUseCase {
	return &RejectReportUseCase{
		reportRepo: reportRepo,
		registry:   registry,
		publisher:  publisher,
		clock:      clock,
		logger:     logger,
	}
}

func (uc *RejectReportUseCase) Execute(ctx context.Context, cmd RejectReportCommand) (*TransitionResult, error) {
	uc.logger.Infow("executing reject report use case", "report_id", cmd.ReportID, "actor_id", cmd.Actor.ID)

	if err := cmd.Actor.validate(); err != nil {
		return nil, err
	}
	if cmd.ReportID == 0 {
		return nil, errors.NewValidationError("report ID is required")
	}
	if cmd.ExpectedVersion <= 0 {
		return nil, errors.NewValidationError("expected version is required")
	}

	if err := requireCapability(uc.registry, cmd.Actor, capability.ApproveReports); err != nil {
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
	now := uc.clock.Now()
	if err := r.Reject(now); err != nil {
		uc.logger.Warnw("reject refused", "report_id", cmd.ReportID, "error", err)
		return nil, err
	}

	if err := uc.reportRepo.Update(ctx, r, cmd.ExpectedVersion); err != nil {
		uc.logger.Errorw("failed to update report", "report_id", cmd.ReportID, "error", err)
		if errors.IsConflictError(err) {
			return nil, err
		}
		return nil, errors.NewCollaboratorError("update report", err)
	}

	event := report.NewReportRejectedEvent(r, cmd.Actor.ID, cmd.Reason, now)
	if err := uc.publisher.Publish(event); err != nil {
		uc.logger.Warnw("failed to publish rejected event", "report_id", cmd.ReportID, "error", err)
	}

	uc.logger.Infow("report rejected", "report_id", cmd.ReportID, "rejected_by", cmd.Actor.ID)

	return &TransitionResult{
		ReportID:  r.ID(),
		OldStatus: oldStatus.String(),
		NewStatus: r.Status().String(),
		Version:   r.Version(),
		UpdatedAt: r.UpdatedAt().Format(time.RFC3339),
	}, nil
}
