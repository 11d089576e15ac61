package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/chroma-excellence/chromaqa/internal/domain/capability"
	"github.com/chroma-excellence/chromaqa/internal/domain/checklist"
	"github.com/chroma-excellence/chromaqa/internal/domain/report"
	"github.com/chroma-excellence/chromaqa/internal/domain/shared/events"
	"github.com/chroma-excellence/chromaqa/internal/shared/clock"
	"github.com/chroma-excellence/chromaqa/internal/shared/errors"
	"github.com/chroma-excellence/chromaqa/internal/shared/logger"
)

type SubmitReportCommand struct {
	Actor           Actor
	ReportID        uint
	ExpectedVersion int
}

// TransitionResult is shared by all lifecycle transition use cases.
type TransitionResult struct {
	ReportID  uint
	OldStatus string
	NewStatus string
	Version   int
	UpdatedAt string
}

type SubmitReportUseCase struct {
	reportRepo   report.Repository
	templateRepo checklist.TemplateRepository
	registry     *capability.Registry
	publisher    events.EventPublisher
	clock        clock.Clock
	logger       logger.Interface
}

func NewSubmitReportUseCase(
	reportRepo report.Repository,
	templateRepo checklist.TemplateRepository,
	registry *capability.Registry,
	publisher events.EventPublisher,
	clock clock.Clock,
	logger logger.Interface,
) *SubmitReportUseCase {
	return &SubmitReportUseCase{
		reportRepo:   reportRepo,
		templateRepo: templateRepo,
		registry:     registry,
		publisher:    publisher,
		clock:        clock,
		logger:       logger,
	}
}

func (uc *SubmitReportUseCase) Execute(ctx context.Context, cmd SubmitReportCommand) (*TransitionResult, error) {
	uc.logger.Infow("executing submit report use case", "report_id", cmd.ReportID, "actor_id", cmd.Actor.ID)

	if err := uc.validateCommand(cmd); err != nil {
		uc.logger.Errorw("invalid submit report command", "error", err)
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

	// Owners submit with create_reports; anyone else needs edit_all_reports.
	editAll := uc.registry.Has(cmd.Actor.Role, capability.EditAllReports)
	if !editAll {
		if !r.IsOwnedBy(cmd.Actor.ID) {
			return nil, errors.NewForbiddenError(
				"only the report author may submit it",
				capability.EditAllReports.String(),
			)
		}
		if err := requireCapability(uc.registry, cmd.Actor, capability.CreateReports); err != nil {
			return nil, err
		}
	}

	tpl, err := uc.templateRepo.GetByVersion(ctx, r.TemplateVersion())
	if err != nil {
		uc.logger.Errorw("failed to get template", "version", r.TemplateVersion(), "error", err)
		return nil, errors.NewCollaboratorError("get template", err)
	}
	if tpl == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("checklist template version %s not found", r.TemplateVersion()))
	}

	oldStatus := r.Status()
	now := uc.clock.Now()
	if err := r.Submit(tpl, now); err != nil {
		uc.logger.Warnw("submit refused", "report_id", cmd.ReportID, "error", err)
		return nil, err
	}

	if err := uc.reportRepo.Update(ctx, r, cmd.ExpectedVersion); err != nil {
		uc.logger.Errorw("failed to update report", "report_id", cmd.ReportID, "error", err)
		if errors.IsConflictError(err) {
			return nil, err
		}
		return nil, errors.NewCollaboratorError("update report", err)
	}

	event := report.NewReportSubmittedEvent(r, cmd.Actor.ID, now)
	if err := uc.publisher.Publish(event); err != nil {
		uc.logger.Warnw("failed to publish submitted event", "report_id", cmd.ReportID, "error", err)
	}

	uc.logger.Infow("report submitted", "report_id", cmd.ReportID, "version", r.Version())

	return &TransitionResult{
		ReportID:  r.ID(),
		OldStatus: oldStatus.String(),
		NewStatus: r.Status().String(),
		Version:   r.Version(),
		UpdatedAt: r.UpdatedAt().Format(time.RFC3339),
	}, nil
}

func (uc *SubmitReportUseCase) validateCommand(cmd SubmitReportCommand) error {
	if err := cmd.Actor.validate(); err != nil {
		return err
	}
	if cmd.ReportID == 0 {
		return errors.NewValidationError("report ID is required")
	}
	if cmd.ExpectedVersion <= 0 {
		return errors.NewValidationError("expected version is required")
	}
	return nil
}
