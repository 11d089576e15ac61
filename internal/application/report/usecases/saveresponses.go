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

type SaveResponsesCommand struct {
	Actor           Actor
	ReportID        uint
	ExpectedVersion int
	Responses       checklist.ResponseSet
	ClosingNotes    *string
}

type SaveResponsesResult struct {
	ReportID  uint
	Version   int
	UpdatedAt string
}

type SaveResponsesUseCase struct {
	reportRepo report.Repository
	registry   *capability.Registry
	clock      clock.Clock
	logger     logger.Interface
}

func NewSaveResponsesUseCase(
	reportRepo report.Repository,
	registry *capability.Registry,
	clock clock.Clock,
	logger logger.Interface,
) *SaveResponsesUseCase {
	return &SaveResponsesUseCase{
		reportRepo: reportRepo,
		registry:   registry,
		clock:      clock,
		logger:     logger,
	}
}

func (uc *SaveResponsesUseCase) Execute(ctx context.Context, cmd SaveResponsesCommand) (*SaveResponsesResult, error) {
	uc.logger.Infow("executing save responses use case", "report_id", cmd.ReportID, "actor_id", cmd.Actor.ID)

	if err := uc.validateCommand(cmd); err != nil {
		uc.logger.Errorw("invalid save responses command", "error", err)
		return nil, err
	}

	editAll := uc.registry.Has(cmd.Actor.Role, capability.EditAllReports)
	if !editAll {
		if err := requireCapability(uc.registry, cmd.Actor, capability.EditOwnReports); err != nil {
			return nil, err
		}
	}

	r, err := uc.reportRepo.GetByID(ctx, cmd.ReportID)
	if err != nil {
		uc.logger.Errorw("failed to get report", "report_id", cmd.ReportID, "error", err)
		return nil, errors.NewCollaboratorError("get report", err)
	}
	if r == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("report %d not found", cmd.ReportID))
	}

	now := uc.clock.Now()
	if cmd.Responses != nil {
		if err := r.UpdateResponses(cmd.Responses, cmd.Actor.ID, editAll, now); err != nil {
			uc.logger.Warnw("responses update refused", "report_id", cmd.ReportID, "error", err)
			return nil, err
		}
	}
	if cmd.ClosingNotes != nil {
		if err := r.SetClosingNotes(*cmd.ClosingNotes, cmd.Actor.ID, editAll, now); err != nil {
			return nil, err
		}
	}

	if err := uc.reportRepo.Update(ctx, r, cmd.ExpectedVersion); err != nil {
		uc.logger.Errorw("failed to update report", "report_id", cmd.ReportID, "error", err)
		if errors.IsConflictError(err) {
			return nil, err
		}
		return nil, errors.NewCollaboratorError("update report", err)
	}

	uc.logger.Infow("responses saved", "report_id", cmd.ReportID, "version", r.Version())

	return &SaveResponsesResult{
		ReportID:  r.ID(),
		Version:   r.Version(),
		UpdatedAt: r.UpdatedAt().Format(time.RFC3339),
	}, nil
}

func (uc *SaveResponsesUseCase) validateCommand(cmd SaveResponsesCommand) error {
	if err := cmd.Actor.validate(); err != nil {
		return err
	}
	if cmd.ReportID == 0 {
		return errors.NewValidationError("report ID is required")
	}
	if cmd.ExpectedVersion <= 0 {
		return errors.NewValidationError("expected version is required")
	}
	if cmd.Responses == nil && cmd.ClosingNotes == nil {
		return errors.NewValidationError("nothing to save")
	}
	return nil
}
