package usecases

import (
	"context"
	"fmt"

	"github.com/chroma-excellence/chromaqa/internal/domain/capability"
	"github.com/chroma-excellence/chromaqa/internal/domain/report"
	"github.com/chroma-excellence/chromaqa/internal/shared/errors"
	"github.com/chroma-excellence/chromaqa/internal/shared/logger"
)

type DeleteReportCommand struct {
	Actor    Actor
	ReportID uint
}

type DeleteReportUseCase struct {
	reportRepo  report.Repository
	photoRepo   report.PhotoRepository
	summaryRepo report.SummaryRepository
	files       PhotoFileStore
	registry    *capability.Registry
	logger      logger.Interface
}

func NewDeleteReportUseCase(
	reportRepo report.Repository,
	photoRepo report.PhotoRepository,
	summaryRepo report.SummaryRepository,
	files PhotoFileStore,
	registry *capability.Registry,
	logger logger.Interface,
) *DeleteReportUseCase {
	return &DeleteReportUseCase{
		reportRepo:  reportRepo,
		photoRepo:   photoRepo,
		summaryRepo: summaryRepo,
		files:       files,
		registry:    registry,
		logger:      logger,
	}
}

func (uc *DeleteReportUseCase) Execute(ctx context.Context, cmd DeleteReportCommand) error {
	uc.logger.Infow("executing delete report use case", "report_id", cmd.ReportID, "actor_id", cmd.Actor.ID)

	if err := cmd.Actor.validate(); err != nil {
		return err
	}
	if cmd.ReportID == 0 {
		return errors.NewValidationError("report ID is required")
	}

	if err := requireCapability(uc.registry, cmd.Actor, capability.DeleteReports); err != nil {
		return err
	}

	r, err := uc.reportRepo.GetByID(ctx, cmd.ReportID)
	if err != nil {
		uc.logger.Errorw("failed to get report", "report_id", cmd.ReportID, "error", err)
		return errors.NewCollaboratorError("get report", err)
	}
	if r == nil {
		return errors.NewNotFoundError(fmt.Sprintf("report %d not found", cmd.ReportID))
	}

	manageSettings := uc.registry.Has(cmd.Actor.Role, capability.ManageSettings)
	if !r.CanBeDeleted(manageSettings) {
		return errors.NewForbiddenError(
			"approved reports can only be deleted by an administrator",
			capability.ManageSettings.String(),
		)
	}

	// Storage paths are read before the rows disappear with them.
	photos, err := uc.photoRepo.GetByReportID(ctx, cmd.ReportID)
	if err != nil {
		uc.logger.Errorw("failed to get report photos", "report_id", cmd.ReportID, "error", err)
		return errors.NewCollaboratorError("get report photos", err)
	}

	// Attachments go first; a failure there leaves the report intact.
	if err := uc.photoRepo.DeleteByReportID(ctx, cmd.ReportID); err != nil {
		uc.logger.Errorw("failed to delete report photos", "report_id", cmd.ReportID, "error", err)
		return errors.NewCollaboratorError("delete report photos", err)
	}
	if err := uc.summaryRepo.DeleteByReportID(ctx, cmd.ReportID); err != nil {
		uc.logger.Errorw("failed to delete report summaries", "report_id", cmd.ReportID, "error", err)
		return errors.NewCollaboratorError("delete report summaries", err)
	}
	if err := uc.reportRepo.Delete(ctx, cmd.ReportID); err != nil {
		uc.logger.Errorw("failed to delete report", "report_id", cmd.ReportID, "error", err)
		return errors.NewCollaboratorError("delete report", err)
	}

	// Rows are gone; leftover files are orphans, never dangling rows.
	for _, p := range photos {
		if err := uc.files.Remove(ctx, p.StoragePath); err != nil {
			uc.logger.Warnw("failed to remove photo file", "photo_id", p.ID, "storage_path", p.StoragePath, "error", err)
		}
	}

	uc.logger.Infow("report deleted", "report_id", cmd.ReportID, "deleted_by", cmd.Actor.ID)
	return nil
}
