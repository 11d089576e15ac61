package usecases

import (
	"context"
	"fmt"

	"github.com/chroma-excellence/chromaqa/internal/domain/capability"
	"github.com/chroma-excellence/chromaqa/internal/domain/report"
	"github.com/chroma-excellence/chromaqa/internal/shared/errors"
	"github.com/chroma-excellence/chromaqa/internal/shared/logger"
)

type RemovePhotoCommand struct {
	Actor    Actor
	ReportID uint
	PhotoID  uint
}

type RemovePhotoUseCase struct {
	reportRepo report.Repository
	photoRepo  report.PhotoRepository
	files      PhotoFileStore
	registry   *capability.Registry
	logger     logger.Interface
}

func NewRemovePhotoUseCase(
	reportRepo report.Repository,
	photoRepo report.PhotoRepository,
	files PhotoFileStore,
	registry *capability.Registry,
	logger logger.Interface,
) *RemovePhotoUseCase {
	return &RemovePhotoUseCase{
		reportRepo: reportRepo,
		photoRepo:  photoRepo,
		files:      files,
		registry:   registry,
		logger:     logger,
	}
}

func (uc *RemovePhotoUseCase) Execute(ctx context.Context, cmd RemovePhotoCommand) error {
	uc.logger.Infow("executing remove photo use case", "report_id", cmd.ReportID, "photo_id", cmd.PhotoID, "actor_id", cmd.Actor.ID)

	if err := cmd.Actor.validate(); err != nil {
		return err
	}
	if cmd.ReportID == 0 || cmd.PhotoID == 0 {
		return errors.NewValidationError("report ID and photo ID are required")
	}

	editAll := uc.registry.Has(cmd.Actor.Role, capability.EditAllReports)
	if !editAll {
		if err := requireCapability(uc.registry, cmd.Actor, capability.EditOwnReports); err != nil {
			return err
		}
	}

	r, err := uc.reportRepo.GetByID(ctx, cmd.ReportID)
	if err != nil {
		uc.logger.Errorw("failed to get report", "report_id", cmd.ReportID, "error", err)
		return errors.NewCollaboratorError("get report", err)
	}
	if r == nil {
		return errors.NewNotFoundError(fmt.Sprintf("report %d not found", cmd.ReportID))
	}

	if !r.CanBeEdited(cmd.Actor.ID, editAll) {
		return errors.NewForbiddenError(
			"report is not editable by this actor in its current state",
			capability.EditAllReports.String(),
		)
	}

	photos, err := uc.photoRepo.GetByReportID(ctx, cmd.ReportID)
	if err != nil {
		uc.logger.Errorw("failed to get report photos", "report_id", cmd.ReportID, "error", err)
		return errors.NewCollaboratorError("get report photos", err)
	}

	var photo *report.Photo
	for _, p := range photos {
		if p.ID == cmd.PhotoID {
			photo = p
			break
		}
	}
	if photo == nil {
		return errors.NewNotFoundError(fmt.Sprintf("photo %d not found on report %d", cmd.PhotoID, cmd.ReportID))
	}

	if err := uc.photoRepo.Delete(ctx, cmd.PhotoID); err != nil {
		uc.logger.Errorw("failed to delete photo", "photo_id", cmd.PhotoID, "error", err)
		return errors.NewCollaboratorError("delete photo", err)
	}

	// The row is gone; a leftover file is only an orphan, never a dangling row.
	if err := uc.files.Remove(ctx, photo.StoragePath); err != nil {
		uc.logger.Warnw("failed to remove photo file", "photo_id", cmd.PhotoID, "storage_path", photo.StoragePath, "error", err)
	}

	uc.logger.Infow("photo removed", "report_id", cmd.ReportID, "photo_id", cmd.PhotoID)
	return nil
}
