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

type AddPhotoCommand struct {
	Actor       Actor
	ReportID    uint
	SectionKey  string
	StoragePath string
	Caption     string
}

type AddPhotoResult struct {
	PhotoID    uint   `json:"photo_id"`
	ReportID   uint   `json:"report_id"`
	SectionKey string `json:"section_key"`
	UploadedAt string `json:"uploaded_at"`
}

// AddPhotoUseCase attaches evidence to a report. Photos follow the same
// editability rules as responses: draft or rejected, owner or edit-all.
type AddPhotoUseCase struct {
	reportRepo report.Repository
	photoRepo  report.PhotoRepository
	registry   *capability.Registry
	clock      clock.Clock
	logger     logger.Interface
}

func NewAddPhotoUseCase(
	reportRepo report.Repository,
	photoRepo report.PhotoRepository,
	registry *capability.Registry,
	clock clock.Clock,
	logger logger.Interface,
) *AddPhotoUseCase {
	return &AddPhotoUseCase{
		reportRepo: reportRepo,
		photoRepo:  photoRepo,
		registry:   registry,
		clock:      clock,
		logger:     logger,
	}
}

func (uc *AddPhotoUseCase) Execute(ctx context.Context, cmd AddPhotoCommand) (*AddPhotoResult, error) {
	uc.logger.Infow("executing add photo use case", "report_id", cmd.ReportID, "actor_id", cmd.Actor.ID)

	if err := cmd.Actor.validate(); err != nil {
		return nil, err
	}
	if cmd.ReportID == 0 {
		return nil, errors.NewValidationError("report ID is required")
	}
	if cmd.StoragePath == "" {
		return nil, errors.NewValidationError("storage path is required")
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

	if !r.CanBeEdited(cmd.Actor.ID, editAll) {
		return nil, errors.NewForbiddenError(
			"report is not editable by this actor in its current state",
			capability.EditAllReports.String(),
		)
	}

	photo, err := report.NewPhoto(cmd.ReportID, cmd.SectionKey, cmd.StoragePath, cmd.Caption, uc.clock.Now())
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.photoRepo.Save(ctx, photo); err != nil {
		uc.logger.Errorw("failed to save photo", "report_id", cmd.ReportID, "error", err)
		return nil, errors.NewCollaboratorError("save photo", err)
	}

	uc.logger.Infow("photo attached", "report_id", cmd.ReportID, "photo_id", photo.ID)

	return &AddPhotoResult{
		PhotoID:    photo.ID,
		ReportID:   photo.ReportID,
		SectionKey: photo.SectionKey,
		UploadedAt: photo.UploadedAt.Format(time.RFC3339),
	}, nil
}
