package usecases

import (
	"context"
	"fmt"

	"github.com/chroma-excellence/chromaqa/internal/domain/capability"
	"github.com/chroma-excellence/chromaqa/internal/domain/report"
	"github.com/chroma-excellence/chromaqa/internal/domain/school"
	"github.com/chroma-excellence/chromaqa/internal/shared/errors"
	"github.com/chroma-excellence/chromaqa/internal/shared/logger"
)

type DeleteSchoolCommand struct {
	ActorRole capability.Role
	SchoolID  uint
}

// DeleteSchoolUseCase removes a school that has no reports. A school with
// inspection history is deactivated through update instead, so report
// references never dangle.
type DeleteSchoolUseCase struct {
	schoolRepo school.Repository
	reportRepo report.Repository
	registry   *capability.Registry
	logger     logger.Interface
}

func NewDeleteSchoolUseCase(
	schoolRepo school.Repository,
	reportRepo report.Repository,
	registry *capability.Registry,
	logger logger.Interface,
) *DeleteSchoolUseCase {
	return &DeleteSchoolUseCase{
		schoolRepo: schoolRepo,
		reportRepo: reportRepo,
		registry:   registry,
		logger:     logger,
	}
}

func (uc *DeleteSchoolUseCase) Execute(ctx context.Context, cmd DeleteSchoolCommand) error {
	uc.logger.Infow("executing delete school use case", "school_id", cmd.SchoolID)

	if err := requireManageSchools(uc.registry, cmd.ActorRole); err != nil {
		return err
	}
	if cmd.SchoolID == 0 {
		return errors.NewValidationError("school ID is required")
	}

	s, err := uc.schoolRepo.GetByID(ctx, cmd.SchoolID)
	if err != nil {
		uc.logger.Errorw("failed to get school", "school_id", cmd.SchoolID, "error", err)
		return errors.NewCollaboratorError("get school", err)
	}
	if s == nil {
		return errors.NewNotFoundError(fmt.Sprintf("school %d not found", cmd.SchoolID))
	}

	schoolID := cmd.SchoolID
	_, total, err := uc.reportRepo.List(ctx, report.Filter{SchoolID: &schoolID, Page: 1, PageSize: 1})
	if err != nil {
		uc.logger.Errorw("failed to check school reports", "school_id", cmd.SchoolID, "error", err)
		return errors.NewCollaboratorError("list school reports", err)
	}
	if total > 0 {
		return errors.NewConflictError(
			fmt.Sprintf("school %d has %d reports; deactivate it instead", cmd.SchoolID, total),
		)
	}

	if err := uc.schoolRepo.Delete(ctx, cmd.SchoolID); err != nil {
		uc.logger.Errorw("failed to delete school", "school_id", cmd.SchoolID, "error", err)
		return errors.NewCollaboratorError("delete school", err)
	}

	uc.logger.Infow("school deleted", "school_id", cmd.SchoolID)
	return nil
}
