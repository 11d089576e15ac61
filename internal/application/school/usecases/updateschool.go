package usecases

import (
	"context"
	"fmt"

	"github.com/chroma-excellence/chromaqa/internal/domain/capability"
	"github.com/chroma-excellence/chromaqa/internal/domain/school"
	"github.com/chroma-excellence/chromaqa/internal/shared/clock"
	"github.com/chroma-excellence/chromaqa/internal/shared/errors"
	"github.com/chroma-excellence/chromaqa/internal/shared/logger"
)

type UpdateSchoolCommand struct {
	ActorRole capability.Role
	SchoolID  uint
	Name      string
	Region    string
	Address   string
	Active    *bool
}

type UpdateSchoolUseCase struct {
	schoolRepo school.Repository
	registry   *capability.Registry
	clock      clock.Clock
	logger     logger.Interface
}

func NewUpdateSchoolUseCase(
	schoolRepo school.Repository,
	registry *capability.Registry,
	clock clock.Clock,
	logger logger.Interface,
) *UpdateSchoolUseCase {
	return &UpdateSchoolUseCase{
		schoolRepo: schoolRepo,
		registry:   registry,
		clock:      clock,
		logger:     logger,
	}
}

func (uc *UpdateSchoolUseCase) Execute(ctx context.Context, cmd UpdateSchoolCommand) (*SchoolView, error) {
	uc.logger.Infow("executing update school use case", "school_id", cmd.SchoolID)

	if err := requireManageSchools(uc.registry, cmd.ActorRole); err != nil {
		return nil, err
	}
	if cmd.SchoolID == 0 {
		return nil, errors.NewValidationError("school ID is required")
	}

	s, err := uc.schoolRepo.GetByID(ctx, cmd.SchoolID)
	if err != nil {
		uc.logger.Errorw("failed to get school", "school_id", cmd.SchoolID, "error", err)
		return nil, errors.NewCollaboratorError("get school", err)
	}
	if s == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("school %d not found", cmd.SchoolID))
	}

	now := uc.clock.Now()
	if err := s.UpdateDetails(cmd.Name, cmd.Region, cmd.Address, now); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if cmd.Active != nil {
		if *cmd.Active {
			s.Activate(now)
		} else {
			s.Deactivate(now)
		}
	}

	if err := uc.schoolRepo.Update(ctx, s); err != nil {
		uc.logger.Errorw("failed to update school", "school_id", cmd.SchoolID, "error", err)
		return nil, errors.NewCollaboratorError("update school", err)
	}

	uc.logger.Infow("school updated", "school_id", s.ID())
	return newSchoolView(s), nil
}
