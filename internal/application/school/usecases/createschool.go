package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/chroma-excellence/chromaqa/internal/domain/capability"
	"github.com/chroma-excellence/chromaqa/internal/domain/school"
	"github.com/chroma-excellence/chromaqa/internal/shared/clock"
	"github.com/chroma-excellence/chromaqa/internal/shared/errors"
	"github.com/chroma-excellence/chromaqa/internal/shared/logger"
)

type CreateSchoolCommand struct {
	ActorRole capability.Role
	Name      string
	Region    string
	Address   string
}

type SchoolView struct {
	SchoolID  uint   `json:"school_id"`
	Name      string `json:"name"`
	Region    string `json:"region,omitempty"`
	Address   string `json:"address,omitempty"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func newSchoolView(s *school.School) *SchoolView {
	return &SchoolView{
		SchoolID:  s.ID(),
		Name:      s.Name(),
		Region:    s.Region(),
		Address:   s.Address(),
		Active:    s.IsActive(),
		CreatedAt: s.CreatedAt().Format(time.RFC3339),
		UpdatedAt: s.UpdatedAt().Format(time.RFC3339),
	}
}

func requireManageSchools(registry *capability.Registry, role capability.Role) error {
	if !registry.Has(role, capability.ManageSchools) {
		return errors.NewForbiddenError(
			fmt.Sprintf("role %s lacks capability %s", role, capability.ManageSchools),
			capability.ManageSchools.String(),
		)
	}
	return nil
}

type CreateSchoolUseCase struct {
	schoolRepo school.Repository
	registry   *capability.Registry
	clock      clock.Clock
	logger     logger.Interface
}

func NewCreateSchoolUseCase(
	schoolRepo school.Repository,
	registry *capability.Registry,
	clock clock.Clock,
	logger logger.Interface,
) *CreateSchoolUseCase {
	return &CreateSchoolUseCase{
		schoolRepo: schoolRepo,
		registry:   registry,
		clock:      clock,
		logger:     logger,
	}
}

func (uc *CreateSchoolUseCase) Execute(ctx context.Context, cmd CreateSchoolCommand) (*SchoolView, error) {
	uc.logger.Infow("executing create school use case", "name", cmd.Name)

	if err := requireManageSchools(uc.registry, cmd.ActorRole); err != nil {
		return nil, err
	}

	s, err := school.NewSchool(cmd.Name, cmd.Region, cmd.Address, uc.clock.Now())
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.schoolRepo.Save(ctx, s); err != nil {
		uc.logger.Errorw("failed to save school", "error", err)
		return nil, errors.NewCollaboratorError("save school", err)
	}

	uc.logger.Infow("school created", "school_id", s.ID(), "name", s.Name())
	return newSchoolView(s), nil
}
