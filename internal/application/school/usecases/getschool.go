package usecases

import (
	"context"
	"fmt"

	"github.com/chroma-excellence/chromaqa/internal/domain/school"
	"github.com/chroma-excellence/chromaqa/internal/shared/errors"
	"github.com/chroma-excellence/chromaqa/internal/shared/logger"
)

type GetSchoolQuery struct {
	SchoolID uint
}

type GetSchoolUseCase struct {
	schoolRepo school.Repository
	logger     logger.Interface
}

func NewGetSchoolUseCase(schoolRepo school.Repository, logger logger.Interface) *GetSchoolUseCase {
	return &GetSchoolUseCase{
		schoolRepo: schoolRepo,
		logger:     logger,
	}
}

func (uc *GetSchoolUseCase) Execute(ctx context.Context, query GetSchoolQuery) (*SchoolView, error) {
	if query.SchoolID == 0 {
		return nil, errors.NewValidationError("school ID is required")
	}

	s, err := uc.schoolRepo.GetByID(ctx, query.SchoolID)
	if err != nil {
		uc.logger.Errorw("failed to get school", "school_id", query.SchoolID, "error", err)
		return nil, errors.NewCollaboratorError("get school", err)
	}
	if s == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("school %d not found", query.SchoolID))
	}

	return newSchoolView(s), nil
}
