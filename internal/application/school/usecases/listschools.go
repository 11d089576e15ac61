package usecases

import (
	"context"

	"github.com/chroma-excellence/chromaqa/internal/domain/school"
	"github.com/chroma-excellence/chromaqa/internal/shared/errors"
	"github.com/chroma-excellence/chromaqa/internal/shared/logger"
)

type ListSchoolsQuery struct {
	Region   *string
	Active   *bool
	Search   string
	Page     int
	PageSize int
}

type ListSchoolsResult struct {
	Schools  []SchoolView `json:"schools"`
	Total    int64        `json:"total"`
	Page     int          `json:"page"`
	PageSize int          `json:"page_size"`
}

type ListSchoolsUseCase struct {
	schoolRepo school.Repository
	logger     logger.Interface
}

func NewListSchoolsUseCase(schoolRepo school.Repository, logger logger.Interface) *ListSchoolsUseCase {
	return &ListSchoolsUseCase{
		schoolRepo: schoolRepo,
		logger:     logger,
	}
}

func (uc *ListSchoolsUseCase) Execute(ctx context.Context, query ListSchoolsQuery) (*ListSchoolsResult, error) {
	filter := school.Filter{
		Region:   query.Region,
		Active:   query.Active,
		Search:   query.Search,
		Page:     query.Page,
		PageSize: query.PageSize,
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	if filter.PageSize > 100 {
		filter.PageSize = 100
	}

	schools, total, err := uc.schoolRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list schools", "error", err)
		return nil, errors.NewCollaboratorError("list schools", err)
	}

	views := make([]SchoolView, 0, len(schools))
	for _, s := range schools {
		views = append(views, *newSchoolView(s))
	}

	return &ListSchoolsResult{
		Schools:  views,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}
