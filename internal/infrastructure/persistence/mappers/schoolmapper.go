package mappers

import (
	"fmt"
	"time"

	"github.com/chroma-excellence/chromaqa/internal/domain/school"
	"github.com/chroma-excellence/chromaqa/internal/infrastructure/persistence/models"
)

type SchoolMapper interface {
	ToModel(s *school.School) *models.SchoolModel
	ToDomain(m *models.SchoolModel) (*school.School, error)
}

type SchoolMapperImpl struct{}

func NewSchoolMapper() SchoolMapper {
	return &SchoolMapperImpl{}
}

func (mp *SchoolMapperImpl) ToModel(s *school.School) *models.SchoolModel {
	if s == nil {
		return nil
	}
	return &models.SchoolModel{
		ID:        s.ID(),
		Name:      s.Name(),
		Region:    s.Region(),
		Address:   s.Address(),
		Active:    s.IsActive(),
		CreatedAt: s.CreatedAt().UnixMilli(),
		UpdatedAt: s.UpdatedAt().UnixMilli(),
	}
}

func (mp *SchoolMapperImpl) ToDomain(m *models.SchoolModel) (*school.School, error) {
	if m == nil {
		return nil, fmt.Errorf("school model cannot be nil")
	}
	return school.ReconstructSchool(
		m.ID,
		m.Name,
		m.Region,
		m.Address,
		m.Active,
		time.UnixMilli(m.CreatedAt),
		time.UnixMilli(m.UpdatedAt),
	)
}
