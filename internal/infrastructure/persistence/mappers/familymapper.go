package mappers

import (
	"fmt"
	"time"

	"github.com/chroma-excellence/chromaqa/internal/domain/portal"
	"github.com/chroma-excellence/chromaqa/internal/infrastructure/persistence/models"
)

type FamilyMapper interface {
	ToModel(f *portal.Family) *models.FamilyModel
	ToDomain(m *models.FamilyModel) (*portal.Family, error)
}

type FamilyMapperImpl struct{}

func NewFamilyMapper() FamilyMapper {
	return &FamilyMapperImpl{}
}

func (mp *FamilyMapperImpl) ToModel(f *portal.Family) *models.FamilyModel {
	if f == nil {
		return nil
	}
	return &models.FamilyModel{
		ID:        f.ID(),
		Name:      f.Name(),
		PINHash:   f.PINHash(),
		Active:    f.IsActive(),
		CreatedAt: f.CreatedAt().UnixMilli(),
	}
}

func (mp *FamilyMapperImpl) ToDomain(m *models.FamilyModel) (*portal.Family, error) {
	if m == nil {
		return nil, fmt.Errorf("family model cannot be nil")
	}
	return portal.ReconstructFamily(
		m.ID,
		m.Name,
		m.PINHash,
		m.Active,
		time.UnixMilli(m.CreatedAt),
	)
}
