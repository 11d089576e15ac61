package mappers

import (
	"time"

	"github.com/chroma-excellence/chromaqa/internal/domain/report"
	"github.com/chroma-excellence/chromaqa/internal/infrastructure/persistence/models"
)

type PhotoMapper interface {
	ToModel(p *report.Photo) *models.PhotoModel
	ToDomain(m *models.PhotoModel) *report.Photo
}

type PhotoMapperImpl struct{}

func NewPhotoMapper() PhotoMapper {
	return &PhotoMapperImpl{}
}

func (mp *PhotoMapperImpl) ToModel(p *report.Photo) *models.PhotoModel {
	if p == nil {
		return nil
	}
	return &models.PhotoModel{
		ID:          p.ID,
		ReportID:    p.ReportID,
		SectionKey:  p.SectionKey,
		StoragePath: p.StoragePath,
		Caption:     p.Caption,
		UploadedAt:  p.UploadedAt.UnixMilli(),
	}
}

func (mp *PhotoMapperImpl) ToDomain(m *models.PhotoModel) *report.Photo {
	if m == nil {
		return nil
	}
	return &report.Photo{
		ID:          m.ID,
		ReportID:    m.ReportID,
		SectionKey:  m.SectionKey,
		StoragePath: m.StoragePath,
		Caption:     m.Caption,
		UploadedAt:  time.UnixMilli(m.UploadedAt),
	}
}
