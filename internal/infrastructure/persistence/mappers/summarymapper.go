package mappers

import (
	"time"

	"github.com/chroma-excellence/chromaqa/internal/domain/report"
	"github.com/chroma-excellence/chromaqa/internal/infrastructure/persistence/models"
)

type SummaryMapper interface {
	ToModel(s *report.Summary) *models.SummaryModel
	ToDomain(m *models.SummaryModel) *report.Summary
}

type SummaryMapperImpl struct{}

func NewSummaryMapper() SummaryMapper {
	return &SummaryMapperImpl{}
}

func (mp *SummaryMapperImpl) ToModel(s *report.Summary) *models.SummaryModel {
	if s == nil {
		return nil
	}
	return &models.SummaryModel{
		ID:          s.ID,
		ReportID:    s.ReportID,
		Content:     s.Content,
		ContentHash: s.ContentHash,
		GeneratedAt: s.GeneratedAt.UnixMilli(),
		Superseded:  s.Superseded,
	}
}

func (mp *SummaryMapperImpl) ToDomain(m *models.SummaryModel) *report.Summary {
	if m == nil {
		return nil
	}
	return &report.Summary{
		ID:          m.ID,
		ReportID:    m.ReportID,
		Content:     m.Content,
		ContentHash: m.ContentHash,
		GeneratedAt: time.UnixMilli(m.GeneratedAt),
		Superseded:  m.Superseded,
	}
}
