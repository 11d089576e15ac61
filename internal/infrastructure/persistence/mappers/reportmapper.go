package mappers

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/chroma-excellence/chromaqa/internal/domain/checklist"
	"github.com/chroma-excellence/chromaqa/internal/domain/report"
	vo "github.com/chroma-excellence/chromaqa/internal/domain/report/valueobjects"
	"github.com/chroma-excellence/chromaqa/internal/infrastructure/persistence/models"
)

// ReportMapper converts between report domain entities and database models.
type ReportMapper interface {
	ToModel(r *report.Report) (*models.ReportModel, error)
	ToDomain(m *models.ReportModel) (*report.Report, error)
}

type ReportMapperImpl struct{}

func NewReportMapper() ReportMapper {
	return &ReportMapperImpl{}
}

func (mp *ReportMapperImpl) ToModel(r *report.Report) (*models.ReportModel, error) {
	if r == nil {
		return nil, fmt.Errorf("report cannot be nil")
	}

	responses, err := json.Marshal(r.Responses())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal responses: %w", err)
	}

	return &models.ReportModel{
		ID:              r.ID(),
		SchoolID:        r.SchoolID(),
		AuthorID:        r.AuthorID(),
		ReportType:      r.ReportType(),
		TemplateVersion: r.TemplateVersion(),
		InspectionDate:  r.InspectionDate().UnixMilli(),
		Status:          r.Status().String(),
		Responses:       datatypes.JSON(responses),
		ClosingNotes:    r.ClosingNotes(),
		Version:         r.Version(),
		CreatedAt:       r.CreatedAt().UnixMilli(),
		UpdatedAt:       r.UpdatedAt().UnixMilli(),
	}, nil
}

func (mp *ReportMapperImpl) ToDomain(m *models.ReportModel) (*report.Report, error) {
	if m == nil {
		return nil, fmt.Errorf("report model cannot be nil")
	}

	responses := checklist.ResponseSet{}
	if len(m.Responses) > 0 {
		if err := json.Unmarshal(m.Responses, &responses); err != nil {
			return nil, fmt.Errorf("failed to unmarshal responses for report %d: %w", m.ID, err)
		}
	}

	return report.ReconstructReport(
		m.ID,
		m.SchoolID,
		m.AuthorID,
		m.ReportType,
		m.TemplateVersion,
		time.UnixMilli(m.InspectionDate),
		vo.ReportStatus(m.Status),
		responses,
		m.ClosingNotes,
		m.Version,
		time.UnixMilli(m.CreatedAt),
		time.UnixMilli(m.UpdatedAt),
	)
}
