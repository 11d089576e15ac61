package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chroma-excellence/chromaqa/internal/domain/checklist"
	"github.com/chroma-excellence/chromaqa/internal/domain/report"
	"github.com/chroma-excellence/chromaqa/internal/domain/school"
	"github.com/chroma-excellence/chromaqa/internal/shared/errors"
)

func fixtureSchool(t *testing.T) *school.School {
	t.Helper()
	s, err := school.ReconstructSchool(10, "Northgate Academy", "north", "1 Elm Rd", true, testNow, testNow)
	require.NoError(t, err)
	return s
}

func TestCreateReportUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("officer creates draft against latest template", func(t *testing.T) {
		var saved *report.Report
		reportRepo := &mockReportRepository{
			SaveFunc: func(ctx context.Context, r *report.Report) error {
				saved = r
				return r.SetID(42)
			},
		}
		schoolRepo := &mockSchoolRepository{
			GetByIDFunc: func(ctx context.Context, id uint) (*school.School, error) { return fixtureSchool(t), nil },
		}
		templateRepo := &mockTemplateRepository{
			GetLatestByTypeFunc: func(ctx context.Context, reportType string) (*checklist.Template, error) {
				return fixtureTemplate(), nil
			},
		}
		uc := NewCreateReportUseCase(reportRepo, schoolRepo, templateRepo, newTestRegistry(t), newTestClock(), nopLogger{})

		result, err := uc.Execute(ctx, CreateReportCommand{
			Actor:          officerActor(),
			SchoolID:       10,
			ReportType:     "tier1",
			InspectionDate: testNow.AddDate(0, 0, 1),
		})

		require.NoError(t, err)
		assert.Equal(t, uint(42), result.ReportID)
		assert.Equal(t, "draft", result.Status)
		assert.Equal(t, "2024.1", result.TemplateVersion)
		assert.Equal(t, 1, result.Version)
		require.NotNil(t, saved)
		assert.True(t, saved.IsOwnedBy(5))
	})

	t.Run("program manager cannot create reports", func(t *testing.T) {
		uc := NewCreateReportUseCase(&mockReportRepository{}, &mockSchoolRepository{}, &mockTemplateRepository{}, newTestRegistry(t), newTestClock(), nopLogger{})

		_, err := uc.Execute(ctx, CreateReportCommand{
			Actor:          managerActor(),
			SchoolID:       10,
			ReportType:     "tier1",
			InspectionDate: testNow,
		})

		require.Error(t, err)
		assert.True(t, errors.IsForbiddenError(err))
	})

	t.Run("unknown school", func(t *testing.T) {
		uc := NewCreateReportUseCase(&mockReportRepository{}, &mockSchoolRepository{}, &mockTemplateRepository{}, newTestRegistry(t), newTestClock(), nopLogger{})

		_, err := uc.Execute(ctx, CreateReportCommand{
			Actor:          officerActor(),
			SchoolID:       404,
			ReportType:     "tier1",
			InspectionDate: testNow,
		})

		require.Error(t, err)
		assert.True(t, errors.IsNotFoundError(err))
	})

	t.Run("no template for type", func(t *testing.T) {
		schoolRepo := &mockSchoolRepository{
			GetByIDFunc: func(ctx context.Context, id uint) (*school.School, error) { return fixtureSchool(t), nil },
		}
		uc := NewCreateReportUseCase(&mockReportRepository{}, schoolRepo, &mockTemplateRepository{}, newTestRegistry(t), newTestClock(), nopLogger{})

		_, err := uc.Execute(ctx, CreateReportCommand{
			Actor:          officerActor(),
			SchoolID:       10,
			ReportType:     "tier9",
			InspectionDate: testNow,
		})

		require.Error(t, err)
		assert.True(t, errors.IsNotFoundError(err))
	})

	t.Run("missing inspection date", func(t *testing.T) {
		uc := NewCreateReportUseCase(&mockReportRepository{}, &mockSchoolRepository{}, &mockTemplateRepository{}, newTestRegistry(t), newTestClock(), nopLogger{})

		_, err := uc.Execute(ctx, CreateReportCommand{
			Actor:          officerActor(),
			SchoolID:       10,
			ReportType:     "tier1",
			InspectionDate: time.Time{},
		})

		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
	})
}
