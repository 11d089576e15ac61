package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chroma-excellence/chromaqa/internal/domain/checklist"
	"github.com/chroma-excellence/chromaqa/internal/domain/report"
	vo "github.com/chroma-excellence/chromaqa/internal/domain/report/valueobjects"
	"github.com/chroma-excellence/chromaqa/internal/shared/errors"
)

func newSubmitUseCase(reportRepo *mockReportRepository, templateRepo *mockTemplateRepository, publisher *mockPublisher, t *testing.T) *SubmitReportUseCase {
	return NewSubmitReportUseCase(
		reportRepo, templateRepo, newTestRegistry(t), publisher, newTestClock(), nopLogger{},
	)
}

func TestSubmitReportUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("author submits complete draft", func(t *testing.T) {
		r := fixtureReport(t, 5, vo.StatusDraft, 1)
		var updatedWith int
		reportRepo := &mockReportRepository{
			GetByIDFunc: func(ctx context.Context, id uint) (*report.Report, error) { return r, nil },
			UpdateFunc: func(ctx context.Context, r *report.Report, expectedVersion int) error {
				updatedWith = expectedVersion
				return nil
			},
		}
		templateRepo := &mockTemplateRepository{
			GetByVersionFunc: func(ctx context.Context, version string) (*checklist.Template, error) {
				return fixtureTemplate(), nil
			},
		}
		publisher := &mockPublisher{}
		uc := newSubmitUseCase(reportRepo, templateRepo, publisher, t)

		result, err := uc.Execute(ctx, SubmitReportCommand{Actor: officerActor(), ReportID: 42, ExpectedVersion: 1})

		require.NoError(t, err)
		assert.Equal(t, "draft", result.OldStatus)
		assert.Equal(t, "submitted", result.NewStatus)
		assert.Equal(t, 1, updatedWith)
		require.Len(t, publisher.published, 1)
		assert.Equal(t, report.EventTypeReportSubmitted, publisher.published[0].GetEventType())
	})

	t.Run("incomplete mandatory section is refused", func(t *testing.T) {
		r := fixtureReport(t, 5, vo.StatusDraft, 1)
		tpl := fixtureTemplate()
		tpl.Sections = append(tpl.Sections, checklist.Section{
			Key:       "curriculum",
			Title:     "Curriculum Delivery",
			Mandatory: true,
			Items:     []checklist.Item{{Key: "curriculum.plans"}},
		})
		reportRepo := &mockReportRepository{
			GetByIDFunc: func(ctx context.Context, id uint) (*report.Report, error) { return r, nil },
		}
		templateRepo := &mockTemplateRepository{
			GetByVersionFunc: func(ctx context.Context, version string) (*checklist.Template, error) { return tpl, nil },
		}
		publisher := &mockPublisher{}
		uc := newSubmitUseCase(reportRepo, templateRepo, publisher, t)

		_, err := uc.Execute(ctx, SubmitReportCommand{Actor: officerActor(), ReportID: 42, ExpectedVersion: 1})

		require.Error(t, err)
		assert.True(t, errors.IsIncompleteReportError(err))
		assert.Equal(t, "curriculum", errors.GetAppError(err).Details["section_key"])
		assert.Empty(t, publisher.published)
	})

	t.Run("non-author without edit all is forbidden", func(t *testing.T) {
		r := fixtureReport(t, 77, vo.StatusDraft, 1)
		reportRepo := &mockReportRepository{
			GetByIDFunc: func(ctx context.Context, id uint) (*report.Report, error) { return r, nil },
		}
		uc := newSubmitUseCase(reportRepo, &mockTemplateRepository{}, &mockPublisher{}, t)

		_, err := uc.Execute(ctx, SubmitReportCommand{Actor: officerActor(), ReportID: 42, ExpectedVersion: 1})

		require.Error(t, err)
		assert.True(t, errors.IsForbiddenError(err))
	})

	t.Run("edit all actor submits another author's draft", func(t *testing.T) {
		r := fixtureReport(t, 77, vo.StatusDraft, 1)
		reportRepo := &mockReportRepository{
			GetByIDFunc: func(ctx context.Context, id uint) (*report.Report, error) { return r, nil },
		}
		templateRepo := &mockTemplateRepository{
			GetByVersionFunc: func(ctx context.Context, version string) (*checklist.Template, error) {
				return fixtureTemplate(), nil
			},
		}
		uc := newSubmitUseCase(reportRepo, templateRepo, &mockPublisher{}, t)

		_, err := uc.Execute(ctx, SubmitReportCommand{Actor: adminActor(), ReportID: 42, ExpectedVersion: 1})

		require.NoError(t, err)
	})

	t.Run("stale version surfaces conflict", func(t *testing.T) {
		r := fixtureReport(t, 5, vo.StatusDraft, 3)
		reportRepo := &mockReportRepository{
			GetByIDFunc: func(ctx context.Context, id uint) (*report.Report, error) { return r, nil },
			UpdateFunc: func(ctx context.Context, r *report.Report, expectedVersion int) error {
				return errors.NewConflictError("report version changed")
			},
		}
		templateRepo := &mockTemplateRepository{
			GetByVersionFunc: func(ctx context.Context, version string) (*checklist.Template, error) {
				return fixtureTemplate(), nil
			},
		}
		uc := newSubmitUseCase(reportRepo, templateRepo, &mockPublisher{}, t)

		_, err := uc.Execute(ctx, SubmitReportCommand{Actor: officerActor(), ReportID: 42, ExpectedVersion: 1})

		require.Error(t, err)
		assert.True(t, errors.IsConflictError(err))
	})

	t.Run("unknown report", func(t *testing.T) {
		uc := newSubmitUseCase(&mockReportRepository{}, &mockTemplateRepository{}, &mockPublisher{}, t)

		_, err := uc.Execute(ctx, SubmitReportCommand{Actor: officerActor(), ReportID: 42, ExpectedVersion: 1})

		require.Error(t, err)
		assert.True(t, errors.IsNotFoundError(err))
	})
}
