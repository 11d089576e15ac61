package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chroma-excellence/chromaqa/internal/domain/report"
	vo "github.com/chroma-excellence/chromaqa/internal/domain/report/valueobjects"
	"github.com/chroma-excellence/chromaqa/internal/shared/errors"
)

func TestApproveReportUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("administrator approves report under review", func(t *testing.T) {
		r := fixtureReport(t, 5, vo.StatusUnderReview, 3)
		reportRepo := &mockReportRepository{
			GetByIDFunc: func(ctx context.Context, id uint) (*report.Report, error) { return r, nil },
		}
		publisher := &mockPublisher{}
		uc := NewApproveReportUseCase(reportRepo, newTestRegistry(t), publisher, newTestClock(), nopLogger{})

		result, err := uc.Execute(ctx, ApproveReportCommand{Actor: adminActor(), ReportID: 42, ExpectedVersion: 3})

		require.NoError(t, err)
		assert.Equal(t, "under_review", result.OldStatus)
		assert.Equal(t, "approved", result.NewStatus)
		require.Len(t, publisher.published, 1)
		assert.Equal(t, report.EventTypeReportApproved, publisher.published[0].GetEventType())
	})

	t.Run("qa officer lacks approve capability", func(t *testing.T) {
		uc := NewApproveReportUseCase(&mockReportRepository{}, newTestRegistry(t), &mockPublisher{}, newTestClock(), nopLogger{})

		_, err := uc.Execute(ctx, ApproveReportCommand{Actor: officerActor(), ReportID: 42, ExpectedVersion: 3})

		require.Error(t, err)
		assert.True(t, errors.IsForbiddenError(err))
		assert.Equal(t, "approve_reports", errors.GetAppError(err).Details["required_capability"])
	})

	t.Run("approve from draft is an invalid transition", func(t *testing.T) {
		r := fixtureReport(t, 5, vo.StatusDraft, 1)
		reportRepo := &mockReportRepository{
			GetByIDFunc: func(ctx context.Context, id uint) (*report.Report, error) { return r, nil },
		}
		uc := NewApproveReportUseCase(reportRepo, newTestRegistry(t), &mockPublisher{}, newTestClock(), nopLogger{})

		_, err := uc.Execute(ctx, ApproveReportCommand{Actor: adminActor(), ReportID: 42, ExpectedVersion: 1})

		require.Error(t, err)
		assert.True(t, errors.IsInvalidTransitionError(err))
	})

	t.Run("concurrent decision loses on version conflict", func(t *testing.T) {
		r := fixtureReport(t, 5, vo.StatusUnderReview, 3)
		reportRepo := &mockReportRepository{
			GetByIDFunc: func(ctx context.Context, id uint) (*report.Report, error) { return r, nil },
			UpdateFunc: func(ctx context.Context, r *report.Report, expectedVersion int) error {
				// Another reviewer already advanced the version.
				return errors.NewConflictError("report version changed")
			},
		}
		publisher := &mockPublisher{}
		uc := NewApproveReportUseCase(reportRepo, newTestRegistry(t), publisher, newTestClock(), nopLogger{})

		_, err := uc.Execute(ctx, ApproveReportCommand{Actor: adminActor(), ReportID: 42, ExpectedVersion: 3})

		require.Error(t, err)
		assert.True(t, errors.IsConflictError(err))
		assert.Empty(t, publisher.published)
	})
}

func TestRejectReportUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("administrator rejects with reason", func(t *testing.T) {
		r := fixtureReport(t, 5, vo.StatusUnderReview, 3)
		reportRepo := &mockReportRepository{
			GetByIDFunc: func(ctx context.Context, id uint) (*report.Report, error) { return r, nil },
		}
		publisher := &mockPublisher{}
		uc := NewRejectReportUseCase(reportRepo, newTestRegistry(t), publisher, newTestClock(), nopLogger{})

		result, err := uc.Execute(ctx, RejectReportCommand{
			Actor:           adminActor(),
			ReportID:        42,
			ExpectedVersion: 3,
			Reason:          "ratios section contradicts photos",
		})

		require.NoError(t, err)
		assert.Equal(t, "rejected", result.NewStatus)
		require.Len(t, publisher.published, 1)
		rejected, ok := publisher.published[0].(report.ReportRejectedEvent)
		require.True(t, ok)
		assert.Equal(t, "ratios section contradicts photos", rejected.Reason)
	})

	t.Run("reject straight from submitted is refused", func(t *testing.T) {
		r := fixtureReport(t, 5, vo.StatusSubmitted, 2)
		reportRepo := &mockReportRepository{
			GetByIDFunc: func(ctx context.Context, id uint) (*report.Report, error) { return r, nil },
		}
		uc := NewRejectReportUseCase(reportRepo, newTestRegistry(t), &mockPublisher{}, newTestClock(), nopLogger{})

		_, err := uc.Execute(ctx, RejectReportCommand{Actor: adminActor(), ReportID: 42, ExpectedVersion: 2})

		require.Error(t, err)
		assert.True(t, errors.IsInvalidTransitionError(err))
	})
}
