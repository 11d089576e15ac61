package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chroma-excellence/chromaqa/internal/domain/capability"
	"github.com/chroma-excellence/chromaqa/internal/domain/report"
	vo "github.com/chroma-excellence/chromaqa/internal/domain/report/valueobjects"
	"github.com/chroma-excellence/chromaqa/internal/shared/errors"
)

func TestListReportsUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("view all sees the unscoped filter", func(t *testing.T) {
		var captured report.Filter
		reportRepo := &mockReportRepository{
			ListFunc: func(ctx context.Context, filter report.Filter) ([]*report.Report, int64, error) {
				captured = filter
				return []*report.Report{fixtureReport(t, 5, vo.StatusSubmitted, 2)}, 1, nil
			},
		}
		uc := NewListReportsUseCase(reportRepo, newTestRegistry(t), nopLogger{})

		result, err := uc.Execute(ctx, ListReportsQuery{Actor: officerActor()})

		require.NoError(t, err)
		assert.Nil(t, captured.AuthorID)
		assert.Equal(t, int64(1), result.Total)
		require.Len(t, result.Reports, 1)
		assert.Equal(t, "submitted", result.Reports[0].Status)
	})

	t.Run("view own is forced onto the actor's reports", func(t *testing.T) {
		var captured report.Filter
		reportRepo := &mockReportRepository{
			ListFunc: func(ctx context.Context, filter report.Filter) ([]*report.Report, int64, error) {
				captured = filter
				return nil, 0, nil
			},
		}
		uc := NewListReportsUseCase(reportRepo, newTestRegistry(t), nopLogger{})

		other := uint(77)
		_, err := uc.Execute(ctx, ListReportsQuery{Actor: managerActor(), SchoolID: &other})

		require.NoError(t, err)
		require.NotNil(t, captured.AuthorID)
		assert.Equal(t, uint(9), *captured.AuthorID)
	})

	t.Run("unknown role is forbidden", func(t *testing.T) {
		uc := NewListReportsUseCase(&mockReportRepository{}, newTestRegistry(t), nopLogger{})

		_, err := uc.Execute(ctx, ListReportsQuery{Actor: Actor{ID: 3, Role: capability.Role("intern")}})

		require.Error(t, err)
		assert.True(t, errors.IsForbiddenError(err))
	})

	t.Run("sort and paging are normalized", func(t *testing.T) {
		var captured report.Filter
		reportRepo := &mockReportRepository{
			ListFunc: func(ctx context.Context, filter report.Filter) ([]*report.Report, int64, error) {
				captured = filter
				return nil, 0, nil
			},
		}
		uc := NewListReportsUseCase(reportRepo, newTestRegistry(t), nopLogger{})

		_, err := uc.Execute(ctx, ListReportsQuery{
			Actor:     officerActor(),
			Page:      -3,
			PageSize:  9999,
			SortBy:    "responses; DROP TABLE reports",
			SortOrder: "sideways",
		})

		require.NoError(t, err)
		assert.Equal(t, 1, captured.Page)
		assert.Equal(t, 100, captured.PageSize)
		assert.Equal(t, "created_at", captured.SortBy)
		assert.Equal(t, "desc", captured.SortOrder)
	})

	t.Run("invalid status filter", func(t *testing.T) {
		uc := NewListReportsUseCase(&mockReportRepository{}, newTestRegistry(t), nopLogger{})

		bad := "archived"
		_, err := uc.Execute(ctx, ListReportsQuery{Actor: officerActor(), Status: &bad})

		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
	})
}
