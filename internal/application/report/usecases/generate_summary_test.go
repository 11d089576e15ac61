package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chroma-excellence/chromaqa/internal/domain/checklist"
	"github.com/chroma-excellence/chromaqa/internal/domain/report"
	vo "github.com/chroma-excellence/chromaqa/internal/domain/report/valueobjects"
	"github.com/chroma-excellence/chromaqa/internal/shared/errors"
)

func TestGenerateSummaryUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	newUC := func(reportRepo *mockReportRepository, summaryRepo *mockSummaryRepository, generator *mockGenerator) *GenerateSummaryUseCase {
		templateRepo := &mockTemplateRepository{
			GetByVersionFunc: func(ctx context.Context, version string) (*checklist.Template, error) {
				return fixtureTemplate(), nil
			},
		}
		return NewGenerateSummaryUseCase(
			reportRepo, templateRepo, summaryRepo, generator,
			newTestRegistry(t), newTestClock(), nopLogger{}, 5*time.Second,
		)
	}

	t.Run("accepted and saved in background", func(t *testing.T) {
		r := fixtureReport(t, 5, vo.StatusSubmitted, 2)
		reportRepo := &mockReportRepository{
			GetByIDFunc: func(ctx context.Context, id uint) (*report.Report, error) { return r, nil },
		}
		saved := make(chan *report.Summary, 1)
		summaryRepo := &mockSummaryRepository{
			SaveFunc: func(ctx context.Context, s *report.Summary) error {
				saved <- s
				return nil
			},
		}
		generator := &mockGenerator{
			GenerateFunc: func(ctx context.Context, r *report.Report, tpl *checklist.Template) (string, error) {
				return "## Findings\nAll sections meet expectations.", nil
			},
		}
		uc := newUC(reportRepo, summaryRepo, generator)

		result, err := uc.Execute(ctx, GenerateSummaryCommand{Actor: officerActor(), ReportID: 42})

		require.NoError(t, err)
		assert.Equal(t, "accepted", result.Status)

		select {
		case s := <-saved:
			assert.Equal(t, uint(42), s.ReportID)
			assert.NotEmpty(t, s.ContentHash)
		case <-time.After(2 * time.Second):
			t.Fatal("summary was never saved")
		}
	})

	t.Run("generation failure never reaches the store", func(t *testing.T) {
		r := fixtureReport(t, 5, vo.StatusSubmitted, 2)
		reportRepo := &mockReportRepository{
			GetByIDFunc: func(ctx context.Context, id uint) (*report.Report, error) { return r, nil },
		}
		done := make(chan struct{})
		summaryRepo := &mockSummaryRepository{
			SaveFunc: func(ctx context.Context, s *report.Summary) error {
				t.Error("save should not be called on generation failure")
				return nil
			},
		}
		generator := &mockGenerator{
			GenerateFunc: func(ctx context.Context, r *report.Report, tpl *checklist.Template) (string, error) {
				defer close(done)
				return "", context.DeadlineExceeded
			},
		}
		uc := newUC(reportRepo, summaryRepo, generator)

		_, err := uc.Execute(ctx, GenerateSummaryCommand{Actor: officerActor(), ReportID: 42})

		require.NoError(t, err)
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("generator never ran")
		}
	})

	t.Run("superseded run discards its result", func(t *testing.T) {
		r := fixtureReport(t, 5, vo.StatusSubmitted, 2)
		reportRepo := &mockReportRepository{
			GetByIDFunc: func(ctx context.Context, id uint) (*report.Report, error) { return r, nil },
		}
		firstStarted := make(chan struct{})
		release := make(chan struct{})
		saved := make(chan *report.Summary, 2)
		summaryRepo := &mockSummaryRepository{
			SaveFunc: func(ctx context.Context, s *report.Summary) error {
				saved <- s
				return nil
			},
		}
		call := 0
		generator := &mockGenerator{
			GenerateFunc: func(ctx context.Context, r *report.Report, tpl *checklist.Template) (string, error) {
				call++
				if call == 1 {
					close(firstStarted)
					<-release
					return "stale result", nil
				}
				return "fresh result", nil
			},
		}
		uc := newUC(reportRepo, summaryRepo, generator)

		_, err := uc.Execute(ctx, GenerateSummaryCommand{Actor: officerActor(), ReportID: 42})
		require.NoError(t, err)
		<-firstStarted

		_, err = uc.Execute(ctx, GenerateSummaryCommand{Actor: officerActor(), ReportID: 42})
		require.NoError(t, err)

		// Second run completes first; then let the stale run finish.
		var first *report.Summary
		select {
		case first = <-saved:
		case <-time.After(2 * time.Second):
			t.Fatal("fresh run never saved")
		}
		assert.Equal(t, "fresh result", first.Content)

		close(release)
		select {
		case s := <-saved:
			t.Fatalf("stale run saved a summary: %q", s.Content)
		case <-time.After(200 * time.Millisecond):
		}
	})

	t.Run("slow save cannot be overtaken by a newer run", func(t *testing.T) {
		r := fixtureReport(t, 5, vo.StatusSubmitted, 2)
		reportRepo := &mockReportRepository{
			GetByIDFunc: func(ctx context.Context, id uint) (*report.Report, error) { return r, nil },
		}
		enteredSave := make(chan struct{})
		releaseSave := make(chan struct{})
		saved := make(chan *report.Summary, 2)
		summaryRepo := &mockSummaryRepository{
			SaveFunc: func(ctx context.Context, s *report.Summary) error {
				if s.Content == "first result" {
					close(enteredSave)
					<-releaseSave
				}
				saved <- s
				return nil
			},
		}
		call := 0
		generator := &mockGenerator{
			GenerateFunc: func(ctx context.Context, r *report.Report, tpl *checklist.Template) (string, error) {
				call++
				if call == 1 {
					return "first result", nil
				}
				return "second result", nil
			},
		}
		uc := newUC(reportRepo, summaryRepo, generator)

		_, err := uc.Execute(ctx, GenerateSummaryCommand{Actor: officerActor(), ReportID: 42})
		require.NoError(t, err)
		<-enteredSave

		// The first run is mid-save. A newer run's result must queue
		// behind it, not land first and get clobbered.
		_, err = uc.Execute(ctx, GenerateSummaryCommand{Actor: officerActor(), ReportID: 42})
		require.NoError(t, err)

		select {
		case s := <-saved:
			t.Fatalf("a save completed while an earlier save was still in flight: %q", s.Content)
		case <-time.After(200 * time.Millisecond):
		}

		close(releaseSave)
		var contents []string
		for i := 0; i < 2; i++ {
			select {
			case s := <-saved:
				contents = append(contents, s.Content)
			case <-time.After(2 * time.Second):
				t.Fatal("expected both runs to save")
			}
		}
		assert.Equal(t, []string{"first result", "second result"}, contents)
	})

	t.Run("draft report cannot be summarized", func(t *testing.T) {
		r := fixtureReport(t, 5, vo.StatusDraft, 1)
		reportRepo := &mockReportRepository{
			GetByIDFunc: func(ctx context.Context, id uint) (*report.Report, error) { return r, nil },
		}
		uc := newUC(reportRepo, &mockSummaryRepository{}, &mockGenerator{})

		_, err := uc.Execute(ctx, GenerateSummaryCommand{Actor: officerActor(), ReportID: 42})

		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("program manager lacks AI capability", func(t *testing.T) {
		uc := newUC(&mockReportRepository{}, &mockSummaryRepository{}, &mockGenerator{})

		_, err := uc.Execute(ctx, GenerateSummaryCommand{Actor: managerActor(), ReportID: 42})

		require.Error(t, err)
		assert.True(t, errors.IsForbiddenError(err))
	})
}
