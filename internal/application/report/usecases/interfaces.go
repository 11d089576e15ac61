package usecases

import (
	"context"

	"github.com/chroma-excellence/chromaqa/internal/domain/checklist"
	"github.com/chroma-excellence/chromaqa/internal/domain/report"
)

type CreateReportExecutor interface {
	Execute(ctx context.Context, cmd CreateReportCommand) (*CreateReportResult, error)
}

type SaveResponsesExecutor interface {
	Execute(ctx context.Context, cmd SaveResponsesCommand) (*SaveResponsesResult, error)
}

type SubmitReportExecutor interface {
	Execute(ctx context.Context, cmd SubmitReportCommand) (*TransitionResult, error)
}

type StartReviewExecutor interface {
	Execute(ctx context.Context, cmd StartReviewCommand) (*TransitionResult, error)
}

type ApproveReportExecutor interface {
	Execute(ctx context.Context, cmd ApproveReportCommand) (*TransitionResult, error)
}

type RejectReportExecutor interface {
	Execute(ctx context.Context, cmd RejectReportCommand) (*TransitionResult, error)
}

type ReworkReportExecutor interface {
	Execute(ctx context.Context, cmd ReworkReportCommand) (*TransitionResult, error)
}

type DeleteReportExecutor interface {
	Execute(ctx context.Context, cmd DeleteReportCommand) error
}

type GetReportExecutor interface {
	Execute(ctx context.Context, query GetReportQuery) (*ReportDetail, error)
}

type ListReportsExecutor interface {
	Execute(ctx context.Context, query ListReportsQuery) (*ListReportsResult, error)
}

type GetProgressExecutor interface {
	Execute(ctx context.Context, query GetProgressQuery) (*ProgressResult, error)
}

type GenerateSummaryExecutor interface {
	Execute(ctx context.Context, cmd GenerateSummaryCommand) (*GenerateSummaryResult, error)
}

type ExportReportExecutor interface {
	Execute(ctx context.Context, query ExportReportQuery) (*ExportResult, error)
}

type GetStatsExecutor interface {
	Execute(ctx context.Context, query GetStatsQuery) (*StatsResult, error)
}

type AddPhotoExecutor interface {
	Execute(ctx context.Context, cmd AddPhotoCommand) (*AddPhotoResult, error)
}

type RemovePhotoExecutor interface {
	Execute(ctx context.Context, cmd RemovePhotoCommand) error
}

// SummaryGenerator produces an executive summary for a report. Called
// off the request path; implementations own their timeout handling
// through ctx.
type SummaryGenerator interface {
	Generate(ctx context.Context, r *report.Report, template *checklist.Template) (string, error)
}

// SummaryRenderer turns summary markdown into HTML safe to hand to a
// browser.
type SummaryRenderer interface {
	RenderHTML(markdown string) (string, error)
}

// PhotoFileStore removes stored photo files. The photo rows are the
// source of truth; file removal is best effort and a failure leaves an
// orphan for the retention sweep, never a dangling row.
type PhotoFileStore interface {
	Remove(ctx context.Context, storagePath string) error
}
