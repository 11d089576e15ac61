package report

import (
	"context"

	vo "github.com/chroma-excellence/chromaqa/internal/domain/report/valueobjects"
)

// Repository persists report aggregates. Update takes the version the
// caller last observed; implementations must reject the write with a
// conflict when the persisted version no longer matches, so two reviewers
// cannot concurrently decide the same report.
type Repository interface {
	Save(ctx context.Context, report *Report) error
	Update(ctx context.Context, report *Report, expectedVersion int) error
	Delete(ctx context.Context, reportID uint) error
	GetByID(ctx context.Context, reportID uint) (*Report, error)
	List(ctx context.Context, filter Filter) ([]*Report, int64, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

type Filter struct {
	SchoolID  *uint
	AuthorID  *uint
	Status    *vo.ReportStatus
	Type      *string
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
