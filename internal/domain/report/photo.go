package report

import (
	"context"
	"fmt"
	"time"
)

// Photo is evidence attached to a report, referenced by storage path
// rather than embedded in the aggregate.
type Photo struct {
	ID          uint
	ReportID    uint
	SectionKey  string
	StoragePath string
	Caption     string
	UploadedAt  time.Time
}

func NewPhoto(reportID uint, sectionKey, storagePath, caption string, uploadedAt time.Time) (*Photo, error) {
	if reportID == 0 {
		return nil, fmt.Errorf("report ID is required")
	}
	if storagePath == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	if sectionKey == "" {
		sectionKey = "general"
	}

	return &Photo{
		ReportID:    reportID,
		SectionKey:  sectionKey,
		StoragePath: storagePath,
		Caption:     caption,
		UploadedAt:  uploadedAt,
	}, nil
}

type PhotoRepository interface {
	Save(ctx context.Context, photo *Photo) error
	GetByReportID(ctx context.Context, reportID uint) ([]*Photo, error)
	Delete(ctx context.Context, photoID uint) error
	DeleteByReportID(ctx context.Context, reportID uint) error
}
