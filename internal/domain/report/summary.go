package report

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Summary is an AI-generated executive summary of a report. At most one
// is current per report; regeneration creates a new record that
// supersedes the prior one rather than mutating it.
type Summary struct {
	ID          uint
	ReportID    uint
	Content     string
	ContentHash string
	GeneratedAt time.Time
	Superseded  bool
}

func NewSummary(reportID uint, content string, generatedAt time.Time) (*Summary, error) {
	if reportID == 0 {
		return nil, fmt.Errorf("report ID is required")
	}
	if content == "" {
		return nil, fmt.Errorf("summary content is required")
	}

	hash := sha256.Sum256([]byte(content))
	return &Summary{
		ReportID:    reportID,
		Content:     content,
		ContentHash: hex.EncodeToString(hash[:]),
		GeneratedAt: generatedAt,
	}, nil
}

// SummaryRepository persists summaries. Save must atomically mark any
// existing current summary for the report as superseded.
type SummaryRepository interface {
	Save(ctx context.Context, summary *Summary) error
	GetCurrentByReportID(ctx context.Context, reportID uint) (*Summary, error)
	DeleteByReportID(ctx context.Context, reportID uint) error
}
