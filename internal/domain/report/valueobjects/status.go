// Package valueobjects defines the closed status set and transition table
// for inspection reports. Any status change not listed here is rejected,
// never coerced.
package valueobjects

import "fmt"

type ReportStatus string

const (
	StatusDraft       ReportStatus = "draft"
	StatusSubmitted   ReportStatus = "submitted"
	StatusUnderReview ReportStatus = "under_review"
	StatusApproved    ReportStatus = "approved"
	StatusRejected    ReportStatus = "rejected"
)

var validReportStatuses = map[ReportStatus]bool{
	StatusDraft:       true,
	StatusSubmitted:   true,
	StatusUnderReview: true,
	StatusApproved:    true,
	StatusRejected:    true,
}

// reportStatusTransitions is the full lifecycle: a linear review pipeline
// with a rework loop through rejected. Approved is terminal.
var reportStatusTransitions = map[ReportStatus][]ReportStatus{
	StatusDraft: {
		StatusSubmitted,
	},
	StatusSubmitted: {
		StatusUnderReview,
	},
	StatusUnderReview: {
		StatusApproved,
		StatusRejected,
	},
	StatusRejected: {
		StatusDraft,
	},
	StatusApproved: {},
}

func (rs ReportStatus) String() string {
	return string(rs)
}

func (rs ReportStatus) IsValid() bool {
	return validReportStatuses[rs]
}

func (rs ReportStatus) CanTransitionTo(newStatus ReportStatus) bool {
	allowed, ok := reportStatusTransitions[rs]
	if !ok {
		return false
	}

	for _, s := range allowed {
		if s == newStatus {
			return true
		}
	}
	return false
}

// IsEditable reports whether the owning author may still change responses.
func (rs ReportStatus) IsEditable() bool {
	return rs == StatusDraft || rs == StatusRejected
}

func (rs ReportStatus) IsDraft() bool {
	return rs == StatusDraft
}

func (rs ReportStatus) IsSubmitted() bool {
	return rs == StatusSubmitted
}

func (rs ReportStatus) IsUnderReview() bool {
	return rs == StatusUnderReview
}

func (rs ReportStatus) IsApproved() bool {
	return rs == StatusApproved
}

func (rs ReportStatus) IsRejected() bool {
	return rs == StatusRejected
}

// AllowsSummaryGeneration reports whether AI summary generation may run:
// only once the report has left draft.
func (rs ReportStatus) AllowsSummaryGeneration() bool {
	return rs == StatusSubmitted || rs == StatusUnderReview || rs == StatusApproved
}

func NewReportStatus(s string) (ReportStatus, error) {
	rs := ReportStatus(s)
	if !rs.IsValid() {
		return "", fmt.Errorf("invalid report status: %s", s)
	}
	return rs, nil
}
