package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportStatus_TransitionTable(t *testing.T) {
	allStatuses := []ReportStatus{
		StatusDraft, StatusSubmitted, StatusUnderReview, StatusApproved, StatusRejected,
	}

	allowed := map[ReportStatus][]ReportStatus{
		StatusDraft:       {StatusSubmitted},
		StatusSubmitted:   {StatusUnderReview},
		StatusUnderReview: {StatusApproved, StatusRejected},
		StatusRejected:    {StatusDraft},
		StatusApproved:    {},
	}

	// Exhaustive check: every pair either appears in the table or is refused.
	for _, from := range allStatuses {
		for _, to := range allStatuses {
			want := false
			for _, a := range allowed[from] {
				if a == to {
					want = true
				}
			}
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestReportStatus_UnknownStatusCannotTransition(t *testing.T) {
	unknown := ReportStatus("archived")

	assert.False(t, unknown.IsValid())
	assert.False(t, unknown.CanTransitionTo(StatusDraft))
	assert.False(t, StatusDraft.CanTransitionTo(unknown))
}

func TestReportStatus_IsEditable(t *testing.T) {
	assert.True(t, StatusDraft.IsEditable())
	assert.True(t, StatusRejected.IsEditable())
	assert.False(t, StatusSubmitted.IsEditable())
	assert.False(t, StatusUnderReview.IsEditable())
	assert.False(t, StatusApproved.IsEditable())
}

func TestReportStatus_AllowsSummaryGeneration(t *testing.T) {
	assert.False(t, StatusDraft.AllowsSummaryGeneration())
	assert.False(t, StatusRejected.AllowsSummaryGeneration())
	assert.True(t, StatusSubmitted.AllowsSummaryGeneration())
	assert.True(t, StatusUnderReview.AllowsSummaryGeneration())
	assert.True(t, StatusApproved.AllowsSummaryGeneration())
}

func TestNewReportStatus(t *testing.T) {
	status, err := NewReportStatus("under_review")
	require.NoError(t, err)
	assert.Equal(t, StatusUnderReview, status)

	_, err = NewReportStatus("pending")
	require.Error(t, err)
}
