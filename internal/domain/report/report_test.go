package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chroma-excellence/chromaqa/internal/domain/checklist"
	vo "github.com/chroma-excellence/chromaqa/internal/domain/report/valueobjects"
	"github.com/chroma-excellence/chromaqa/internal/shared/errors"
)

var testNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func testTemplate() *checklist.Template {
	return &checklist.Template{
		Version: "2024.1",
		Type:    "tier1",
		Sections: []checklist.Section{
			{
				Key:       "safety",
				Title:     "Health & Safety",
				Mandatory: true,
				Items: []checklist.Item{
					{Key: "safety.exits"},
					{Key: "safety.first_aid"},
					{Key: "safety.ratios"},
				},
			},
			{
				Key:       "curriculum",
				Title:     "Curriculum Delivery",
				Mandatory: true,
				Items: []checklist.Item{
					{Key: "curriculum.plans"},
					{Key: "curriculum.materials"},
				},
			},
		},
	}
}

func completeResponses() checklist.ResponseSet {
	return checklist.ResponseSet{
		"safety.exits":         {ItemKey: "safety.exits", Rating: checklist.RatingMeets},
		"safety.first_aid":     {ItemKey: "safety.first_aid", Rating: checklist.RatingMeets},
		"safety.ratios":        {ItemKey: "safety.ratios", Rating: checklist.RatingExceeds},
		"curriculum.plans":     {ItemKey: "curriculum.plans", Rating: checklist.RatingMeets},
		"curriculum.materials": {ItemKey: "curriculum.materials", Rating: checklist.RatingMeets},
	}
}

func draftReport(t *testing.T, responses checklist.ResponseSet) *Report {
	t.Helper()
	r, err := ReconstructReport(
		1, 10, 5, "tier1", "2024.1",
		testNow.AddDate(0, 0, -1),
		vo.StatusDraft,
		responses,
		"",
		1,
		testNow.Add(-time.Hour), testNow.Add(-time.Hour),
	)
	require.NoError(t, err)
	return r
}

func reportInStatus(t *testing.T, status vo.ReportStatus) *Report {
	t.Helper()
	r, err := ReconstructReport(
		1, 10, 5, "tier1", "2024.1",
		testNow.AddDate(0, 0, -1),
		status,
		completeResponses(),
		"",
		3,
		testNow.Add(-time.Hour), testNow.Add(-time.Hour),
	)
	require.NoError(t, err)
	return r
}

func TestNewReport(t *testing.T) {
	r, err := NewReport(10, 5, "tier1", "2024.1", testNow, testNow)
	require.NoError(t, err)

	assert.Equal(t, vo.StatusDraft, r.Status())
	assert.Equal(t, 1, r.Version())
	assert.True(t, r.IsOwnedBy(5))
	assert.Empty(t, r.Responses())
}

func TestNewReport_Validation(t *testing.T) {
	tests := []struct {
		name            string
		schoolID        uint
		authorID        uint
		reportType      string
		templateVersion string
	}{
		{"missing school", 0, 5, "tier1", "2024.1"},
		{"missing author", 10, 0, "tier1", "2024.1"},
		{"missing type", 10, 5, "", "2024.1"},
		{"missing template version", 10, 5, "tier1", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewReport(tt.schoolID, tt.authorID, tt.reportType, tt.templateVersion, testNow, testNow)
			require.Error(t, err)
		})
	}
}

func TestReport_Submit(t *testing.T) {
	t.Run("complete report submits", func(t *testing.T) {
		r := draftReport(t, completeResponses())

		err := r.Submit(testTemplate(), testNow)

		require.NoError(t, err)
		assert.Equal(t, vo.StatusSubmitted, r.Status())
		assert.Equal(t, 2, r.Version())
		assert.Equal(t, testNow, r.UpdatedAt())
	})

	t.Run("incomplete second section names it", func(t *testing.T) {
		responses := completeResponses()
		delete(responses, "curriculum.materials")
		r := draftReport(t, responses)

		err := r.Submit(testTemplate(), testNow)

		require.Error(t, err)
		assert.True(t, errors.IsIncompleteReportError(err))
		appErr := errors.GetAppError(err)
		assert.Equal(t, "curriculum", appErr.Details["section_key"])
		assert.Equal(t, "Curriculum Delivery", appErr.Details["section_title"])
		assert.Equal(t, vo.StatusDraft, r.Status())
	})

	t.Run("answering the missing item unblocks submission", func(t *testing.T) {
		responses := completeResponses()
		delete(responses, "curriculum.materials")
		r := draftReport(t, responses)

		require.Error(t, r.Submit(testTemplate(), testNow))

		responses["curriculum.materials"] = checklist.Response{
			ItemKey: "curriculum.materials",
			Rating:  checklist.RatingMeets,
		}
		require.NoError(t, r.UpdateResponses(responses, 5, false, testNow))
		require.NoError(t, r.Submit(testTemplate(), testNow))
		assert.Equal(t, vo.StatusSubmitted, r.Status())
	})

	t.Run("cannot submit twice", func(t *testing.T) {
		r := reportInStatus(t, vo.StatusSubmitted)

		err := r.Submit(testTemplate(), testNow)

		require.Error(t, err)
		assert.True(t, errors.IsInvalidTransitionError(err))
	})
}

func TestReport_ReviewCycle(t *testing.T) {
	r := draftReport(t, completeResponses())

	require.NoError(t, r.Submit(testTemplate(), testNow))
	require.NoError(t, r.StartReview(testNow))
	assert.Equal(t, vo.StatusUnderReview, r.Status())

	require.NoError(t, r.Reject(testNow))
	assert.Equal(t, vo.StatusRejected, r.Status())

	require.NoError(t, r.Rework(testNow))
	assert.Equal(t, vo.StatusDraft, r.Status())

	require.NoError(t, r.Submit(testTemplate(), testNow))
	require.NoError(t, r.StartReview(testNow))
	require.NoError(t, r.Approve(testNow))
	assert.Equal(t, vo.StatusApproved, r.Status())
}

func TestReport_InvalidTransitions(t *testing.T) {
	tests := []struct {
		name string
		from vo.ReportStatus
		call func(r *Report) error
	}{
		{"approve from draft", vo.StatusDraft, func(r *Report) error { return r.Approve(testNow) }},
		{"reject from submitted", vo.StatusSubmitted, func(r *Report) error { return r.Reject(testNow) }},
		{"review from approved", vo.StatusApproved, func(r *Report) error { return r.StartReview(testNow) }},
		{"rework from draft", vo.StatusDraft, func(r *Report) error { return r.Rework(testNow) }},
		{"approve twice", vo.StatusApproved, func(r *Report) error { return r.Approve(testNow) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := reportInStatus(t, tt.from)

			err := tt.call(r)

			require.Error(t, err)
			assert.True(t, errors.IsInvalidTransitionError(err))
			assert.Equal(t, tt.from, r.Status())
		})
	}
}

func TestReport_UpdateResponses(t *testing.T) {
	t.Run("owner edits draft", func(t *testing.T) {
		r := draftReport(t, checklist.ResponseSet{})

		err := r.UpdateResponses(completeResponses(), 5, false, testNow)

		require.NoError(t, err)
		assert.Len(t, r.Responses(), 5)
		assert.Equal(t, 2, r.Version())
	})

	t.Run("non-owner without edit-all is refused", func(t *testing.T) {
		r := draftReport(t, checklist.ResponseSet{})

		err := r.UpdateResponses(completeResponses(), 99, false, testNow)

		require.Error(t, err)
		assert.Empty(t, r.Responses())
	})

	t.Run("edit-all actor edits another author's draft", func(t *testing.T) {
		r := draftReport(t, checklist.ResponseSet{})

		require.NoError(t, r.UpdateResponses(completeResponses(), 99, true, testNow))
	})

	t.Run("submitted report is not editable even by owner", func(t *testing.T) {
		r := reportInStatus(t, vo.StatusSubmitted)

		err := r.UpdateResponses(completeResponses(), 5, false, testNow)

		require.Error(t, err)
	})

	t.Run("rejected report is editable by owner", func(t *testing.T) {
		r := reportInStatus(t, vo.StatusRejected)

		require.NoError(t, r.UpdateResponses(completeResponses(), 5, false, testNow))
	})

	t.Run("invalid rating is refused", func(t *testing.T) {
		r := draftReport(t, checklist.ResponseSet{})

		err := r.UpdateResponses(checklist.ResponseSet{
			"safety.exits": {ItemKey: "safety.exits", Rating: checklist.Rating("amazing")},
		}, 5, false, testNow)

		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
	})
}

func TestReport_CanBeDeleted(t *testing.T) {
	assert.True(t, reportInStatus(t, vo.StatusDraft).CanBeDeleted(false))
	assert.True(t, reportInStatus(t, vo.StatusRejected).CanBeDeleted(false))
	assert.False(t, reportInStatus(t, vo.StatusApproved).CanBeDeleted(false))
	assert.True(t, reportInStatus(t, vo.StatusApproved).CanBeDeleted(true))
}

func TestReport_CanBeViewedBy(t *testing.T) {
	r := reportInStatus(t, vo.StatusSubmitted)

	assert.True(t, r.CanBeViewedBy(99, true, false))
	assert.True(t, r.CanBeViewedBy(5, false, true))
	assert.False(t, r.CanBeViewedBy(99, false, true))
	assert.False(t, r.CanBeViewedBy(5, false, false))
}

func TestReport_ResponsesReturnsCopy(t *testing.T) {
	r := draftReport(t, completeResponses())

	copied := r.Responses()
	delete(copied, "safety.exits")

	assert.Len(t, r.Responses(), 5)
}
