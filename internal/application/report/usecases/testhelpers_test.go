package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/chroma-excellence/chromaqa/internal/domain/capability"
	"github.com/chroma-excellence/chromaqa/internal/domain/checklist"
	"github.com/chroma-excellence/chromaqa/internal/domain/report"
	vo "github.com/chroma-excellence/chromaqa/internal/domain/report/valueobjects"
	"github.com/chroma-excellence/chromaqa/internal/shared/clock"
)

var testNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func newTestRegistry(t *testing.T) *capability.Registry {
	t.Helper()
	registry, err := capability.NewRegistry(context.Background(), nil)
	require.NoError(t, err)
	return registry
}

func newTestClock() *clock.Fixed {
	return clock.NewFixed(testNow)
}

func officerActor() Actor {
	return Actor{ID: 5, Role: capability.RoleQAOfficer}
}

func adminActor() Actor {
	return Actor{ID: 1, Role: capability.RoleAdministrator}
}

func managerActor() Actor {
	return Actor{ID: 9, Role: capability.RoleProgramManager}
}

func fixtureTemplate() *checklist.Template {
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
				},
			},
		},
	}
}

func fixtureResponses() checklist.ResponseSet {
	return checklist.ResponseSet{
		"safety.exits":     {ItemKey: "safety.exits", Rating: checklist.RatingMeets},
		"safety.first_aid": {ItemKey: "safety.first_aid", Rating: checklist.RatingExceeds},
	}
}

func fixtureReport(t *testing.T, authorID uint, status vo.ReportStatus, version int) *report.Report {
	t.Helper()
	r, err := report.ReconstructReport(
		42, 10, authorID, "tier1", "2024.1",
		testNow.AddDate(0, 0, -1),
		status,
		fixtureResponses(),
		"",
		version,
		testNow.Add(-time.Hour), testNow.Add(-time.Hour),
	)
	require.NoError(t, err)
	return r
}
