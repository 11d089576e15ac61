package checklist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoSectionTemplate() *Template {
	return &Template{
		Version: "2024.1",
		Type:    "tier1",
		Sections: []Section{
			{
				Key:       "safety",
				Title:     "Health & Safety",
				Mandatory: true,
				Items: []Item{
					{Key: "safety.exits", Prompt: "Exits clear"},
					{Key: "safety.first_aid", Prompt: "First aid kit stocked"},
					{Key: "safety.ratios", Prompt: "Staff ratios met"},
				},
			},
			{
				Key:       "curriculum",
				Title:     "Curriculum Delivery",
				Mandatory: true,
				Items: []Item{
					{Key: "curriculum.plans", Prompt: "Lesson plans posted"},
					{Key: "curriculum.materials", Prompt: "Materials age appropriate"},
				},
			},
		},
	}
}

func TestSectionProgress(t *testing.T) {
	tmpl := twoSectionTemplate()

	tests := []struct {
		name      string
		responses ResponseSet
		want      Progress
	}{
		{
			name:      "no responses",
			responses: ResponseSet{},
			want:      Progress{Answered: 0, Total: 3, Percent: 0},
		},
		{
			name: "partial",
			responses: ResponseSet{
				"safety.exits": {ItemKey: "safety.exits", Rating: RatingMeets},
			},
			want: Progress{Answered: 1, Total: 3, Percent: 33},
		},
		{
			name: "two of three rounds up",
			responses: ResponseSet{
				"safety.exits":     {ItemKey: "safety.exits", Rating: RatingMeets},
				"safety.first_aid": {ItemKey: "safety.first_aid", Rating: RatingExceeds},
			},
			want: Progress{Answered: 2, Total: 3, Percent: 67},
		},
		{
			name: "notes without rating do not count",
			responses: ResponseSet{
				"safety.exits": {ItemKey: "safety.exits", Notes: "will check later"},
			},
			want: Progress{Answered: 0, Total: 3, Percent: 0},
		},
		{
			name: "invalid rating does not count",
			responses: ResponseSet{
				"safety.exits": {ItemKey: "safety.exits", Rating: Rating("great")},
			},
			want: Progress{Answered: 0, Total: 3, Percent: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SectionProgress(tmpl.Sections[0], tt.responses)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSectionProgress_EmptySectionIsZeroPercent(t *testing.T) {
	section := Section{Key: "empty", Title: "Empty", Mandatory: true}

	got := SectionProgress(section, ResponseSet{})

	assert.Equal(t, Progress{Answered: 0, Total: 0, Percent: 0}, got)
	assert.False(t, got.Complete())
}

func TestSectionProgress_Idempotent(t *testing.T) {
	tmpl := twoSectionTemplate()
	responses := ResponseSet{
		"safety.exits":     {ItemKey: "safety.exits", Rating: RatingMeets},
		"safety.first_aid": {ItemKey: "safety.first_aid", Rating: RatingNeedsImprovement},
	}

	first := SectionProgress(tmpl.Sections[0], responses)
	second := SectionProgress(tmpl.Sections[0], responses)

	assert.Equal(t, first, second)
}

func TestFirstIncompleteSection(t *testing.T) {
	tmpl := twoSectionTemplate()

	t.Run("names second section when first is complete", func(t *testing.T) {
		responses := ResponseSet{
			"safety.exits":      {ItemKey: "safety.exits", Rating: RatingMeets},
			"safety.first_aid":  {ItemKey: "safety.first_aid", Rating: RatingMeets},
			"safety.ratios":     {ItemKey: "safety.ratios", Rating: RatingExceeds},
			"curriculum.plans":  {ItemKey: "curriculum.plans", Rating: RatingMeets},
		}

		section := FirstIncompleteSection(tmpl, responses)
		require.NotNil(t, section)
		assert.Equal(t, "curriculum", section.Key)
	})

	t.Run("nil when all mandatory sections complete", func(t *testing.T) {
		responses := ResponseSet{
			"safety.exits":         {ItemKey: "safety.exits", Rating: RatingMeets},
			"safety.first_aid":     {ItemKey: "safety.first_aid", Rating: RatingMeets},
			"safety.ratios":        {ItemKey: "safety.ratios", Rating: RatingExceeds},
			"curriculum.plans":     {ItemKey: "curriculum.plans", Rating: RatingMeets},
			"curriculum.materials": {ItemKey: "curriculum.materials", Rating: RatingMeets},
		}

		assert.Nil(t, FirstIncompleteSection(tmpl, responses))
	})

	t.Run("skips optional sections", func(t *testing.T) {
		tmplWithOptional := twoSectionTemplate()
		tmplWithOptional.Sections[0].Mandatory = false

		section := FirstIncompleteSection(tmplWithOptional, ResponseSet{})
		require.NotNil(t, section)
		assert.Equal(t, "curriculum", section.Key)
	})
}

func TestScore(t *testing.T) {
	tmpl := twoSectionTemplate()

	t.Run("no responses scores zero", func(t *testing.T) {
		assert.Zero(t, Score(tmpl, ResponseSet{}))
	})

	t.Run("single rating scores its point value", func(t *testing.T) {
		responses := ResponseSet{
			"safety.exits": {ItemKey: "safety.exits", Rating: RatingMeets},
		}
		assert.InDelta(t, 85, Score(tmpl, responses), 0.001)
	})

	t.Run("sections weighted equally by default", func(t *testing.T) {
		responses := ResponseSet{
			"safety.exits":     {ItemKey: "safety.exits", Rating: RatingExceeds},
			"curriculum.plans": {ItemKey: "curriculum.plans", Rating: RatingNeedsImprovement},
		}
		// (100 + 60) / 2
		assert.InDelta(t, 80, Score(tmpl, responses), 0.001)
	})

	t.Run("item weights shift the section score", func(t *testing.T) {
		weighted := twoSectionTemplate()
		weighted.Sections[0].Items[0].Weight = 3

		responses := ResponseSet{
			"safety.exits":     {ItemKey: "safety.exits", Rating: RatingExceeds},
			"safety.first_aid": {ItemKey: "safety.first_aid", Rating: RatingUnsatisfactory},
		}
		// (3*100 + 1*40) / 4
		assert.InDelta(t, 85, Score(weighted, responses), 0.001)
	})
}

func TestTemplateProgress(t *testing.T) {
	tmpl := twoSectionTemplate()
	responses := ResponseSet{
		"safety.exits":     {ItemKey: "safety.exits", Rating: RatingMeets},
		"curriculum.plans": {ItemKey: "curriculum.plans", Rating: RatingMeets},
	}

	got := TemplateProgress(tmpl, responses)

	assert.Equal(t, Progress{Answered: 2, Total: 5, Percent: 40}, got)
}
