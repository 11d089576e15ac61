// Package checklist holds the versioned checklist templates and the pure
// progress/score engine a report is evaluated against. Templates are
// immutable once a report references their version.
package checklist

import "context"

// Rating is an inspector's assessment of a single checklist item.
type Rating string

const (
	RatingExceeds          Rating = "exceeds"
	RatingMeets            Rating = "meets"
	RatingNeedsImprovement Rating = "needs_improvement"
	RatingUnsatisfactory   Rating = "unsatisfactory"
)

// ratingPoints maps ratings onto the 0-100 scoring scale used by the
// program's trend dashboards.
var ratingPoints = map[Rating]float64{
	RatingExceeds:          100,
	RatingMeets:            85,
	RatingNeedsImprovement: 60,
	RatingUnsatisfactory:   40,
}

func (r Rating) IsValid() bool {
	_, ok := ratingPoints[r]
	return ok
}

// Points returns the score value of the rating, 0 for unknown ratings.
func (r Rating) Points() float64 {
	return ratingPoints[r]
}

// Item is a single inspectable point within a section.
type Item struct {
	Key    string  `yaml:"key" json:"key"`
	Prompt string  `yaml:"prompt" json:"prompt"`
	Weight float64 `yaml:"weight" json:"weight"`
}

// Section is an ordered group of items. Mandatory sections gate report
// submission.
type Section struct {
	Key       string  `yaml:"key" json:"key"`
	Title     string  `yaml:"title" json:"title"`
	Mandatory bool    `yaml:"mandatory" json:"mandatory"`
	Weight    float64 `yaml:"weight" json:"weight"`
	Items     []Item  `yaml:"items" json:"items"`
}

// Template is a versioned, ordered checklist definition.
type Template struct {
	Version  string    `yaml:"version" json:"version"`
	Type     string    `yaml:"type" json:"type"`
	Title    string    `yaml:"title" json:"title"`
	Sections []Section `yaml:"sections" json:"sections"`
}

// Response is an inspector's answer for one item. An item counts as
// answered only when the rating is set; notes alone do not count.
type Response struct {
	ItemKey string `json:"item_key"`
	Rating  Rating `json:"rating"`
	Notes   string `json:"notes,omitempty"`
}

// ResponseSet keys responses by item key. Absence means unanswered.
type ResponseSet map[string]Response

// Answered reports whether the set holds a non-empty, valid rating for key.
func (rs ResponseSet) Answered(key string) bool {
	resp, ok := rs[key]
	return ok && resp.Rating != "" && resp.Rating.IsValid()
}

// TemplateRepository loads immutable template versions.
type TemplateRepository interface {
	GetByVersion(ctx context.Context, version string) (*Template, error)
	GetLatestByType(ctx context.Context, reportType string) (*Template, error)
	Save(ctx context.Context, template *Template) error
	List(ctx context.Context) ([]*Template, error)
}
