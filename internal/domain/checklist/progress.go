package checklist

import "math"

// Progress summarizes completion of a section or a whole template.
type Progress struct {
	Answered int `json:"answered"`
	Total    int `json:"total"`
	Percent  int `json:"percent"`
}

// Complete reports whether every item is answered. An empty section is
// never complete; it has nothing to answer and reports 0%.
func (p Progress) Complete() bool {
	return p.Total > 0 && p.Answered == p.Total
}

func percentOf(answered, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(answered) / float64(total)))
}

// SectionProgress computes completion for one section. Pure: identical
// inputs always yield identical output.
func SectionProgress(section Section, responses ResponseSet) Progress {
	answered := 0
	for _, item := range section.Items {
		if responses.Answered(item.Key) {
			answered++
		}
	}
	total := len(section.Items)
	return Progress{
		Answered: answered,
		Total:    total,
		Percent:  percentOf(answered, total),
	}
}

// TemplateProgress computes completion across every section of the template.
func TemplateProgress(template *Template, responses ResponseSet) Progress {
	answered, total := 0, 0
	for _, section := range template.Sections {
		p := SectionProgress(section, responses)
		answered += p.Answered
		total += p.Total
	}
	return Progress{
		Answered: answered,
		Total:    total,
		Percent:  percentOf(answered, total),
	}
}

// FirstIncompleteSection returns the first mandatory section, in document
// order, whose progress is below 100%. Returns nil when every mandatory
// section is complete.
func FirstIncompleteSection(template *Template, responses ResponseSet) *Section {
	for i := range template.Sections {
		section := template.Sections[i]
		if !section.Mandatory {
			continue
		}
		if !SectionProgress(section, responses).Complete() {
			return &template.Sections[i]
		}
	}
	return nil
}

// Score computes the weighted 0-100 score for the answered portion of the
// template. Item scores are weighted within their section, section scores
// weighted across the template. Sections and items default to weight 1
// when unset. No answered items yields 0.
func Score(template *Template, responses ResponseSet) float64 {
	var weightedSum, weightTotal float64

	for _, section := range template.Sections {
		sectionScore, answered := sectionScore(section, responses)
		if !answered {
			continue
		}
		w := section.Weight
		if w <= 0 {
			w = 1
		}
		weightedSum += w * sectionScore
		weightTotal += w
	}

	if weightTotal == 0 {
		return 0
	}
	return weightedSum / weightTotal
}

func sectionScore(section Section, responses ResponseSet) (float64, bool) {
	var weightedSum, weightTotal float64

	for _, item := range section.Items {
		if !responses.Answered(item.Key) {
			continue
		}
		w := item.Weight
		if w <= 0 {
			w = 1
		}
		weightedSum += w * responses[item.Key].Rating.Points()
		weightTotal += w
	}

	if weightTotal == 0 {
		return 0, false
	}
	return weightedSum / weightTotal, true
}
