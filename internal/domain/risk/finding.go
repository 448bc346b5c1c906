// Package risk scores production projects against a fixed rule set covering
// schedule, crew and budget.
package risk

import "math"

// Category groups findings by the project attribute they concern
type Category string

// Finding categories
const (
	CategorySchedule  Category = "schedule"
	CategoryResource  Category = "resource"
	CategoryFinancial Category = "financial"
)

// Level is the coarse severity derived from an overall score
type Level string

// Risk levels
const (
	LevelLow      Level = "low"
	LevelMedium   Level = "medium"
	LevelHigh     Level = "high"
	LevelCritical Level = "critical"
)

const (
	minRating = 1
	maxRating = 5

	// AlertThreshold is the finding score at or above which an alert is raised
	AlertThreshold = 7
)

// Finding is a single triggered rule
type Finding struct {
	Category    Category `json:"category"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Likelihood  int      `json:"likelihood"`
	Impact      int      `json:"impact"`
	Score       int      `json:"score"`
	Mitigation  string   `json:"mitigation"`
}

// Score returns round(likelihood*impact/2.5). Ratings are clamped to 1..5,
// so the result is always within 0..10.
func Score(likelihood, impact int) int {
	l := clampRating(likelihood)
	i := clampRating(impact)
	return int(math.Round(float64(l*i) / 2.5))
}

// NewFinding builds a finding with its derived score
func NewFinding(category Category, title, description string, likelihood, impact int, mitigation string) Finding {
	return Finding{
		Category:    category,
		Title:       title,
		Description: description,
		Likelihood:  clampRating(likelihood),
		Impact:      clampRating(impact),
		Score:       Score(likelihood, impact),
		Mitigation:  mitigation,
	}
}

// IsAlert reports whether the finding alone warrants an alert
func (f Finding) IsAlert() bool {
	return f.Score >= AlertThreshold
}

func clampRating(v int) int {
	if v < minRating {
		return minRating
	}
	if v > maxRating {
		return maxRating
	}
	return v
}

// LevelFor maps an overall score to a risk level
func LevelFor(score float64) Level {
	switch {
	case score >= 7:
		return LevelCritical
	case score >= 5:
		return LevelHigh
	case score >= 3:
		return LevelMedium
	default:
		return LevelLow
	}
}
