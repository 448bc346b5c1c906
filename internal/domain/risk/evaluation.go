package risk

import (
	"math"
	"time"
)

// Input is everything the rule set needs to know about a project
type Input struct {
	EndDate     *time.Time
	Schedule    []Window
	Assignments []Assignment
	Budget      Budget
}

// Evaluation is the outcome of running every rule once
type Evaluation struct {
	Findings     []Finding
	OverallScore float64
	AlertRaised  bool
	Level        Level
}

// Evaluate runs the schedule, crew and budget rules against input as of now.
func Evaluate(now time.Time, input Input) Evaluation {
	findings := make([]Finding, 0, 6)
	findings = append(findings, AssessSchedule(now, input.EndDate, input.Schedule)...)
	findings = append(findings, AssessCrew(input.Assignments)...)
	findings = append(findings, AssessBudget(input.Budget)...)

	overall := OverallScore(findings)
	return Evaluation{
		Findings:     findings,
		OverallScore: overall,
		AlertRaised:  AnyAlert(findings),
		Level:        LevelFor(overall),
	}
}

// OverallScore is the mean finding score rounded to one decimal, or 0 with
// no findings
func OverallScore(findings []Finding) float64 {
	if len(findings) == 0 {
		return 0
	}
	sum := 0
	for _, f := range findings {
		sum += f.Score
	}
	mean := float64(sum) / float64(len(findings))
	return math.Round(mean*10) / 10
}

// AnyAlert reports whether any finding reaches the alert threshold
func AnyAlert(findings []Finding) bool {
	for _, f := range findings {
		if f.IsAlert() {
			return true
		}
	}
	return false
}
