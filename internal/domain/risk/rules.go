package risk

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Rule titles
const (
	TitleApproachingDeadline   = "Approaching deadline"
	TitleScheduleConflicts     = "Schedule conflicts"
	TitlePotentialUnderstaff   = "Potential understaffing"
	TitleUnconfirmedAssignment = "Unconfirmed assignments"
	TitleBudgetNearlyExhausted = "Budget nearly exhausted"
	TitleBudgetConsumptionHigh = "Budget consumption high"
)

const (
	deadlineWindowDays = 7
	minimumCrew        = 5
	confirmedStatus    = "confirmed"
)

var (
	budgetCriticalRatio = decimal.NewFromFloat(0.90)
	budgetWarningRatio  = decimal.NewFromFloat(0.75)
)

// Window is a half-open time range [Start, End) on a project schedule
type Window struct {
	Label string
	Start time.Time
	End   time.Time
}

// Overlaps reports whether two half-open windows intersect. Windows that
// only touch at a boundary do not overlap.
func (w Window) Overlaps(other Window) bool {
	return w.Start.Before(other.End) && w.End.After(other.Start)
}

// Conflict is a pair of overlapping schedule windows
type Conflict struct {
	First  Window
	Second Window
}

// FindConflicts returns every overlapping pair, in input order
func FindConflicts(windows []Window) []Conflict {
	var conflicts []Conflict
	for i := 0; i < len(windows); i++ {
		for j := i + 1; j < len(windows); j++ {
			if windows[i].Overlaps(windows[j]) {
				conflicts = append(conflicts, Conflict{First: windows[i], Second: windows[j]})
			}
		}
	}
	return conflicts
}

// DaysUntil returns the whole days from now until end, rounded up
func DaysUntil(now, end time.Time) int {
	return int(math.Ceil(end.Sub(now).Hours() / 24))
}

// AssessSchedule applies the deadline and conflict rules
func AssessSchedule(now time.Time, endDate *time.Time, windows []Window) []Finding {
	var findings []Finding

	if endDate != nil {
		days := DaysUntil(now, *endDate)
		if days > 0 && days < deadlineWindowDays {
			findings = append(findings, NewFinding(
				CategorySchedule,
				TitleApproachingDeadline,
				fmt.Sprintf("Project ends in %d day(s)", days),
				4, 4,
				"Review remaining deliverables and lock the run of show",
			))
		}
	}

	if conflicts := FindConflicts(windows); len(conflicts) > 0 {
		labels := make([]string, 0, len(conflicts))
		for _, c := range conflicts {
			labels = append(labels, c.First.Label+" / "+c.Second.Label)
		}
		findings = append(findings, NewFinding(
			CategorySchedule,
			TitleScheduleConflicts,
			fmt.Sprintf("%d overlapping schedule item pair(s): %s", len(conflicts), strings.Join(labels, ", ")),
			4, 3,
			"Re-sequence overlapping items or assign separate crews",
		))
	}

	return findings
}

// Assignment is the crew attribute the rules look at
type Assignment struct {
	Name   string
	Status string
}

// AssessCrew applies the staffing rules
func AssessCrew(assignments []Assignment) []Finding {
	var findings []Finding

	if len(assignments) < minimumCrew {
		findings = append(findings, NewFinding(
			CategoryResource,
			TitlePotentialUnderstaff,
			fmt.Sprintf("Only %d crew assignment(s) on the project", len(assignments)),
			3, 4,
			"Book additional crew or confirm backups",
		))
	}

	unconfirmed := 0
	for _, a := range assignments {
		if a.Status != confirmedStatus {
			unconfirmed++
		}
	}
	if unconfirmed > 0 {
		findings = append(findings, NewFinding(
			CategoryResource,
			TitleUnconfirmedAssignment,
			fmt.Sprintf("%d crew assignment(s) not confirmed", unconfirmed),
			3, 3,
			"Follow up with unconfirmed crew members",
		))
	}

	return findings
}

// Budget is the budget-to-date attribute the rules look at
type Budget struct {
	Total decimal.Decimal
	Spent decimal.Decimal
}

// SpendRatio returns Spent/Total, and false when Total is not positive
func (b Budget) SpendRatio() (decimal.Decimal, bool) {
	if !b.Total.IsPositive() {
		return decimal.Zero, false
	}
	return b.Spent.Div(b.Total), true
}

// AssessBudget applies the spend thresholds. Both comparisons are strict and
// the higher threshold supersedes the lower one.
func AssessBudget(b Budget) []Finding {
	ratio, ok := b.SpendRatio()
	if !ok {
		return nil
	}

	pct := ratio.Mul(decimal.NewFromInt(100)).Round(1).String()
	switch {
	case ratio.GreaterThan(budgetCriticalRatio):
		return []Finding{NewFinding(
			CategoryFinancial,
			TitleBudgetNearlyExhausted,
			fmt.Sprintf("%s%% of budget spent", pct),
			5, 4,
			"Freeze discretionary spend and escalate to the producer",
		)}
	case ratio.GreaterThan(budgetWarningRatio):
		return []Finding{NewFinding(
			CategoryFinancial,
			TitleBudgetConsumptionHigh,
			fmt.Sprintf("%s%% of budget spent", pct),
			4, 3,
			"Reforecast remaining costs against the budget",
		)}
	}
	return nil
}
