package demand

import (
	"time"

	"github.com/shopspring/decimal"
)

// Metric selects which total a series is built from
type Metric string

const (
	MetricRevenue  Metric = "revenue"
	MetricQuantity Metric = "quantity"
)

// IsValid reports whether m is a known metric
func (m Metric) IsValid() bool {
	return m == MetricRevenue || m == MetricQuantity
}

// PeriodTotal is the aggregate of all sales in one calendar month
type PeriodTotal struct {
	Period   time.Time
	Quantity int64
	Revenue  decimal.Decimal
}

// Value returns the total for metric as a float
func (p PeriodTotal) Value(metric Metric) float64 {
	if metric == MetricQuantity {
		return float64(p.Quantity)
	}
	return p.Revenue.InexactFloat64()
}

// MonthStart truncates t to the first instant of its month in UTC
func MonthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// Window returns the first and last month of a lookback ending with the last
// complete month before now.
func Window(now time.Time, lookbackMonths int) (from, to time.Time) {
	if lookbackMonths < 1 {
		lookbackMonths = 1
	}
	to = MonthStart(now).AddDate(0, -1, 0)
	from = to.AddDate(0, -(lookbackMonths - 1), 0)
	return from, to
}

// BucketMonthly sums sales per calendar month
func BucketMonthly(sales []TicketSale) map[time.Time]PeriodTotal {
	totals := make(map[time.Time]PeriodTotal)
	for _, s := range sales {
		period := MonthStart(s.SoldAt)
		t := totals[period]
		t.Period = period
		t.Quantity += int64(s.Quantity)
		t.Revenue = t.Revenue.Add(s.Amount)
		totals[period] = t
	}
	return totals
}

// Series is a chronological, gap-free run of monthly totals
type Series struct {
	Periods []time.Time
	Values  []float64
}

// Len returns the number of periods
func (s Series) Len() int {
	return len(s.Periods)
}

// MonthlySeries lays totals out month by month over [from, to]. Months with
// no sales are zero. Leading empty months before the first sale are dropped
// so a recently launched event does not start with an artificial slump.
func MonthlySeries(totals map[time.Time]PeriodTotal, from, to time.Time, metric Metric) Series {
	from = MonthStart(from)
	to = MonthStart(to)

	var series Series
	started := false
	for m := from; !m.After(to); m = m.AddDate(0, 1, 0) {
		total, ok := totals[m]
		if !ok && !started {
			continue
		}
		started = true
		series.Periods = append(series.Periods, m)
		series.Values = append(series.Values, total.Value(metric))
	}
	return series
}
