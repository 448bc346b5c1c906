package forecast

import "math"

// model is a fitted Holt-Winters state plus the one-step-ahead fitted value
// for every historical period.
type model struct {
	level    float64
	trend    float64
	seasonal []float64
	fitted   []float64
}

// fit runs the smoothing recurrences over series. len(series) must be at
// least SeasonLength.
func fit(series []float64) model {
	first := series[:SeasonLength]
	level := mean(first)

	// Trend starts as the per-period difference between the first two
	// season means. A partial second season is used as-is.
	trend := 0.0
	end := min(len(series), 2*SeasonLength)
	if end > SeasonLength {
		trend = (mean(series[SeasonLength:end]) - level) / SeasonLength
	}

	seasonal := make([]float64, SeasonLength)
	fitted := make([]float64, len(series))
	for i, v := range first {
		seasonal[i] = safeDiv(v, level, 1)
		fitted[i] = level * seasonal[i]
	}

	for t := SeasonLength; t < len(series); t++ {
		y := series[t]
		idx := t % SeasonLength
		s := seasonal[idx]

		fitted[t] = (level + trend) * s

		prevLevel := level
		level = Alpha*safeDiv(y, s, y) + (1-Alpha)*(prevLevel+trend)
		trend = Beta*(level-prevLevel) + (1-Beta)*trend
		seasonal[idx] = Gamma*safeDiv(y, level, s) + (1-Gamma)*s
	}

	return model{
		level:    level,
		trend:    trend,
		seasonal: seasonal,
		fitted:   fitted,
	}
}

// project returns the value for step i (1-based) past the end of a series of
// length n.
func (m model) project(n, i int) float64 {
	idx := (n + i - 1) % SeasonLength
	return floorZero((m.level + float64(i)*m.trend) * m.seasonal[idx])
}

// accuracy scores the fitted values over the trailing holdout window as
// 100 - MAPE, clamped to [0, 100]. Zero actuals are skipped.
func (m model) accuracy(series []float64) float64 {
	n := len(series)
	window := max(1, int(float64(n)*holdoutFraction))

	var sum float64
	var count int
	for t := n - window; t < n; t++ {
		actual := series[t]
		if actual == 0 {
			continue
		}
		sum += math.Abs(actual-m.fitted[t]) / math.Abs(actual) * 100
		count++
	}

	mape := 0.0
	if count > 0 {
		mape = sum / float64(count)
	}
	acc := 100 - mape
	if math.IsNaN(acc) || acc < 0 {
		return 0
	}
	return math.Min(acc, 100)
}

func holtWinters(series []float64, horizon int) Result {
	m := fit(series)
	n := len(series)

	points := make([]Point, 0, horizon)
	for i := 1; i <= horizon; i++ {
		halfWidth := seasonalBaseBand + bandStep*float64(i)
		points = append(points, newPoint(i, m.project(n, i), halfWidth))
	}

	seasonal := make([]float64, len(m.seasonal))
	for i, s := range m.seasonal {
		seasonal[i] = finite(s)
	}

	return Result{
		Method:   MethodHoltWinters,
		Points:   points,
		Accuracy: m.accuracy(series),
		Level:    finite(m.level),
		Trend:    finite(m.trend),
		Seasonal: seasonal,
	}
}
