// Package forecast projects future period totals from a chronologically
// ordered history of period totals.
//
// Series with at least one full season (12 periods) are projected with
// Holt-Winters smoothing. Shorter series fall back to single exponential
// smoothing with a flat projection. Neither path returns an error: empty or
// degenerate input produces a zero forecast.
package forecast

import "math"

// Smoothing constants and band parameters
const (
	SeasonLength = 12

	Alpha = 0.3 // level
	Beta  = 0.1 // trend
	Gamma = 0.3 // seasonal

	ShortSeriesAccuracy = 70.0

	shortSeriesBaseBand = 0.15
	seasonalBaseBand    = 0.10
	bandStep            = 0.02
	holdoutFraction     = 0.2
)

// Method identifies the model that produced a forecast
type Method string

// Forecast methods
const (
	MethodHoltWinters          Method = "holt_winters"
	MethodExponentialSmoothing Method = "exponential_smoothing"
)

// Point is one projected period
type Point struct {
	Step  int
	Value float64
	Lower float64
	Upper float64
	// Confidence is the band half-width as a fraction of Value
	Confidence float64
}

// Result is the output of Forecast
type Result struct {
	Method   Method
	Points   []Point
	Accuracy float64
	Level    float64
	Trend    float64
	Seasonal []float64
}

// Values returns the projected values in step order
func (r Result) Values() []float64 {
	values := make([]float64, len(r.Points))
	for i, p := range r.Points {
		values[i] = p.Value
	}
	return values
}

// Forecast projects horizon periods past the end of history.
func Forecast(history []float64, horizon int) Result {
	series := sanitize(history)
	if horizon < 0 {
		horizon = 0
	}
	if len(series) < SeasonLength {
		return exponentialSmoothing(series, horizon)
	}
	return holtWinters(series, horizon)
}

// exponentialSmoothing is the short-series fallback: level only, flat
// projection, fixed accuracy.
func exponentialSmoothing(series []float64, horizon int) Result {
	level := 0.0
	for i, v := range series {
		if i == 0 {
			level = v
			continue
		}
		level = Alpha*v + (1-Alpha)*level
	}

	value := floorZero(level)
	points := make([]Point, 0, horizon)
	for i := 1; i <= horizon; i++ {
		halfWidth := shortSeriesBaseBand + bandStep*float64(i-1)
		points = append(points, newPoint(i, value, halfWidth))
	}

	return Result{
		Method:   MethodExponentialSmoothing,
		Points:   points,
		Accuracy: ShortSeriesAccuracy,
		Level:    finite(level),
	}
}

func newPoint(step int, value, halfWidth float64) Point {
	value = floorZero(value)
	upper := value * (1 + halfWidth)
	if math.IsInf(upper, 1) {
		upper = math.MaxFloat64
	}
	return Point{
		Step:       step,
		Value:      value,
		Lower:      floorZero(value * (1 - halfWidth)),
		Upper:      upper,
		Confidence: halfWidth,
	}
}

// sanitize copies history replacing NaN and infinities with zero
func sanitize(history []float64) []float64 {
	out := make([]float64, len(history))
	for i, v := range history {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out[i] = v
	}
	return out
}

// floorZero clamps negatives and non-finite values to zero
func floorZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// finite maps NaN and infinities to zero. Values near the float64 limit can
// overflow the smoothing recurrences and would otherwise leak into results.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	n := float64(len(values))
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	if !math.IsInf(sum, 0) {
		return sum / n
	}
	// the total overflowed; divide first
	avg := 0.0
	for _, v := range values {
		avg += v / n
	}
	return avg
}

// safeDiv returns a/b, or fallback when b is zero
func safeDiv(a, b, fallback float64) float64 {
	if b == 0 {
		return fallback
	}
	return a / b
}
