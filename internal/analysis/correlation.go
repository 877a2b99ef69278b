package analysis

import (
	"fmt"
	"math"
	"time"

	"github.com/pulseboard/backend/internal/models"
)

const (
	// MinCorrelationPoints is the smallest sample that produces a computed
	// coefficient instead of the insufficient-data sentinel.
	MinCorrelationPoints = 5

	// Strength bands on the absolute Pearson coefficient.
	strongCorrelation   = 0.7
	moderateCorrelation = 0.4
)

// Messages for the degenerate correlation outcomes.
const (
	msgNotEnoughData  = "Not enough data to compute a correlation"
	msgLengthMismatch = "Series must be the same length"
	msgUndefined      = "Correlation undefined: no variance in the data"
	msgNoCorrelation  = "No meaningful correlation"
)

// Correlate computes the Pearson correlation between two equal-length
// series and attaches a qualitative label. Insufficient data (fewer than
// MinCorrelationPoints) or a numerically undefined coefficient (zero
// variance) yield a zero score with an explanatory message, never an error
// and never a NaN.
func Correlate(x, y []float64) models.CorrelationResult {
	if len(x) != len(y) {
		return models.CorrelationResult{Message: msgLengthMismatch}
	}
	if len(x) < MinCorrelationPoints {
		return models.CorrelationResult{Message: msgNotEnoughData, DataPoints: len(x)}
	}

	r, ok := pearson(x, y)
	if !ok {
		return models.CorrelationResult{Message: msgUndefined, DataPoints: len(x)}
	}

	return models.CorrelationResult{
		Score:      r,
		Message:    describeCorrelation(r),
		DataPoints: len(x),
	}
}

// CorrelateWithLag pairs two dated series after shifting the second by
// lagDays: the value of x on date d is paired with the value of y on
// d + lagDays. Only dates present in both series after shifting are used.
func CorrelateWithLag(x, y []models.MetricPoint, lagDays int) models.CorrelationResult {
	byDate := make(map[string]float64, len(y))
	for _, p := range y {
		byDate[dayKey(p.Date)] = p.Value
	}

	var xs, ys []float64
	for _, p := range x {
		shifted := p.Date.AddDate(0, 0, lagDays)
		if v, ok := byDate[dayKey(shifted)]; ok {
			xs = append(xs, p.Value)
			ys = append(ys, v)
		}
	}

	result := Correlate(xs, ys)
	result.Lag = lagDays
	return result
}

// pearson computes the correlation coefficient. ok is false when either
// series has zero variance and the coefficient is undefined.
func pearson(x, y []float64) (r float64, ok bool) {
	n := len(x)
	meanX := mean(x)
	meanY := mean(y)

	var numerator, denomX, denomY float64
	for i := 0; i < n; i++ {
		dx := x[i] - meanX
		dy := y[i] - meanY
		numerator += dx * dy
		denomX += dx * dx
		denomY += dy * dy
	}

	if denomX == 0 || denomY == 0 {
		return 0, false
	}

	return numerator / math.Sqrt(denomX*denomY), true
}

// describeCorrelation labels a coefficient. The direction word is attached
// only when the strength clears the moderate band.
func describeCorrelation(r float64) string {
	abs := math.Abs(r)

	var strength string
	switch {
	case abs > strongCorrelation:
		strength = "Strong"
	case abs > moderateCorrelation:
		strength = "Moderate"
	default:
		return msgNoCorrelation
	}

	direction := "positive"
	if r < 0 {
		direction = "negative"
	}
	return fmt.Sprintf("%s %s correlation", strength, direction)
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
