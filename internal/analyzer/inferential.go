package analyzer

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// correlation is the Pearson correlation coefficient between two aligned
// samples. NaN when either sample has no variance or fewer than two points.
func correlation(x, y []float64) float64 {
	if len(x) < 2 || len(x) != len(y) {
		return math.NaN()
	}
	return stat.Correlation(x, y, nil)
}

// InterpretCorrelation describes the strength and direction of a Pearson
// coefficient in plain words.
func InterpretCorrelation(value float64) string {
	if math.IsNaN(value) {
		return "not enough data"
	}

	strength := ""
	switch absVal := math.Abs(value); {
	case absVal < 0.1:
		strength = "no"
	case absVal < 0.3:
		strength = "weak"
	case absVal < 0.5:
		strength = "moderate"
	case absVal < 0.7:
		strength = "strong"
	default:
		strength = "very strong"
	}

	direction := "positive"
	if value < 0 {
		direction = "negative"
	}

	return strength + " " + direction + " correlation"
}
