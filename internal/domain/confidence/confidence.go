// Package confidence rates how far an evaluation can be trusted.
package confidence

import "math"

// DefaultMinTOI is the ice time, in minutes, at which the sample stops limiting confidence.
const DefaultMinTOI = 300.0

const (
	luckPenaltyPerZ = 0.1
	maxLuckPenalty  = 0.3
)

// Estimate is the confidence/volatility pair of one evaluation. The two always sum to 1.
type Estimate struct {
	Confidence float64
	Volatility float64
}

// Compute scales confidence by the ice-time sample and discounts it by the
// PDO z-score. A non-positive minTOI falls back to DefaultMinTOI; a non-finite
// ice time counts as no sample.
func Compute(toiMinutes, pdoZ, minTOI float64) Estimate {
	if minTOI <= 0 {
		minTOI = DefaultMinTOI
	}
	sample := 0.0
	if toiMinutes > 0 && !math.IsInf(toiMinutes, 1) {
		sample = clamp(math.Sqrt(toiMinutes/minTOI), 0, 1)
	}
	if math.IsNaN(pdoZ) || math.IsInf(pdoZ, 0) {
		pdoZ = 0
	}
	penalty := clamp(math.Abs(pdoZ)*luckPenaltyPerZ, 0, maxLuckPenalty)
	c := clamp(sample*(1-penalty), 0, 1)
	return Estimate{Confidence: c, Volatility: 1 - c}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
