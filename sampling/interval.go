package sampling

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Interval returns the Wald confidence interval of a marginal p estimated
// from n Bernoulli samples, clamped to [0,1]:
//
//	p ± z·√(p(1−p)/n),   z = Φ⁻¹(1 − (1−confidence)/2)
//
// Errors:
//   - ErrInvalidSampleCount: n < 1.
//   - ErrInvalidConfidence: confidence ∉ (0,1).
func Interval(p float64, n int, confidence float64) (lo, hi float64, err error) {
	if n < 1 {
		return 0, 0, fmt.Errorf("%w: %d", ErrInvalidSampleCount, n)
	}
	if !(confidence > 0 && confidence < 1) {
		return 0, 0, fmt.Errorf("%w: %v", ErrInvalidConfidence, confidence)
	}

	z := distuv.UnitNormal.Quantile(1 - (1-confidence)/2)
	half := z * math.Sqrt(p*(1-p)/float64(n))

	return math.Max(0, p-half), math.Min(1, p+half), nil
}
