package recommend

import "fmt"

// Normalizer maps raw scores onto a bounded display scale:
//
//	clamp(raw*Scale, Min, Max)
type Normalizer struct {
	Scale float64
	Min   float64
	Max   float64
}

// DefaultNormalizer rescales by 5 and clamps to [1, 10].
var DefaultNormalizer = Normalizer{Scale: 5, Min: 1, Max: 10}

// Normalize applies the rescale and clamp. NaN inputs map to Min.
func (n Normalizer) Normalize(raw float64) float64 {
	v := raw * n.Scale
	if !(v >= n.Min) { // also catches NaN
		return n.Min
	}
	if v > n.Max {
		return n.Max
	}
	return v
}

// Validate reports whether n maps every input into [Min, Max].
func (n Normalizer) Validate() error {
	if !(n.Scale > 0) {
		return fmt.Errorf("%w: scale %v must be positive", ErrInvalidNormalizer, n.Scale)
	}
	if !(n.Min <= n.Max) {
		return fmt.Errorf("%w: min %v exceeds max %v", ErrInvalidNormalizer, n.Min, n.Max)
	}
	return nil
}

// Normalize applies DefaultNormalizer.
func Normalize(raw float64) float64 {
	return DefaultNormalizer.Normalize(raw)
}
