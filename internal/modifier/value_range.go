package modifier

import (
	"fmt"
	"math"
)

// Source is a caller-owned random source. *rand.Rand from math/rand and
// math/rand/v2 both satisfy it. Not assumed to be safe for concurrent use.
type Source interface {
	Float64() float64 // uniform in [0, 1)
}

// ValueRange is an inclusive interval [min, max] with min <= max.
// The zero value is the degenerate range [0, 0].
type ValueRange struct {
	min float64
	max float64
}

// NewValueRange returns [min, max] or ErrInvalidRange if min > max or a bound is not finite.
func NewValueRange(min, max float64) (ValueRange, error) {
	if math.IsNaN(min) || math.IsNaN(max) || math.IsInf(min, 0) || math.IsInf(max, 0) {
		return ValueRange{}, fmt.Errorf("%w: bounds must be finite, got [%v, %v]", ErrInvalidRange, min, max)
	}
	if min > max {
		return ValueRange{}, fmt.Errorf("%w: min %v > max %v", ErrInvalidRange, min, max)
	}
	return ValueRange{min: min, max: max}, nil
}

// Fixed returns the degenerate range [v, v].
func Fixed(v float64) (ValueRange, error) {
	return NewValueRange(v, v)
}

// Min returns the lower bound.
func (r ValueRange) Min() float64 { return r.min }

// Max returns the upper bound.
func (r ValueRange) Max() float64 { return r.max }

// IsFixed reports whether every draw returns the same value.
func (r ValueRange) IsFixed() bool { return r.min == r.max }

// Draw samples uniformly from the range, consuming exactly one Float64 from src
// (also for degenerate ranges, so a shared source advances the same way for every definition).
func (r ValueRange) Draw(src Source) float64 {
	u := src.Float64()
	if r.min == r.max {
		return r.min
	}
	// Interpolate without max-min, which overflows for spans wider than MaxFloat64.
	v := r.min*(1-u) + r.max*u
	return math.Max(r.min, math.Min(v, r.max))
}

func (r ValueRange) String() string {
	if r.IsFixed() {
		return fmt.Sprintf("%v", r.min)
	}
	return fmt.Sprintf("[%v, %v]", r.min, r.max)
}
