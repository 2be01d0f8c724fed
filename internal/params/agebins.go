package params

import (
	"fmt"

	"gonum.org/v1/gonum/interp"
)

// AgeBin is a half-open [Low, High) age interval.
type AgeBin struct {
	Low  float64
	High float64
}

// Mid returns the bin midpoint used for interpolation.
func (b AgeBin) Mid() float64 { return (b.Low + b.High) / 2.0 }

func binMids(bins []AgeBin) []float64 {
	out := make([]float64, len(bins))
	for i, b := range bins {
		out[i] = b.Mid()
	}
	return out
}

func sameBins(a, b []AgeBin) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// AgeInterp maps values defined over src bins onto dst bins by linear
// interpolation at bin midpoints. Midpoints outside the source range clamp
// to the nearest edge value. This does not weight by population within a
// bin, so coarse terminal bins like "65+" are approximate.
func AgeInterp(dst, src []AgeBin, y Value) (Value, error) {
	if len(src) != len(y) {
		return nil, fmt.Errorf("age interpolation: %d source bins for %d values", len(src), len(y))
	}
	if len(src) == 1 {
		out := make(Value, len(dst))
		for i := range out {
			out[i] = y[0]
		}
		return out, nil
	}
	var pl interp.PiecewiseLinear
	if err := pl.Fit(binMids(src), y); err != nil {
		return nil, fmt.Errorf("age interpolation: %w", err)
	}
	out := make(Value, len(dst))
	for i, b := range dst {
		out[i] = pl.Predict(b.Mid())
	}
	return out, nil
}
