package distributions

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// PERT is the modified-PERT distribution on [Min, Max] with most-likely
// value Mode and concentration Shape (classic PERT uses Shape = 4). Larger
// Shape concentrates more mass around the mode. Mode must lie in
// [Min, Max].
type PERT struct {
	Min   float64
	Mode  float64
	Max   float64
	Shape float64
	Src   rand.Source
}

// Rand draws one sample via the underlying Beta distribution.
func (p PERT) Rand() float64 {
	span := p.Max - p.Min
	beta := distuv.Beta{
		Alpha: 1.0 + p.Shape*(p.Mode-p.Min)/span,
		Beta:  1.0 + p.Shape*(p.Max-p.Mode)/span,
		Src:   p.Src,
	}
	return p.Min + span*beta.Rand()
}

// RandN draws n samples.
func (p PERT) RandN(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = p.Rand()
	}
	return out
}

// Mean returns the analytic mean (Min + Shape*Mode + Max) / (Shape + 2).
func (p PERT) Mean() float64 {
	return (p.Min + p.Shape*p.Mode + p.Max) / (p.Shape + 2.0)
}
