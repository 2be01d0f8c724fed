// Package distributions provides the sampling primitives used to reroll
// model parameters: a lower-truncated normal and a modified-PERT.
package distributions

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// TruncNormal samples a normal distribution conditioned on values at or
// above Min, by rejection.
type TruncNormal struct {
	dist distuv.Normal
	min  float64
}

// NewTruncNormal returns a sampler for Normal(loc, scale) truncated below
// at min. A zero scale degenerates to the clamped location, which gives the
// exact mean back in deterministic mode.
func NewTruncNormal(loc, scale, min float64, src rand.Source) *TruncNormal {
	return &TruncNormal{
		dist: distuv.Normal{Mu: loc, Sigma: scale, Src: src},
		min:  min,
	}
}

// Rand draws one sample.
func (t *TruncNormal) Rand() float64 {
	if t.dist.Sigma == 0 {
		if t.dist.Mu < t.min {
			return t.min
		}
		return t.dist.Mu
	}
	for {
		v := t.dist.Rand()
		if v >= t.min {
			return v
		}
	}
}

// RandN draws n samples.
func (t *TruncNormal) RandN(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = t.Rand()
	}
	return out
}
