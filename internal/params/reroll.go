package params

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"

	"github.com/ragram88/bucky/pkg/distributions"
)

// truncFloor keeps every sampled quantity strictly positive.
const truncFloor = 1e-6

// reroller carries the per-draw sampling state shared by all spec kinds.
type reroller struct {
	variance float64
	src      rand.Source
	consts   *Consts
}

// Reroll draws one realization of every parameter in the specification,
// applying the per-entry clip last. The specification itself is never
// written: every literal and mean is copied before sampling.
func (s *Specification) Reroll(variance float64, src rand.Source) (*ParameterSet, error) {
	rr := &reroller{variance: variance, src: src, consts: &s.consts}
	p := &ParameterSet{
		Fields: make(map[string]Value, len(s.entries)+len(DerivedNames)),
		Consts: &s.consts,
	}
	for _, e := range s.entries {
		v, err := e.kind.reroll(rr)
		if err != nil {
			return nil, fmt.Errorf("parameter %s: %w", e.name, err)
		}
		if e.clip != nil {
			v.Clip(e.clip[0], e.clip[1])
		}
		p.Fields[e.name] = v
	}
	return p, nil
}

// jitter returns n independent multiplicative factors around 1.0.
func (rr *reroller) jitter(n int) Value {
	tn := distributions.NewTruncNormal(1.0, rr.variance, truncFloor, rr.src)
	return Value(tn.RandN(n))
}

// constantKind passes a literal through unchanged.
type constantKind struct {
	value Value
}

func (k constantKind) reroll(rr *reroller) (Value, error) {
	return k.value.Clone(), nil
}

// pertMeanKind samples each element from a modified-PERT distribution on
// [0, 1] peaked at the mean, with concentration gamma.
type pertMeanKind struct {
	mean  Value
	gamma float64
}

func (k pertMeanKind) reroll(rr *reroller) (Value, error) {
	out := k.mean.Clone()
	for i, mu := range out {
		pert := distributions.PERT{Min: 0.0, Mode: mu, Max: 1.0, Shape: k.gamma, Src: rr.src}
		out[i] = pert.Rand()
	}
	return out, nil
}

// meanCIKind samples a truncated normal matched to a 95% confidence
// interval, or returns the mean unchanged in deterministic mode.
type meanCIKind struct {
	mean Value
	ci   [2]float64
}

func (k meanCIKind) reroll(rr *reroller) (Value, error) {
	if rr.variance == 0.0 {
		return k.mean.Clone(), nil
	}
	mu, sigma := CIToStd(k.ci[0], k.ci[1])
	return Scalar(distributions.NewTruncNormal(mu, sigma, truncFloor, rr.src).Rand()), nil
}

// meanJitterKind perturbs a mean vector by independent multiplicative
// truncated-normal noise.
type meanJitterKind struct {
	mean Value
}

func (k meanJitterKind) reroll(rr *reroller) (Value, error) {
	out := k.mean.Clone()
	floats.Mul(out, rr.jitter(len(out)))
	return out, nil
}

// ageVectorKind perturbs an age-stratified vector and maps it onto the
// canonical age bins when its own binning differs.
type ageVectorKind struct {
	values Value
	bins   []AgeBin
}

func (k ageVectorKind) reroll(rr *reroller) (Value, error) {
	out := k.values.Clone()
	floats.Mul(out, rr.jitter(len(out)))
	if !sameBins(k.bins, rr.consts.AgeBins) {
		return AgeInterp(rr.consts.AgeBins, k.bins, out)
	}
	return out, nil
}
