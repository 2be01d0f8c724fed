package params

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// RescaleDoublingRate recomputes R0 and BETA so that the set grows with
// doubling time d. aDiag, when non-nil, is the diagonal of the contact
// mixing matrix and divides BETA per group. The set is mutated in place and
// returned; the caller must hold the only reference to it.
func RescaleDoublingRate(d float64, p *ParameterSet, aDiag Value) *ParameterSet {
	r := Scalar(math.Ln2 / d)
	r0 := CalcReff(p.Consts.Im, p.Consts.En, p.mustGet("Tg"), p.mustGet("Te"), r)
	p.Fields["R0"] = r0
	beta := zip2(r0, p.mustGet("GAMMA"), func(a, b float64) float64 { return a * b })
	if aDiag != nil {
		beta = zip2(beta, aDiag, func(b, a float64) float64 { return b / a })
	}
	p.Fields["BETA"] = beta
	return p
}

// ContactMatrixDiag extracts the diagonal of a contact matrix for use as
// the aDiag argument of RescaleDoublingRate.
func ContactMatrixDiag(a mat.Matrix) Value {
	r, c := a.Dims()
	n := r
	if c < n {
		n = c
	}
	out := make(Value, n)
	for i := range out {
		out[i] = a.At(i, i)
	}
	return out
}
