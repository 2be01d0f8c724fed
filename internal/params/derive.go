package params

import "math"

// Closed-form derivations for the generalized SEIR renewal model. All of
// them are pure and none of them validate: a near-zero denominator or a
// negative period flows through unchanged, and the generator's rejection
// predicate is the single place that discards non-physical draws.

// CalcTe returns the mean latent period given the generation interval Tg,
// the symptom onset time Ts, the number of incubation sub-stages n and the
// fraction of transmission occurring before symptom onset f.
func CalcTe(tg, ts Value, n float64, f Value) Value {
	return zip3(tg, ts, f, func(tg, ts, f float64) float64 {
		k := 2.0 * n * f / (n + 1.0)
		return (k*tg - ts) / (k - 1.0)
	})
}

// CalcTi returns the mean infectious period.
func CalcTi(te, tg Value, n float64) Value {
	return zip2(te, tg, func(te, tg float64) float64 {
		return (tg - te) * 2.0 * n / (n + 1.0)
	})
}

// CalcReff returns the effective reproduction number at exponential growth
// rate r, with m infectious and n incubation sub-stages.
func CalcReff(m, n float64, tg, te, r Value) Value {
	return zip3(tg, te, r, func(tg, te, r float64) float64 {
		num := 2.0 * n * r / (n + 1.0) * (tg - te) * math.Pow(1.0+r*te/m, m)
		den := 1.0 - math.Pow(1.0+2.0*r/(n+1.0)*(tg-te), -n)
		return num / den
	})
}

// CalcBeta derives the exposed-compartment transition rate 1/Te.
func CalcBeta(te Value) Value { return recip(te) }

// CalcGamma derives the recovery rate 1/Ti.
func CalcGamma(ti Value) Value { return recip(ti) }

// CIToStd converts a 95% confidence interval to an equivalent mean and
// standard deviation assuming normality. Callers are responsible for passing
// ordered bounds; a reversed interval yields a negative spread.
func CIToStd(lower, upper float64) (mean, std float64) {
	std95 := math.Sqrt(1.0 / 0.05)
	return (upper + lower) / 2.0, (upper - lower) / std95 / 2.0
}

// DerivedNames lists the keys CalcDerivedParams adds, in a stable order.
var DerivedNames = []string{"Te", "Ti", "R0", "SIGMA", "GAMMA", "BETA", "SYM_FRAC", "THETA", "GAMMA_H"}

// CalcDerivedParams extends a rerolled set in place with the quantities that
// are pure functions of the rerolled values and the model constants. The set
// must already contain Tg, Ts, D, frac_trans_before_sym, ASYM_FRAC, H_TIME
// and I_TO_H_TIME; Load guarantees that, so a missing key here is a caller
// error and panics.
func CalcDerivedParams(p *ParameterSet) *ParameterSet {
	n := p.Consts.En
	tg := p.mustGet("Tg")

	te := CalcTe(tg, p.mustGet("Ts"), n, p.mustGet("frac_trans_before_sym"))
	p.Fields["Te"] = te
	ti := CalcTi(te, tg, n)
	p.Fields["Ti"] = ti

	r := apply(p.mustGet("D"), func(d float64) float64 { return math.Ln2 / d })
	r0 := CalcReff(p.Consts.Im, n, tg, te, r)
	p.Fields["R0"] = r0

	p.Fields["SIGMA"] = CalcBeta(te)
	gamma := CalcGamma(ti)
	p.Fields["GAMMA"] = gamma
	p.Fields["BETA"] = zip2(r0, gamma, func(a, b float64) float64 { return a * b })
	p.Fields["SYM_FRAC"] = apply(p.mustGet("ASYM_FRAC"), func(x float64) float64 { return 1.0 - x })
	p.Fields["THETA"] = recip(p.mustGet("H_TIME"))
	p.Fields["GAMMA_H"] = recip(p.mustGet("I_TO_H_TIME"))
	return p
}
