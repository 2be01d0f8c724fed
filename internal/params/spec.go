// Package params is the stochastic parameter-generation core for the SEIR
// model: it loads a base parameter specification from a yaml par file and
// draws randomized, derived, validity-checked parameter sets from it, one
// per Monte Carlo run.
package params

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrConfig wraps every load-time failure: a missing or malformed par file,
// or a parameter spec that fails validation.
var ErrConfig = errors.New("invalid parameter file")

// requiredNames are the rerolled inputs CalcDerivedParams consumes. Load
// rejects a file that cannot produce all of them, so the derivations never
// have to re-check.
var requiredNames = []string{
	"Tg", "Ts", "D", "frac_trans_before_sym",
	"ASYM_FRAC", "H_TIME", "I_TO_H_TIME",
}

// Consts holds the simulation-wide constants from the par file's consts
// entry.
type Consts struct {
	AgeBins []AgeBin // canonical age binning every age vector is mapped onto
	En      float64  // incubation (exposed) sub-stage count
	Im      float64  // infectious sub-stage shape parameter
	Extra   map[string]Value
}

// Specification is the immutable base parameter specification, loaded once
// per simulation setup. Rerolling reads it and never writes it, so a single
// Specification may back any number of concurrent generators.
type Specification struct {
	entries []entry
	consts  Consts
}

// Consts returns the simulation-wide structural constants.
func (s *Specification) Consts() *Consts { return &s.consts }

// Names returns the parameter names in par-file order.
func (s *Specification) Names() []string {
	out := make([]string, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.name
	}
	return out
}

type entry struct {
	name string
	kind specKind
	clip *[2]float64
}

// specKind is the closed set of parameter-spec variants. The variant is
// chosen once at load time, in the priority order gamma > mean+CI > mean >
// values > literal, so rerolling never re-inspects optional fields.
type specKind interface {
	reroll(rr *reroller) (Value, error)
}

// rawSpec mirrors the optional fields a mapping-style par file entry may
// carry before it is classified into a specKind.
type rawSpec struct {
	// Mean is value-typed: yaml v3 only passes raw nodes through to
	// yaml.Node fields, not *yaml.Node. Presence is raw.Mean.Kind != 0.
	Mean    yaml.Node    `yaml:"mean"`
	CI      []float64    `yaml:"CI"`
	Gamma   *float64     `yaml:"gamma"`
	Values  []float64    `yaml:"values"`
	AgeBins [][2]float64 `yaml:"age_bins"`
	Clip    []float64    `yaml:"clip"`
}

// Load reads and parses the par file at parFile.
func Load(parFile string) (*Specification, error) {
	data, err := os.ReadFile(parFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	return Parse(data)
}

// Parse builds a Specification from raw par-file contents, validating every
// entry up front so that rerolling and derivation never fail on a shape or
// missing-field problem.
func Parse(data []byte) (*Specification, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	if len(doc.Content) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrConfig)
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: top level must be a mapping", ErrConfig)
	}

	spec := &Specification{}
	foundConsts := false
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value != "consts" {
			continue
		}
		consts, err := parseConsts(root.Content[i+1])
		if err != nil {
			return nil, err
		}
		spec.consts = consts
		foundConsts = true
	}
	if !foundConsts {
		return nil, fmt.Errorf("%w: missing consts entry", ErrConfig)
	}

	seen := make(map[string]bool, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		name := root.Content[i].Value
		if seen[name] {
			return nil, fmt.Errorf("%w: duplicate entry %q", ErrConfig, name)
		}
		seen[name] = true
		if name == "consts" {
			continue
		}
		e, err := classify(name, root.Content[i+1])
		if err != nil {
			return nil, err
		}
		spec.entries = append(spec.entries, e)
	}

	present := make(map[string]bool, len(spec.entries))
	for _, e := range spec.entries {
		present[e.name] = true
	}
	for _, name := range requiredNames {
		if !present[name] {
			return nil, fmt.Errorf("%w: missing required parameter %q", ErrConfig, name)
		}
	}
	return spec, nil
}

func classify(name string, node *yaml.Node) (entry, error) {
	if node.Kind != yaml.MappingNode {
		v, err := decodeValue(node)
		if err != nil {
			return entry{}, fmt.Errorf("%w: entry %q: %v", ErrConfig, name, err)
		}
		return entry{name: name, kind: constantKind{value: v}}, nil
	}

	var raw rawSpec
	if err := node.Decode(&raw); err != nil {
		return entry{}, fmt.Errorf("%w: entry %q: %v", ErrConfig, name, err)
	}

	e := entry{name: name}
	if raw.Clip != nil {
		if len(raw.Clip) != 2 {
			return entry{}, fmt.Errorf("%w: entry %q: clip needs exactly 2 elements", ErrConfig, name)
		}
		e.clip = &[2]float64{raw.Clip[0], raw.Clip[1]}
	}

	var mean Value
	if raw.Mean.Kind != 0 {
		var err error
		if mean, err = decodeValue(&raw.Mean); err != nil {
			return entry{}, fmt.Errorf("%w: entry %q: mean: %v", ErrConfig, name, err)
		}
	}

	switch {
	case raw.Gamma != nil:
		if mean == nil {
			return entry{}, fmt.Errorf("%w: entry %q: gamma requires a mean", ErrConfig, name)
		}
		for _, mu := range mean {
			if mu < 0.0 || mu > 1.0 {
				return entry{}, fmt.Errorf("%w: entry %q: PERT mean %v outside [0,1]", ErrConfig, name, mu)
			}
		}
		e.kind = pertMeanKind{mean: mean, gamma: *raw.Gamma}

	case mean != nil && raw.CI != nil:
		if len(raw.CI) != 2 {
			return entry{}, fmt.Errorf("%w: entry %q: CI needs exactly 2 elements", ErrConfig, name)
		}
		e.kind = meanCIKind{mean: mean, ci: [2]float64{raw.CI[0], raw.CI[1]}}

	case mean != nil:
		e.kind = meanJitterKind{mean: mean}

	case raw.Values != nil:
		bins, err := parseAgeBins(raw.AgeBins)
		if err != nil {
			return entry{}, fmt.Errorf("%w: entry %q: %v", ErrConfig, name, err)
		}
		if len(bins) != len(raw.Values) {
			return entry{}, fmt.Errorf("%w: entry %q: %d age bins for %d values",
				ErrConfig, name, len(bins), len(raw.Values))
		}
		e.kind = ageVectorKind{values: Value(raw.Values), bins: bins}

	default:
		return entry{}, fmt.Errorf("%w: entry %q has none of gamma/mean/CI/values", ErrConfig, name)
	}
	return e, nil
}

func parseConsts(node *yaml.Node) (Consts, error) {
	if node.Kind != yaml.MappingNode {
		return Consts{}, fmt.Errorf("%w: consts must be a mapping", ErrConfig)
	}
	c := Consts{Extra: make(map[string]Value)}
	var haveEn, haveIm bool
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i].Value, node.Content[i+1]
		switch key {
		case "age_bins":
			var raw [][2]float64
			if err := val.Decode(&raw); err != nil {
				return Consts{}, fmt.Errorf("%w: consts.age_bins: %v", ErrConfig, err)
			}
			bins, err := parseAgeBins(raw)
			if err != nil {
				return Consts{}, fmt.Errorf("%w: consts.age_bins: %v", ErrConfig, err)
			}
			c.AgeBins = bins
		case "En":
			if err := val.Decode(&c.En); err != nil {
				return Consts{}, fmt.Errorf("%w: consts.En: %v", ErrConfig, err)
			}
			haveEn = true
		case "Im":
			if err := val.Decode(&c.Im); err != nil {
				return Consts{}, fmt.Errorf("%w: consts.Im: %v", ErrConfig, err)
			}
			haveIm = true
		default:
			v, err := decodeValue(val)
			if err != nil {
				return Consts{}, fmt.Errorf("%w: consts.%s: %v", ErrConfig, key, err)
			}
			c.Extra[key] = v
		}
	}
	if c.AgeBins == nil {
		return Consts{}, fmt.Errorf("%w: consts.age_bins is required", ErrConfig)
	}
	if !haveEn || !haveIm {
		return Consts{}, fmt.Errorf("%w: consts.En and consts.Im are required", ErrConfig)
	}
	return c, nil
}

func parseAgeBins(raw [][2]float64) ([]AgeBin, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("age_bins must be a non-empty list of [low, high) pairs")
	}
	bins := make([]AgeBin, len(raw))
	for i, b := range raw {
		bins[i] = AgeBin{Low: b[0], High: b[1]}
		if bins[i].High <= bins[i].Low {
			return nil, fmt.Errorf("age bin %d: high %v <= low %v", i, b[1], b[0])
		}
		if i > 0 && bins[i].Mid() <= bins[i-1].Mid() {
			return nil, fmt.Errorf("age bin %d: midpoints must increase", i)
		}
	}
	return bins, nil
}

func decodeValue(node *yaml.Node) (Value, error) {
	var x float64
	if err := node.Decode(&x); err == nil {
		return Scalar(x), nil
	}
	var xs []float64
	if err := node.Decode(&xs); err == nil {
		return Value(xs), nil
	}
	return nil, fmt.Errorf("expected a number or a list of numbers")
}

// ParameterSet is one concrete realization of the specification, extended in
// place with the derived quantities. Each generator call returns a fresh set
// owned by the caller; sets share nothing mutable with each other or with
// the Specification.
type ParameterSet struct {
	Fields map[string]Value
	Consts *Consts
}

// Get returns the named value, or nil if absent.
func (p *ParameterSet) Get(name string) Value { return p.Fields[name] }

// ScalarOf returns the first element of the named value.
func (p *ParameterSet) ScalarOf(name string) float64 { return p.mustGet(name)[0] }

func (p *ParameterSet) mustGet(name string) Value {
	v, ok := p.Fields[name]
	if !ok || len(v) == 0 {
		panic("params: missing required parameter " + name)
	}
	return v
}
