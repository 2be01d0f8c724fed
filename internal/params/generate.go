package params

import (
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/exp/rand"
)

// DefaultVariance is the reroll variance used by callers with no opinion.
const DefaultVariance = 0.2

// Generator draws independent parameter sets from a specification. The
// Specification is read-only after Load, so independent generators may run
// on separate goroutines with no locking; a single Generator is not safe
// for concurrent use because it owns its random source.
type Generator struct {
	spec *Specification
	src  rand.Source
	log  *slog.Logger
}

// NewGenerator returns a generator over spec. A nil src gets a time-seeded
// source; pass rand.NewSource with a fixed seed for reproducible ensembles.
func NewGenerator(spec *Specification, src rand.Source) *Generator {
	if src == nil {
		src = rand.NewSource(uint64(time.Now().UnixNano()))
	}
	return &Generator{spec: spec, src: src, log: slog.Default()}
}

// SetLogger replaces the logger used for rejected draws.
func (g *Generator) SetLogger(l *slog.Logger) { g.log = l }

// GenerateParams rerolls and derives until the draw is physically valid:
// Te > 1, Tg > Te and Ti > 3, for every element. With variance zero the
// first draw is accepted unconditionally. There is deliberately no
// iteration cap: a specification whose distribution cannot satisfy the
// predicate blocks forever, which is a configuration-authoring error this
// loop does not guard against.
func (g *Generator) GenerateParams(variance float64) (*ParameterSet, error) {
	if variance < 0.0 {
		variance = 0.0
	}
	for {
		p, err := g.spec.Reroll(variance, g.src)
		if err != nil {
			return nil, err
		}
		CalcDerivedParams(p)
		if variance == 0.0 || p.valid() {
			return p, nil
		}
		g.log.Debug("rejected parameter draw", "params", fmt.Sprintf("%v", p.Fields))
	}
}

func (p *ParameterSet) valid() bool {
	te, ti := p.mustGet("Te"), p.mustGet("Ti")
	return te.AllAbove(1.0) && allGreater(p.mustGet("Tg"), te) && ti.AllAbove(3.0)
}
