package main

import (
	"log"

	"golang.org/x/exp/rand"

	"github.com/ragram88/bucky/internal/config"
	"github.com/ragram88/bucky/internal/params"
	"github.com/ragram88/bucky/internal/presenter"
	"github.com/ragram88/bucky/pkg/contactmatrix"
)

func main() {
	cfg := config.Parse()
	log.Println("Loading parameter specification from", cfg.ParFile)

	spec, err := params.Load(cfg.ParFile)
	if err != nil {
		log.Fatal("Error loading parameter file: ", err)
	}

	var src rand.Source
	if cfg.Seed != 0 {
		src = rand.NewSource(cfg.Seed)
	}
	gen := params.NewGenerator(spec, src)

	var aDiag params.Value
	if cfg.ContactMatrix != "" {
		cm, err := contactmatrix.Read(cfg.ContactMatrix)
		if err != nil {
			log.Fatal("Error reading contact matrix: ", err)
		}
		aDiag = params.ContactMatrixDiag(cm)
	}

	sets := make([]*params.ParameterSet, 0, cfg.Runs)
	for i := 0; i < cfg.Runs; i++ {
		p, err := gen.GenerateParams(cfg.Variance)
		if err != nil {
			log.Fatal("Error generating parameters: ", err)
		}
		if cfg.DoublingTime > 0 {
			params.RescaleDoublingRate(cfg.DoublingTime, p, aDiag)
		}
		sets = append(sets, p)
	}

	names := append(spec.Names(), params.DerivedNames...)
	if err := presenter.SaveSetsToCSV(sets, names, cfg.Output); err != nil {
		log.Fatal("Error writing output: ", err)
	}
	log.Printf("Wrote %d parameter sets to %s", len(sets), cfg.Output)
}
