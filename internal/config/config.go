package config

import (
	"flag"

	"github.com/ragram88/bucky/internal/params"
)

type Config struct {
	ParFile       string
	Runs          int
	Variance      float64
	Seed          uint64
	DoublingTime  float64
	ContactMatrix string
	Output        string
}

func Parse() *Config {
	cfg := &Config{}

	// define flags
	flag.StringVar(&cfg.ParFile, "par-file", "parameters.yml", "model parameter specification file")
	flag.IntVar(&cfg.Runs, "runs", 100, "number of Monte Carlo parameter sets to draw")
	flag.Float64Var(&cfg.Variance, "var", params.DefaultVariance, "reroll variance (0 disables randomization)")
	flag.Uint64Var(&cfg.Seed, "seed", 0, "random seed (0 seeds from the clock)")
	flag.Float64Var(&cfg.DoublingTime, "doubling-time", 0, "rescale R0/BETA to this doubling time (0 disables)")
	flag.StringVar(&cfg.ContactMatrix, "contact-matrix", "", "contact matrix file for per-group BETA normalization")
	flag.StringVar(&cfg.Output, "output", "params.csv", "output CSV file")
	flag.Parse()

	return cfg
}
