package main

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/yyyoichi/kquant"
	"github.com/yyyoichi/kquant/kmeans"
)

// config holds every setting the command accepts, from flags or a YAML file.
type config struct {
	Output        string  `yaml:"output,omitempty"`
	Packed        string  `yaml:"packed,omitempty"`
	K             int     `yaml:"k,omitempty"`
	MaxIterations int     `yaml:"max_iterations,omitempty"`
	Seed          int64   `yaml:"seed,omitempty"`
	Empty         string  `yaml:"empty,omitempty"`
	Tolerance     float64 `yaml:"tolerance,omitempty"`
	Workers       int     `yaml:"workers,omitempty"`
	Sample        int     `yaml:"sample,omitempty"`
	Verbose       bool    `yaml:"verbose,omitempty"`
}

func defaultConfig() config {
	return config{
		Output:        "out.png",
		K:             kquant.DefaultK,
		MaxIterations: kquant.DefaultMaxIterations,
		Seed:          kquant.DefaultSeed,
		Empty:         kmeans.EmptyZero.String(),
	}
}

// loadConfig reads a YAML file on top of the defaults.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// merge copies every field of file whose flag was not set explicitly.
func (c *config) merge(file config, changed func(name string) bool) {
	if !changed("output") {
		c.Output = file.Output
	}
	if !changed("packed") {
		c.Packed = file.Packed
	}
	if !changed("k") {
		c.K = file.K
	}
	if !changed("max-iter") {
		c.MaxIterations = file.MaxIterations
	}
	if !changed("seed") {
		c.Seed = file.Seed
	}
	if !changed("empty") {
		c.Empty = file.Empty
	}
	if !changed("tolerance") {
		c.Tolerance = file.Tolerance
	}
	if !changed("workers") {
		c.Workers = file.Workers
	}
	if !changed("sample") {
		c.Sample = file.Sample
	}
	if !changed("verbose") {
		c.Verbose = file.Verbose
	}
}

func (c config) options() ([]kquant.Option, error) {
	policy, err := kmeans.ParseEmptyPolicy(c.Empty)
	if err != nil {
		return nil, err
	}
	return []kquant.Option{
		kquant.WithK(c.K),
		kquant.WithMaxIterations(c.MaxIterations),
		kquant.WithSeed(c.Seed),
		kquant.WithEmptyPolicy(policy),
		kquant.WithTolerance(c.Tolerance),
		kquant.WithWorkers(c.Workers),
		kquant.WithSampleSize(c.Sample),
	}, nil
}
