package kmeans

import (
	"context"
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/floats"
)

// DefaultMaxIterations bounds Run when Config.MaxIterations is zero.
const DefaultMaxIterations = 10

// State is the position of an Iterator in its lifecycle.
type State int

const (
	StateInitialized State = iota
	StateIterating
	StateConverged
	StateMaxIterationsReached
)

func (s State) String() string {
	switch s {
	case StateInitialized:
		return "initialized"
	case StateIterating:
		return "iterating"
	case StateConverged:
		return "converged"
	case StateMaxIterationsReached:
		return "max-iterations-reached"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Done reports whether s is terminal.
func (s State) Done() bool {
	return s == StateConverged || s == StateMaxIterationsReached
}

// Config tunes the Lloyd driver.
type Config struct {
	// MaxIterations caps the number of assign/update passes.
	// Zero selects DefaultMaxIterations.
	MaxIterations int
	// Rand seeds the centroids in Run and feeds EmptyReseed.
	Rand Rand
	// EmptyPolicy decides what happens to clusters that lose all their vectors.
	EmptyPolicy EmptyPolicy
	// Tolerance is the per-coordinate distance under which a centroid counts
	// as unmoved. Zero means exact equality.
	Tolerance float64
	// Workers splits the assignment pass. Values below 2 keep it sequential.
	Workers int
	// Logger receives one debug record per iteration. Nil discards.
	Logger *slog.Logger
}

func (cfg Config) withDefaults() (Config, error) {
	if cfg.MaxIterations < 0 {
		return cfg, fmt.Errorf("%w: max iterations %d", ErrInvalidParameter, cfg.MaxIterations)
	}
	if cfg.MaxIterations == 0 {
		cfg.MaxIterations = DefaultMaxIterations
	}
	if cfg.Tolerance < 0 {
		return cfg, fmt.Errorf("%w: tolerance %g", ErrInvalidParameter, cfg.Tolerance)
	}
	if cfg.EmptyPolicy == EmptyReseed && cfg.Rand == nil {
		return cfg, fmt.Errorf("%w: reseed policy needs a random source", ErrInvalidParameter)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	return cfg, nil
}

// Result is the outcome of a finished run. Labels always belong to Centroids:
// Labels[i] is the nearest centroid of feature i under the returned set.
type Result struct {
	Centroids   *Centroids
	Labels      []int
	Termination State
	Iterations  int
}

// Iterator runs Lloyd's algorithm one pass at a time so callers can stop
// between passes.
type Iterator struct {
	f         *Features
	cfg       Config
	centroids *Centroids
	labels    []int
	state     State
	iteration int
	empty     int
}

// NewIterator starts from seeds, which are copied.
func NewIterator(f *Features, seeds *Centroids, cfg Config) (*Iterator, error) {
	if err := compatible(f, seeds); err != nil {
		return nil, err
	}
	if err := validate(f, seeds.Len()); err != nil {
		return nil, err
	}
	cfg, err := cfg.withDefaults()
	if err != nil {
		return nil, err
	}
	return &Iterator{
		f:         f,
		cfg:       cfg,
		centroids: seeds.Clone(),
		state:     StateInitialized,
	}, nil
}

// Next performs one assign, update and compare pass. It returns false once
// the iterator reached a terminal state or when ctx is done.
func (it *Iterator) Next(ctx context.Context) (bool, error) {
	if it.state.Done() {
		return false, nil
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	it.state = StateIterating

	labels, err := AssignContext(ctx, it.f, it.centroids, it.cfg.Workers)
	if err != nil {
		return false, err
	}
	next, empty, err := updateMeans(it.f, labels, it.centroids.Len(), it.centroids, it.cfg.EmptyPolicy, it.cfg.Rand)
	if err != nil {
		return false, err
	}
	it.iteration++
	it.empty = empty
	it.labels = labels

	moved := it.moved(next)
	it.cfg.Logger.DebugContext(ctx, "kmeans iteration",
		"iteration", it.iteration,
		"moved", moved,
		"empty", empty,
	)
	if moved == 0 {
		// labels were computed against it.centroids, which stay the result.
		it.state = StateConverged
		return false, nil
	}
	it.centroids = next
	if it.iteration >= it.cfg.MaxIterations {
		// Relabel so the labels match the final centroids.
		it.labels, err = AssignContext(ctx, it.f, it.centroids, it.cfg.Workers)
		if err != nil {
			return false, err
		}
		it.state = StateMaxIterationsReached
		return false, nil
	}
	return true, nil
}

func (it *Iterator) moved(next *Centroids) int {
	var n int
	for k := range next.Len() {
		a, b := it.centroids.At(k), next.At(k)
		if it.cfg.Tolerance > 0 {
			if !floats.EqualApprox(a, b, it.cfg.Tolerance) {
				n++
			}
			continue
		}
		if !floats.Equal(a, b) {
			n++
		}
	}
	return n
}

// State returns the current state.
func (it *Iterator) State() State { return it.state }

// Iteration returns the number of completed passes.
func (it *Iterator) Iteration() int { return it.iteration }

// Empty returns the number of empty clusters seen in the last pass.
func (it *Iterator) Empty() int { return it.empty }

// Centroids returns the current centroid set. It must not be modified.
func (it *Iterator) Centroids() *Centroids { return it.centroids }

// Result snapshots the iterator. Before the first pass Labels is nil.
func (it *Iterator) Result() *Result {
	return &Result{
		Centroids:   it.centroids.Clone(),
		Labels:      append([]int(nil), it.labels...),
		Termination: it.state,
		Iterations:  it.iteration,
	}
}

// Run seeds k centroids from cfg.Rand and iterates until the centroids stop
// moving or cfg.MaxIterations passes have run.
func Run(ctx context.Context, f *Features, k int, cfg Config) (*Result, error) {
	seeds, err := Initialize(f, k, cfg.Rand)
	if err != nil {
		return nil, err
	}
	it, err := NewIterator(f, seeds, cfg)
	if err != nil {
		return nil, err
	}
	for {
		more, err := it.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
	}
	return it.Result(), nil
}
