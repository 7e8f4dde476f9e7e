package kquant

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"math/rand"
	"time"

	"github.com/yyyoichi/kquant/internal/pixel"
	"github.com/yyyoichi/kquant/kmeans"
)

var (
	// ErrInvalidParameter is kmeans.ErrInvalidParameter, re-exported for errors.Is.
	ErrInvalidParameter = kmeans.ErrInvalidParameter
	// ErrEmptyImage is returned for images without pixels. It wraps ErrInvalidParameter.
	ErrEmptyImage = fmt.Errorf("%w: image has no pixels", kmeans.ErrInvalidParameter)
)

const (
	DefaultK             = 60
	DefaultMaxIterations = 20
)

var (
	DefaultSeed int64 = 1234567890
)

// Quantize reduces src to k colours with the specified options.
// This is a convenience function that creates a Quantizer and calls its Quantize method.
func Quantize(ctx context.Context, src image.Image, opts ...Option) (*Result, error) {
	q, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return q.Quantize(ctx, src)
}

type Quantizer struct {
	k             int
	maxIterations int
	seed          int64
	rand          kmeans.Rand
	policy        kmeans.EmptyPolicy
	tolerance     float64
	workers       int
	sampleSize    int
	logger        *slog.Logger
}

// New initializes a quantizer.
// For default values, refer to the init function.
func New(opts ...Option) (*Quantizer, error) {
	q := new(Quantizer)
	if err := q.init(opts...); err != nil {
		return nil, err
	}
	return q, nil
}

// Quantize reduces src to a palette of k colours.
//
// Process:
//  1. Flattens the image row by row into normalized RGB or RGBA vectors.
//  2. Samples k distinct pixels as initial centroids.
//  3. Runs Lloyd's algorithm until no centroid moves or the iteration cap is hit.
//  4. Labels every pixel with its nearest centroid.
//  5. Rebuilds the image from the centroid colours.
//
// Returns an error wrapping ErrInvalidParameter if the image has fewer pixels than k.
func (q *Quantizer) Quantize(ctx context.Context, src image.Image) (*Result, error) {
	return q.quantize(ctx, pixel.NewSource(src))
}

func (q *Quantizer) quantize(ctx context.Context, src pixel.Source) (*Result, error) {
	if src.Area() == 0 {
		return nil, ErrEmptyImage
	}
	features, err := src.Features()
	if err != nil {
		return nil, err
	}
	train := features
	if q.sampleSize > 0 {
		// A sample rounded below k pixels falls back to the full image.
		sample := src.Sample(max(q.sampleSize, q.k))
		if sample.Area() != src.Area() && sample.Area() >= q.k {
			if train, err = sample.Features(); err != nil {
				return nil, err
			}
		}
	}

	start := time.Now()
	res, err := kmeans.Run(ctx, train, q.k, q.config())
	if err != nil {
		return nil, fmt.Errorf("quantize %d pixels to %d colours: %w", features.Len(), q.k, err)
	}
	labels := res.Labels
	if train != features {
		if labels, err = kmeans.AssignContext(ctx, features, res.Centroids, q.workers); err != nil {
			return nil, err
		}
	}
	elapsed := time.Since(start)

	q.logger.InfoContext(ctx, "quantized",
		"pixels", features.Len(),
		"trained_on", train.Len(),
		"k", q.k,
		"iterations", res.Iterations,
		"termination", res.Termination.String(),
		"elapsed", elapsed,
	)
	return &Result{
		Image:       src.Build(res.Centroids, labels),
		Centroids:   res.Centroids,
		Labels:      labels,
		Termination: res.Termination,
		Iterations:  res.Iterations,
		Elapsed:     elapsed,
	}, nil
}

func (q *Quantizer) config() kmeans.Config {
	r := q.rand
	if r == nil {
		r = rand.New(rand.NewSource(q.seed))
	}
	return kmeans.Config{
		MaxIterations: q.maxIterations,
		Rand:          r,
		EmptyPolicy:   q.policy,
		Tolerance:     q.tolerance,
		Workers:       q.workers,
		Logger:        q.logger,
	}
}

func (q *Quantizer) init(opts ...Option) error {
	q.seed = DefaultSeed
	for _, opt := range opts {
		if err := opt(q); err != nil {
			return err
		}
	}
	if q.k == 0 {
		q.k = DefaultK
	}
	if q.maxIterations == 0 {
		q.maxIterations = DefaultMaxIterations
	}
	if q.logger == nil {
		q.logger = slog.New(slog.DiscardHandler)
	}
	return nil
}

// Batch quantizes one image several times, for example with different k,
// flattening it only once.
type Batch struct {
	original pixel.Source
}

// NewBatch creates a new Batch instance and flattens the given image.
func NewBatch(src image.Image) *Batch {
	return &Batch{original: pixel.NewSource(src)}
}

// Quantize reduces the cached image with specified options.
func (b *Batch) Quantize(ctx context.Context, opts ...Option) (*Result, error) {
	q, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return q.quantize(ctx, b.original)
}
