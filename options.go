package kquant

import (
	"fmt"
	"log/slog"

	"github.com/yyyoichi/kquant/kmeans"
)

type Option func(*Quantizer) error

// WithK sets the number of colours of the output palette.
// k must be at least 1 and at most the number of pixels of the image.
func WithK(k int) Option {
	return func(q *Quantizer) error {
		if k < 1 {
			return fmt.Errorf("%w: k=%d", ErrInvalidParameter, k)
		}
		q.k = k
		return nil
	}
}

// WithMaxIterations bounds the number of Lloyd passes.
func WithMaxIterations(n int) Option {
	return func(q *Quantizer) error {
		if n < 1 {
			return fmt.Errorf("%w: max iterations %d", ErrInvalidParameter, n)
		}
		q.maxIterations = n
		return nil
	}
}

// WithSeed seeds the centroid sampling. Every Quantize call starts from the
// same seed, so equal inputs give equal outputs.
func WithSeed(seed int64) Option {
	return func(q *Quantizer) error {
		q.seed = seed
		return nil
	}
}

// WithRand uses r for every call instead of a fresh seeded source.
// Successive calls then continue the sequence of r.
func WithRand(r kmeans.Rand) Option {
	return func(q *Quantizer) error {
		if r == nil {
			return fmt.Errorf("%w: nil random source", ErrInvalidParameter)
		}
		q.rand = r
		return nil
	}
}

// WithEmptyPolicy decides how a colour that lost all its pixels is refilled.
// The default kmeans.EmptyZero turns it black.
func WithEmptyPolicy(p kmeans.EmptyPolicy) Option {
	return func(q *Quantizer) error {
		q.policy = p
		return nil
	}
}

// WithTolerance stops iterating once no centroid coordinate moves more than tol.
// Zero, the default, waits for centroids to stop moving exactly.
func WithTolerance(tol float64) Option {
	return func(q *Quantizer) error {
		if tol < 0 {
			return fmt.Errorf("%w: tolerance %g", ErrInvalidParameter, tol)
		}
		q.tolerance = tol
		return nil
	}
}

// WithWorkers labels pixels with up to n goroutines. The result does not depend on n.
func WithWorkers(n int) Option {
	return func(q *Quantizer) error {
		q.workers = n
		return nil
	}
}

// WithSampleSize learns the palette on a downscaled copy of images larger than
// maxPixels. Every pixel of the original is still labelled. Zero disables sampling.
func WithSampleSize(maxPixels int) Option {
	return func(q *Quantizer) error {
		if maxPixels < 0 {
			return fmt.Errorf("%w: sample size %d", ErrInvalidParameter, maxPixels)
		}
		q.sampleSize = maxPixels
		return nil
	}
}

// WithLogger sets the logger for progress records.
func WithLogger(l *slog.Logger) Option {
	return func(q *Quantizer) error {
		q.logger = l
		return nil
	}
}
