package kmeans

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
)

// Assign labels every feature vector with the index of its nearest centroid by
// Euclidean distance. When distances are exactly equal the lowest index wins.
func Assign(f *Features, c *Centroids) ([]int, error) {
	if err := compatible(f, c); err != nil {
		return nil, err
	}
	labels := make([]int, f.Len())
	assignRange(labels, f, c, 0, f.Len())
	return labels, nil
}

// AssignContext is Assign with the rows split across up to workers goroutines.
// Each row is labelled independently so the result equals Assign's.
func AssignContext(ctx context.Context, f *Features, c *Centroids, workers int) ([]int, error) {
	if err := compatible(f, c); err != nil {
		return nil, err
	}
	n := f.Len()
	labels := make([]int, n)
	if workers <= 1 || n < 2*workers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		assignRange(labels, f, c, 0, n)
		return labels, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	chunk := (n + workers - 1) / workers
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			assignRange(labels, f, c, lo, hi)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return labels, nil
}

// Nearest returns the index of the centroid closest to v and its distance.
func Nearest(v Vector, c *Centroids) (int, float64) {
	best, bestDist := 0, math.Inf(1)
	for k := range c.Len() {
		if d := floats.Distance(v, c.At(k), 2); d < bestDist {
			best, bestDist = k, d
		}
	}
	return best, bestDist
}

func assignRange(labels []int, f *Features, c *Centroids, lo, hi int) {
	for i := lo; i < hi; i++ {
		labels[i], _ = Nearest(f.At(i), c)
	}
}

func compatible(f *Features, c *Centroids) error {
	if f == nil || f.m == nil {
		return fmt.Errorf("%w: no feature vectors", ErrInvalidParameter)
	}
	if c == nil || c.m == nil {
		return fmt.Errorf("%w: no centroids", ErrInvalidParameter)
	}
	if f.Dim() != c.Dim() {
		return fmt.Errorf("%w: features have %d coordinates, centroids %d", ErrDimensionMismatch, f.Dim(), c.Dim())
	}
	return nil
}
