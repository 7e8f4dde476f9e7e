package kmeans

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// EmptyPolicy decides the value of a centroid that received no vectors.
type EmptyPolicy int

const (
	// EmptyZero sets the centroid to the zero vector. For colour data that is
	// black, or transparent black with alpha, and may attract vectors on the next pass.
	EmptyZero EmptyPolicy = iota
	// EmptyKeep leaves the centroid at its previous value.
	EmptyKeep
	// EmptyReseed moves the centroid onto a feature vector drawn from the random source.
	EmptyReseed
)

func (p EmptyPolicy) String() string {
	switch p {
	case EmptyKeep:
		return "keep"
	case EmptyReseed:
		return "reseed"
	default:
		return "zero"
	}
}

// ParseEmptyPolicy parses the String form of a policy.
func ParseEmptyPolicy(s string) (EmptyPolicy, error) {
	switch s {
	case "zero", "":
		return EmptyZero, nil
	case "keep":
		return EmptyKeep, nil
	case "reseed":
		return EmptyReseed, nil
	}
	return EmptyZero, fmt.Errorf("%w: empty cluster policy %q", ErrInvalidParameter, s)
}

// averageStore accumulates the vectors assigned to one cluster.
type averageStore struct {
	sum   Vector
	count int
}

func (s *averageStore) Add(v Vector) {
	floats.Add(s.sum, v)
	s.count += 1
}

// Average writes sum/count into sum and reports false for an empty store.
func (s *averageStore) Average() bool {
	if s.count == 0 {
		return false
	}
	n := float64(s.count)
	for j := range s.sum {
		s.sum[j] /= n
	}
	return true
}

// UpdateMeans returns k centroids where centroid j is the per-coordinate
// arithmetic mean of the vectors labelled j. Clusters without vectors are
// set to the zero vector.
func UpdateMeans(f *Features, labels []int, k int) (*Centroids, error) {
	c, _, err := updateMeans(f, labels, k, nil, EmptyZero, nil)
	return c, err
}

// updateMeans also returns the number of empty clusters it had to fill.
func updateMeans(f *Features, labels []int, k int, prev *Centroids, policy EmptyPolicy, r Rand) (*Centroids, int, error) {
	if err := validate(f, k); err != nil {
		return nil, 0, err
	}
	if len(labels) != f.Len() {
		return nil, 0, fmt.Errorf("%w: %d labels for %d feature vectors", ErrDimensionMismatch, len(labels), f.Len())
	}
	c := newCentroids(k, f.Dim())
	stores := make([]averageStore, k)
	for j := range stores {
		stores[j].sum = c.At(j)
	}
	for i, label := range labels {
		if label < 0 || label >= k {
			return nil, 0, fmt.Errorf("%w: label %d at %d outside [0,%d)", ErrInvalidParameter, label, i, k)
		}
		stores[label].Add(f.At(i))
	}

	var empty int
	for j := range stores {
		if stores[j].Average() {
			continue
		}
		empty++
		switch policy {
		case EmptyKeep:
			if prev != nil {
				copy(c.At(j), prev.At(j))
			}
		case EmptyReseed:
			if r != nil {
				copy(c.At(j), f.At(r.Intn(f.Len())))
			}
		}
	}
	return c, empty, nil
}
