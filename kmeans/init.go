package kmeans

import "fmt"

// Initialize picks k distinct rows of f uniformly at random, without replacement,
// as the initial centroids. The order of the result follows the draw order.
func Initialize(f *Features, k int, r Rand) (*Centroids, error) {
	if err := validate(f, k); err != nil {
		return nil, err
	}
	if r == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidParameter)
	}
	n := f.Len()
	// Partial Fisher-Yates: the first k slots end up holding a uniform sample.
	index := make([]int, n)
	for i := range index {
		index[i] = i
	}
	c := newCentroids(k, f.Dim())
	for i := range k {
		j := i + r.Intn(n-i)
		index[i], index[j] = index[j], index[i]
		copy(c.At(i), f.At(index[i]))
	}
	return c, nil
}

func validate(f *Features, k int) error {
	if f == nil || f.m == nil {
		return fmt.Errorf("%w: no feature vectors", ErrInvalidParameter)
	}
	if k < 1 {
		return fmt.Errorf("%w: k=%d must be at least 1", ErrInvalidParameter, k)
	}
	if n := f.Len(); k > n {
		return fmt.Errorf("%w: k=%d exceeds %d feature vectors", ErrInvalidParameter, k, n)
	}
	return nil
}
