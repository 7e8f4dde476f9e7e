// Package kmeans implements Lloyd's k-means over a dense matrix of feature vectors.
//
// The package covers centroid seeding, nearest-centroid assignment, the mean
// update and the iteration driver. It knows nothing about images: callers
// flatten their data into a Features matrix and map the resulting labels back.
package kmeans

import "errors"

var (
	// ErrInvalidParameter is returned when k, N or the random source make clustering impossible.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrDimensionMismatch is returned when vectors of different dimensions are combined.
	ErrDimensionMismatch = errors.New("dimension mismatch")
)

// Rand is the random source used for seeding. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}
