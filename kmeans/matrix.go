package kmeans

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Vector is one feature vector, for image data the normalized channel values of a pixel.
type Vector []float64

// Features is the read-only N x D feature matrix.
// Row i is the i-th pixel in row-major order.
type Features struct {
	m *mat.Dense
}

// NewFeatures wraps a row-major slice of n vectors with dim coordinates each.
// The slice is used as backing storage and must not be modified afterwards.
func NewFeatures(n, dim int, data []float64) (*Features, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: no feature vectors", ErrInvalidParameter)
	}
	if dim < 1 {
		return nil, fmt.Errorf("%w: dimension %d", ErrInvalidParameter, dim)
	}
	if len(data) != n*dim {
		return nil, fmt.Errorf("%w: %d values for %d x %d", ErrDimensionMismatch, len(data), n, dim)
	}
	return &Features{m: mat.NewDense(n, dim, data)}, nil
}

// FeaturesFromVectors copies vectors into a new feature matrix.
// Every vector must have the dimension of the first one.
func FeaturesFromVectors(vectors []Vector) (*Features, error) {
	if len(vectors) == 0 {
		return nil, fmt.Errorf("%w: no feature vectors", ErrInvalidParameter)
	}
	dim := len(vectors[0])
	data := make([]float64, 0, len(vectors)*dim)
	for i, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("%w: vector %d has %d coordinates, want %d", ErrDimensionMismatch, i, len(v), dim)
		}
		data = append(data, v...)
	}
	return NewFeatures(len(vectors), dim, data)
}

// Len returns N.
func (f *Features) Len() int {
	r, _ := f.m.Dims()
	return r
}

// Dim returns D.
func (f *Features) Dim() int {
	_, c := f.m.Dims()
	return c
}

// At returns a view of row i. The view shares storage with the matrix.
func (f *Features) At(i int) Vector {
	return f.m.RawRowView(i)
}

// Matrix exposes the underlying matrix for read-only use.
func (f *Features) Matrix() mat.Matrix {
	return f.m
}

// Centroids is the ordered K x D centroid set. Row k is cluster k.
type Centroids struct {
	m *mat.Dense
}

func newCentroids(k, dim int) *Centroids {
	return &Centroids{m: mat.NewDense(k, dim, nil)}
}

// CentroidsFromVectors copies vectors into a new centroid set.
func CentroidsFromVectors(vectors []Vector) (*Centroids, error) {
	f, err := FeaturesFromVectors(vectors)
	if err != nil {
		return nil, err
	}
	return &Centroids{m: f.m}, nil
}

// Len returns K.
func (c *Centroids) Len() int {
	r, _ := c.m.Dims()
	return r
}

// Dim returns D.
func (c *Centroids) Dim() int {
	_, d := c.m.Dims()
	return d
}

// At returns a view of centroid k. The view shares storage with the set.
func (c *Centroids) At(k int) Vector {
	return c.m.RawRowView(k)
}

// Vectors returns a copy of every centroid.
func (c *Centroids) Vectors() []Vector {
	out := make([]Vector, c.Len())
	for k := range out {
		out[k] = append(Vector(nil), c.At(k)...)
	}
	return out
}

// Clone returns a deep copy.
func (c *Centroids) Clone() *Centroids {
	return &Centroids{m: mat.DenseCopyOf(c.m)}
}

// Equal reports whether every coordinate of c and o is identical.
func (c *Centroids) Equal(o *Centroids) bool {
	return mat.Equal(c.m, o.m)
}

// EqualApprox reports whether every coordinate of c and o is within
// tol of each other, absolutely or relatively.
func (c *Centroids) EqualApprox(o *Centroids, tol float64) bool {
	return mat.EqualApprox(c.m, o.m, tol)
}

// Matrix exposes the underlying matrix for read-only use.
func (c *Centroids) Matrix() mat.Matrix {
	return c.m
}
