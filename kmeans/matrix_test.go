package kmeans

import (
	"testing"

	"github.com/muesli/clusters"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFeatures(t *testing.T) {
	test := []struct {
		name    string
		n, dim  int
		data    []float64
		wantErr error
	}{
		{"valid", 2, 3, []float64{0, 0.1, 0.2, 0.3, 0.4, 0.5}, nil},
		{"no vectors", 0, 3, nil, ErrInvalidParameter},
		{"no dimension", 2, 0, nil, ErrInvalidParameter},
		{"short data", 2, 3, []float64{0, 0.1, 0.2}, ErrDimensionMismatch},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewFeatures(tt.n, tt.dim, tt.data)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.n, f.Len())
			assert.Equal(t, tt.dim, f.Dim())
			assert.Equal(t, Vector{0.3, 0.4, 0.5}, f.At(1))
		})
	}
}

func TestFeaturesFromVectors(t *testing.T) {
	t.Run("copies", func(t *testing.T) {
		src := []Vector{{0, 1}, {2, 3}}
		f, err := FeaturesFromVectors(src)
		require.NoError(t, err)
		src[0][0] = 9
		assert.Equal(t, Vector{0, 1}, f.At(0))
		assert.Equal(t, Vector{2, 3}, f.At(1))
	})
	t.Run("ragged", func(t *testing.T) {
		_, err := FeaturesFromVectors([]Vector{{0, 1}, {2}})
		assert.ErrorIs(t, err, ErrDimensionMismatch)
	})
	t.Run("empty", func(t *testing.T) {
		_, err := FeaturesFromVectors(nil)
		assert.ErrorIs(t, err, ErrInvalidParameter)
	})
}

func TestCentroids(t *testing.T) {
	c, err := CentroidsFromVectors([]Vector{{0, 0.5}, {1, 1}})
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 2, c.Dim())

	clone := c.Clone()
	assert.True(t, c.Equal(clone))
	clone.At(0)[1] = 0.5000001
	assert.False(t, c.Equal(clone))
	assert.True(t, c.EqualApprox(clone, 1e-6))

	vectors := c.Vectors()
	vectors[0][0] = 7
	assert.Equal(t, Vector{0, 0.5}, c.At(0))
}

func TestObservations(t *testing.T) {
	obs := clusters.Observations{
		clusters.Coordinates{0, 0},
		clusters.Coordinates{0, 1},
		clusters.Coordinates{10, 10},
	}
	f, err := FeaturesFromObservations(obs)
	require.NoError(t, err)
	assert.Equal(t, 3, f.Len())
	assert.Equal(t, Vector{10, 10}, f.At(2))

	c, err := UpdateMeans(f, []int{0, 0, 1}, 2)
	require.NoError(t, err)
	assert.Equal(t, []clusters.Coordinates{{0, 0.5}, {10, 10}}, c.Coordinates())

	_, err = FeaturesFromObservations(nil)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}
