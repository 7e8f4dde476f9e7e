package kmeans

import (
	"fmt"

	"github.com/muesli/clusters"
)

// FeaturesFromObservations copies the coordinates of a muesli/clusters data set.
func FeaturesFromObservations(obs clusters.Observations) (*Features, error) {
	if len(obs) == 0 {
		return nil, fmt.Errorf("%w: no feature vectors", ErrInvalidParameter)
	}
	vectors := make([]Vector, len(obs))
	for i, o := range obs {
		vectors[i] = Vector(o.Coordinates())
	}
	return FeaturesFromVectors(vectors)
}

// Coordinates returns the centroids as muesli/clusters points.
func (c *Centroids) Coordinates() []clusters.Coordinates {
	out := make([]clusters.Coordinates, c.Len())
	for k, v := range c.Vectors() {
		out[k] = clusters.Coordinates(v)
	}
	return out
}
