package kquant

import (
	"image"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/yyyoichi/kquant/internal/packing"
	"github.com/yyyoichi/kquant/internal/pixel"
	"github.com/yyyoichi/kquant/kmeans"
)

// Result holds a quantized image together with the clustering that produced it.
type Result struct {
	// Image is the input with every pixel replaced by its centroid colour.
	Image *image.NRGBA
	// Centroids are the palette in normalized [0,1] channels.
	// Rows have 3 columns for opaque inputs and 4 otherwise.
	Centroids *kmeans.Centroids
	// Labels holds one palette index per pixel in row-major order.
	Labels      []int
	Termination kmeans.State
	Iterations  int
	// Elapsed covers initialization, iterations and the final labelling.
	Elapsed time.Duration
}

// Palette returns the centroid colours, ignoring alpha.
func (r *Result) Palette() []colorful.Color {
	palette := make([]colorful.Color, r.Centroids.Len())
	for k := range palette {
		v := r.Centroids.At(k)
		palette[k] = colorful.Color{R: v[0], G: v[1], B: v[2]}.Clamped()
	}
	return palette
}

// Hex returns the palette as "#rrggbb" strings.
func (r *Result) Hex() []string {
	palette := r.Palette()
	hex := make([]string, len(palette))
	for k, c := range palette {
		hex[k] = c.Hex()
	}
	return hex
}

// BitsPerPixel is the width of one label in the packed form.
func (r *Result) BitsPerPixel() int {
	return packing.Width(r.Centroids.Len())
}

// Packed encodes the result as an indexed image payload: the palette, one
// byte per channel in Centroids order, followed by the labels packed with
// BitsPerPixel bits each, most significant bit first.
func (r *Result) Packed() []byte {
	k, dim := r.Centroids.Len(), r.Centroids.Dim()
	labels := packing.Pack(r.Labels, k)
	out := make([]byte, 0, k*dim+labels.Size())
	for j := range k {
		c := pixel.FeatureToNRGBA(r.Centroids.At(j))
		out = append(out, []byte{c.R, c.G, c.B, c.A}[:dim]...)
	}
	return append(out, labels.Bytes()...)
}

// PackedSize is the length of Packed.
func (r *Result) PackedSize() int {
	return len(r.Packed())
}
