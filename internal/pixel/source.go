package pixel

import (
	"image"
	"image/color"
	"math"

	"github.com/yyyoichi/kquant/kmeans"
	"golang.org/x/image/draw"
)

// Source is an image flattened into row-major feature rows.
type Source struct {
	bounds        image.Rectangle
	width, height int
	area          int
	dim           int

	img *image.NRGBA
	// R, G, B[, A] per pixel
	data []float64
}

// NewSource flattens src. Images with any non-opaque pixel keep alpha as
// a fourth coordinate.
func NewSource(src image.Image) Source {
	b := src.Bounds()
	img := toNRGBA(src)
	dim := 4
	if img.Opaque() {
		dim = 3
	}
	s := newSource(img, dim)
	s.bounds = b
	return s
}

// toNRGBA copies src into a zero-origin NRGBA. NRGBA input is copied row by
// row so colour under zero alpha survives.
func toNRGBA(src image.Image) *image.NRGBA {
	b := src.Bounds()
	img := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	if n, ok := src.(*image.NRGBA); ok {
		for y := range b.Dy() {
			i := n.PixOffset(b.Min.X, b.Min.Y+y)
			copy(img.Pix[y*img.Stride:(y+1)*img.Stride], n.Pix[i:i+img.Stride])
		}
		return img
	}
	draw.Draw(img, img.Bounds(), src, b.Min, draw.Src)
	return img
}

func newSource(img *image.NRGBA, dim int) Source {
	var s Source
	s.bounds = img.Bounds()
	s.width, s.height = s.bounds.Dx(), s.bounds.Dy()
	s.area = s.width * s.height
	s.dim = dim
	s.img = img
	s.data = make([]float64, s.area*dim)
	NRGBAToFeatureBatch(img.Pix, dim, s.data)
	return s
}

func (s Source) Bounds() image.Rectangle { return s.bounds }

func (s Source) Area() int { return s.area }

// Dim is 3 for opaque images, 4 otherwise.
func (s Source) Dim() int { return s.dim }

// Features wraps the flattened pixels. The matrix shares storage with s.
func (s Source) Features() (*kmeans.Features, error) {
	return kmeans.NewFeatures(s.area, s.dim, s.data)
}

// Sample returns s unchanged when it has at most maxPixels pixels, otherwise a
// CatmullRom-downscaled copy of at most maxPixels pixels with the same
// dimension and, as far as the budget allows, the same aspect ratio.
func (s Source) Sample(maxPixels int) Source {
	if maxPixels <= 0 || s.area <= maxPixels {
		return s
	}
	f := math.Sqrt(float64(maxPixels) / float64(s.area))
	w := max(1, int(float64(s.width)*f))
	h := max(1, int(float64(s.height)*f))
	// Clamping one side to 1 must not push the other past the budget.
	w = min(w, max(1, maxPixels/h))
	h = min(h, max(1, maxPixels/w))
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), s.img, s.img.Bounds(), draw.Src, nil)
	return newSource(dst, s.dim)
}

// Build renders every pixel as the centroid it is labelled with.
func (s Source) Build(centroids *kmeans.Centroids, labels []int) *image.NRGBA {
	palette := make([]color.NRGBA, centroids.Len())
	for k := range palette {
		palette[k] = FeatureToNRGBA(centroids.At(k))
	}
	dist := image.NewNRGBA(s.bounds)
	for i, label := range labels[:s.area] {
		c := palette[label]
		p := dist.Pix[i*4 : i*4+4 : i*4+4]
		p[0], p[1], p[2], p[3] = c.R, c.G, c.B, c.A
	}
	return dist
}
