package pixel

import "image/color"

const scale = 255.

// NRGBAToFeatureBatch scales interleaved 8-bit NRGBA samples into [0,1].
// dim selects RGB (3) or RGBA (4); with 3 the alpha byte is skipped.
func NRGBAToFeatureBatch(pix []uint8, dim int, features []float64) {
	for i := range len(pix) / 4 {
		p := pix[i*4 : i*4+4 : i*4+4]
		f := features[i*dim : (i+1)*dim : (i+1)*dim]
		for c := range f {
			f[c] = float64(p[c]) / scale
		}
	}
}

// FeatureToNRGBA maps a normalized feature back to a colour. Three-coordinate
// features are opaque.
func FeatureToNRGBA(f []float64) color.NRGBA {
	c := color.NRGBA{A: 255}
	c.R = clip8(f[0])
	c.G = clip8(f[1])
	c.B = clip8(f[2])
	if len(f) > 3 {
		c.A = clip8(f[3])
	}
	return c
}

// clip8 truncates like an integer cast after scaling.
func clip8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v * scale)
}
