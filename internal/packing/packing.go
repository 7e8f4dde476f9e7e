// Package packing stores cluster labels as a fixed-width bit stream, the
// payload a palette-indexed encoding of the image would carry.
package packing

import (
	"fmt"
	"math/bits"

	"github.com/yyyoichi/bitstream-go"
)

// Width returns the number of bits needed per label for k clusters.
func Width(k int) int {
	if k <= 2 {
		return 1
	}
	return bits.Len(uint(k - 1))
}

// Labels is a packed label sequence, most significant bit first.
type Labels struct {
	reader *bitstream.BitReader[uint64]
	width  int
	n      int
}

// Pack encodes labels with Width(k) bits each. Labels must lie in [0,k).
func Pack(labels []int, k int) Labels {
	width := Width(k)
	w := bitstream.NewBitWriter[uint64](0, 0)
	for _, label := range labels {
		w.Write64(64-width, width, uint64(label))
	}
	reader := bitstream.NewBitReader(w.Data(), 0, 0)
	reader.SetBits(w.Bits())
	return Labels{reader: reader, width: width, n: len(labels)}
}

// Len returns the number of labels.
func (l Labels) Len() int { return l.n }

// Width returns the bits per label.
func (l Labels) Width() int { return l.width }

// Size returns the length of Bytes.
func (l Labels) Size() int {
	return (l.reader.Bits() + 7) / 8
}

// Bytes serializes the stream, zero-padding the last byte.
func (l Labels) Bytes() []byte {
	out := make([]byte, l.Size())
	for i := range out {
		out[i] = l.reader.Read8R(8, i)
	}
	return out
}

// At decodes label i. It panics if i is outside [0, Len()).
func (l Labels) At(i int) int {
	if i < 0 || i >= l.n {
		panic(fmt.Sprintf("packing: label %d out of range [0,%d)", i, l.n))
	}
	var v int
	for b := range l.width {
		// in range, so ReadBitAt cannot fail
		bit, _ := l.reader.ReadBitAt(i*l.width + b)
		v <<= 1
		if bit {
			v |= 1
		}
	}
	return v
}

// Unpack decodes every label.
func (l Labels) Unpack() []int {
	out := make([]int, l.n)
	for i := range out {
		out[i] = l.At(i)
	}
	return out
}
