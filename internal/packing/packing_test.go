package packing

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWidth(t *testing.T) {
	test := []struct {
		k    int
		want int
	}{
		{1, 1}, {2, 1}, {3, 2}, {4, 2}, {5, 3}, {16, 4}, {17, 5}, {60, 6}, {256, 8}, {257, 9},
	}
	for _, tt := range test {
		assert.Equal(t, tt.want, Width(tt.k), "k=%d", tt.k)
	}
}

func TestPack(t *testing.T) {
	test := []struct {
		name   string
		labels []int
		k      int
		size   int
	}{
		{"empty", []int{}, 4, 0},
		{"single cluster", []int{0, 0, 0}, 1, 1},
		{"two bits", []int{3, 0, 2, 1, 3}, 4, 2},
		{"six bits", []int{59, 0, 31, 32, 1, 58, 7, 8, 44}, 60, 7},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			p := Pack(tt.labels, tt.k)
			assert.Equal(t, len(tt.labels), p.Len())
			assert.Equal(t, tt.size, p.Size())
			assert.Equal(t, tt.labels, p.Unpack())
		})
	}
}

func TestPack_Random(t *testing.T) {
	rd := rand.New(rand.NewSource(1234))
	for range 20 {
		k := rd.Intn(300) + 1
		labels := make([]int, rd.Intn(2000))
		for i := range labels {
			labels[i] = rd.Intn(k)
		}
		p := Pack(labels, k)
		assert.Equal(t, Width(k), p.Width())
		assert.Equal(t, labels, p.Unpack())
		assert.Len(t, p.Bytes(), p.Size())
		assert.Equal(t, (len(labels)*Width(k)+7)/8, p.Size())
	}
}

func TestLabels_Bytes(t *testing.T) {
	test := []struct {
		name   string
		labels []int
		k      int
		want   []byte
	}{
		{"empty", []int{}, 4, []byte{}},
		{"one bit", []int{1, 0, 1, 1, 0, 0, 0, 1, 1}, 2, []byte{0b10110001, 0b10000000}},
		{"two bits", []int{3, 0, 2, 1, 3}, 4, []byte{0b11001001, 0b11000000}},
		{"six bits", []int{59, 0}, 60, []byte{0b11101100, 0b00000000}},
		{"nine bits", []int{300}, 301, []byte{0b10010110, 0b00000000}},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			p := Pack(tt.labels, tt.k)
			assert.Equal(t, tt.want, p.Bytes())
		})
	}
}

func TestLabels_AtOutOfRange(t *testing.T) {
	p := Pack([]int{1, 2, 3}, 4)
	assert.Equal(t, 3, p.At(2))
	assert.Panics(t, func() { p.At(3) })
	assert.Panics(t, func() { p.At(-1) })
}
