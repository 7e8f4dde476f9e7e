// Command kquant reduces the colours of an image with k-means clustering.
//
// Usage:
//
//	kquant [flags] <input>
//
// The quantized image is written as PNG. Sizes, the compression ratio, an
// estimate of the bit-packed indexed form and the learnt palette are printed.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
