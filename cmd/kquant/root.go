package main

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"
	"strings"

	_ "image/gif"
	_ "image/jpeg"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/yyyoichi/kquant"
	_ "golang.org/x/image/webp"
)

func newRootCmd() *cobra.Command {
	cfg := defaultConfig()
	var configPath string

	cmd := &cobra.Command{
		Use:   "kquant [flags] <input>",
		Short: "Reduce the colours of an image with k-means",
		Long: `kquant learns a palette of k colours with Lloyd's k-means algorithm and
replaces every pixel by its nearest palette colour.

Inputs may be PNG, JPEG, GIF or WebP. The result is always written as PNG.

Example config file (kquant.yaml):
  output: small.png
  k: 16
  max_iterations: 30
  empty: keep
  packed: small.kq
  sample: 250000`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				file, err := loadConfig(configPath)
				if err != nil {
					return err
				}
				cfg.merge(file, cmd.Flags().Changed)
			}
			return run(cmd, args[0], cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&cfg.Output, "output", "o", cfg.Output, "output PNG file")
	flags.StringVar(&cfg.Packed, "packed", cfg.Packed, "also write the palette and bit-packed labels to this file")
	flags.IntVarP(&cfg.K, "k", "k", cfg.K, "number of colours")
	flags.IntVar(&cfg.MaxIterations, "max-iter", cfg.MaxIterations, "maximum Lloyd iterations")
	flags.Int64Var(&cfg.Seed, "seed", cfg.Seed, "seed for the initial centroids")
	flags.StringVar(&cfg.Empty, "empty", cfg.Empty, "empty cluster policy: zero, keep or reseed")
	flags.Float64Var(&cfg.Tolerance, "tolerance", cfg.Tolerance, "convergence tolerance, 0 for exact")
	flags.IntVar(&cfg.Workers, "workers", cfg.Workers, "goroutines labelling pixels")
	flags.IntVar(&cfg.Sample, "sample", cfg.Sample, "learn the palette on at most this many pixels, 0 for all")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "log every iteration")
	flags.StringVarP(&configPath, "config", "c", "", "YAML config file")
	return cmd
}

func run(cmd *cobra.Command, input string, cfg config) error {
	opts, err := cfg.options()
	if err != nil {
		return err
	}
	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	opts = append(opts, kquant.WithLogger(logger))

	src, inSize, err := decode(input)
	if err != nil {
		return err
	}
	res, err := kquant.Quantize(cmd.Context(), src, opts...)
	if err != nil {
		return err
	}
	outSize, err := encode(cfg.Output, res.Image)
	if err != nil {
		return err
	}

	packed := res.Packed()
	if cfg.Packed != "" {
		if err := os.WriteFile(cfg.Packed, packed, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", cfg.Packed, err)
		}
	}

	report(cmd.OutOrStdout(), input, cfg.Output, inSize, outSize, int64(len(packed)), res)
	return nil
}

func decode(path string) (image.Image, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return nil, 0, err
	}
	src, _, err := image.Decode(f)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return src, info.Size(), nil
}

func encode(path string, img image.Image) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return 0, fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return 0, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func report(w io.Writer, input, output string, inSize, outSize, packed int64, res *kquant.Result) {
	fmt.Fprintf(w, "input:       %s (%s)\n", input, humanize.Bytes(uint64(inSize)))
	fmt.Fprintf(w, "output:      %s (%s, %s of input)\n", output, humanize.Bytes(uint64(outSize)), percent(outSize, inSize))
	fmt.Fprintf(w, "packed:      %s (%d bits per pixel, %s of input)\n", humanize.Bytes(uint64(packed)), res.BitsPerPixel(), percent(packed, inSize))
	fmt.Fprintf(w, "k-means:     %s, %d iterations, %s\n", res.Elapsed, res.Iterations, res.Termination)
	fmt.Fprintf(w, "palette:     %s\n", strings.Join(res.Hex(), " "))
}

func percent(part, whole int64) string {
	if whole == 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", float64(part)/float64(whole)*100)
}
