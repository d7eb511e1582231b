package main

import (
	"bufio"
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	sp "segprep/pkg/segprep"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "segprep",
		Short:         "Prepare image/mask training samples and affinity index tables",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newAugmentCmd())
	root.AddCommand(newIndicesCmd())
	root.AddCommand(newPaletteCmd())
	return root
}

func newAugmentCmd() *cobra.Command {
	var (
		configPath string
		imagePath  string
		auxPath    string
		outDir     string
		seed       uint64
		preview    bool
	)

	cmd := &cobra.Command{
		Use:   "augment",
		Short: "Run an augmentation pipeline over an image and optional mask",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			cfg, err := sp.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("seed") {
				cfg.Seed = seed
			}
			pipeline, err := cfg.Build(logger)
			if err != nil {
				return fmt.Errorf("building pipeline: %w", err)
			}

			sample, err := loadSample(imagePath, auxPath)
			if err != nil {
				return err
			}
			logger.Debug("loaded", "image", sample.Image, "steps", pipeline.Len(), "seed", cfg.Seed)

			prog := newProgress(logger)
			rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
			out, err := pipeline.Apply(rng, sample)
			if err != nil {
				return fmt.Errorf("augmenting: %w", err)
			}
			prog.done(fmt.Sprintf("Augmented %s to %dx%d", filepath.Base(imagePath), out.Image.W, out.Image.H))

			return writeSample(outDir, out, preview)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "pipeline TOML file")
	cmd.Flags().StringVarP(&imagePath, "image", "i", "", "input image")
	cmd.Flags().StringVarP(&auxPath, "aux", "a", "", "co-registered mask or saliency map")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (overrides the config)")
	cmd.Flags().BoolVar(&preview, "preview", false, "also write a colourised preview of the mask")
	_ = cmd.MarkFlagRequired("config")
	_ = cmd.MarkFlagRequired("image")
	return cmd
}

func loadSample(imagePath, auxPath string) (sp.Sample, error) {
	img, err := loadArray(imagePath, 3)
	if err != nil {
		return sp.Sample{}, err
	}
	s := sp.Sample{Image: img}
	if auxPath != "" {
		aux, err := loadArray(auxPath, 1)
		if err != nil {
			return sp.Sample{}, err
		}
		s.Aux = &aux
	}
	return s, nil
}

func writeSample(dir string, s sp.Sample, preview bool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := saveArray(filepath.Join(dir, "image.png"), s.Image); err != nil {
		return err
	}
	if s.Aux == nil {
		return nil
	}
	if err := saveArray(filepath.Join(dir, "aux.png"), *s.Aux); err != nil {
		return err
	}
	if preview {
		title := fmt.Sprintf("mask %dx%d", s.Aux.W, s.Aux.H)
		if err := sp.RenderLabelOverlay(*s.Aux, title, filepath.Join(dir, "preview.jpg")); err != nil {
			return fmt.Errorf("rendering preview: %w", err)
		}
	}
	return nil
}

func newIndicesCmd() *cobra.Command {
	var (
		height, width, radius int
		outPath               string
	)

	cmd := &cobra.Command{
		Use:   "indices",
		Short: "Generate the neighbour index table for a grid shape",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			prog := newProgress(logger)
			pairs, err := sp.IndicesInRadius(height, width, radius)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Generated %d pairs for %dx%d, radius %d (%d offsets)",
				len(pairs), height, width, radius, len(sp.NeighborOffsets(radius))))

			if outPath == "" {
				return nil
			}
			return writePairs(outPath, pairs)
		},
	}

	cmd.Flags().IntVar(&height, "height", 0, "grid height")
	cmd.Flags().IntVar(&width, "width", 0, "grid width")
	cmd.Flags().IntVarP(&radius, "radius", "r", 5, "neighbourhood radius")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write pairs as \"from to\" lines")
	_ = cmd.MarkFlagRequired("height")
	_ = cmd.MarkFlagRequired("width")
	return cmd
}

func writePairs(path string, pairs []sp.IndexPair) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create pairs file: %w", err)
	}

	w := bufio.NewWriter(f)
	for _, p := range pairs {
		fmt.Fprintf(w, "%d %d\n", p.From, p.To)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write pairs: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close pairs file: %w", err)
	}
	return nil
}

func newPaletteCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "palette",
		Short: "Write the label palette as a 16x16 swatch image",
		RunE: func(cmd *cobra.Command, args []string) error {
			const cell = 16
			swatch, err := sp.NewArray(16*cell, 16*cell, 3)
			if err != nil {
				return err
			}
			palette := sp.Palette()
			for y := 0; y < swatch.H; y++ {
				for x := 0; x < swatch.W; x++ {
					idx := (y/cell)*16 + x/cell
					for c := 0; c < 3; c++ {
						swatch.Set(y, x, c, float32(palette[3*idx+c]))
					}
				}
			}
			if err := saveArray(outPath, swatch); err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Info("Wrote palette", "path", outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "palette.png", "output image")
	return cmd
}
