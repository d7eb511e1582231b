//go:build purego || js

package main

import (
	"fmt"

	"github.com/disintegration/imaging"

	sp "segprep/pkg/segprep"
)

func loadArray(path string, channels int) (sp.Array, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return sp.Array{}, fmt.Errorf("opening image: %w", err)
	}
	return sp.FromImage(img, channels)
}

func saveArray(path string, a sp.Array) error {
	if err := imaging.Save(a.ToImage(), path); err != nil {
		return fmt.Errorf("saving image: %w", err)
	}
	return nil
}
