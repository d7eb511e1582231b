//go:build !purego && !js

package main

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	sp "segprep/pkg/segprep"
)

func loadArray(path string, channels int) (sp.Array, error) {
	flags := gocv.IMReadColor
	if channels == 1 {
		flags = gocv.IMReadGrayScale
	}
	src := gocv.IMRead(path, flags)
	defer src.Close()
	if src.Empty() {
		return sp.Array{}, fmt.Errorf("could not load image: %s", path)
	}

	img, err := src.ToImage()
	if err != nil {
		return sp.Array{}, fmt.Errorf("converting %s: %w", path, err)
	}
	return sp.FromImage(img, channels)
}

func saveArray(path string, a sp.Array) error {
	var (
		mat gocv.Mat
		err error
	)
	switch img := a.ToImage().(type) {
	case *image.Gray:
		mat, err = gocv.ImageGrayToMatGray(img)
	default:
		mat, err = gocv.ImageToMatRGB(img)
	}
	if err != nil {
		return fmt.Errorf("converting %s: %w", path, err)
	}
	defer mat.Close()

	if !gocv.IMWrite(path, mat) {
		return fmt.Errorf("could not write image: %s", path)
	}
	return nil
}
