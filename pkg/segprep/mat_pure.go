//go:build purego || js

package segprep

import (
	"math"

	"golang.org/x/image/draw"
)

type tap struct {
	index  int
	weight float32
}

// kernelTaps returns, for each destination index, the normalized source taps of
// kernel k. When downscaling the kernel is stretched by the scale factor.
func kernelTaps(dstSize, srcSize int, k *draw.Kernel) [][]tap {
	scale := float64(srcSize) / float64(dstSize)
	stretch := math.Max(scale, 1)
	radius := math.Ceil(stretch * k.Support)

	out := make([][]tap, dstSize)
	for d := range out {
		center := (float64(d)+0.5)*scale - 0.5
		begin := max(int(math.Ceil(center-radius)), 0)
		end := min(int(math.Floor(center+radius)), srcSize-1)

		taps := make([]tap, 0, end-begin+1)
		var sum float64
		for s := begin; s <= end; s++ {
			t := math.Abs(float64(s)-center) / stretch
			if t >= k.Support {
				continue
			}
			if w := k.At(t); w != 0 {
				taps = append(taps, tap{index: s, weight: float32(w)})
				sum += w
			}
		}
		if sum == 0 {
			nearest := min(max(int(math.Round(center)), 0), srcSize-1)
			out[d] = []tap{{index: nearest, weight: 1}}
			continue
		}
		for i := range taps {
			taps[i].weight = float32(float64(taps[i].weight) / sum)
		}
		out[d] = taps
	}
	return out
}

func resizePlane(src []float32, rows, cols, dstRows, dstCols int, interp Interpolation) ([]float32, error) {
	if interp == Nearest {
		return nearestPlane(src, rows, cols, dstRows, dstCols), nil
	}

	// Horizontal pass: rows x dstCols
	xTaps := kernelTaps(dstCols, cols, draw.CatmullRom)
	temp := make([]float32, rows*dstCols)
	for r := 0; r < rows; r++ {
		srcRow := src[r*cols : (r+1)*cols]
		dstRow := temp[r*dstCols : (r+1)*dstCols]
		for c, taps := range xTaps {
			var sum float32
			for _, t := range taps {
				sum += srcRow[t.index] * t.weight
			}
			dstRow[c] = sum
		}
	}

	// Vertical pass: dstRows x dstCols
	yTaps := kernelTaps(dstRows, rows, draw.CatmullRom)
	out := make([]float32, dstRows*dstCols)
	for r, taps := range yTaps {
		dstRow := out[r*dstCols : (r+1)*dstCols]
		for _, t := range taps {
			srcRow := temp[t.index*dstCols : (t.index+1)*dstCols]
			for c := range dstRow {
				dstRow[c] += srcRow[c] * t.weight
			}
		}
	}
	return out, nil
}

func nearestPlane(src []float32, rows, cols, dstRows, dstCols int) []float32 {
	colIdx := make([]int, dstCols)
	for c := range colIdx {
		colIdx[c] = min(c*cols/dstCols, cols-1)
	}
	out := make([]float32, dstRows*dstCols)
	for r := 0; r < dstRows; r++ {
		srcOff := min(r*rows/dstRows, rows-1) * cols
		dstOff := r * dstCols
		for c, sc := range colIdx {
			out[dstOff+c] = src[srcOff+sc]
		}
	}
	return out
}

func flipPlane(src []float32, rows, cols int) ([]float32, error) {
	out := make([]float32, len(src))
	for r := 0; r < rows; r++ {
		off := r * cols
		for c := 0; c < cols; c++ {
			out[off+c] = src[off+cols-1-c]
		}
	}
	return out, nil
}
