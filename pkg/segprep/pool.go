package segprep

import "fmt"

// AvgPool averages each channel over non-overlapping tile x tile blocks.
// Edge blocks are zero-padded to full size before averaging, so the output is
// ceil(H/tile) x ceil(W/tile).
func AvgPool(a Array, tile int) (Array, error) {
	if tile <= 0 {
		return Array{}, fmt.Errorf("%w: pool tile %d", ErrInvalidDimension, tile)
	}
	if err := a.validate(); err != nil {
		return Array{}, err
	}

	outH := (a.H + tile - 1) / tile
	outW := (a.W + tile - 1) / tile
	out := newFilled(outH, outW, a.C, 0)
	for y := 0; y < a.H; y++ {
		for x := 0; x < a.W; x++ {
			dst := ((y/tile)*outW + x/tile) * a.C
			src := (y*a.W + x) * a.C
			for c := 0; c < a.C; c++ {
				out.Data[dst+c] += a.Data[src+c]
			}
		}
	}
	area := float32(tile * tile)
	for i := range out.Data {
		out.Data[i] /= area
	}
	return out, nil
}
