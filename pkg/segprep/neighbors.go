package segprep

import "fmt"

// Offset is a (row, column) displacement on the pixel grid.
type Offset struct {
	DY, DX int
}

// IndexPair is an undirected edge between two row-major flat pixel indices.
type IndexPair struct {
	From, To int
}

// NeighborOffsets lists every offset strictly inside radius that lies in the
// half-plane (DY == 0, DX > 0) or DY > 0. Each unordered pixel pair is therefore
// reachable by exactly one offset. Radius 1 yields no offsets.
func NeighborOffsets(radius int) []Offset {
	var offsets []Offset
	for x := 1; x < radius; x++ {
		offsets = append(offsets, Offset{DY: 0, DX: x})
	}
	r2 := radius * radius
	for y := 1; y < radius; y++ {
		for x := -radius + 1; x < radius; x++ {
			if x*x+y*y < r2 {
				offsets = append(offsets, Offset{DY: y, DX: x})
			}
		}
	}
	return offsets
}

// IndicesInRadius pairs every interior pixel of a height x width grid with each
// pixel at an offset from NeighborOffsets(radius). The interior drops radius-1
// rows at the bottom and radius-1 columns on each side, so every target is in
// bounds. Pairs are grouped by offset, row-major within an offset.
func IndicesInRadius(height, width, radius int) ([]IndexPair, error) {
	if height <= 0 || width <= 0 || radius <= 0 {
		return nil, fmt.Errorf("%w: grid %dx%d, radius %d", ErrInvalidDimension, height, width, radius)
	}

	offsets := NeighborOffsets(radius)
	margin := radius - 1
	innerH := height - margin
	innerW := width - 2*margin
	if len(offsets) == 0 || innerH <= 0 || innerW <= 0 {
		return []IndexPair{}, nil
	}

	from := make([]int, 0, innerH*innerW)
	for r := 0; r < innerH; r++ {
		for c := margin; c < margin+innerW; c++ {
			from = append(from, r*width+c)
		}
	}

	pairs := make([]IndexPair, 0, len(offsets)*len(from))
	for _, o := range offsets {
		// Shifting a flat index by (DY, DX) stays on the intended row because
		// the interior keeps |DX| <= margin columns clear on both sides.
		shift := o.DY*width + o.DX
		for _, f := range from {
			pairs = append(pairs, IndexPair{From: f, To: f + shift})
		}
	}
	return pairs, nil
}
