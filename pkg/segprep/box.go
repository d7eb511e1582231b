package segprep

import (
	"fmt"
	"math"
)

// Rand is the random source consumed by stochastic transforms.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// Box maps the canvas region [ContTop:ContBottom, ContLeft:ContRight] to the
// equally shaped source region [SrcTop:SrcBottom, SrcLeft:SrcRight].
type Box struct {
	ContTop, ContBottom, ContLeft, ContRight int
	SrcTop, SrcBottom, SrcLeft, SrcRight     int
}

// Valid reports whether both regions have the same non-negative shape.
func (b Box) Valid() bool {
	h, w := b.ContBottom-b.ContTop, b.ContRight-b.ContLeft
	return h >= 0 && w >= 0 && h == b.SrcBottom-b.SrcTop && w == b.SrcRight-b.SrcLeft
}

func (b Box) String() string {
	return fmt.Sprintf("{Cont=[%d:%d, %d:%d], Src=[%d:%d, %d:%d]}",
		b.ContTop, b.ContBottom, b.ContLeft, b.ContRight, b.SrcTop, b.SrcBottom, b.SrcLeft, b.SrcRight)
}

// RandomCropBox places an h x w source against a size x size canvas. Axes where
// the source is larger are cropped at a uniformly random offset; the others are
// padded with the source at a uniformly random position on the canvas.
func RandomCropBox(rng Rand, h, w, size int) Box {
	contLeft, srcLeft := axisPlacement(w-size, func(n int) int { return rng.IntN(n + 1) })
	contTop, srcTop := axisPlacement(h-size, func(n int) int { return rng.IntN(n + 1) })
	return newBox(contTop, contLeft, srcTop, srcLeft, min(size, h), min(size, w))
}

// CenterCropBox is the deterministic form of RandomCropBox: both the crop and
// the placement are centred, rounding half offsets to even.
func CenterCropBox(h, w, size int) Box {
	half := func(n int) int { return int(math.RoundToEven(float64(n) / 2)) }
	contLeft, srcLeft := axisPlacement(w-size, half)
	contTop, srcTop := axisPlacement(h-size, half)
	return newBox(contTop, contLeft, srcTop, srcLeft, min(size, h), min(size, w))
}

// axisPlacement returns (canvas offset, source offset) for one axis given
// space = source extent - canvas extent. pick chooses an offset in [0, n].
func axisPlacement(space int, pick func(n int) int) (cont, src int) {
	if space > 0 {
		return 0, pick(space)
	}
	return pick(-space), 0
}

func newBox(contTop, contLeft, srcTop, srcLeft, ch, cw int) Box {
	return Box{
		ContTop: contTop, ContBottom: contTop + ch,
		ContLeft: contLeft, ContRight: contLeft + cw,
		SrcTop: srcTop, SrcBottom: srcTop + ch,
		SrcLeft: srcLeft, SrcRight: srcLeft + cw,
	}
}
