package segprep

import (
	"fmt"
	"math"
)

// Interpolation selects the resampling kernel.
type Interpolation int

const (
	// Nearest copies the closest source sample; it never blends label values.
	Nearest Interpolation = iota
	// Cubic uses a smooth cubic kernel.
	Cubic
)

func (i Interpolation) String() string {
	switch i {
	case Nearest:
		return "nearest"
	case Cubic:
		return "cubic"
	default:
		return "unknown"
	}
}

// ParseInterpolation maps "nearest" or "cubic" to an Interpolation.
func ParseInterpolation(s string) (Interpolation, error) {
	switch s {
	case "nearest":
		return Nearest, nil
	case "cubic", "":
		return Cubic, nil
	default:
		return 0, fmt.Errorf("segprep: unknown interpolation %q", s)
	}
}

// LongSideShape scales (h, w) so the longer side equals target, keeping the
// aspect ratio. Ties go to the width. The scaled side is rounded half to even
// and never drops below 1.
func LongSideShape(h, w, target int) (int, int) {
	if w < h {
		return target, max(roundHalfEven(float64(w)*float64(target)/float64(h)), 1)
	}
	return max(roundHalfEven(float64(h)*float64(target)/float64(w)), 1), target
}

func roundHalfEven(v float64) int { return int(math.RoundToEven(v)) }

// ResizeTo resamples every channel of a to h x w.
func ResizeTo(a Array, h, w int, interp Interpolation) (Array, error) {
	if h <= 0 || w <= 0 {
		return Array{}, fmt.Errorf("%w: resize target %dx%d", ErrInvalidDimension, h, w)
	}
	if err := a.validate(); err != nil {
		return Array{}, err
	}
	if h == a.H && w == a.W {
		return a.Clone(), nil
	}

	planes := a.planes()
	for c, p := range planes {
		resized, err := resizePlane(p, a.H, a.W, h, w, interp)
		if err != nil {
			return Array{}, fmt.Errorf("resize channel %d: %w", c, err)
		}
		planes[c] = resized
	}
	return fromPlanes(planes, h, w), nil
}

// RandomResizeLong resizes a sample so its longer side is a uniformly random
// length in [MinLong, MaxLong]. The image uses the cubic kernel and the aux
// array uses AuxInterp.
type RandomResizeLong struct {
	MinLong   int
	MaxLong   int
	AuxInterp Interpolation
}

func (t RandomResizeLong) Apply(rng Rand, s Sample) (Sample, error) {
	if t.MinLong <= 0 || t.MinLong > t.MaxLong {
		return Sample{}, fmt.Errorf("%w: long side range [%d, %d]", ErrInvalidDimension, t.MinLong, t.MaxLong)
	}
	if err := s.validate(); err != nil {
		return Sample{}, err
	}

	target := t.MinLong + rng.IntN(t.MaxLong-t.MinLong+1)
	h, w := LongSideShape(s.Image.H, s.Image.W, target)
	return resizeSample(s, h, w, Cubic, t.AuxInterp)
}

// RescaleNearest scales arrays by a fixed factor with nearest-neighbour
// sampling. Output extents are round(extent * Scale), at least 1.
type RescaleNearest struct {
	Scale float64
}

// Rescale applies the factor to a single array.
func (t RescaleNearest) Rescale(a Array) (Array, error) {
	if !(t.Scale > 0) {
		return Array{}, fmt.Errorf("%w: scale %g", ErrInvalidDimension, t.Scale)
	}
	h, w := t.shape(a.H, a.W)
	return ResizeTo(a, h, w, Nearest)
}

func (t RescaleNearest) Apply(_ Rand, s Sample) (Sample, error) {
	if !(t.Scale > 0) {
		return Sample{}, fmt.Errorf("%w: scale %g", ErrInvalidDimension, t.Scale)
	}
	if err := s.validate(); err != nil {
		return Sample{}, err
	}
	h, w := t.shape(s.Image.H, s.Image.W)
	return resizeSample(s, h, w, Nearest, Nearest)
}

func (t RescaleNearest) shape(h, w int) (int, int) {
	return max(roundHalfEven(float64(h)*t.Scale), 1), max(roundHalfEven(float64(w)*t.Scale), 1)
}

func resizeSample(s Sample, h, w int, interp, auxInterp Interpolation) (Sample, error) {
	img, err := ResizeTo(s.Image, h, w, interp)
	if err != nil {
		return Sample{}, fmt.Errorf("image: %w", err)
	}
	out := Sample{Image: img}
	if s.Aux != nil {
		aux, err := ResizeTo(*s.Aux, h, w, auxInterp)
		if err != nil {
			return Sample{}, fmt.Errorf("aux: %w", err)
		}
		out.Aux = &aux
	}
	return out, nil
}
