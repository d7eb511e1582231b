// Package segprep prepares paired image and mask arrays for dense-prediction
// training: crop/pad, resize and flip transforms that keep an auxiliary array
// co-registered with its image, plus the radius-bounded neighbour index tables
// used to build pixel affinity graphs.
package segprep

import (
	"fmt"
	"image"
	"image/color"
	"math"
)

// Array is a row-major H x W x C grid of float32 samples.
// A 2-D array has C == 1.
type Array struct {
	H, W, C int
	Data    []float32
}

// NewArray allocates a zeroed array.
func NewArray(h, w, c int) (Array, error) {
	if h <= 0 || w <= 0 || c <= 0 {
		return Array{}, fmt.Errorf("%w: array shape (%d, %d, %d)", ErrInvalidDimension, h, w, c)
	}
	return Array{H: h, W: w, C: c, Data: make([]float32, h*w*c)}, nil
}

// newFilled allocates an array with every sample set to fill. Callers validate the shape.
func newFilled(h, w, c int, fill float32) Array {
	a := Array{H: h, W: w, C: c, Data: make([]float32, h*w*c)}
	if fill != 0 {
		for i := range a.Data {
			a.Data[i] = fill
		}
	}
	return a
}

// Empty reports whether a has no elements.
func (a Array) Empty() bool { return a.H <= 0 || a.W <= 0 || a.C <= 0 }

// At returns the value at row y, column x, channel c.
func (a Array) At(y, x, c int) float32 { return a.Data[(y*a.W+x)*a.C+c] }

// Set stores v at row y, column x, channel c.
func (a Array) Set(y, x, c int, v float32) { a.Data[(y*a.W+x)*a.C+c] = v }

// Clone returns a deep copy.
func (a Array) Clone() Array {
	data := make([]float32, len(a.Data))
	copy(data, a.Data)
	return Array{H: a.H, W: a.W, C: a.C, Data: data}
}

func (a Array) String() string {
	return fmt.Sprintf("Array(%d, %d, %d)", a.H, a.W, a.C)
}

func (a Array) validate() error {
	if a.Empty() {
		return fmt.Errorf("%w: array shape (%d, %d, %d)", ErrInvalidDimension, a.H, a.W, a.C)
	}
	if len(a.Data) != a.H*a.W*a.C {
		return fmt.Errorf("%w: %d samples for shape (%d, %d, %d)", ErrShapeMismatch, len(a.Data), a.H, a.W, a.C)
	}
	return nil
}

// CHW returns the samples in planar (channel-major) order.
func (a Array) CHW() []float32 {
	out := make([]float32, len(a.Data))
	plane := a.H * a.W
	for i := 0; i < plane; i++ {
		for c := 0; c < a.C; c++ {
			out[c*plane+i] = a.Data[i*a.C+c]
		}
	}
	return out
}

// planes splits the array into one contiguous H x W slice per channel.
func (a Array) planes() [][]float32 {
	n := a.H * a.W
	out := make([][]float32, a.C)
	for c := range out {
		p := make([]float32, n)
		for i := 0; i < n; i++ {
			p[i] = a.Data[i*a.C+c]
		}
		out[c] = p
	}
	return out
}

// fromPlanes interleaves per-channel planes back into an HWC array.
func fromPlanes(planes [][]float32, h, w int) Array {
	c := len(planes)
	a := Array{H: h, W: w, C: c, Data: make([]float32, h*w*c)}
	for ch, p := range planes {
		for i := 0; i < h*w; i++ {
			a.Data[i*c+ch] = p[i]
		}
	}
	return a
}

// Sample is an image with an optional co-registered auxiliary array
// (mask or saliency map). Aux shares the image's H and W; its C may differ.
type Sample struct {
	Image Array
	Aux   *Array
}

func (s Sample) validate() error {
	if err := s.Image.validate(); err != nil {
		return fmt.Errorf("image: %w", err)
	}
	if s.Aux == nil {
		return nil
	}
	if err := s.Aux.validate(); err != nil {
		return fmt.Errorf("aux: %w", err)
	}
	if s.Aux.H != s.Image.H || s.Aux.W != s.Image.W {
		return fmt.Errorf("%w: image %dx%d, aux %dx%d", ErrShapeMismatch, s.Image.H, s.Image.W, s.Aux.H, s.Aux.W)
	}
	return nil
}

// FromImage converts a decoded image to an array with values in [0, 255].
// channels selects luminance (1) or RGB (3).
func FromImage(img image.Image, channels int) (Array, error) {
	if channels != 1 && channels != 3 {
		return Array{}, fmt.Errorf("%w: %d channels, want 1 or 3", ErrInvalidDimension, channels)
	}
	bounds := img.Bounds()
	a, err := NewArray(bounds.Dy(), bounds.Dx(), channels)
	if err != nil {
		return Array{}, err
	}
	for y := 0; y < a.H; y++ {
		for x := 0; x < a.W; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			off := (y*a.W + x) * channels
			if channels == 1 {
				// Same luminance weights as image/color.GrayModel
				a.Data[off] = float32((19595*r+38470*g+7471*b+1<<15)>>24)
				continue
			}
			a.Data[off] = float32(r >> 8)
			a.Data[off+1] = float32(g >> 8)
			a.Data[off+2] = float32(b >> 8)
		}
	}
	return a, nil
}

// ToImage converts channel 0 (gray) or channels 0..2 (RGB) to an 8-bit image.
func (a Array) ToImage() image.Image {
	rect := image.Rect(0, 0, a.W, a.H)
	if a.C < 3 {
		img := image.NewGray(rect)
		for y := 0; y < a.H; y++ {
			for x := 0; x < a.W; x++ {
				img.SetGray(x, y, color.Gray{Y: clampByte(a.At(y, x, 0))})
			}
		}
		return img
	}
	img := image.NewRGBA(rect)
	for y := 0; y < a.H; y++ {
		for x := 0; x < a.W; x++ {
			img.SetRGBA(x, y, color.RGBA{
				R: clampByte(a.At(y, x, 0)),
				G: clampByte(a.At(y, x, 1)),
				B: clampByte(a.At(y, x, 2)),
				A: 255,
			})
		}
	}
	return img
}

func clampByte(v float32) uint8 {
	r := math.Round(float64(v))
	if r < 0 {
		return 0
	}
	if r > 255 {
		return 255
	}
	return uint8(r)
}
