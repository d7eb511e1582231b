package segprep

import "fmt"

// Apply copies the box's source region of src onto a fresh size x size canvas
// with src's channel depth, pre-filled with fill.
func (b Box) Apply(src Array, size int, fill float32) Array {
	dst := newFilled(size, size, src.C, fill)
	rowLen := (b.SrcRight - b.SrcLeft) * src.C
	for r := 0; r < b.SrcBottom-b.SrcTop; r++ {
		srcOff := ((b.SrcTop+r)*src.W + b.SrcLeft) * src.C
		dstOff := ((b.ContTop+r)*size + b.ContLeft) * src.C
		copy(dst.Data[dstOff:dstOff+rowLen], src.Data[srcOff:srcOff+rowLen])
	}
	return dst
}

// CropAll computes one random box from arrays[0] and applies it to every
// array, each onto a canvas filled with its own fill value.
func CropAll(rng Rand, size int, arrays []Array, fills []float32) ([]Array, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: crop size %d", ErrInvalidDimension, size)
	}
	if len(arrays) == 0 {
		return nil, nil
	}
	if len(fills) != len(arrays) {
		return nil, fmt.Errorf("segprep: %d fill values for %d arrays", len(fills), len(arrays))
	}
	for i, a := range arrays {
		if err := a.validate(); err != nil {
			return nil, fmt.Errorf("array %d: %w", i, err)
		}
		if a.H != arrays[0].H || a.W != arrays[0].W {
			return nil, fmt.Errorf("%w: array %d is %dx%d, array 0 is %dx%d",
				ErrShapeMismatch, i, a.H, a.W, arrays[0].H, arrays[0].W)
		}
	}

	box := RandomCropBox(rng, arrays[0].H, arrays[0].W, size)
	out := make([]Array, len(arrays))
	for i, a := range arrays {
		out[i] = box.Apply(a, size, fills[i])
	}
	return out, nil
}

// RandomCrop crops or pads a sample to Size x Size at a random position.
// The image canvas is filled with Fill and the aux canvas with AuxFill.
type RandomCrop struct {
	Size    int
	Fill    float32
	AuxFill float32
}

func (t RandomCrop) Apply(rng Rand, s Sample) (Sample, error) {
	if err := checkCrop(t.Size, s); err != nil {
		return Sample{}, err
	}
	box := RandomCropBox(rng, s.Image.H, s.Image.W, t.Size)
	return applyBox(box, t.Size, s, t.Fill, t.AuxFill), nil
}

// CenterCrop crops or pads to Size x Size around the centre. It consumes no randomness.
type CenterCrop struct {
	Size int
	Fill float32
}

// Crop centre-crops a single array.
func (t CenterCrop) Crop(a Array) (Array, error) {
	out, err := t.Apply(nil, Sample{Image: a})
	if err != nil {
		return Array{}, err
	}
	return out.Image, nil
}

func (t CenterCrop) Apply(_ Rand, s Sample) (Sample, error) {
	if err := checkCrop(t.Size, s); err != nil {
		return Sample{}, err
	}
	box := CenterCropBox(s.Image.H, s.Image.W, t.Size)
	return applyBox(box, t.Size, s, t.Fill, t.Fill), nil
}

func checkCrop(size int, s Sample) error {
	if size <= 0 {
		return fmt.Errorf("%w: crop size %d", ErrInvalidDimension, size)
	}
	return s.validate()
}

func applyBox(box Box, size int, s Sample, fill, auxFill float32) Sample {
	out := Sample{Image: box.Apply(s.Image, size, fill)}
	if s.Aux != nil {
		aux := box.Apply(*s.Aux, size, auxFill)
		out.Aux = &aux
	}
	return out
}
