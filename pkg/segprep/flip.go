package segprep

import "fmt"

// FlipHorizontal returns a left-right mirrored copy of a.
func FlipHorizontal(a Array) (Array, error) {
	if err := a.validate(); err != nil {
		return Array{}, err
	}
	planes := a.planes()
	for c, p := range planes {
		flipped, err := flipPlane(p, a.H, a.W)
		if err != nil {
			return Array{}, fmt.Errorf("flip channel %d: %w", c, err)
		}
		planes[c] = flipped
	}
	return fromPlanes(planes, a.H, a.W), nil
}

// RandomHorizontalFlip mirrors the image and its aux array together with
// probability 1/2, drawing one coin per call.
type RandomHorizontalFlip struct{}

func (RandomHorizontalFlip) Apply(rng Rand, s Sample) (Sample, error) {
	if err := s.validate(); err != nil {
		return Sample{}, err
	}
	if rng.IntN(2) == 0 {
		return s, nil
	}

	img, err := FlipHorizontal(s.Image)
	if err != nil {
		return Sample{}, fmt.Errorf("image: %w", err)
	}
	out := Sample{Image: img}
	if s.Aux != nil {
		aux, err := FlipHorizontal(*s.Aux)
		if err != nil {
			return Sample{}, fmt.Errorf("aux: %w", err)
		}
		out.Aux = &aux
	}
	return out, nil
}
