package segprep

import (
	"fmt"
	"math"
	"sort"
)

// DefaultCRFIterations is the mean-field iteration count used for refinement.
const DefaultCRFIterations = 10

// Refiner is a dense-CRF solver. img is an H x W x 3 RGB array and probs holds
// one H x W x 1 probability map per label; the result has the same layout.
type Refiner interface {
	Refine(img Array, probs []Array, iterations int) ([]Array, error)
}

// CRFWithAlpha prepends a background score (1 - max_k cams[k])^alpha to the
// class activation maps, refines all of them, and returns the refined maps keyed
// 0 for background and key+1 for each input key. Keys are processed in
// ascending order.
func CRFWithAlpha(r Refiner, img Array, cams map[int]Array, alpha float64, iterations int) (map[int]Array, error) {
	if len(cams) == 0 {
		return nil, fmt.Errorf("segprep: no class maps to refine")
	}
	if iterations <= 0 {
		return nil, fmt.Errorf("%w: %d CRF iterations", ErrInvalidDimension, iterations)
	}
	if err := img.validate(); err != nil {
		return nil, fmt.Errorf("image: %w", err)
	}

	keys := make([]int, 0, len(cams))
	for k := range cams {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	bg := newFilled(img.H, img.W, 1, 0)
	for i := range bg.Data {
		bg.Data[i] = float32(math.Inf(-1))
	}
	probs := make([]Array, 0, len(keys)+1)
	probs = append(probs, bg)
	for _, k := range keys {
		cam := cams[k]
		if err := cam.validate(); err != nil {
			return nil, fmt.Errorf("class %d: %w", k, err)
		}
		if cam.H != img.H || cam.W != img.W || cam.C != 1 {
			return nil, fmt.Errorf("%w: class %d map is %s, image is %dx%d",
				ErrShapeMismatch, k, cam, img.H, img.W)
		}
		for i, v := range cam.Data {
			bg.Data[i] = max(bg.Data[i], v)
		}
		probs = append(probs, cam)
	}
	for i, v := range bg.Data {
		bg.Data[i] = float32(math.Pow(float64(1-v), alpha))
	}

	refined, err := r.Refine(img, probs, iterations)
	if err != nil {
		return nil, fmt.Errorf("refine: %w", err)
	}
	if len(refined) != len(probs) {
		return nil, fmt.Errorf("%w: refiner returned %d maps for %d labels", ErrShapeMismatch, len(refined), len(probs))
	}

	out := make(map[int]Array, len(refined))
	out[0] = refined[0]
	for i, k := range keys {
		out[k+1] = refined[i+1]
	}
	return out, nil
}
