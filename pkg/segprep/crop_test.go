package segprep_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sp "segprep/pkg/segprep"
)

// indexed returns an h x w x c array whose channel k at (y, x) holds
// (y*w + x) * 10 + k.
func indexed(t *testing.T, h, w, c int) sp.Array {
	t.Helper()
	a, err := sp.NewArray(h, w, c)
	require.NoError(t, err)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			for k := 0; k < c; k++ {
				a.Set(y, x, k, float32((y*w+x)*10+k))
			}
		}
	}
	return a
}

func TestRandomCropOutputShape(t *testing.T) {
	rng := newRand(3)
	for _, shape := range [][3]int{{5, 9, 3}, {12, 4, 1}, {8, 8, 2}, {1, 1, 4}} {
		for _, size := range []int{1, 3, 8, 13} {
			img := indexed(t, shape[0], shape[1], shape[2])
			out, err := sp.RandomCrop{Size: size}.Apply(rng, sp.Sample{Image: img})
			require.NoError(t, err)
			assert.Equal(t, [3]int{size, size, shape[2]}, [3]int{out.Image.H, out.Image.W, out.Image.C})
			assert.Len(t, out.Image.Data, size*size*shape[2])
			assert.Nil(t, out.Aux)
		}
	}
}

func TestRandomCropKeepsAuxRegistered(t *testing.T) {
	for seed := uint64(0); seed < 40; seed++ {
		rng := newRand(seed)
		img := indexed(t, 7, 11, 3)
		aux := indexed(t, 7, 11, 1)
		crop := sp.RandomCrop{Size: 9, Fill: -1, AuxFill: -1}

		out, err := crop.Apply(rng, sp.Sample{Image: img, Aux: &aux})
		require.NoError(t, err)
		require.NotNil(t, out.Aux)
		assert.Equal(t, 1, out.Aux.C)
		for y := 0; y < 9; y++ {
			for x := 0; x < 9; x++ {
				require.Equal(t, out.Image.At(y, x, 0), out.Aux.At(y, x, 0), "seed %d at (%d, %d)", seed, y, x)
			}
		}
	}
}

func TestRandomCropFillValues(t *testing.T) {
	img := indexed(t, 2, 2, 1)
	aux := indexed(t, 2, 2, 1)
	out, err := sp.RandomCrop{Size: 4, Fill: -5, AuxFill: 255}.Apply(newRand(4), sp.Sample{Image: img, Aux: &aux})
	require.NoError(t, err)

	var imgFill, auxFill int
	for i := range out.Image.Data {
		if out.Image.Data[i] == -5 {
			imgFill++
		}
		if out.Aux.Data[i] == 255 {
			auxFill++
		}
	}
	assert.Equal(t, 12, imgFill)
	assert.Equal(t, 12, auxFill)
}

func TestRandomCropDoesNotMutateInput(t *testing.T) {
	img := indexed(t, 6, 6, 2)
	before := img.Clone()
	_, err := sp.RandomCrop{Size: 4}.Apply(newRand(5), sp.Sample{Image: img})
	require.NoError(t, err)
	assert.Equal(t, before, img)
}

func TestCenterCropIsDeterministic(t *testing.T) {
	img := indexed(t, 9, 6, 3)
	crop := sp.CenterCrop{Size: 7, Fill: 3}
	a, err := crop.Crop(img)
	require.NoError(t, err)
	b, err := crop.Crop(img)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	// rows: space 2 -> crop offset 1; cols: pad 1 -> 0.5 rounds to 0
	assert.Equal(t, img.At(1, 0, 2), a.At(0, 0, 2))
	assert.Equal(t, float32(3), a.At(0, 6, 0))
}

func TestCropSameSizeIsIdentity(t *testing.T) {
	img := indexed(t, 6, 6, 3)
	aux := indexed(t, 6, 6, 1)
	s := sp.Sample{Image: img, Aux: &aux}

	out, err := sp.RandomCrop{Size: 6, Fill: 9, AuxFill: 9}.Apply(newRand(6), s)
	require.NoError(t, err)
	assert.Equal(t, img, out.Image)
	assert.Equal(t, aux, *out.Aux)

	out, err = sp.CenterCrop{Size: 6}.Apply(nil, s)
	require.NoError(t, err)
	assert.Equal(t, img, out.Image)
	assert.Equal(t, aux, *out.Aux)
}

func TestCropErrors(t *testing.T) {
	img := indexed(t, 4, 4, 3)
	aux := indexed(t, 4, 5, 1)

	_, err := sp.RandomCrop{Size: 0}.Apply(newRand(7), sp.Sample{Image: img})
	assert.True(t, errors.Is(err, sp.ErrInvalidDimension), "got %v", err)

	_, err = sp.CenterCrop{Size: -2}.Crop(img)
	assert.True(t, errors.Is(err, sp.ErrInvalidDimension), "got %v", err)

	_, err = sp.RandomCrop{Size: 3}.Apply(newRand(7), sp.Sample{Image: img, Aux: &aux})
	assert.True(t, errors.Is(err, sp.ErrShapeMismatch), "got %v", err)
}

func TestCropAll(t *testing.T) {
	img := indexed(t, 5, 8, 3)
	mask := indexed(t, 5, 8, 1)
	sal := indexed(t, 5, 8, 2)

	out, err := sp.CropAll(newRand(8), 6, []sp.Array{img, mask, sal}, []float32{0, 255, -1})
	require.NoError(t, err)
	require.Len(t, out, 3)
	for i, c := range []int{3, 1, 2} {
		assert.Equal(t, [3]int{6, 6, c}, [3]int{out[i].H, out[i].W, out[i].C})
	}
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			if out[1].At(y, x, 0) == 255 {
				assert.Equal(t, float32(0), out[0].At(y, x, 0))
				assert.Equal(t, float32(-1), out[2].At(y, x, 0))
				continue
			}
			assert.Equal(t, out[1].At(y, x, 0), out[0].At(y, x, 0))
			assert.Equal(t, out[1].At(y, x, 0), out[2].At(y, x, 0))
		}
	}

	_, err = sp.CropAll(newRand(8), 6, []sp.Array{img, indexed(t, 5, 7, 1)}, []float32{0, 0})
	assert.True(t, errors.Is(err, sp.ErrShapeMismatch), "got %v", err)

	_, err = sp.CropAll(newRand(8), 6, []sp.Array{img}, []float32{0, 0})
	assert.Error(t, err)
}
