package segprep_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sp "segprep/pkg/segprep"
)

func TestAvgPool(t *testing.T) {
	a, err := sp.NewArray(4, 4, 2)
	require.NoError(t, err)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			a.Set(y, x, 0, float32(y*4+x))
			a.Set(y, x, 1, 1)
		}
	}

	out, err := sp.AvgPool(a, 2)
	require.NoError(t, err)
	require.Equal(t, [3]int{2, 2, 2}, [3]int{out.H, out.W, out.C})
	assert.InDelta(t, 2.5, out.At(0, 0, 0), 1e-6)  // (0+1+4+5)/4
	assert.InDelta(t, 12.5, out.At(1, 1, 0), 1e-6) // (10+11+14+15)/4
	assert.InDelta(t, 1, out.At(1, 0, 1), 1e-6)
}

func TestAvgPoolPadsPartialTilesWithZeros(t *testing.T) {
	a, err := sp.NewArray(3, 5, 1)
	require.NoError(t, err)
	for i := range a.Data {
		a.Data[i] = 4
	}

	out, err := sp.AvgPool(a, 2)
	require.NoError(t, err)
	require.Equal(t, 2, out.H)
	require.Equal(t, 3, out.W)
	assert.InDelta(t, 4, out.At(0, 0, 0), 1e-6)
	assert.InDelta(t, 2, out.At(0, 2, 0), 1e-6) // 2 of 4 cells present
	assert.InDelta(t, 2, out.At(1, 0, 0), 1e-6)
	assert.InDelta(t, 1, out.At(1, 2, 0), 1e-6) // 1 of 4 cells present
}

func TestAvgPoolErrors(t *testing.T) {
	a := indexed(t, 2, 2, 1)
	_, err := sp.AvgPool(a, 0)
	assert.True(t, errors.Is(err, sp.ErrInvalidDimension), "got %v", err)
}
