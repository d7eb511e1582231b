package segprep_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sp "segprep/pkg/segprep"
)

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func TestRandomCropBoxInvariants(t *testing.T) {
	rng := newRand(1)
	for h := 1; h <= 12; h++ {
		for w := 1; w <= 12; w++ {
			for _, size := range []int{1, 4, 7, 12, 15} {
				b := sp.RandomCropBox(rng, h, w, size)
				require.True(t, b.Valid(), "h=%d w=%d size=%d box=%v", h, w, size, b)
				assert.Equal(t, min(h, size), b.ContBottom-b.ContTop)
				assert.Equal(t, min(w, size), b.ContRight-b.ContLeft)
				assert.True(t, b.ContTop >= 0 && b.ContBottom <= size && b.ContLeft >= 0 && b.ContRight <= size, "canvas region %v", b)
				assert.True(t, b.SrcTop >= 0 && b.SrcBottom <= h && b.SrcLeft >= 0 && b.SrcRight <= w, "source region %v", b)
				if h > size {
					assert.Zero(t, b.ContTop)
				} else {
					assert.Zero(t, b.SrcTop)
				}
				if w > size {
					assert.Zero(t, b.ContLeft)
				} else {
					assert.Zero(t, b.SrcLeft)
				}
			}
		}
	}
}

func TestRandomCropBoxCoversAllOffsets(t *testing.T) {
	rng := newRand(2)
	seen := make(map[int]bool)
	for i := 0; i < 500; i++ {
		b := sp.RandomCropBox(rng, 10, 4, 6)
		seen[b.SrcTop] = true
	}
	// Height space is 4, so source offsets 0..4 must all appear.
	assert.Len(t, seen, 5)
}

func TestCenterCropBox(t *testing.T) {
	cases := []struct {
		name string
		h, w int
		size int
		want sp.Box
	}{
		{"Equal", 4, 4, 4, sp.Box{0, 4, 0, 4, 0, 4, 0, 4}},
		{"CropEven", 8, 8, 4, sp.Box{0, 4, 0, 4, 2, 6, 2, 6}},
		// space 3 -> 1.5 rounds to 2, space 5 -> 2.5 rounds to 2
		{"CropOddHalfToEven", 7, 9, 4, sp.Box{0, 4, 0, 4, 2, 6, 2, 6}},
		{"PadOdd", 1, 3, 4, sp.Box{2, 3, 0, 3, 0, 1, 0, 3}},
		{"Mixed", 10, 2, 5, sp.Box{0, 5, 2, 4, 2, 7, 0, 2}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := sp.CenterCropBox(tc.h, tc.w, tc.size)
			assert.Equal(t, tc.want, got)
			assert.True(t, got.Valid())
		})
	}
}

func TestBoxValid(t *testing.T) {
	assert.True(t, sp.Box{1, 3, 0, 2, 5, 7, 4, 6}.Valid())
	assert.False(t, sp.Box{0, 3, 0, 2, 0, 2, 0, 2}.Valid())
	assert.False(t, sp.Box{3, 1, 0, 0, 3, 1, 0, 0}.Valid())
}
