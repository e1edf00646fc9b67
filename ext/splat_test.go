package ext

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhtao/turboply"
)

func sampleSplat(n int) *Splat {
	s := &Splat{}
	for i := 0; i < n; i++ {
		f := float32(i)
		s.Positions = append(s.Positions, f, f+0.5, f+0.25)
		s.Scales = append(s.Scales, 0.1*f, 0.2*f, 0.3*f)
		s.Rotations = append(s.Rotations, 1, 0, 0, f)
		s.Opacities = append(s.Opacities, 0.5+f)
		for k := 0; k < SHDCDim; k++ {
			s.SHDC = append(s.SHDC, f+float32(k))
		}
		for k := 0; k < SHRestDim; k++ {
			s.SHRest = append(s.SHRest, f*float32(k))
		}
	}
	return s
}

func TestSplatRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "splat.ply")
	want := sampleSplat(3)

	require.NoError(t, SaveSplat(path, want, turboply.Binary, true, 1<<20))

	got, err := LoadSplat(path, true)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, 3, got.Count())
}

func TestSplatWithoutHigherOrderSH(t *testing.T) {
	path := filepath.Join(t.TempDir(), "splat.ply")
	want := sampleSplat(2)
	want.SHRest = nil

	require.NoError(t, SaveSplat(path, want, turboply.ASCII, false, 0))

	got, err := LoadSplat(path, false)
	require.NoError(t, err)
	assert.Equal(t, want.Positions, got.Positions)
	assert.Equal(t, want.SHDC, got.SHDC)
	assert.Nil(t, got.SHRest)
}
