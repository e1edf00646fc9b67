package ext

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhtao/turboply"
)

func TestGeoRefRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "geo.ply")

	want := GeoRef{
		Label:  "site-12",
		SRID:   4326,
		BBox:   [6]float64{-1.5, -2.5, 0, 10.25, 20.5, 30},
		Offset: [3]float64{100000, 200000, 50},
		Scale:  [3]float64{0.001, 0.001, 0.01},
	}

	xyz := []float32{1, 2, 3}
	fw, err := turboply.OpenFileWriter(path, turboply.ASCII, false, 0)
	require.NoError(t, err)
	AddGeoRef(fw.Writer, want)
	require.NoError(t, turboply.BindWrite(fw.Writer,
		turboply.NewScalarSpec("vertex", &xyz, "x", "y", "z")))
	require.NoError(t, fw.Close())

	fr, err := turboply.OpenFileReader(path, false)
	require.NoError(t, err)
	defer fr.Close()
	require.NoError(t, fr.ParseHeader())

	got, ok, err := ParseGeoRef(fr.Comments())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestParseGeoRefAbsent(t *testing.T) {
	_, ok, err := ParseGeoRef([]string{"made by turboply"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestParseGeoRefMalformed(t *testing.T) {
	_, _, err := ParseGeoRef([]string{"georef site-12 not-enough-fields"})
	require.ErrorIs(t, err, turboply.ErrFormat)
}

func TestTexturePaths(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tex.ply")

	want := []string{"atlas_0.png", "atlas_1.png"}
	xyz := []float32{1, 2, 3}
	fw, err := turboply.OpenFileWriter(path, turboply.Binary, false, 0)
	require.NoError(t, err)
	AddTexturePaths(fw.Writer, want)
	require.NoError(t, turboply.BindWrite(fw.Writer,
		turboply.NewScalarSpec("vertex", &xyz, "x", "y", "z")))
	require.NoError(t, fw.Close())

	fr, err := turboply.OpenFileReader(path, false)
	require.NoError(t, err)
	defer fr.Close()
	require.NoError(t, fr.ParseHeader())

	assert.Equal(t, want, TexturePaths(fr.Comments()))
	assert.Nil(t, TexturePaths([]string{"no textures here"}))
}
