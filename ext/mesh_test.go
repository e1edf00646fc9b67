package ext

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhtao/turboply"
)

func sampleMesh() *Mesh {
	return &Mesh{
		Positions: []float32{0, 0, 0, 1, 2, 3, -1.5, 2.25, 0.1},
		Normals:   []float32{0, 0, 1, 0, 1, 0, 1, 0, 0},
		Weights:   []float32{0.5, 0.25, 0.125},
		Accuracy:  []float32{0.01, 0.02, 0.03},
		Sampling:  []float32{1, 2, 4},
		Types:     []uint8{0, 1, 2},
		Visible:   [][]uint32{{0}, {0, 1}, {0, 1, 2}},
		Faces:     []uint32{0, 1, 2},
	}
}

func TestMeshRoundTrip(t *testing.T) {
	for _, format := range []turboply.Format{turboply.Binary, turboply.ASCII} {
		t.Run(format.String(), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "mesh.ply")
			want := sampleMesh()

			require.NoError(t, SaveMesh(path, want, format, true, 1<<16))

			got, err := LoadMesh(path, true)
			require.NoError(t, err)
			assert.Equal(t, want, got)
			assert.Equal(t, 3, got.VertexCount())
			assert.Equal(t, 1, got.FaceCount())
		})
	}
}

func TestMeshOptionalColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mesh.ply")
	want := &Mesh{Positions: []float32{1, 2, 3}}

	require.NoError(t, SaveMesh(path, want, turboply.Binary, false, 0))

	got, err := LoadMesh(path, false)
	require.NoError(t, err)
	assert.Equal(t, want.Positions, got.Positions)
	assert.Nil(t, got.Normals)
	assert.Nil(t, got.Faces)
	assert.Nil(t, got.Visible)
}

func TestVec3View(t *testing.T) {
	path := filepath.Join(t.TempDir(), "v.ply")

	rows := [][3]float32{{0, 0, 0}, {1, 2, 3}}
	fw, err := turboply.OpenFileWriter(path, turboply.Binary, false, 0)
	require.NoError(t, err)
	require.NoError(t, turboply.BindWrite(fw.Writer, Vec3View("vertex", rows, "x", "y", "z")))
	require.NoError(t, fw.Close())

	// read back into a same-shaped view without copying
	got := make([][3]float32, 2)
	fr, err := turboply.OpenFileReader(path, false)
	require.NoError(t, err)
	defer fr.Close()
	require.NoError(t, turboply.BindRead(fr.Reader, Vec3View("vertex", got, "x", "y", "z")))
	assert.Equal(t, rows, got)
}
