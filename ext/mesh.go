package ext

import (
	"github.com/zhtao/turboply"
)

// Mesh holds the columnar attribute set of a scanned surface mesh. Vector
// columns are flat: Positions holds x0 y0 z0 x1 y1 z1 ..., Faces holds
// three vertex indices per triangle. Optional columns are nil when the
// file lacks them.
type Mesh struct {
	Positions []float32 // vertex x y z
	Normals   []float32 // vertex nx ny nz
	Weights   []float32
	Accuracy  []float32
	Sampling  []float32
	Types     []uint8
	Visible   [][]uint32 // per-vertex visibility index lists
	Faces     []uint32   // 3 indices per face
}

// VertexCount reports the number of vertex rows.
func (m *Mesh) VertexCount() int { return len(m.Positions) / 3 }

// FaceCount reports the number of triangle rows.
func (m *Mesh) FaceCount() int { return len(m.Faces) / 3 }

func hasProperty(elems []turboply.Element, element, property string) bool {
	for i := range elems {
		if elems[i].Name != element {
			continue
		}
		for _, p := range elems[i].Properties {
			if p.Name == property {
				return true
			}
		}
	}
	return false
}

// LoadMesh reads positions, faces and whichever optional vertex columns
// the file declares, in one traversal.
func LoadMesh(path string, mapped bool) (*Mesh, error) {
	fr, err := turboply.OpenFileReader(path, mapped)
	if err != nil {
		return nil, err
	}
	defer fr.Close()

	if err := fr.ParseHeader(); err != nil {
		return nil, err
	}
	elems := fr.Elements()

	m := &Mesh{}
	specs := []turboply.ColumnSpec{VertexSpec(&m.Positions)}

	if hasProperty(elems, "vertex", "nx") {
		specs = append(specs, NormalSpec(&m.Normals))
	}
	if hasProperty(elems, "vertex", "weight") {
		specs = append(specs, turboply.NewScalarSpec("vertex", &m.Weights, "weight"))
	}
	if hasProperty(elems, "vertex", "accuracy") {
		specs = append(specs, turboply.NewScalarSpec("vertex", &m.Accuracy, "accuracy"))
	}
	if hasProperty(elems, "vertex", "sampling") {
		specs = append(specs, turboply.NewScalarSpec("vertex", &m.Sampling, "sampling"))
	}
	if hasProperty(elems, "vertex", "type") {
		specs = append(specs, turboply.NewScalarSpec("vertex", &m.Types, "type"))
	}
	if hasProperty(elems, "vertex", "visibility") {
		specs = append(specs, turboply.NewListSpec("vertex", "visibility", turboply.UInt32, &m.Visible))
	}
	if hasProperty(elems, "face", "vertex_indices") {
		specs = append(specs, FaceSpec(&m.Faces))
	}

	if err := turboply.BindRead(fr.Reader, specs...); err != nil {
		return nil, err
	}
	return m, nil
}

// SaveMesh writes every non-nil column of m in one traversal. Vertex
// columns write in position/normal/weight/accuracy/sampling/type/
// visibility order; faces follow as their own element.
func SaveMesh(path string, m *Mesh, format turboply.Format, mapped bool, reserve int) (err error) {
	fw, err := turboply.OpenFileWriter(path, format, mapped, reserve)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := fw.Close(); err == nil {
			err = cerr
		}
	}()

	specs := []turboply.ColumnSpec{VertexSpec(&m.Positions)}
	if m.Normals != nil {
		specs = append(specs, NormalSpec(&m.Normals))
	}
	if m.Weights != nil {
		specs = append(specs, turboply.NewScalarSpec("vertex", &m.Weights, "weight"))
	}
	if m.Accuracy != nil {
		specs = append(specs, turboply.NewScalarSpec("vertex", &m.Accuracy, "accuracy"))
	}
	if m.Sampling != nil {
		specs = append(specs, turboply.NewScalarSpec("vertex", &m.Sampling, "sampling"))
	}
	if m.Types != nil {
		specs = append(specs, turboply.NewScalarSpec("vertex", &m.Types, "type"))
	}
	if m.Visible != nil {
		specs = append(specs, turboply.NewListSpec("vertex", "visibility", turboply.UInt32, &m.Visible))
	}
	if m.Faces != nil {
		specs = append(specs, FaceSpec(&m.Faces))
	}

	return turboply.BindWrite(fw.Writer, specs...)
}
