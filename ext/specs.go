package ext

import (
	"unsafe"

	"github.com/zhtao/turboply"
)

// Typed spec constructors for the layouts that dominate mesh and
// point-cloud files. Flat storage holds one row after another:
// x0 y0 z0 x1 y1 z1 ...

// VertexSpec binds flat xyz float32 positions on element "vertex".
func VertexSpec(data *[]float32) turboply.ColumnSpec {
	return turboply.NewScalarSpec("vertex", data, "x", "y", "z")
}

// NormalSpec binds flat nx/ny/nz float32 normals on element "vertex".
func NormalSpec(data *[]float32) turboply.ColumnSpec {
	return turboply.NewScalarSpec("vertex", data, "nx", "ny", "nz")
}

// ColorSpec binds flat red/green/blue uint8 colors on element "vertex".
func ColorSpec(data *[]uint8) turboply.ColumnSpec {
	return turboply.NewScalarSpec("vertex", data, "red", "green", "blue")
}

// FaceSpec binds triangular faces: fixed 3-index uint32 rows on element
// "face", property "vertex_indices", count prefix uchar.
func FaceSpec(data *[]uint32) turboply.ColumnSpec {
	return turboply.NewFixedListSpec("face", "vertex_indices", turboply.UInt8, 3, data)
}

// Vec3View reinterprets [3]T rows as a flat fixed-capacity view, binding
// vector storage without copying. The view cannot grow, so on the read
// side the slice length must already match the element's row count.
func Vec3View[T turboply.Numeric](element string, rows [][3]T, props ...string) turboply.ColumnSpec {
	var flat []T
	if len(rows) > 0 {
		flat = unsafe.Slice(&rows[0][0], len(rows)*3)
	}
	return turboply.NewScalarView(element, flat, props...)
}

// Vec4View is Vec3View for [4]T rows.
func Vec4View[T turboply.Numeric](element string, rows [][4]T, props ...string) turboply.ColumnSpec {
	var flat []T
	if len(rows) > 0 {
		flat = unsafe.Slice(&rows[0][0], len(rows)*4)
	}
	return turboply.NewScalarView(element, flat, props...)
}
