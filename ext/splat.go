package ext

import (
	"fmt"

	"github.com/zhtao/turboply"
)

// Spherical-harmonic coefficient widths of the standard 3DGS layout.
const (
	SHDCDim   = 3
	SHRestDim = 45
)

// Splat holds the per-point attribute columns of a Gaussian-splat cloud,
// all flat float32: Positions x y z, Scales scale_0..2, Rotations
// rot_0..3, SHDC f_dc_0..2, SHRest f_rest_0..44.
type Splat struct {
	Positions []float32
	Scales    []float32
	Rotations []float32
	Opacities []float32
	SHDC      []float32
	SHRest    []float32
}

// Count reports the number of splat rows.
func (s *Splat) Count() int { return len(s.Positions) / 3 }

func seqNames(prefix string, n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("%s%d", prefix, i)
	}
	return names
}

func splatSpecs(s *Splat, elems []turboply.Element, writing bool) []turboply.ColumnSpec {
	specs := []turboply.ColumnSpec{
		turboply.NewScalarSpec("vertex", &s.Positions, "x", "y", "z"),
		turboply.NewScalarSpec("vertex", &s.Scales, seqNames("scale_", 3)...),
		turboply.NewScalarSpec("vertex", &s.Rotations, seqNames("rot_", 4)...),
		turboply.NewScalarSpec("vertex", &s.Opacities, "opacity"),
		turboply.NewScalarSpec("vertex", &s.SHDC, seqNames("f_dc_", SHDCDim)...),
	}
	if (writing && s.SHRest != nil) || (!writing && hasProperty(elems, "vertex", "f_rest_0")) {
		specs = append(specs, turboply.NewScalarSpec("vertex", &s.SHRest, seqNames("f_rest_", SHRestDim)...))
	}
	return specs
}

// LoadSplat reads a Gaussian-splat cloud. The higher-order SH band is
// optional in the wild and binds only when the file declares it.
func LoadSplat(path string, mapped bool) (*Splat, error) {
	fr, err := turboply.OpenFileReader(path, mapped)
	if err != nil {
		return nil, err
	}
	defer fr.Close()

	if err := fr.ParseHeader(); err != nil {
		return nil, err
	}

	s := &Splat{}
	if err := turboply.BindRead(fr.Reader, splatSpecs(s, fr.Elements(), false)...); err != nil {
		return nil, err
	}
	return s, nil
}

// SaveSplat writes a Gaussian-splat cloud. The f_rest_ band is emitted
// only when SHRest is populated.
func SaveSplat(path string, s *Splat, format turboply.Format, mapped bool, reserve int) (err error) {
	fw, err := turboply.OpenFileWriter(path, format, mapped, reserve)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := fw.Close(); err == nil {
			err = cerr
		}
	}()

	return turboply.BindWrite(fw.Writer, splatSpecs(s, nil, true)...)
}
