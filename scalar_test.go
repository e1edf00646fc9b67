package turboply

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScalarKind(t *testing.T) {
	cases := []struct {
		token string
		want  ScalarKind
	}{
		{"char", Int8}, {"int8", Int8},
		{"uchar", UInt8}, {"uint8", UInt8},
		{"short", Int16}, {"int16", Int16},
		{"ushort", UInt16}, {"uint16", UInt16},
		{"int", Int32}, {"int32", Int32},
		{"uint", UInt32}, {"uint32", UInt32},
		{"float", Float32}, {"float32", Float32},
		{"double", Float64}, {"float64", Float64},
		{"unused", Unused},
	}
	for _, tc := range cases {
		k, err := ParseScalarKind(tc.token)
		require.NoError(t, err, tc.token)
		assert.Equal(t, tc.want, k, tc.token)
	}

	_, err := ParseScalarKind("int64")
	require.ErrorIs(t, err, ErrFormat)
}

func TestScalarKindSize(t *testing.T) {
	assert.Equal(t, 0, Unused.Size())
	assert.Equal(t, 1, Int8.Size())
	assert.Equal(t, 1, UInt8.Size())
	assert.Equal(t, 2, Int16.Size())
	assert.Equal(t, 2, UInt16.Size())
	assert.Equal(t, 4, Int32.Size())
	assert.Equal(t, 4, UInt32.Size())
	assert.Equal(t, 4, Float32.Size())
	assert.Equal(t, 8, Float64.Size())
}

func TestScalarKindString(t *testing.T) {
	assert.Equal(t, "uchar", UInt8.String())
	assert.Equal(t, "float", Float32.String())
	assert.Equal(t, "double", Float64.String())
}

func TestScalarCasts(t *testing.T) {
	v := ScalarFloat32(-1.5)
	assert.Equal(t, Float32, v.Kind())
	assert.Equal(t, float32(-1.5), As[float32](v))
	assert.Equal(t, float64(-1.5), As[float64](v))
	assert.Equal(t, int32(-1), As[int32](v)) // truncates toward zero

	n := ScalarInt16(-2)
	assert.Equal(t, int8(-2), As[int8](n))
	assert.Equal(t, float64(-2), n.Float64())
	// narrowing follows ordinary conversion rules, unchecked
	assert.Equal(t, uint8(0xfe), As[uint8](n))

	u := ScalarUInt32(300)
	assert.Equal(t, uint8(44), As[uint8](u)) // 300 mod 256
	assert.Equal(t, uint64(300), u.Uint64())
}

func TestScalarCastTo(t *testing.T) {
	v := ScalarFloat64(3.75)
	got := v.CastTo(UInt8)
	assert.Equal(t, UInt8, got.Kind())
	assert.Equal(t, uint64(3), got.Uint64())

	same := v.CastTo(Float64)
	assert.Equal(t, v, same)
}

func TestScalarOfAndKindOf(t *testing.T) {
	assert.Equal(t, Int8, KindOf[int8]())
	assert.Equal(t, UInt32, KindOf[uint32]())
	assert.Equal(t, Float64, KindOf[float64]())

	s := ScalarOf(uint16(7))
	assert.Equal(t, UInt16, s.Kind())
	assert.Equal(t, uint64(7), s.Uint64())

	f := ScalarOf(float32(0.1))
	assert.Equal(t, Float32, f.Kind())
	assert.Equal(t, float32(0.1), As[float32](f))
}
