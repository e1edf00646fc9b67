package turboply

import (
	"fmt"
	"math"
)

// ScalarKind identifies the wire type of a property value or list count.
type ScalarKind uint8

const (
	Unused ScalarKind = iota
	Int8
	UInt8
	Int16
	UInt16
	Int32
	UInt32
	Float32
	Float64
)

// Each kind is named by its C-style PLY token and a sized alias; headers in
// the wild use both spellings.
var scalarKindNames = [...][2]string{
	Unused:  {"unused", "unused"},
	Int8:    {"char", "int8"},
	UInt8:   {"uchar", "uint8"},
	Int16:   {"short", "int16"},
	UInt16:  {"ushort", "uint16"},
	Int32:   {"int", "int32"},
	UInt32:  {"uint", "uint32"},
	Float32: {"float", "float32"},
	Float64: {"double", "float64"},
}

// String returns the canonical C-style token emitted in headers.
func (k ScalarKind) String() string {
	if int(k) < len(scalarKindNames) {
		return scalarKindNames[k][0]
	}
	return "unknown"
}

// Size returns the serialized width in bytes, or 0 for Unused.
func (k ScalarKind) Size() int {
	switch k {
	case Int8, UInt8:
		return 1
	case Int16, UInt16:
		return 2
	case Int32, UInt32, Float32:
		return 4
	case Float64:
		return 8
	}
	return 0
}

func (k ScalarKind) isFloat() bool  { return k == Float32 || k == Float64 }
func (k ScalarKind) isSigned() bool { return k == Int8 || k == Int16 || k == Int32 }

// ParseScalarKind resolves a header token in either spelling.
func ParseScalarKind(s string) (ScalarKind, error) {
	for i, names := range scalarKindNames {
		if s == names[0] || s == names[1] {
			return ScalarKind(i), nil
		}
	}
	return Unused, fmt.Errorf("%w: unsupported scalar type %q", ErrFormat, s)
}

// Scalar is a tagged union over the eight numeric kinds. Integers are kept
// sign-extended in bits; floats keep their IEEE bit pattern at the kind's
// width.
type Scalar struct {
	kind ScalarKind
	bits uint64
}

func ScalarInt8(v int8) Scalar     { return Scalar{Int8, uint64(int64(v))} }
func ScalarUInt8(v uint8) Scalar   { return Scalar{UInt8, uint64(v)} }
func ScalarInt16(v int16) Scalar   { return Scalar{Int16, uint64(int64(v))} }
func ScalarUInt16(v uint16) Scalar { return Scalar{UInt16, uint64(v)} }
func ScalarInt32(v int32) Scalar   { return Scalar{Int32, uint64(int64(v))} }
func ScalarUInt32(v uint32) Scalar { return Scalar{UInt32, uint64(v)} }
func ScalarFloat32(v float32) Scalar {
	return Scalar{Float32, uint64(math.Float32bits(v))}
}
func ScalarFloat64(v float64) Scalar {
	return Scalar{Float64, math.Float64bits(v)}
}

// Numeric is the set of in-memory types a column may hold, one per wire
// kind.
type Numeric interface {
	int8 | uint8 | int16 | uint16 | int32 | uint32 | float32 | float64
}

// ScalarOf wraps a native numeric value in its corresponding kind.
func ScalarOf[T Numeric](v T) Scalar {
	switch x := any(v).(type) {
	case int8:
		return ScalarInt8(x)
	case uint8:
		return ScalarUInt8(x)
	case int16:
		return ScalarInt16(x)
	case uint16:
		return ScalarUInt16(x)
	case int32:
		return ScalarInt32(x)
	case uint32:
		return ScalarUInt32(x)
	case float32:
		return ScalarFloat32(x)
	default:
		return ScalarFloat64(any(v).(float64))
	}
}

// KindOf reports the wire kind matching a native numeric type.
func KindOf[T Numeric]() ScalarKind {
	var z T
	switch any(z).(type) {
	case int8:
		return Int8
	case uint8:
		return UInt8
	case int16:
		return Int16
	case uint16:
		return UInt16
	case int32:
		return Int32
	case uint32:
		return UInt32
	case float32:
		return Float32
	default:
		return Float64
	}
}

// Kind returns the tag of the held value.
func (s Scalar) Kind() ScalarKind { return s.kind }

// Float64 converts the held value to float64 by ordinary numeric
// conversion.
func (s Scalar) Float64() float64 {
	switch s.kind {
	case Float32:
		return float64(math.Float32frombits(uint32(s.bits)))
	case Float64:
		return math.Float64frombits(s.bits)
	case Int8, Int16, Int32:
		return float64(int64(s.bits))
	default:
		return float64(s.bits)
	}
}

// Int64 converts the held value to int64. Float payloads truncate toward
// zero; no overflow checking is performed.
func (s Scalar) Int64() int64 {
	switch s.kind {
	case Float32:
		return int64(math.Float32frombits(uint32(s.bits)))
	case Float64:
		return int64(math.Float64frombits(s.bits))
	default:
		return int64(s.bits)
	}
}

// Uint64 converts the held value to uint64, the conversion used for list
// count prefixes.
func (s Scalar) Uint64() uint64 {
	switch s.kind {
	case Float32:
		return uint64(math.Float32frombits(uint32(s.bits)))
	case Float64:
		return uint64(math.Float64frombits(s.bits))
	case Int8, Int16, Int32:
		return uint64(int64(s.bits))
	default:
		return s.bits
	}
}

// As converts the held value to T by ordinary numeric conversion, the
// Go analogue of a numeric cast between wire and in-memory types.
func As[T Numeric](s Scalar) T {
	if s.kind.isFloat() {
		return T(s.Float64())
	}
	if s.kind.isSigned() {
		return T(s.Int64())
	}
	return T(s.bits)
}

// CastTo re-tags the value as kind k through a numeric conversion.
func (s Scalar) CastTo(k ScalarKind) Scalar {
	if s.kind == k {
		return s
	}
	switch k {
	case Int8:
		return ScalarInt8(As[int8](s))
	case UInt8:
		return ScalarUInt8(As[uint8](s))
	case Int16:
		return ScalarInt16(As[int16](s))
	case UInt16:
		return ScalarUInt16(As[uint16](s))
	case Int32:
		return ScalarInt32(As[int32](s))
	case UInt32:
		return ScalarUInt32(As[uint32](s))
	case Float32:
		return ScalarFloat32(As[float32](s))
	default:
		return ScalarFloat64(As[float64](s))
	}
}
