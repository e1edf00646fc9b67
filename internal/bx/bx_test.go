package bx

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestLittleEndianReadWrite verifies that the Put/read pairs round-trip
// values using little-endian encoding.
func TestLittleEndianReadWrite(t *testing.T) {
	// ---- U16 ----
	{
		b := make([]byte, 2)
		var v uint16 = 0x1234

		PutU16(b, v)
		// in LE, least-significant byte goes first
		assert.Equal(t, []byte{0x34, 0x12}, b)
		assert.Equal(t, v, U16(b))
	}

	// ---- U32 ----
	{
		b := make([]byte, 4)
		var v uint32 = 0x01020304

		PutU32(b, v)
		assert.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, b)
		assert.Equal(t, v, U32(b))
	}

	// ---- U64 ----
	{
		b := make([]byte, 8)
		var v uint64 = 0x0102030405060708

		PutU64(b, v)
		assert.Equal(t, []byte{0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01}, b)
		assert.Equal(t, v, U64(b))
	}
}

// TestIntAliases checks the signed wrappers around U16/U32.
func TestIntAliases(t *testing.T) {
	{
		b := make([]byte, 2)
		var v int16 = -1234
		PutU16(b, uint16(v))
		assert.Equal(t, v, I16(b))
	}

	{
		b := make([]byte, 4)
		var v int32 = -123456
		PutU32(b, uint32(v))
		assert.Equal(t, v, I32(b))
	}
}

// TestFloatViews checks that float helpers preserve the IEEE bit pattern,
// including values with no exact decimal rendering.
func TestFloatViews(t *testing.T) {
	{
		b := make([]byte, 4)
		var v float32 = 0.1
		PutF32(b, v)
		assert.Equal(t, math.Float32bits(v), U32(b))
		assert.Equal(t, v, F32(b))
	}

	{
		b := make([]byte, 8)
		v := math.Pi
		PutF64(b, v)
		assert.Equal(t, math.Float64bits(v), U64(b))
		assert.Equal(t, v, F64(b))
	}
}
