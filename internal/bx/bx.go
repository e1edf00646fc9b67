// stand for bytes helper: little-endian views over raw PLY row data
package bx

import (
	"encoding/binary"
	"math"
)

var LE = binary.LittleEndian

// --- read ---
func U16(b []byte) uint16  { return LE.Uint16(b) }
func U32(b []byte) uint32  { return LE.Uint32(b) }
func U64(b []byte) uint64  { return LE.Uint64(b) }
func I16(b []byte) int16   { return int16(U16(b)) }
func I32(b []byte) int32   { return int32(U32(b)) }
func F32(b []byte) float32 { return math.Float32frombits(U32(b)) }
func F64(b []byte) float64 { return math.Float64frombits(U64(b)) }

// --- write ---
func PutU16(b []byte, v uint16)  { LE.PutUint16(b, v) }
func PutU32(b []byte, v uint32)  { LE.PutUint32(b, v) }
func PutU64(b []byte, v uint64)  { LE.PutUint64(b, v) }
func PutF32(b []byte, v float32) { PutU32(b, math.Float32bits(v)) }
func PutF64(b []byte, v float64) { PutU64(b, math.Float64bits(v)) }
