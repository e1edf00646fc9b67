package turboply

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/zhtao/turboply/internal/bx"
)

// formatHandler is the capability set shared by the two wire encodings.
// One handler instance belongs to exactly one Reader or Writer; the ASCII
// variant carries per-line state.
type formatHandler interface {
	isBinary() bool
	formatLine() string
	readScalar(rs ReadStream, k ScalarKind) (Scalar, error)
	writeScalar(ws WriteStream, v Scalar) error
	writeScalarAs(ws WriteStream, v Scalar, k ScalarKind) error
	writeLineEnd(ws WriteStream) error
}

func newFormatHandler(f Format) formatHandler {
	if f == ASCII {
		return &asciiHandler{}
	}
	return &binaryHandler{}
}

// ioErr wraps err as an IO failure unless it already carries a package
// error kind.
func ioErr(err error, what string) error {
	if errors.Is(err, ErrIO) || errors.Is(err, ErrParse) || errors.Is(err, ErrFormat) {
		return err
	}
	return fmt.Errorf("%w: %s: %v", ErrIO, what, err)
}

// binaryHandler moves raw little-endian bytes, exactly the kind's width,
// no padding or alignment. Rows are not delimited; boundaries are implied
// by property widths and list counts.
type binaryHandler struct{}

func (binaryHandler) isBinary() bool     { return true }
func (binaryHandler) formatLine() string { return "format binary_little_endian 1.0" }

func (binaryHandler) readScalar(rs ReadStream, k ScalarKind) (Scalar, error) {
	var buf [8]byte
	n := k.Size()
	if n == 0 {
		return Scalar{}, fmt.Errorf("%w: cannot read scalar of kind %q", ErrFormat, k)
	}
	if _, err := io.ReadFull(rs, buf[:n]); err != nil {
		return Scalar{}, ioErr(err, "read binary scalar")
	}
	b := buf[:n]
	switch k {
	case Int8:
		return ScalarInt8(int8(b[0])), nil
	case UInt8:
		return ScalarUInt8(b[0]), nil
	case Int16:
		return ScalarInt16(bx.I16(b)), nil
	case UInt16:
		return ScalarUInt16(bx.U16(b)), nil
	case Int32:
		return ScalarInt32(bx.I32(b)), nil
	case UInt32:
		return ScalarUInt32(bx.U32(b)), nil
	case Float32:
		return ScalarFloat32(bx.F32(b)), nil
	default:
		return ScalarFloat64(bx.F64(b)), nil
	}
}

func (binaryHandler) writeScalar(ws WriteStream, v Scalar) error {
	var buf [8]byte
	k := v.Kind()
	b := buf[:k.Size()]
	switch k {
	case Int8:
		b[0] = byte(As[int8](v))
	case UInt8:
		b[0] = As[uint8](v)
	case Int16:
		bx.PutU16(b, uint16(As[int16](v)))
	case UInt16:
		bx.PutU16(b, As[uint16](v))
	case Int32:
		bx.PutU32(b, uint32(As[int32](v)))
	case UInt32:
		bx.PutU32(b, As[uint32](v))
	case Float32:
		bx.PutF32(b, As[float32](v))
	case Float64:
		bx.PutF64(b, As[float64](v))
	default:
		return fmt.Errorf("%w: cannot write scalar of kind %q", ErrFormat, k)
	}
	if _, err := ws.Write(b); err != nil {
		return ioErr(err, "write binary scalar")
	}
	return nil
}

func (h binaryHandler) writeScalarAs(ws WriteStream, v Scalar, k ScalarKind) error {
	return h.writeScalar(ws, v.CastTo(k))
}

func (binaryHandler) writeLineEnd(WriteStream) error { return nil }

// asciiHandler moves whitespace-delimited tokens. Values are rendered with
// the shortest text that round-trips to the exact value, interior tokens
// are single-space separated and every data line ends in exactly one
// newline with no trailing space. The separator is emitted lazily before
// the next token rather than written and retracted, which keeps the same
// wire bytes without requiring a seekable sink.
type asciiHandler struct {
	midLine bool
}

func (*asciiHandler) isBinary() bool     { return false }
func (*asciiHandler) formatLine() string { return "format ascii 1.0" }

func isSpace(b byte) bool {
	return b == ' ' || b == '\n' || b == '\r' || b == '\t'
}

// readToken consumes one whitespace-delimited token.
func readToken(rs ReadStream) (string, error) {
	var b byte
	var err error
	for {
		b, err = rs.ReadByte()
		if err != nil {
			return "", ioErr(err, "read ascii token")
		}
		if !isSpace(b) {
			break
		}
	}
	tok := make([]byte, 1, 24)
	tok[0] = b
	for {
		b, err = rs.ReadByte()
		if err != nil || isSpace(b) {
			// A trailing token may legitimately end at the end of the
			// stream; the collected bytes still parse.
			return string(tok), nil
		}
		tok = append(tok, b)
	}
}

func (*asciiHandler) readScalar(rs ReadStream, k ScalarKind) (Scalar, error) {
	if k.Size() == 0 {
		return Scalar{}, fmt.Errorf("%w: cannot read scalar of kind %q", ErrFormat, k)
	}
	tok, err := readToken(rs)
	if err != nil {
		return Scalar{}, err
	}
	switch {
	case k.isFloat():
		v, err := strconv.ParseFloat(tok, k.Size()*8)
		if err != nil {
			return Scalar{}, fmt.Errorf("%w: failed to parse ascii value %q", ErrParse, tok)
		}
		if k == Float32 {
			return ScalarFloat32(float32(v)), nil
		}
		return ScalarFloat64(v), nil
	case k.isSigned():
		v, err := strconv.ParseInt(tok, 10, k.Size()*8)
		if err != nil {
			return Scalar{}, fmt.Errorf("%w: failed to parse ascii value %q", ErrParse, tok)
		}
		return ScalarInt32(int32(v)).CastTo(k), nil
	default:
		v, err := strconv.ParseUint(tok, 10, k.Size()*8)
		if err != nil {
			return Scalar{}, fmt.Errorf("%w: failed to parse ascii value %q", ErrParse, tok)
		}
		return ScalarUInt32(uint32(v)).CastTo(k), nil
	}
}

func formatScalar(v Scalar) string {
	k := v.Kind()
	switch {
	case k == Float32:
		return strconv.FormatFloat(float64(As[float32](v)), 'g', -1, 32)
	case k == Float64:
		return strconv.FormatFloat(As[float64](v), 'g', -1, 64)
	case k.isSigned():
		return strconv.FormatInt(v.Int64(), 10)
	default:
		return strconv.FormatUint(v.Uint64(), 10)
	}
}

func (h *asciiHandler) writeScalar(ws WriteStream, v Scalar) error {
	if v.Kind().Size() == 0 {
		return fmt.Errorf("%w: cannot write scalar of kind %q", ErrFormat, v.Kind())
	}
	if h.midLine {
		if _, err := ws.Write([]byte{' '}); err != nil {
			return ioErr(err, "write ascii separator")
		}
	}
	if _, err := io.WriteString(ws, formatScalar(v)); err != nil {
		return ioErr(err, "write ascii scalar")
	}
	h.midLine = true
	return nil
}

func (h *asciiHandler) writeScalarAs(ws WriteStream, v Scalar, k ScalarKind) error {
	return h.writeScalar(ws, v.CastTo(k))
}

func (h *asciiHandler) writeLineEnd(ws WriteStream) error {
	h.midLine = false
	if _, err := ws.Write([]byte{'\n'}); err != nil {
		return ioErr(err, "write ascii line end")
	}
	return nil
}
