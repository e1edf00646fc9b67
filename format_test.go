package turboply

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSink() (*bytes.Buffer, WriteStream) {
	var buf bytes.Buffer
	return &buf, bufio.NewWriter(&buf)
}

func TestBinaryScalarRoundTrip(t *testing.T) {
	h := newFormatHandler(Binary)
	require.True(t, h.isBinary())
	assert.Equal(t, "format binary_little_endian 1.0", h.formatLine())

	buf, ws := newSink()
	values := []Scalar{
		ScalarInt8(-5),
		ScalarUInt8(200),
		ScalarInt16(-12345),
		ScalarUInt16(54321),
		ScalarInt32(-100000),
		ScalarUInt32(4000000000),
		ScalarFloat32(0.1),
		ScalarFloat64(-2.5e-300),
	}
	for _, v := range values {
		require.NoError(t, h.writeScalar(ws, v))
	}
	require.NoError(t, h.writeLineEnd(ws)) // no-op in binary mode
	require.NoError(t, ws.Flush())

	// 1+1+2+2+4+4+4+8, no delimiters
	assert.Equal(t, 26, buf.Len())

	rs := bytes.NewReader(buf.Bytes())
	for _, want := range values {
		got, err := h.readScalar(rs, want.Kind())
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestBinaryLittleEndianLayout(t *testing.T) {
	h := newFormatHandler(Binary)
	buf, ws := newSink()
	require.NoError(t, h.writeScalar(ws, ScalarUInt32(0x01020304)))
	require.NoError(t, ws.Flush())
	assert.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, buf.Bytes())
}

func TestASCIIScalarRoundTrip(t *testing.T) {
	h := newFormatHandler(ASCII)
	require.False(t, h.isBinary())
	assert.Equal(t, "format ascii 1.0", h.formatLine())

	buf, ws := newSink()
	values := []Scalar{
		ScalarFloat32(0.1),
		ScalarFloat32(-1.5),
		ScalarFloat64(1.0 / 3.0),
		ScalarInt32(-42),
		ScalarUInt8(255),
	}
	for _, v := range values {
		require.NoError(t, h.writeScalar(ws, v))
	}
	require.NoError(t, h.writeLineEnd(ws))
	require.NoError(t, ws.Flush())

	line := buf.String()
	assert.True(t, strings.HasSuffix(line, "\n"))
	assert.False(t, strings.Contains(line, " \n"))
	assert.Equal(t, len(values), len(strings.Fields(line)))

	rs := strings.NewReader(line)
	rh := newFormatHandler(ASCII)
	for _, want := range values {
		got, err := rh.readScalar(rs, want.Kind())
		require.NoError(t, err)
		assert.Equal(t, want, got, "value must round-trip bit-for-bit")
	}
}

func TestASCIIMalformedToken(t *testing.T) {
	h := newFormatHandler(ASCII)
	_, err := h.readScalar(strings.NewReader("not-a-number "), Float32)
	require.ErrorIs(t, err, ErrParse)

	_, err = h.readScalar(strings.NewReader("3.5 "), Int32)
	require.ErrorIs(t, err, ErrParse)
}

func TestASCIILineShape(t *testing.T) {
	h := newFormatHandler(ASCII)
	buf, ws := newSink()

	for row := 0; row < 3; row++ {
		require.NoError(t, h.writeScalar(ws, ScalarInt32(int32(row))))
		require.NoError(t, h.writeScalar(ws, ScalarInt32(int32(row*2))))
		require.NoError(t, h.writeLineEnd(ws))
	}
	require.NoError(t, ws.Flush())

	assert.Equal(t, "0 0\n1 2\n2 4\n", buf.String())
}

func TestWriteScalarAsCasts(t *testing.T) {
	h := newFormatHandler(Binary)
	buf, ws := newSink()
	// stored as float32, declared uchar on the wire
	require.NoError(t, h.writeScalarAs(ws, ScalarFloat32(7), UInt8))
	require.NoError(t, ws.Flush())
	assert.Equal(t, []byte{7}, buf.Bytes())
}
