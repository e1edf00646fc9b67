package turboply

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// Format selects the wire encoding of row data. Headers are always text.
type Format uint8

const (
	Binary Format = iota
	ASCII
)

func (f Format) String() string {
	if f == ASCII {
		return "ascii"
	}
	return "binary_little_endian"
}

// ReadStream is the capability set a Reader consumes. Both the mapped
// reader and bufio.Reader satisfy it.
type ReadStream interface {
	io.Reader
	io.ByteReader
}

// WriteStream is the capability set a Writer consumes. Both the mapped
// writer and bufio.Writer satisfy it.
type WriteStream interface {
	io.Writer
	Flush() error
}

// detection sniffs at most this many bytes from the start of the file.
const detectSniffLen = 1024

// DetectFormat classifies an existing PLY file by its format line. Finding
// neither encoding marker, or both, is a format error.
func DetectFormat(path string) (Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return Binary, fmt.Errorf("%w: open %q for format detection: %v", ErrIO, path, err)
	}
	defer f.Close()

	buf := make([]byte, detectSniffLen)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return Binary, fmt.Errorf("%w: read %q for format detection: %v", ErrIO, path, err)
	}
	head := buf[:n]

	foundASCII := bytes.Contains(head, []byte("format ascii"))
	foundBinLE := bytes.Contains(head, []byte("format binary_little_endian"))

	switch {
	case foundASCII && !foundBinLE:
		return ASCII, nil
	case foundBinLE && !foundASCII:
		return Binary, nil
	}
	return Binary, fmt.Errorf("%w: unsupported or unrecognized PLY format in %q", ErrFormat, path)
}

const (
	fileMode0644 = 0o644

	// DefaultReserve is the write-mapped pre-reservation applied when the
	// caller passes no sizing hint. It is capacity, not final size; the
	// file is truncated to the bytes actually written on close.
	DefaultReserve = 100 << 20
)
