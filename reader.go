package turboply

import (
	"bufio"
	"fmt"
	"os"
)

// Reader decodes a PLY stream: a textual header followed by row data in
// the stream's wire encoding. It is not safe for concurrent use.
type Reader struct {
	rs       ReadStream
	h        formatHandler
	comments []string
	elements []Element
	parsed   bool
}

// NewReader wraps an existing stream. The format must match the stream's
// actual encoding; ParseHeader verifies the format line.
func NewReader(rs ReadStream, f Format) *Reader {
	return &Reader{rs: rs, h: newFormatHandler(f)}
}

// ParseHeader consumes the header and builds the schema. Re-invoking it
// after the first success is a no-op; the byte after the header's final
// newline stays positioned as the first row-data byte.
func (r *Reader) ParseHeader() error {
	if r.parsed {
		return nil
	}
	comments, elements, err := parseHeader(r.rs, r.h)
	if err != nil {
		return err
	}
	r.comments = comments
	r.elements = elements
	r.parsed = true
	return nil
}

// Comments returns the parsed comment lines in file order.
func (r *Reader) Comments() []string { return r.comments }

// Elements returns the parsed element declarations in file order.
func (r *Reader) Elements() []Element { return r.elements }

// ReadScalar decodes one value of kind k at the current stream position.
func (r *Reader) ReadScalar(k ScalarKind) (Scalar, error) {
	return r.h.readScalar(r.rs, k)
}

// FileReader owns the underlying file or mapping for a Reader's lifetime.
type FileReader struct {
	*Reader
	mapped *MappedReader
	file   *os.File
}

// OpenFileReader opens path for reading, detecting the wire encoding from
// the file's format line. With mapped set, the whole file is memory-mapped
// and scalars decode straight from the mapped bytes; otherwise a buffered
// file stream is used.
func OpenFileReader(path string, mapped bool) (*FileReader, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	fr := &FileReader{}
	if mapped {
		mr, err := OpenMappedReader(path)
		if err != nil {
			return nil, err
		}
		fr.mapped = mr
		fr.Reader = NewReader(mr, format)
		return fr, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %q: %v", ErrIO, path, err)
	}
	fr.file = f
	fr.Reader = NewReader(bufio.NewReader(f), format)
	return fr, nil
}

// Close releases the mapping or file handle. Closing twice is a no-op.
func (fr *FileReader) Close() error {
	if fr.mapped != nil {
		mr := fr.mapped
		fr.mapped = nil
		return mr.Close()
	}
	if fr.file != nil {
		f := fr.file
		fr.file = nil
		return f.Close()
	}
	return nil
}
