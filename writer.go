package turboply

import (
	"bufio"
	"fmt"
	"os"
)

// Writer encodes a PLY stream: comments and elements are registered first,
// the header is emitted exactly once, then row data streams in the chosen
// wire encoding. It is not safe for concurrent use.
type Writer struct {
	ws            WriteStream
	h             formatHandler
	comments      []string
	elements      []Element
	headerWritten bool
}

// NewWriter wraps an existing stream with the given wire encoding.
func NewWriter(ws WriteStream, f Format) *Writer {
	return &Writer{ws: ws, h: newFormatHandler(f)}
}

// AddComment appends one comment line. Comments added after WriteHeader
// are never emitted.
func (w *Writer) AddComment(c string) {
	w.comments = append(w.comments, c)
}

// AddElement registers an element declaration. Duplicate element names and
// registration after the header has been written are rejected.
func (w *Writer) AddElement(e Element) error {
	if w.headerWritten {
		return fmt.Errorf("%w: cannot add element %q after the header has been written", ErrFormat, e.Name)
	}
	for i := range w.elements {
		if w.elements[i].Name == e.Name {
			return fmt.Errorf("%w: duplicate element name %q is not allowed", ErrFormat, e.Name)
		}
	}
	w.elements = append(w.elements, e)
	return nil
}

// Elements returns the registered element declarations.
func (w *Writer) Elements() []Element { return w.elements }

// WriteHeader emits the textual preamble and freezes the schema. A second
// call fails.
func (w *Writer) WriteHeader() error {
	if w.headerWritten {
		return fmt.Errorf("%w: header has already been written", ErrFormat)
	}
	if err := writeHeaderText(w.ws, w.h, w.comments, w.elements); err != nil {
		return err
	}
	w.headerWritten = true
	return nil
}

// WriteScalar encodes v in its own kind.
func (w *Writer) WriteScalar(v Scalar) error {
	return w.h.writeScalar(w.ws, v)
}

// WriteScalarAs casts v to kind k before encoding, letting callers store
// values in one native type but serialize as another declared kind.
func (w *Writer) WriteScalarAs(v Scalar, k ScalarKind) error {
	return w.h.writeScalarAs(w.ws, v, k)
}

// WriteLineEnd terminates the current row: a newline in ASCII mode, a
// no-op in binary mode.
func (w *Writer) WriteLineEnd() error {
	return w.h.writeLineEnd(w.ws)
}

// Flush pushes buffered bytes to the underlying sink.
func (w *Writer) Flush() error {
	return w.ws.Flush()
}

// FileWriter owns the underlying file or mapping for a Writer's lifetime.
type FileWriter struct {
	*Writer
	mapped *MappedWriter
	file   *os.File
	buf    *bufio.Writer
}

// OpenFileWriter creates or truncates path for writing. With mapped set,
// the file is pre-sized to reserve bytes (DefaultReserve when reserve <= 0)
// and written through a read-write mapping that Close truncates to the
// bytes actually written; otherwise a buffered file stream is used.
func OpenFileWriter(path string, format Format, mapped bool, reserve int) (*FileWriter, error) {
	fw := &FileWriter{}
	if mapped {
		mw, err := OpenMappedWriter(path, reserve)
		if err != nil {
			return nil, err
		}
		fw.mapped = mw
		fw.Writer = NewWriter(mw, format)
		return fw, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %q: %v", ErrIO, path, err)
	}
	fw.file = f
	fw.buf = bufio.NewWriter(f)
	fw.Writer = NewWriter(fw.buf, format)
	return fw, nil
}

// Close flushes, tears down the mapping or file handle and, for a mapped
// writer, truncates the file to its written length. It runs its cleanup
// exactly once; later calls are no-ops.
func (fw *FileWriter) Close() error {
	if fw.mapped != nil {
		mw := fw.mapped
		fw.mapped = nil
		return mw.Close()
	}
	if fw.file != nil {
		f := fw.file
		buf := fw.buf
		fw.file = nil
		fw.buf = nil
		if err := buf.Flush(); err != nil {
			f.Close()
			return ioErr(err, "flush")
		}
		if err := f.Close(); err != nil {
			return ioErr(err, "close")
		}
	}
	return nil
}
