package turboply

import (
	"fmt"
	"io"
	"os"
)

// MappedReader reads directly over a read-only mapping of the whole file.
// The cursor advances over the mapped bytes; nothing is copied until a
// caller stores a decoded value.
type MappedReader struct {
	data   []byte
	off    int
	path   string
	closed bool
}

// OpenMappedReader maps path read-only for its full extent.
func OpenMappedReader(path string) (*MappedReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %q: %v", ErrIO, path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: stat %q: %v", ErrIO, path, err)
	}

	data, err := mmapFile(f, int(info.Size()), false)
	if err != nil {
		return nil, fmt.Errorf("%w: map %q: %v", ErrIO, path, err)
	}
	return &MappedReader{data: data, path: path}, nil
}

func (r *MappedReader) Read(p []byte) (int, error) {
	if r.off >= len(r.data) {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, fmt.Errorf("%w: read past end of mapped extent of %q", ErrIO, r.path)
	}
	n := copy(p, r.data[r.off:])
	r.off += n
	return n, nil
}

func (r *MappedReader) ReadByte() (byte, error) {
	if r.off >= len(r.data) {
		return 0, fmt.Errorf("%w: read past end of mapped extent of %q", ErrIO, r.path)
	}
	b := r.data[r.off]
	r.off++
	return b, nil
}

// Len reports the unread byte count.
func (r *MappedReader) Len() int { return len(r.data) - r.off }

// Close unmaps the region. Closing twice is a no-op.
func (r *MappedReader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	data := r.data
	r.data = nil
	if data == nil {
		return nil
	}
	if err := munmap(data); err != nil {
		return fmt.Errorf("%w: unmap %q: %v", ErrIO, r.path, err)
	}
	return nil
}

// MappedWriter writes into a read-write mapping of a pre-reserved file.
// The reservation is capacity only: Close unmaps and truncates the file to
// the bytes actually written. Writes or seeks past the reservation fail
// instead of growing the mapping.
type MappedWriter struct {
	data   []byte
	pos    int
	high   int // furthest byte ever written, the truncation point
	path   string
	closed bool
}

// OpenMappedWriter creates path if missing, sizes it to reserve bytes and
// maps it read-write. A non-positive reserve uses DefaultReserve.
func OpenMappedWriter(path string, reserve int) (*MappedWriter, error) {
	if reserve <= 0 {
		reserve = DefaultReserve
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, fileMode0644)
	if err != nil {
		return nil, fmt.Errorf("%w: open %q: %v", ErrIO, path, err)
	}
	defer f.Close()

	if err := f.Truncate(int64(reserve)); err != nil {
		return nil, fmt.Errorf("%w: reserve %d bytes in %q: %v", ErrIO, reserve, path, err)
	}
	data, err := mmapFile(f, reserve, true)
	if err != nil {
		return nil, fmt.Errorf("%w: map %q: %v", ErrIO, path, err)
	}
	return &MappedWriter{data: data, path: path}, nil
}

func (w *MappedWriter) Write(p []byte) (int, error) {
	if w.pos+len(p) > len(w.data) {
		return 0, fmt.Errorf("%w: write of %d bytes exceeds %d-byte reservation of %q",
			ErrIO, len(p), len(w.data), w.path)
	}
	n := copy(w.data[w.pos:], p)
	w.pos += n
	if w.pos > w.high {
		w.high = w.pos
	}
	return n, nil
}

// Flush is a no-op: bytes land in the mapping as they are written.
func (w *MappedWriter) Flush() error { return nil }

// Seek repositions the put-position within [0, reservation]. Targets
// outside that range fail; the mapping never grows.
func (w *MappedWriter) Seek(offset int64, whence int) (int64, error) {
	var target int64
	switch whence {
	case io.SeekStart:
		target = offset
	case io.SeekCurrent:
		target = int64(w.pos) + offset
	case io.SeekEnd:
		target = int64(len(w.data)) + offset
	default:
		return 0, fmt.Errorf("%w: invalid seek whence %d", ErrIO, whence)
	}
	if target < 0 || target > int64(len(w.data)) {
		return 0, fmt.Errorf("%w: seek to %d outside reservation [0, %d] of %q",
			ErrIO, target, len(w.data), w.path)
	}
	w.pos = int(target)
	return target, nil
}

// Written reports the truncation point Close will apply.
func (w *MappedWriter) Written() int { return w.high }

// Close unmaps the region and truncates the file to the bytes actually
// written, discarding the unused tail of the reservation. Closing twice is
// a no-op.
func (w *MappedWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	data := w.data
	w.data = nil
	if data == nil {
		return nil
	}
	if err := munmap(data); err != nil {
		return fmt.Errorf("%w: unmap %q: %v", ErrIO, w.path, err)
	}
	if err := os.Truncate(w.path, int64(w.high)); err != nil {
		return fmt.Errorf("%w: truncate %q to %d bytes: %v", ErrIO, w.path, w.high, err)
	}
	return nil
}
