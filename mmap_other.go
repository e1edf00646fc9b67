//go:build !unix

package turboply

import (
	"errors"
	"os"
)

var errNoMapping = errors.New("file mapping is not supported on this platform")

func mmapFile(f *os.File, size int, writable bool) ([]byte, error) {
	return nil, errNoMapping
}

func munmap(data []byte) error { return nil }
