//go:build unix

package turboply

import (
	"os"

	"golang.org/x/sys/unix"
)

func mmapFile(f *os.File, size int, writable bool) ([]byte, error) {
	if size == 0 {
		// Zero-length mappings are rejected by the kernel; an empty file
		// maps to an empty, unmapped slice.
		return []byte{}, nil
	}
	prot := unix.PROT_READ
	if writable {
		prot |= unix.PROT_WRITE
	}
	return unix.Mmap(int(f.Fd()), 0, size, prot, unix.MAP_SHARED)
}

func munmap(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	return unix.Munmap(data)
}
