//go:build unix

package reservation

import "golang.org/x/sys/unix"

// PageSize is the OS page size every reservation is rounded up to.
var PageSize = unix.Getpagesize()

func newMapping(size uintptr) ([]byte, error) {
	return unix.Mmap(-1, 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
}

func closeMapping(mem []byte) error {
	return unix.Munmap(mem)
}
