//go:build !windows

package runtime

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// New maps code into an executable page and allocates a fresh data
// stack, matching MemProgram.__init__: the code page is mapped
// PROT_READ|PROT_WRITE|PROT_EXEC directly (the reference
// implementation never splits the write-then-exec step, so neither
// does this), the stack page PROT_READ|PROT_WRITE only.
func New(code []byte) (*Program, error) {
	codeMap, err := unix.Mmap(-1, 0, len(code), unix.PROT_READ|unix.PROT_WRITE|unix.PROT_EXEC, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("runtime: mmap code: %w", err)
	}
	copy(codeMap, code)

	stackMap, err := unix.Mmap(-1, 0, dataStackSize, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		unix.Munmap(codeMap)
		return nil, fmt.Errorf("runtime: mmap stack: %w", err)
	}

	return &Program{
		code:      codeMap,
		codeAddr:  uintptr(unsafe.Pointer(&codeMap[0])),
		stackAddr: uintptr(unsafe.Pointer(&stackMap[0])),
	}, nil
}

// Close unmaps both regions. Calling it twice is a no-op.
func (p *Program) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	if err := unix.Munmap(p.code); err != nil {
		return fmt.Errorf("runtime: munmap code: %w", err)
	}
	stack := unsafe.Slice((*byte)(unsafe.Pointer(p.stackAddr)), dataStackSize)
	if err := unix.Munmap(stack); err != nil {
		return fmt.Errorf("runtime: munmap stack: %w", err)
	}
	return nil
}
