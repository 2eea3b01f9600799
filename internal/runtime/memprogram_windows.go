//go:build windows

package runtime

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// New mirrors MemProgramWindows.__init__: VirtualAlloc a
// PAGE_EXECUTE_READWRITE region for the code, copy it in, then
// VirtualAlloc a PAGE_READWRITE region for the data stack.
func New(code []byte) (*Program, error) {
	codeAddr, err := windows.VirtualAlloc(0, uintptr(len(code)), windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_EXECUTE_READWRITE)
	if err != nil {
		return nil, fmt.Errorf("runtime: VirtualAlloc code: %w", err)
	}
	dst := unsafe.Slice((*byte)(unsafe.Pointer(codeAddr)), len(code))
	copy(dst, code)

	stackAddr, err := windows.VirtualAlloc(0, dataStackSize, windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil {
		windows.VirtualFree(codeAddr, 0, windows.MEM_RELEASE)
		return nil, fmt.Errorf("runtime: VirtualAlloc stack: %w", err)
	}

	return &Program{
		code:      dst,
		codeAddr:  codeAddr,
		stackAddr: stackAddr,
	}, nil
}

// Close mirrors MemProgramWindows.close's two VirtualFree calls.
func (p *Program) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	if err := windows.VirtualFree(p.codeAddr, 0, windows.MEM_RELEASE); err != nil {
		return fmt.Errorf("runtime: VirtualFree code: %w", err)
	}
	if err := windows.VirtualFree(p.stackAddr, 0, windows.MEM_RELEASE); err != nil {
		return fmt.Errorf("runtime: VirtualFree stack: %w", err)
	}
	return nil
}
