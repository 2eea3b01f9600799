// Package runtime maps freshly emitted machine code into executable
// memory and invokes it directly, mirroring the reference
// implementation's MemProgram/MemProgramWindows split (mmap+ctypes vs
// VirtualAlloc+ctypes) as mmap/mprotect via golang.org/x/sys/unix on
// Unix-like targets and VirtualAlloc/VirtualProtect via
// golang.org/x/sys/windows elsewhere.
package runtime

// dataStackSize matches internal/emit's own EmitELFText constant: an
// 8 MiB scratch area addressed as [rbx + slot*8] by every compiled
// function.
const dataStackSize = 8 << 20

// Program owns a pair of memory-mapped regions: one holding the
// emitted machine code (read+write+execute), one holding the interpreter's
// data stack (read+write). Close releases both; a Program must not be
// invoked again afterward.
type Program struct {
	code      []byte
	codeAddr  uintptr
	stackAddr uintptr
	closed    bool
}

// Invoke calls into the mapped code with the data-stack base as its
// sole argument and returns the callee's int64 result — the exact
// `int64_t (*)(void *stack)` contract spec.md's runtime section
// requires of a compiled main.
func (p *Program) Invoke() int64 {
	return callAsm(p.codeAddr, p.stackAddr)
}
