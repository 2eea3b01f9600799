package emit

import "github.com/xyproto/pl67/internal/ir"

// EmitMemory assembles a unit into position-independent machine code
// suitable for a mmap'd RWX page: a small trampoline that receives the
// data-stack base pointer in the calling convention's first-argument
// register, calls the unit's main function (always FuncID 0), and
// returns its int64 result. Every function is emitted in FuncID order
// so emitFunction's ordering invariant holds.
func EmitMemory(unit *ir.Unit, conv Convention, alignment int) []byte {
	e := newEmitter(alignment)

	e.emit(0x53) // push rbx
	switch conv.argReg() {
	case regC:
		e.emit(0x48, 0x89, 0xcb) // mov rbx, rcx
	default:
		e.emit(0x48, 0x89, 0xfb) // mov rbx, rdi
	}
	e.callPlaceholder(0)
	e.emit(0x48, 0x8b, 0x03) // mov rax, [rbx]
	e.emit(0x5b)             // pop rbx
	e.emit(0xc3)             // ret

	for _, fn := range unit.Funcs {
		e.emitFunction(fn)
	}
	e.resolveCallsAndStrings()
	return e.Buf
}

// dataStackSize is the size, in bytes, of the mmap'd data stack an
// ELF-embedded program allocates for itself at startup.
const dataStackSize = 0x800000 // 8 MiB

// EmitELFText assembles a unit into a freestanding text section: an
// entry sequence that maps and protects its own data stack, calls
// main, then exits with main's return value as the process status,
// followed by every function. Every instruction in the result is
// position-independent, so internal/elfimg can prepend a fixed-size
// ELF header without touching a single byte of this buffer.
func EmitELFText(unit *ir.Unit, alignment int) []byte {
	e := newEmitter(alignment)
	emitCreateStack(e, dataStackSize)
	e.callPlaceholder(0)
	e.emit(0xb8, 0x3c, 0x00, 0x00, 0x00) // mov eax, 60 (exit)
	e.emit(0x48, 0x8b, 0x3b)             // mov rdi, [rbx]
	e.emit(0x0f, 0x05)                   // syscall

	for _, fn := range unit.Funcs {
		e.emitFunction(fn)
	}
	e.resolveCallsAndStrings()
	return e.Buf
}

// emitCreateStack mmaps a RW region of size bytes plus one extra page,
// points rbx at its base (the data-stack base every function's
// [rbx + slot*8] addressing assumes), then mprotects the extra page at
// rbx+size to PROT_NONE as a guard page, mirroring the reference
// implementation's create_stack. Neither syscall's return value is
// checked.
func emitCreateStack(e *Emitter, size int32) {
	e.emit(0xb8, 0x09, 0x00, 0x00, 0x00) // mov eax, 9 (mmap)
	e.emit(0xbf, 0x00, 0x10, 0x00, 0x00) // mov edi, 0x1000 (addr hint)
	e.emit(0x48, 0xc7, 0xc6)             // mov rsi, imm32 (len)
	e.i32(size + 0x1000)
	e.emit(0xba, 0x03, 0x00, 0x00, 0x00)             // mov edx, 3 (PROT_READ|PROT_WRITE)
	e.emit(0x41, 0xba, 0x22, 0x00, 0x00, 0x00)       // mov r10d, 0x22 (MAP_PRIVATE|MAP_ANONYMOUS)
	e.emit(0x49, 0x83, 0xc8, 0xff)                   // or r8, -1 (fd = -1)
	e.emit(0x4d, 0x31, 0xc9)                         // xor r9, r9 (offset = 0)
	e.emit(0x0f, 0x05)                                // syscall
	e.emit(0x48, 0x89, 0xc3)                         // mov rbx, rax

	e.emit(0xb8, 0x0a, 0x00, 0x00, 0x00) // mov eax, 10 (mprotect)
	e.emit(0x48, 0x8d, 0xbb)             // lea rdi, [rbx + size]
	e.i32(size)
	e.emit(0xbe, 0x00, 0x10, 0x00, 0x00) // mov esi, 0x1000
	e.emit(0x31, 0xd2)                   // xor edx, edx (PROT_NONE)
	e.emit(0x0f, 0x05)                   // syscall
}
