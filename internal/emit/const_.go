package emit

import "github.com/xyproto/pl67/internal/ir"

// emitConst loads an int or string-pool constant into dst. Integers
// pick the shortest encoding that reproduces the value exactly:
// xor/or for the two special cases, a zero- or sign-extending 32-bit
// immediate when possible, and a full 64-bit immediate only as a last
// resort.
func emitConst(e *Emitter, i ir.InstrConst) {
	if i.Val.IsStr {
		e.emit(0x48, 0x8d, 0x05) // lea rax, [rip + disp32]
		e.strings[i.Val.Str] = append(e.strings[i.Val.Str], e.pos())
		e.emit(0, 0, 0, 0)
		e.storeRax(i.Dst)
		return
	}

	v := i.Val.Int
	switch {
	case v == 0:
		e.emit(0x31, 0xc0) // xor eax, eax
	case v == -1:
		e.emit(0x48, 0x83, 0xc8, 0xff) // or rax, -1
	case v >= 0 && v < (1<<31):
		e.emit(0xb8) // mov eax, imm32
		e.i32(int32(v))
	case v < 0 && v >= -(1 << 31):
		e.emit(0x48, 0xc7, 0xc0) // mov rax, imm32 (sign-extended)
		e.i32(int32(v))
	default:
		e.emit(0x48, 0xb8) // mov rax, imm64
		e.i64(v)
	}
	e.storeRax(i.Dst)
}
