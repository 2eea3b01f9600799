package emit

import "github.com/xyproto/pl67/internal/ir"

// emitPeek dereferences a pointer slot, reading either a full 8-byte
// value or a single zero-extended byte.
func emitPeek(e *Emitter, i ir.InstrPeek) {
	e.loadRax(i.Ptr)
	if i.Byte {
		e.emit(0x0f, 0xb6, 0x00) // movzx eax, byte ptr [rax]
	} else {
		e.asmLoad(regA, regA, 0)
	}
	e.storeRax(i.Dst)
}

// emitPoke writes a value through a pointer slot, either a full
// 8-byte store or a single low byte.
func emitPoke(e *Emitter, i ir.InstrPoke) {
	e.loadRax(i.Val)
	e.asmLoad(regD, regB, int32(i.Ptr)*8)
	if i.Byte {
		e.emit(0x88, 0x02) // mov [rdx], al
	} else {
		e.asmStore(regD, 0, regA)
	}
}
