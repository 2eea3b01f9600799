package emit

import "github.com/xyproto/pl67/internal/ir"

// emitRet copies the return slot into slot 0 of the frame, where the
// caller (and EmitMemory's/EmitELFText's entry sequence) reads the
// result, then emits a bare `ret`. Slot == -1 means the function is
// void and Slot == 0 is already in place, so neither copies anything;
// the caller's own asm_call sequence is responsible for restoring
// rbx/rsp afterward.
func emitRet(e *Emitter, i ir.InstrRet) {
	if i.Slot > 0 {
		e.loadRax(i.Slot)
		e.storeRax(0)
	}
	e.emit(0xc3) // ret
}
