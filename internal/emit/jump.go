package emit

import "github.com/xyproto/pl67/internal/ir"

// emitJmpf tests a1 and jumps to Label if it is zero (a je, so the
// jump is taken on the *false* branch — spec.md's virtual jmpf is a
// jump-if-false).
func emitJmpf(e *Emitter, i ir.InstrJmpf) {
	e.loadRax(i.Cond)
	e.emit(0x48, 0x85, 0xc0) // test rax, rax
	e.emit(0x0f, 0x84)       // je rel32
	e.jmpPlaceholder(i.Label)
}

func emitJmp(e *Emitter, i ir.InstrJmp) {
	e.emit(0xe9) // jmp rel32
	e.jmpPlaceholder(i.Label)
}
