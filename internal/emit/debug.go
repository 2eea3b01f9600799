package emit

import "github.com/xyproto/pl67/internal/ir"

// emitDebug drops a breakpoint trap into the instruction stream.
func emitDebug(e *Emitter, _ ir.InstrDebug) {
	e.emit(0xcc)
}
