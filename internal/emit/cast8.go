package emit

import "github.com/xyproto/pl67/internal/ir"

// emitCast8 truncates a slot to byte range in place; it's the same
// AND-immediate template emitBinop/emitUnop reuse for byte-width
// arithmetic masking.
func emitCast8(e *Emitter, i ir.InstrCast8) {
	e.maskByte(i.Var)
}
