package emit

import "github.com/xyproto/pl67/internal/ir"

// emitMov copies a stack slot to another, skipping the load/store
// entirely when they're the same slot.
func emitMov(e *Emitter, i ir.InstrMov) {
	if i.Src == i.Dst {
		return
	}
	e.loadRax(i.Src)
	e.storeRax(i.Dst)
}
