package emit

import (
	"github.com/xyproto/pl67/internal/compileerr"
	"github.com/xyproto/pl67/internal/ir"
)

// leaScale maps an absolute scale factor to the SIB-encoded
// `lea rax, [rax + rdx*N]` template.
var leaScale = map[int][]byte{
	1: {0x48, 0x8d, 0x04, 0x10},
	2: {0x48, 0x8d, 0x04, 0x50},
	4: {0x48, 0x8d, 0x04, 0x90},
	8: {0x48, 0x8d, 0x04, 0xd0},
}

// emitLea implements pointer arithmetic: rax holds the pointer, rdx
// the integer offset, negated first when Scale is negative (pointer
// subtraction), then scaled by the pointee's size and added.
func emitLea(e *Emitter, i ir.InstrLea) {
	e.loadRax(i.A)
	e.asmLoad(regD, regB, int32(i.B)*8)

	scale := i.Scale
	if scale < 0 {
		e.emit(0x48, 0xf7, 0xda) // neg rdx
		scale = -scale
	}
	tmpl, ok := leaScale[scale]
	if !ok {
		panic(compileerr.Internal("emitLea: unsupported scale %d", i.Scale))
	}
	e.emit(tmpl...)
	e.storeRax(i.Dst)
}
