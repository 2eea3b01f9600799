package emit

import (
	"github.com/xyproto/pl67/internal/compileerr"
	"github.com/xyproto/pl67/internal/ir"
)

// syscallArgRegs is the Linux x86-64 syscall argument register order.
var syscallArgRegs = []int{regDI, regSI, regD, 10, 8, 9}

func emitSyscall(e *Emitter, i ir.InstrSyscall) {
	if len(i.Args) > len(syscallArgRegs) {
		panic(compileerr.Internal("emitSyscall: %d arguments exceeds the %d supported", len(i.Args), len(syscallArgRegs)))
	}
	e.emit(0xb8) // mov eax, imm32
	e.i32(int32(i.Num))
	for idx, slot := range i.Args {
		e.asmLoad(syscallArgRegs[idx], regB, int32(slot)*8)
	}
	e.emit(0x0f, 0x05) // syscall
	e.storeRax(i.Base)
}
