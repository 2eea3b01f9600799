package emit

import "github.com/xyproto/pl67/internal/ir"

// loadEnvAddr loads the ancestor frame-base pointer level steps up
// the RSP chain into rax. RSP can't be addressed through asmLoad:
// ModRM rm=100b means "SIB byte follows", not "[rsp]", and asmDisp
// has no SIB support, so this is hand-rolled as the forced-disp32
// SIB form, always emitting the full 4-byte displacement.
func loadEnvAddr(e *Emitter, level int) {
	e.emit(0x48, 0x8b, 0x84, 0x24) // mov rax, [rsp + level*8]
	e.i32(int32(level) * 8)
}

func emitGetEnv(e *Emitter, i ir.InstrGetEnv) {
	loadEnvAddr(e, i.Level)
	e.asmLoad(regA, regA, int32(i.Var)*8)
	e.storeRax(i.Dst)
}

func emitSetEnv(e *Emitter, i ir.InstrSetEnv) {
	loadEnvAddr(e, i.Level)
	e.asmLoad(regD, regB, int32(i.Src)*8)
	e.asmStore(regA, int32(i.Var)*8, regD)
}

// emitRefVar takes the address of a local slot directly off rbx.
func emitRefVar(e *Emitter, i ir.InstrRefVar) {
	e.emit(0x48, 0x8d, 0x83) // lea rax, [rbx + var*8]
	e.i32(int32(i.Var) * 8)
	e.storeRax(i.Dst)
}

// emitRefEnv takes the address of a non-local slot by adding its
// offset to the ancestor frame-base pointer.
func emitRefEnv(e *Emitter, i ir.InstrRefEnv) {
	loadEnvAddr(e, i.Level)
	e.emit(0x48, 0x05) // add rax, imm32
	e.i32(int32(i.Var) * 8)
	e.storeRax(i.Dst)
}
