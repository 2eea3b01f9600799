package emit

import (
	"github.com/xyproto/pl67/internal/compileerr"
	"github.com/xyproto/pl67/internal/ir"
)

var arithOpcode = map[string][]byte{
	"+": {0x48, 0x03}, // add reg, rm
	"-": {0x48, 0x2b}, // sub reg, rm
	"*": {0x48, 0x0f, 0xaf}, // imul reg, rm
}

var cmpSetcc = map[string][]byte{
	"eq": {0x0f, 0x94, 0xc0}, // sete al
	"ne": {0x0f, 0x95, 0xc0}, // setne al
	"ge": {0x0f, 0x9d, 0xc0}, // setge al
	"gt": {0x0f, 0x9f, 0xc0}, // setg al
	"le": {0x0f, 0x9e, 0xc0}, // setle al
	"lt": {0x0f, 0x9c, 0xc0}, // setl al
}

// emitBinop covers both binop and binop8 (i.Byte true): the
// underlying arithmetic runs at full register width regardless, since
// every byte value already lives zero-extended in its 8-byte slot;
// arithmetic ops (which can overflow a byte) are masked back into
// [0, 256) afterward. Comparisons and and/or already produce a clean
// 0/1 and need no masking either way.
func emitBinop(e *Emitter, i ir.InstrBinop) {
	e.loadRax(i.A)

	switch {
	case i.Sym == "/" || i.Sym == "%":
		e.emit(0x31, 0xd2) // xor edx, edx
		e.emit(0x48, 0xf7, 0xbb) // idiv rax, [rbx + a2*8]
		e.i32(int32(i.B) * 8)
		if i.Sym == "%" {
			e.emit(0x48, 0x89, 0xd0) // mov rax, rdx
		}
	case arithOpcode[i.Sym] != nil:
		e.asmDisp(arithOpcode[i.Sym], regA, regB, int32(i.B)*8)
	case cmpSetcc[i.Sym] != nil:
		e.asmDisp([]byte{0x48, 0x3b}, regA, regB, int32(i.B)*8) // cmp rax, [rbx + a2*8]
		e.emit(cmpSetcc[i.Sym]...)
		e.emit(0x0f, 0xb6, 0xc0) // movzx eax, al
	case i.Sym == "and":
		e.emit(0x48, 0x85, 0xc0, 0x0f, 0x95, 0xc0) // test rax,rax; setne al
		e.asmLoad(regD, regB, int32(i.B)*8)
		e.emit(0x48, 0x85, 0xd2, 0x0f, 0x95, 0xc2, 0x21, 0xd0, 0x0f, 0xb6, 0xc0)
	case i.Sym == "or":
		e.asmDisp([]byte{0x48, 0x0b}, regA, regB, int32(i.B)*8) // or rax, [rbx+a2*8]
		e.emit(0x0f, 0x95, 0xc0, 0x0f, 0xb6, 0xc0)
	default:
		panic(compileerr.Internal("emitBinop: unknown operator %q", i.Sym))
	}

	e.storeRax(i.Dst)
	if i.Byte && arithOpcode[i.Sym] != nil {
		e.maskByte(i.Dst)
	}
	if i.Byte && (i.Sym == "/" || i.Sym == "%") {
		e.maskByte(i.Dst)
	}
}
