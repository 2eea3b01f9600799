package emit

import (
	"github.com/xyproto/pl67/internal/compileerr"
	"github.com/xyproto/pl67/internal/ir"
)

// emitUnop covers both unop and unop8 (i.Byte true). `not` already
// produces a clean 0/1 via movzx; `-` is masked back into byte range
// when the operand is byte-typed, the same TODO the reference
// implementation left unresolved (`# TODO: binop8, unop8`).
func emitUnop(e *Emitter, i ir.InstrUnop) {
	e.loadRax(i.A)
	switch i.Sym {
	case "-":
		e.emit(0x48, 0xf7, 0xd8) // neg rax
	case "not":
		e.emit(0x48, 0x85, 0xc0, 0x0f, 0x94, 0xc0, 0x0f, 0xb6, 0xc0) // test; sete al; movzx
	default:
		panic(compileerr.Internal("emitUnop: unknown operator %q", i.Sym))
	}
	e.storeRax(i.Dst)
	if i.Byte && i.Sym == "-" {
		e.maskByte(i.Dst)
	}
}
