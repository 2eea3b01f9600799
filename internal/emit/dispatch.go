package emit

import (
	"github.com/xyproto/pl67/internal/compileerr"
	"github.com/xyproto/pl67/internal/ir"
)

// emitInstruction dispatches one lowered instruction to its byte
// template. The switch order follows ir.instruction.go's Op
// declaration order.
func emitInstruction(e *Emitter, instr ir.Instruction) {
	switch i := instr.(type) {
	case ir.InstrConst:
		emitConst(e, i)
	case ir.InstrMov:
		emitMov(e, i)
	case ir.InstrBinop:
		emitBinop(e, i)
	case ir.InstrUnop:
		emitUnop(e, i)
	case ir.InstrJmpf:
		emitJmpf(e, i)
	case ir.InstrJmp:
		emitJmp(e, i)
	case ir.InstrCall:
		emitCall(e, i)
	case ir.InstrRet:
		emitRet(e, i)
	case ir.InstrGetEnv:
		emitGetEnv(e, i)
	case ir.InstrSetEnv:
		emitSetEnv(e, i)
	case ir.InstrRefVar:
		emitRefVar(e, i)
	case ir.InstrRefEnv:
		emitRefEnv(e, i)
	case ir.InstrLea:
		emitLea(e, i)
	case ir.InstrPeek:
		emitPeek(e, i)
	case ir.InstrPoke:
		emitPoke(e, i)
	case ir.InstrCast8:
		emitCast8(e, i)
	case ir.InstrSyscall:
		emitSyscall(e, i)
	case ir.InstrDebug:
		emitDebug(e, i)
	default:
		panic(compileerr.Internal("emitInstruction: unhandled instruction %T", instr))
	}
}
