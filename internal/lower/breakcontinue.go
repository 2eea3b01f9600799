package lower

import (
	"github.com/xyproto/pl67/internal/compileerr"
	"github.com/xyproto/pl67/internal/ir"
)

func compileBreak(fenv *ir.Function) (ir.TypeDef, int, error) {
	if fenv.Scope.LoopEnd < 0 {
		return ir.TypeDef{}, -1, compileerr.New(compileerr.Semantic, "`break` outside a loop")
	}
	fenv.Emit(ir.InstrJmp{Label: fenv.Scope.LoopEnd})
	return ir.VoidType(), -1, nil
}

func compileContinue(fenv *ir.Function) (ir.TypeDef, int, error) {
	if fenv.Scope.LoopStart < 0 {
		return ir.TypeDef{}, -1, compileerr.New(compileerr.Semantic, "`continue` outside a loop")
	}
	fenv.Emit(ir.InstrJmp{Label: fenv.Scope.LoopStart})
	return ir.VoidType(), -1, nil
}
