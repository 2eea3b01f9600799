package lower

import (
	"github.com/xyproto/pl67/internal/compileerr"
	"github.com/xyproto/pl67/internal/ir"
)

// compileReturn lowers `(return [expr])`. A bare `(return)` yields
// void.
func compileReturn(fenv *ir.Function, items []ir.Node) (ir.TypeDef, int, error) {
	tp, slot := ir.VoidType(), -1
	if len(items) == 2 {
		var err error
		tp, slot, err = compileExprTmp(fenv, items[1], false)
		if err != nil {
			return ir.TypeDef{}, -1, err
		}
	}
	if tp != fenv.ReturnType {
		return ir.TypeDef{}, -1, compileerr.New(compileerr.Semantic, "bad return type: expected %s, got %s", fenv.ReturnType, tp)
	}
	fenv.Emit(ir.InstrRet{Slot: slot})
	return tp, slot, nil
}
