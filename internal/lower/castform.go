package lower

import (
	"github.com/xyproto/pl67/internal/compileerr"
	"github.com/xyproto/pl67/internal/ir"
)

// compileCast lowers `(cast type expr)`. Most accepted casts are pure
// reinterpretations of the same bits; narrowing an int down to a byte
// is the one case that emits an instruction (an AND mask).
func compileCast(fenv *ir.Function, items []ir.Node) (ir.TypeDef, int, error) {
	tp, err := ValidateTypeNode(items[1])
	if err != nil {
		return ir.TypeDef{}, -1, err
	}
	valType, slot, err := compileExprTmp(fenv, items[2], false)
	if err != nil {
		return ir.TypeDef{}, -1, err
	}
	ok, narrow := ir.CanCastTo(valType, tp)
	if !ok {
		return ir.TypeDef{}, -1, compileerr.New(compileerr.Semantic, "bad cast: cannot cast %s to %s", valType, tp)
	}
	if narrow {
		fenv.Emit(ir.InstrCast8{Var: slot})
	}
	return tp, slot, nil
}
