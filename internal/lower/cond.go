package lower

import (
	"github.com/xyproto/pl67/internal/compileerr"
	"github.com/xyproto/pl67/internal/ir"
)

// compileCond lowers `(if cond then [else])` (and its `?` alias).
// When both branches produce a value of the same type, that value is
// funneled through one shared stack slot so the caller sees a single
// result regardless of which branch ran; a type mismatch (or a
// missing else) makes the whole form void.
func compileCond(fenv *ir.Function, items []ir.Node) (ir.TypeDef, int, error) {
	lTrue := fenv.NewLabel()
	lFalse := fenv.NewLabel()
	fenv.EnterScope()

	condType, condSlot, err := CompileExpr(fenv, items[1], true)
	if err != nil {
		fenv.LeaveScope()
		return ir.TypeDef{}, -1, err
	}
	if condType.IsVoid() {
		fenv.LeaveScope()
		return ir.TypeDef{}, -1, compileerr.New(compileerr.Semantic, "expect boolean condition")
	}
	fenv.Emit(ir.InstrJmpf{Cond: condSlot, Label: lFalse})

	t1, a1, err := CompileExpr(fenv, items[2], false)
	if err != nil {
		fenv.LeaveScope()
		return ir.TypeDef{}, -1, err
	}
	if a1 >= 0 {
		moveTo(fenv, a1, fenv.StackTop)
	}

	t2, a2 := ir.VoidType(), -1
	hasElse := len(items) == 4
	if hasElse {
		fenv.Emit(ir.InstrJmp{Label: lTrue})
	}
	fenv.SetLabel(lFalse)
	if hasElse {
		t2, a2, err = CompileExpr(fenv, items[3], false)
		if err != nil {
			fenv.LeaveScope()
			return ir.TypeDef{}, -1, err
		}
		if a2 >= 0 {
			moveTo(fenv, a2, fenv.StackTop)
		}
	}
	fenv.SetLabel(lTrue)
	fenv.LeaveScope()

	if a1 < 0 || a2 < 0 || t1 != t2 {
		return ir.VoidType(), -1, nil
	}
	return t1, fenv.Tmp(), nil
}
