package lower

import (
	"github.com/xyproto/pl67/internal/compileerr"
	"github.com/xyproto/pl67/internal/ir"
)

// compileLoop lowers `(loop cond body)`: test, body, unconditional
// jump back to the test. The loop's labels live on the scope it opens
// (not the enclosing one), so a `break`/`continue` inside a later,
// sibling statement in the same enclosing block correctly fails to
// resolve to a finished loop's labels.
func compileLoop(fenv *ir.Function, items []ir.Node) (ir.TypeDef, int, error) {
	fenv.EnterScope()
	loopStart := fenv.NewLabel()
	loopEnd := fenv.NewLabel()
	fenv.Scope.LoopStart = loopStart
	fenv.Scope.LoopEnd = loopEnd

	fenv.SetLabel(loopStart)
	condType, condSlot, err := CompileExpr(fenv, items[1], true)
	if err != nil {
		fenv.LeaveScope()
		return ir.TypeDef{}, -1, err
	}
	if condType.IsVoid() || condSlot < 0 {
		fenv.LeaveScope()
		return ir.TypeDef{}, -1, compileerr.New(compileerr.Semantic, "bad condition type")
	}
	fenv.Emit(ir.InstrJmpf{Cond: condSlot, Label: loopEnd})

	if _, _, err := CompileExpr(fenv, items[2], false); err != nil {
		fenv.LeaveScope()
		return ir.TypeDef{}, -1, err
	}
	fenv.Emit(ir.InstrJmp{Label: loopStart})
	fenv.SetLabel(loopEnd)
	fenv.LeaveScope()
	return ir.VoidType(), -1, nil
}
