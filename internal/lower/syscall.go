package lower

import (
	"github.com/xyproto/pl67/internal/compileerr"
	"github.com/xyproto/pl67/internal/ir"
)

// compileSyscall lowers `(syscall num arg...)`. num must be a
// non-negative integer literal known at compile time; arguments keep
// their temporaries alive until the syscall instruction consumes
// them, then the stack top reverts as usual.
//
// Only *ir.IntLit is accepted here, not a byte literal, matching
// pl_comp_syscall in the original source, which only unwraps a
// ('val', ...) tuple for the syscall number.
func compileSyscall(fenv *ir.Function, items []ir.Node) (ir.TypeDef, int, error) {
	numLit, ok := items[1].(*ir.IntLit)
	if !ok || numLit.Value < 0 {
		return ir.TypeDef{}, -1, compileerr.New(compileerr.Semantic, "bad syscall number")
	}

	save := fenv.StackTop
	argSlots := make([]int, 0, len(items)-2)
	for _, a := range items[2:] {
		tp, slot, err := compileExprTmp(fenv, a, false)
		if err != nil {
			return ir.TypeDef{}, -1, err
		}
		if tp.IsVoid() {
			return ir.TypeDef{}, -1, compileerr.New(compileerr.Semantic, "bad syscall argument type: void")
		}
		argSlots = append(argSlots, slot)
	}
	fenv.StackTop = save

	fenv.Emit(ir.InstrSyscall{Base: fenv.StackTop, Num: numLit.Value, Args: argSlots})
	return ir.IntType(), fenv.Tmp(), nil
}
