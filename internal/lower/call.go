package lower

import (
	"github.com/xyproto/pl67/internal/compileerr"
	"github.com/xyproto/pl67/internal/ir"
)

// compileCall lowers `(call name arg...)`. Arguments are evaluated
// left to right and packed into contiguous stack slots immediately
// below the call so the callee can address them starting at arg_base;
// the callee is resolved by mangled key only after every argument's
// type is known, so overload resolution sees the full signature.
func compileCall(fenv *ir.Function, items []ir.Node) (ir.TypeDef, int, error) {
	nameID, ok := items[1].(*ir.Identifier)
	if !ok {
		return ir.TypeDef{}, -1, compileerr.New(compileerr.Semantic, "bad call target")
	}
	argNodes := items[2:]
	argTypes := make([]ir.TypeDef, 0, len(argNodes))
	for _, a := range argNodes {
		tp, slot, err := CompileExpr(fenv, a, false)
		if err != nil {
			return ir.TypeDef{}, -1, err
		}
		argTypes = append(argTypes, tp)
		moveTo(fenv, slot, fenv.Tmp())
	}
	fenv.StackTop -= len(argNodes)

	key := ir.MangleKey(nameID.Name, argTypes)
	binding, ok := fenv.GetFunc(key)
	if !ok {
		return ir.TypeDef{}, -1, compileerr.New(compileerr.Semantic, "undefined function %q", nameID.Name)
	}
	callee := fenv.Unit.Funcs[binding.ID]

	fenv.Emit(ir.InstrCall{
		Func:        binding.ID,
		ArgBase:     fenv.StackTop,
		CallerLevel: fenv.Level,
		CalleeLevel: callee.Level,
	})
	dst := -1
	if !binding.ReturnType.IsVoid() {
		dst = fenv.Tmp()
	}
	return binding.ReturnType, dst, nil
}
