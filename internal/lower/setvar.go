package lower

import (
	"github.com/xyproto/pl67/internal/compileerr"
	"github.com/xyproto/pl67/internal/ir"
)

// compileSetVar lowers `(set name expr)`. Assigning to a local is a
// plain move; assigning to a variable captured from an enclosing
// function goes through set_env instead.
func compileSetVar(fenv *ir.Function, items []ir.Node) (ir.TypeDef, int, error) {
	nameID, ok := items[1].(*ir.Identifier)
	if !ok {
		return ir.TypeDef{}, -1, compileerr.New(compileerr.Semantic, "bad variable name")
	}
	level, binding, ok := fenv.GetVar(nameID.Name)
	if !ok {
		return ir.TypeDef{}, -1, compileerr.New(compileerr.Semantic, "undefined name %q", nameID.Name)
	}
	tp, slot, err := CompileExpr(fenv, items[2], false)
	if err != nil {
		return ir.TypeDef{}, -1, err
	}
	if binding.Type != tp {
		return ir.TypeDef{}, -1, compileerr.New(compileerr.Semantic, "bad variable set type: %q is %s, got %s", nameID.Name, binding.Type, tp)
	}

	if level == fenv.Level {
		return binding.Type, moveTo(fenv, slot, binding.Slot), nil
	}
	fenv.Emit(ir.InstrSetEnv{Level: level, Var: binding.Slot, Src: slot})
	return binding.Type, moveTo(fenv, slot, fenv.Tmp()), nil
}
