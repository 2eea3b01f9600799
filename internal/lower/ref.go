package lower

import (
	"github.com/xyproto/pl67/internal/compileerr"
	"github.com/xyproto/pl67/internal/ir"
)

// compileRef lowers `(ref name)`, taking the address of a variable —
// local or captured from an enclosing function.
func compileRef(fenv *ir.Function, items []ir.Node) (ir.TypeDef, int, error) {
	nameID, ok := items[1].(*ir.Identifier)
	if !ok {
		return ir.TypeDef{}, -1, compileerr.New(compileerr.Semantic, "`ref` target must be a name")
	}
	level, binding, ok := fenv.GetVar(nameID.Name)
	if !ok {
		return ir.TypeDef{}, -1, compileerr.New(compileerr.Semantic, "undefined name %q", nameID.Name)
	}
	dst := fenv.Tmp()
	if level == fenv.Level {
		fenv.Emit(ir.InstrRefVar{Var: binding.Slot, Dst: dst})
	} else {
		fenv.Emit(ir.InstrRefEnv{Level: level, Var: binding.Slot, Dst: dst})
	}
	return ir.PointerTo(binding.Type), dst, nil
}
