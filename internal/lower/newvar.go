package lower

import (
	"github.com/xyproto/pl67/internal/compileerr"
	"github.com/xyproto/pl67/internal/ir"
)

// compileNewVar lowers `(var name init)`, declaring a fresh local in
// the current scope and initializing it in one step; a void
// initializer is rejected since a variable must always hold a value.
func compileNewVar(fenv *ir.Function, items []ir.Node) (ir.TypeDef, int, error) {
	nameID, ok := items[1].(*ir.Identifier)
	if !ok {
		return ir.TypeDef{}, -1, compileerr.New(compileerr.Semantic, "bad variable name")
	}
	tp, slot, err := CompileExpr(fenv, items[2], false)
	if err != nil {
		return ir.TypeDef{}, -1, err
	}
	if slot < 0 {
		return ir.TypeDef{}, -1, compileerr.New(compileerr.Semantic, "bad variable init type: void")
	}
	if _, exists := fenv.Scope.Vars[nameID.Name]; exists {
		return ir.TypeDef{}, -1, compileerr.New(compileerr.Semantic, "duplicated name %q", nameID.Name)
	}
	dst := fenv.AddVar(nameID.Name, tp)
	return tp, moveTo(fenv, slot, dst), nil
}
