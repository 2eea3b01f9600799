// Package lower implements the semantic analyzer and IR generator: it
// walks the parsed ir.Node tree, type-checks every form, and emits the
// virtual-machine Instruction stream for each ir.Function it
// discovers, direct-porting the pl_comp_* family of the reference
// implementation form for form.
package lower

import (
	"github.com/xyproto/pl67/internal/compileerr"
	"github.com/xyproto/pl67/internal/ir"
)

// Lower type-checks and lowers a whole program, rooted at the implicit
// `(def (main int) () (do ...))` form the parser always produces, into
// an ir.Unit ready for the emitter.
func Lower(root ir.Node) (*ir.Unit, error) {
	def, ok := root.(*ir.List)
	if !ok || len(def.Items) != 4 || ir.Head(def) != "def" {
		return nil, compileerr.New(compileerr.Semantic, "malformed program root")
	}
	unit := &ir.Unit{}
	main := unit.New(ir.NoFunc)
	main.Name = "main"
	main.ReturnType = ir.IntType()

	argsList, ok := def.Items[2].(*ir.List)
	if !ok || len(argsList.Items) != 0 {
		return nil, compileerr.New(compileerr.Semantic, "main takes no arguments")
	}
	if err := compileFuncBody(main, argsList, def.Items[3]); err != nil {
		return nil, err
	}
	return unit, nil
}

// compileFuncBody treats args as local variables and lowers body as
// the function's return-checked expression, mirroring pl_comp_func.
// fenv must already have its ReturnType set.
func compileFuncBody(fenv *ir.Function, argsList *ir.List, body ir.Node) error {
	for _, argNode := range argsList.Items {
		argList, ok := argNode.(*ir.List)
		if !ok || len(argList.Items) < 2 {
			return compileerr.New(compileerr.Semantic, "bad argument")
		}
		nameID, ok := argList.Items[0].(*ir.Identifier)
		if !ok {
			return compileerr.New(compileerr.Semantic, "bad argument name")
		}
		argType, err := ValidateTypeTail(argList.Items)
		if err != nil {
			return err
		}
		if argType.IsVoid() {
			return compileerr.New(compileerr.Semantic, "bad argument type: void")
		}
		fenv.AddVar(nameID.Name, argType)
	}

	bodyType, slot, err := CompileExpr(fenv, body, false)
	if err != nil {
		return err
	}
	if !fenv.ReturnType.IsVoid() && fenv.ReturnType != bodyType {
		return compileerr.New(compileerr.Semantic, "bad function body type: expected %s, got %s", fenv.ReturnType, bodyType)
	}
	if fenv.ReturnType.IsVoid() {
		slot = -1
	}
	fenv.Emit(ir.InstrRet{Slot: slot})
	return nil
}
