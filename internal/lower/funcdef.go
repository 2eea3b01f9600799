package lower

import (
	"github.com/xyproto/pl67/internal/compileerr"
	"github.com/xyproto/pl67/internal/ir"
)

// scanFunc registers a nested `(def (name rtype...) ((arg type...)...)
// body)` form in the enclosing function's current scope before its
// body is lowered, so sibling defs in the same scope group can call
// each other regardless of textual order (mutual recursion).
func scanFunc(fenv *ir.Function, node *ir.List) (*ir.Function, error) {
	items := node.Items
	header, ok := items[1].(*ir.List)
	if !ok || len(header.Items) < 1 {
		return nil, compileerr.New(compileerr.Semantic, "bad function header")
	}
	nameID, ok := header.Items[0].(*ir.Identifier)
	if !ok {
		return nil, compileerr.New(compileerr.Semantic, "bad function name")
	}
	rtype, err := ValidateTypeTail(header.Items)
	if err != nil {
		return nil, err
	}

	argsList, ok := items[2].(*ir.List)
	if !ok {
		return nil, compileerr.New(compileerr.Semantic, "bad argument list")
	}
	argTypes := make([]ir.TypeDef, 0, len(argsList.Items))
	for _, a := range argsList.Items {
		al, ok := a.(*ir.List)
		if !ok || len(al.Items) < 2 {
			return nil, compileerr.New(compileerr.Semantic, "bad argument")
		}
		t, err := ValidateTypeTail(al.Items)
		if err != nil {
			return nil, err
		}
		argTypes = append(argTypes, t)
	}

	key := ir.MangleKey(nameID.Name, argTypes)
	if _, exists := fenv.Scope.Funcs[key]; exists {
		return nil, compileerr.New(compileerr.Semantic, "duplicated function %q", nameID.Name)
	}

	child := fenv.Unit.New(fenv.ID)
	child.Name = nameID.Name
	child.ReturnType = rtype
	child.Signature = key
	fenv.Scope.Funcs[key] = ir.FuncBinding{ReturnType: rtype, ID: child.ID}
	return child, nil
}

// compileFunc lowers the body of a function already registered by
// scanFunc. A def form never yields a value to its enclosing scope.
func compileFunc(target *ir.Function, node *ir.List) (ir.TypeDef, int, error) {
	items := node.Items
	argsList := items[2].(*ir.List)
	if err := compileFuncBody(target, argsList, items[3]); err != nil {
		return ir.TypeDef{}, -1, err
	}
	return ir.VoidType(), -1, nil
}
