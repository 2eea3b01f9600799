package lower

import "github.com/xyproto/pl67/internal/ir"

// compileScope lowers `(do ...)`, `(then ...)`, and `(else ...)`: a
// new scope whose statements are split into groups by `var`
// declarations. Within one group, sibling `def`s are pre-registered
// before any of their bodies are compiled, so they can call each
// other regardless of definition order; a `var` starts a fresh group
// because the compiler cannot yet know its type while scanning ahead.
func compileScope(fenv *ir.Function, items []ir.Node) (ir.TypeDef, int, error) {
	fenv.EnterScope()
	tp, slot := ir.VoidType(), -1

	var groups [][]ir.Node
	groups = append(groups, nil)
	for _, kid := range items[1:] {
		cur := len(groups) - 1
		groups[cur] = append(groups[cur], kid)
		if ir.Head(kid) == "var" {
			groups = append(groups, nil)
		}
	}

	for _, g := range groups {
		var pending []*ir.Function
		for _, kid := range g {
			if list, ok := kid.(*ir.List); ok && ir.Head(list) == "def" && len(list.Items) == 4 {
				f, err := scanFunc(fenv, list)
				if err != nil {
					fenv.LeaveScope()
					return ir.TypeDef{}, -1, err
				}
				pending = append(pending, f)
			}
		}
		for _, kid := range g {
			if list, ok := kid.(*ir.List); ok && ir.Head(list) == "def" && len(list.Items) == 4 {
				target := pending[0]
				pending = pending[1:]
				var err error
				tp, slot, err = compileFunc(target, list)
				if err != nil {
					fenv.LeaveScope()
					return ir.TypeDef{}, -1, err
				}
				continue
			}
			var err error
			tp, slot, err = CompileExpr(fenv, kid, true)
			if err != nil {
				fenv.LeaveScope()
				return ir.TypeDef{}, -1, err
			}
		}
	}

	fenv.LeaveScope()
	if slot >= fenv.StackTop {
		slot = moveTo(fenv, slot, fenv.Tmp())
	}
	return tp, slot, nil
}
