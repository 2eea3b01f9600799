package lower

import (
	"github.com/xyproto/pl67/internal/compileerr"
	"github.com/xyproto/pl67/internal/ir"
)

// CompileExpr lowers node and discards any temporaries it left above
// the result: the stack top is reset to the pre-call value (or, when
// allowVar is set, to the current local-variable count, which lets a
// `var` declaration inside a scope survive past this call). The
// result slot is always either that surviving local or a value moved
// to the (now current) stack top by the callee.
func CompileExpr(fenv *ir.Function, node ir.Node, allowVar bool) (ir.TypeDef, int, error) {
	save := fenv.StackTop
	tp, slot, err := compileExprTmp(fenv, node, allowVar)
	if err != nil {
		return ir.TypeDef{}, -1, err
	}
	if allowVar {
		fenv.StackTop = fenv.VarCount
	} else {
		fenv.StackTop = save
	}
	return tp, slot, nil
}

// compileExprTmp is the dispatcher: it inspects the shape of node and
// hands off to the form-specific lowering function. It preserves
// temporaries; only CompileExpr discards them.
func compileExprTmp(fenv *ir.Function, node ir.Node, allowVar bool) (ir.TypeDef, int, error) {
	switch n := node.(type) {
	case *ir.Identifier:
		return compileGetVar(fenv, n)
	case *ir.IntLit:
		return compileConstInt(fenv, n.Value)
	case *ir.ByteLit:
		return compileConstByte(fenv, n.Value)
	case *ir.StringLit:
		return compileConstString(fenv, n.Value)
	case *ir.List:
		return compileForm(fenv, n, allowVar)
	default:
		return ir.TypeDef{}, -1, compileerr.New(compileerr.Semantic, "unknown expression")
	}
}

var binops = map[string]bool{
	"%": true, "*": true, "+": true, "-": true, "/": true,
	"and": true, "or": true,
	"eq": true, "ge": true, "gt": true, "le": true, "lt": true, "ne": true,
}

func compileForm(fenv *ir.Function, n *ir.List, allowVar bool) (ir.TypeDef, int, error) {
	items := n.Items
	if len(items) == 0 {
		return ir.TypeDef{}, -1, compileerr.New(compileerr.Syntactic, "empty list")
	}
	head := ir.Head(n)

	switch {
	case len(items) == 3 && binops[head]:
		return compileBinop(fenv, items)
	case len(items) == 2 && (head == "-" || head == "not"):
		return compileUnop(fenv, items)
	case head == "do" || head == "then" || head == "else":
		return compileScope(fenv, items)
	case head == "var" && len(items) == 3:
		if !allowVar {
			return ir.TypeDef{}, -1, compileerr.New(compileerr.Semantic, "variable declaration not allowed here")
		}
		return compileNewVar(fenv, items)
	case head == "set" && len(items) == 3:
		return compileSetVar(fenv, items)
	case (len(items) == 3 || len(items) == 4) && (head == "?" || head == "if"):
		return compileCond(fenv, items)
	case head == "loop" && len(items) == 3:
		return compileLoop(fenv, items)
	case head == "break" && len(items) == 1:
		return compileBreak(fenv)
	case head == "continue" && len(items) == 1:
		return compileContinue(fenv)
	case head == "call" && len(items) >= 2:
		return compileCall(fenv, items)
	case head == "syscall" && len(items) >= 2:
		return compileSyscall(fenv, items)
	case head == "return" && (len(items) == 1 || len(items) == 2):
		return compileReturn(fenv, items)
	case head == "ptr":
		return compileNullPtr(fenv, n)
	case head == "cast" && len(items) == 3:
		return compileCast(fenv, items)
	case head == "peek" && len(items) == 2:
		return compilePeek(fenv, items)
	case head == "poke" && len(items) == 3:
		return compilePoke(fenv, items)
	case head == "ref" && len(items) == 2:
		return compileRef(fenv, items)
	case head == "debug" && len(items) == 1:
		fenv.Emit(ir.InstrDebug{})
		return ir.VoidType(), -1, nil
	}
	return ir.TypeDef{}, -1, compileerr.New(compileerr.Semantic, "unknown expression: %s", n.String())
}

// moveTo emits a mov only if src and dst differ, mirroring move_to.
func moveTo(fenv *ir.Function, src, dst int) int {
	if src != dst {
		fenv.Emit(ir.InstrMov{Src: src, Dst: dst})
	}
	return dst
}
