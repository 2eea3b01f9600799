package lower

import (
	"github.com/xyproto/pl67/internal/compileerr"
	"github.com/xyproto/pl67/internal/ir"
)

var cmpOps = map[string]bool{
	"eq": true, "ge": true, "gt": true, "le": true, "lt": true, "ne": true,
}

// typeHead reduces a type to the single word used for shape matching:
// "ptr" for any pointer regardless of level or base, else the scalar
// name.
func typeHead(t ir.TypeDef) string {
	if t.IsPointer() {
		return "ptr"
	}
	return t.Scalar.String()
}

// compileBinop lowers `(op lhs rhs)`. Operands are evaluated with
// their temporaries preserved, then those temporaries are discarded
// together (their slots remain valid to read, only the stack top
// reverts) before the result is computed. There is no short-circuit
// evaluation of `and`/`or`: both operands are always evaluated.
func compileBinop(fenv *ir.Function, items []ir.Node) (ir.TypeDef, int, error) {
	op := items[0].(*ir.Identifier).Name
	save := fenv.StackTop
	t1, a1, err := compileExprTmp(fenv, items[1], false)
	if err != nil {
		return ir.TypeDef{}, -1, err
	}
	t2, a2, err := compileExprTmp(fenv, items[2], false)
	if err != nil {
		return ir.TypeDef{}, -1, err
	}
	fenv.StackTop = save

	if op == "+" && typeHead(t1) == "int" && typeHead(t2) == "ptr" {
		t1, a1, t2, a2 = t2, a2, t1, a1
	}
	if (op == "+" || op == "-") && typeHead(t1) == "ptr" && typeHead(t2) == "int" {
		scale := 8
		if t1 == ir.PointerTo(ir.ByteType()) {
			scale = 1
		}
		if op == "-" {
			scale = -scale
		}
		dst := fenv.Tmp()
		fenv.Emit(ir.InstrLea{A: a1, B: a2, Scale: scale, Dst: dst})
		return t1, dst, nil
	}
	if op == "-" && typeHead(t1) == "ptr" && typeHead(t2) == "ptr" {
		if t1 != t2 {
			return ir.TypeDef{}, -1, compileerr.New(compileerr.Semantic, "comparison of different pointer types")
		}
		if t1 != ir.PointerTo(ir.ByteType()) {
			return ir.TypeDef{}, -1, compileerr.New(compileerr.Unsupported, "pointer subtraction is only supported for `ptr byte`")
		}
		dst := fenv.Tmp()
		fenv.Emit(ir.InstrBinop{Sym: "-", A: a1, B: a2, Dst: dst})
		return ir.IntType(), dst, nil
	}

	ints := t1 == t2 && (t1.Scalar == ir.Int || t1.Scalar == ir.Byte) && !t1.IsPointer()
	ptrCmp := t1 == t2 && t1.IsPointer() && cmpOps[op]
	if !ints && !ptrCmp {
		return ir.TypeDef{}, -1, compileerr.New(compileerr.Semantic, "bad binop types: %s %s %s", t1, op, t2)
	}
	rtype := t1
	if cmpOps[op] {
		rtype = ir.IntType()
	}
	byteOp := t1 == t2 && t1 == ir.ByteType()
	dst := fenv.Tmp()
	fenv.Emit(ir.InstrBinop{Sym: op, A: a1, B: a2, Dst: dst, Byte: byteOp})
	return rtype, dst, nil
}
