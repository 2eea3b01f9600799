package lower

import (
	"github.com/xyproto/pl67/internal/compileerr"
	"github.com/xyproto/pl67/internal/ir"
)

// compileUnop lowers `(- x)` (negation) and `(not x)` (logical not,
// producing a boolean int regardless of the operand's scalar).
func compileUnop(fenv *ir.Function, items []ir.Node) (ir.TypeDef, int, error) {
	op := items[0].(*ir.Identifier).Name
	t1, a1, err := CompileExpr(fenv, items[1], false)
	if err != nil {
		return ir.TypeDef{}, -1, err
	}

	rtype := t1
	byteOp := false
	switch op {
	case "-":
		if t1.IsPointer() || (t1.Scalar != ir.Int && t1.Scalar != ir.Byte) {
			return ir.TypeDef{}, -1, compileerr.New(compileerr.Semantic, "bad unop types: -%s", t1)
		}
		if t1 == ir.ByteType() {
			byteOp = true
		}
	case "not":
		if !t1.IsPointer() && t1.Scalar != ir.Int && t1.Scalar != ir.Byte {
			return ir.TypeDef{}, -1, compileerr.New(compileerr.Semantic, "bad unop types: not %s", t1)
		}
		rtype = ir.IntType()
	}
	dst := fenv.Tmp()
	fenv.Emit(ir.InstrUnop{Sym: op, A: a1, Dst: dst, Byte: byteOp})
	return rtype, dst, nil
}
