package lower

import (
	"github.com/xyproto/pl67/internal/compileerr"
	"github.com/xyproto/pl67/internal/ir"
)

// compileNullPtr lowers `(ptr type)` and its multi-level forms like
// `(ptr ptr byte)`: a null pointer constant of the given pointer type.
func compileNullPtr(fenv *ir.Function, n *ir.List) (ir.TypeDef, int, error) {
	tp, err := ValidateTypeNode(n)
	if err != nil {
		return ir.TypeDef{}, -1, err
	}
	if !tp.IsPointer() {
		return ir.TypeDef{}, -1, compileerr.New(compileerr.Semantic, "expected a pointer type")
	}
	dst := fenv.Tmp()
	fenv.Emit(ir.InstrConst{Val: ir.ConstVal{Int: 0}, Dst: dst})
	return tp, dst, nil
}
