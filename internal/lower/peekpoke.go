package lower

import (
	"github.com/xyproto/pl67/internal/compileerr"
	"github.com/xyproto/pl67/internal/ir"
)

// compilePeek lowers `(peek ptr)`: dereference a pointer, reading a
// full word or, for `ptr byte`, a single byte.
func compilePeek(fenv *ir.Function, items []ir.Node) (ir.TypeDef, int, error) {
	tp, slot, err := CompileExpr(fenv, items[1], false)
	if err != nil {
		return ir.TypeDef{}, -1, err
	}
	if !tp.IsPointer() {
		return ir.TypeDef{}, -1, compileerr.New(compileerr.Semantic, "not a pointer: %s", tp)
	}
	deref := ir.Deref(tp)
	dst := fenv.Tmp()
	fenv.Emit(ir.InstrPeek{Ptr: slot, Dst: dst, Byte: deref == ir.ByteType()})
	return deref, dst, nil
}

// compilePoke lowers `(poke ptr value)`. The value is evaluated
// before the pointer so that the pointer expression may itself
// reference the value's type; the poke expression's own result is the
// value that was written.
func compilePoke(fenv *ir.Function, items []ir.Node) (ir.TypeDef, int, error) {
	save := fenv.StackTop
	valType, valSlot, err := compileExprTmp(fenv, items[2], false)
	if err != nil {
		return ir.TypeDef{}, -1, err
	}
	ptrType, ptrSlot, err := compileExprTmp(fenv, items[1], false)
	if err != nil {
		return ir.TypeDef{}, -1, err
	}
	if ptrType != ir.PointerTo(valType) {
		return ir.TypeDef{}, -1, compileerr.New(compileerr.Semantic, "pointer type mismatch: %s does not point to %s", ptrType, valType)
	}
	fenv.Emit(ir.InstrPoke{Ptr: ptrSlot, Val: valSlot, Byte: valType == ir.ByteType()})
	fenv.StackTop = save
	return valType, moveTo(fenv, valSlot, fenv.Tmp()), nil
}
