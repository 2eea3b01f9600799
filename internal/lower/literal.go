package lower

import (
	"github.com/xyproto/pl67/internal/compileerr"
	"github.com/xyproto/pl67/internal/ir"
)

// compileGetVar reads a variable reference: a local read costs
// nothing extra, a non-local read costs a get_env into a fresh
// temporary (the environment-pointer chain, spec.md §5).
func compileGetVar(fenv *ir.Function, id *ir.Identifier) (ir.TypeDef, int, error) {
	level, binding, ok := fenv.GetVar(id.Name)
	if !ok {
		return ir.TypeDef{}, -1, compileerr.At(compileerr.Semantic, loc(id.Loc), "undefined name %q", id.Name)
	}
	if level == fenv.Level {
		return binding.Type, binding.Slot, nil
	}
	dst := fenv.Tmp()
	fenv.Emit(ir.InstrGetEnv{Level: level, Var: binding.Slot, Dst: dst})
	return binding.Type, dst, nil
}

func compileConstInt(fenv *ir.Function, v int64) (ir.TypeDef, int, error) {
	dst := fenv.Tmp()
	fenv.Emit(ir.InstrConst{Val: ir.ConstVal{Int: v}, Dst: dst})
	return ir.IntType(), dst, nil
}

func compileConstByte(fenv *ir.Function, v uint8) (ir.TypeDef, int, error) {
	dst := fenv.Tmp()
	fenv.Emit(ir.InstrConst{Val: ir.ConstVal{Int: int64(v)}, Dst: dst})
	return ir.ByteType(), dst, nil
}

func compileConstString(fenv *ir.Function, s string) (ir.TypeDef, int, error) {
	dst := fenv.Tmp()
	fenv.Emit(ir.InstrConst{Val: ir.ConstVal{Str: s, IsStr: true}, Dst: dst})
	return ir.PointerTo(ir.ByteType()), dst, nil
}
