package lower

import (
	"fmt"
	"strings"

	"github.com/xyproto/pl67/internal/ir"
)

// DumpUnit renders a lowered Unit as a plain-text instruction-stream
// listing, one section per function, with resolved label names
// (`L0:`, `L1:`, ...) interleaved before the instruction that label
// targets. It exists for `cmd/c67c --print-ir` and for golden lowering
// tests, mirroring the self-test dumps the reference implementation's
// own test harness prints.
func DumpUnit(unit *ir.Unit) string {
	var sb strings.Builder
	for _, fn := range unit.Funcs {
		dumpFunc(&sb, fn)
	}
	return sb.String()
}

func dumpFunc(sb *strings.Builder, fn *ir.Function) {
	fmt.Fprintf(sb, "func #%d %s%s -> %s (level %d)\n", fn.ID, fn.Name, fn.Signature, fn.ReturnType, fn.Level)

	labelAt := make(map[int][]int) // instruction index -> label ids resolved there
	for id, at := range fn.Labels {
		if at >= 0 {
			labelAt[at] = append(labelAt[at], id)
		}
	}

	for idx, instr := range fn.Instructions {
		for _, id := range labelAt[idx] {
			fmt.Fprintf(sb, "  L%d:\n", id)
		}
		fmt.Fprintf(sb, "    %04d  %s\n", idx, dumpInstr(instr))
	}
	fmt.Fprintln(sb)
}

func dumpInstr(instr ir.Instruction) string {
	switch i := instr.(type) {
	case ir.InstrConst:
		if i.Val.IsStr {
			return fmt.Sprintf("const   %d <- %q", i.Dst, i.Val.Str)
		}
		return fmt.Sprintf("const   %d <- %d", i.Dst, i.Val.Int)
	case ir.InstrMov:
		return fmt.Sprintf("mov     %d <- %d", i.Dst, i.Src)
	case ir.InstrBinop:
		return fmt.Sprintf("binop%s  %d <- %d %s %d", byteSuffix(i.Byte), i.Dst, i.A, i.Sym, i.B)
	case ir.InstrUnop:
		return fmt.Sprintf("unop%s   %d <- %s %d", byteSuffix(i.Byte), i.Dst, i.Sym, i.A)
	case ir.InstrJmpf:
		return fmt.Sprintf("jmpf    %d, L%d", i.Cond, i.Label)
	case ir.InstrJmp:
		return fmt.Sprintf("jmp     L%d", i.Label)
	case ir.InstrCall:
		return fmt.Sprintf("call    #%d, args@%d (level %d -> %d)", i.Func, i.ArgBase, i.CallerLevel, i.CalleeLevel)
	case ir.InstrRet:
		if i.Slot < 0 {
			return "ret"
		}
		return fmt.Sprintf("ret     %d", i.Slot)
	case ir.InstrGetEnv:
		return fmt.Sprintf("get_env %d <- L%d[%d]", i.Dst, i.Level, i.Var)
	case ir.InstrSetEnv:
		return fmt.Sprintf("set_env L%d[%d] <- %d", i.Level, i.Var, i.Src)
	case ir.InstrRefVar:
		return fmt.Sprintf("ref_var %d <- &%d", i.Dst, i.Var)
	case ir.InstrRefEnv:
		return fmt.Sprintf("ref_env %d <- &L%d[%d]", i.Dst, i.Level, i.Var)
	case ir.InstrLea:
		return fmt.Sprintf("lea     %d <- %d + %d*%d", i.Dst, i.A, i.B, i.Scale)
	case ir.InstrPeek:
		return fmt.Sprintf("peek%s   %d <- *%d", byteSuffix(i.Byte), i.Dst, i.Ptr)
	case ir.InstrPoke:
		return fmt.Sprintf("poke%s   *%d <- %d", byteSuffix(i.Byte), i.Ptr, i.Val)
	case ir.InstrCast8:
		return fmt.Sprintf("cast8   %d", i.Var)
	case ir.InstrSyscall:
		return fmt.Sprintf("syscall %d <- #%d %v", i.Base, i.Num, i.Args)
	case ir.InstrDebug:
		return "debug"
	default:
		return fmt.Sprintf("?%T", instr)
	}
}

func byteSuffix(b bool) string {
	if b {
		return "8"
	}
	return " "
}
