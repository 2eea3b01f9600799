package emit

import "github.com/xyproto/pl67/internal/ir"

// emitCall lowers InstrCall's four-field contract onto the RSP
// environment-pointer chain: it pushes the caller's own frame base
// when descending into a deeper lexical level, then copies the
// portion of the caller's own chain the callee still needs, then
// calls through the (as-yet-unresolved) function offset.
func emitCall(e *Emitter, i ir.InstrCall) {
	if i.CalleeLevel > i.CallerLevel {
		e.emit(0x53) // push rbx
	}
	n := i.CalleeLevel
	if i.CallerLevel < n {
		n = i.CallerLevel
	}
	n--
	for k := 0; k < n; k++ {
		e.emit(0xff, 0xb4, 0x24) // push [rsp + (calleeLevel-1)*8]
		e.i32(int32(i.CalleeLevel-1) * 8)
	}

	if i.ArgBase != 0 {
		e.emit(0x48, 0x81, 0xc3) // add rbx, argBase*8
		e.i32(int32(i.ArgBase) * 8)
	}
	e.callPlaceholder(i.Func)
	if i.ArgBase != 0 {
		e.emit(0x48, 0x81, 0xc3) // add rbx, -argBase*8
		e.i32(int32(-i.ArgBase) * 8)
	}

	e.emit(0x48, 0x81, 0xc4) // add rsp, (calleeLevel-1)*8
	e.i32(int32(i.CalleeLevel-1) * 8)
}
