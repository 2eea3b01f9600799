package runtime

// callAsm jumps into fn with arg loaded into whichever register this
// build's calling convention expects as the first argument (see
// call_sysv_amd64.s / call_ms_amd64.s), then returns fn's rax. It
// bypasses Go's own calling convention entirely — fn is raw machine
// code emitted by internal/emit, not a Go function value.
func callAsm(fn, arg uintptr) int64
