package runtime_test

import (
	stdruntime "runtime"
	"testing"

	"github.com/xyproto/pl67/internal/emit"
	"github.com/xyproto/pl67/internal/lower"
	"github.com/xyproto/pl67/internal/parse"
	pl67runtime "github.com/xyproto/pl67/internal/runtime"
)

// compileAndRun runs the whole pipeline in memory: parse, lower, emit,
// map executable, invoke, unmap. This is run.go's compileAndRun shape
// (compile, run, compare a result) adapted from "write an executable
// and exec.Command it" to "invoke the JIT'd function pointer directly",
// since this language's externally observable result is a return
// value rather than stdout.
func compileAndRun(t *testing.T, src string) int64 {
	t.Helper()
	root, err := parse.Program(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	unit, err := lower.Lower(root)
	if err != nil {
		t.Fatalf("lower: %v", err)
	}
	conv := emit.SystemV
	if stdruntime.GOOS == "windows" {
		conv = emit.Microsoft
	}
	code := emit.EmitMemory(unit, conv, 16)

	prog, err := pl67runtime.New(code)
	if err != nil {
		t.Fatalf("runtime.New: %v", err)
	}
	defer prog.Close()
	return prog.Invoke()
}

// TestPropertyLiteralRoundTrip exercises property 1: every integer
// literal a compiled `main` returns comes back out unchanged, across
// the boundary values spec.md §8 names (zero, one, minus one, the
// int32 range edges, and the full int64 range edge). The negation of
// 0x80000000 is written via the unary `-` operator because the
// tokenizer's "0x" prefix recognition does not compose with a leading
// "-" (parse.go's tryInt, ported from pl_comp.py's try_int).
func TestPropertyLiteralRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want int64
	}{
		{"zero", "(return 0)", 0},
		{"one", "(return 1)", 1},
		{"minus-one", "(return -1)", -1},
		{"int32-max", "(return 0x7FFFFFFF)", 0x7FFFFFFF},
		{"int32-min-magnitude", "(return 0x80000000)", 0x80000000},
		{"negated-int32-min-magnitude", "(return (- 0x80000000))", -0x80000000},
		{"int64-max", "(return 0x7FFFFFFFFFFFFFFF)", 0x7FFFFFFFFFFFFFFF},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := compileAndRun(t, c.src); got != c.want {
				t.Errorf("compileAndRun(%q) = %d, want %d", c.src, got, c.want)
			}
		})
	}
}

// TestEndToEndNestedClosureCapture runs the f/g shape from
// lower_golden_test.go's TestLowerGoldenNestedClosure all the way
// through emission and execution: g (level 3) reads b from its
// grandparent's frame and reads/writes a in its parent's frame, then f
// returns the mutated a. This exercises get_env/set_env at the byte
// and execution level, not just the IR shape, since that's the
// path a RSP-addressing bug in the encoder could crash on without any
// other test in this package noticing.
func TestEndToEndNestedClosureCapture(t *testing.T) {
	const src = `
		(var b 456)
		(def (f int) () (do
			(var a 123)
			(def (g void) () (do
				(set a (+ b a))
			))
			(call g)
			a
		))
		(return (call f))
	`
	if got, want := compileAndRun(t, src), int64(579); got != want {
		t.Errorf("compileAndRun(nested closure) = %d, want %d", got, want)
	}
}

// TestEndToEndScenarios runs spec.md §8's scenarios A through E (F is
// Linux-only and lives in e2e_linux_test.go) through the full
// pipeline and checks the returned int64.
func TestEndToEndScenarios(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want int64
	}{
		{
			name: "A-simple-arithmetic",
			src:  `(return (+ 2 3))`,
			want: 5,
		},
		{
			name: "B-var-and-subtraction",
			src:  `(var x 10) (var y 4) (return (- x y))`,
			want: 6,
		},
		{
			name: "C-string-constant-peek",
			src:  `(var s "hi") (return (cast int (peek s)))`,
			want: 104, // 'h'
		},
		{
			name: "D-loop-accumulator",
			src: `
				(var n 0) (var i 1)
				(loop (le i 10) (do
					(set n (+ n i))
					(set i (+ i 1))
				))
				(return n)
			`,
			want: 55,
		},
		{
			name: "E-recursive-factorial",
			src: `
				(def (fact int) ((n int)) (if (le n 1) 1 (* n (call fact (- n 1)))))
				(return (call fact 5))
			`,
			want: 120,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := compileAndRun(t, c.src); got != c.want {
				t.Errorf("compileAndRun(%q) = %d, want %d", c.src, got, c.want)
			}
		})
	}
}
