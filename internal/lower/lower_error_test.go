package lower

import (
	"strings"
	"testing"

	"github.com/xyproto/pl67/internal/parse"
)

// TestLowerRejectsMalformedForms exercises property 2 (type-error
// determinism): for every form in §4.2, a canonical malformed variant
// produces a compile error and no ir.Unit. One row per form family,
// transcribed against each form's own compileerr.New call site rather
// than guessed.
func TestLowerRejectsMalformedForms(t *testing.T) {
	cases := []struct {
		name    string
		src     string
		wantErr string
	}{
		{"var-with-void-init", `(var x (do))`, "bad variable init type: void"},
		{"binop-type-mismatch", `(* 1 "a")`, "bad binop types"},
		{"break-outside-loop", `(break)`, "break` outside a loop"},
		{"pointer-to-void", `(var p (ptr void))`, "bad pointer element: ptr void is not allowed"},
		{"cast-pointer-to-byte", `(var x 1) (cast byte (ref x))`, "bad cast: cannot cast ptr int to byte"},
		{"unop-minus-on-pointer", `(- "a")`, "bad unop types"},
		{"if-with-void-condition", `(if (do) 1 2)`, "expect boolean condition"},
		{"loop-with-void-condition", `(loop (do) 0)`, "bad condition type"},
		{"call-undefined-function", `(call nosuchfunc 1)`, `undefined function "nosuchfunc"`},
		{"syscall-non-literal-number", `(var n 9) (syscall n 0)`, "bad syscall number"},
		{"return-type-mismatch", `(def (f void) () (return 1)) 0`, "bad return type"},
		{"peek-non-pointer", `(peek 1)`, "not a pointer: int"},
		{"poke-type-mismatch", `(var p (ptr int)) (poke p "x")`, "pointer type mismatch"},
		{"ref-non-name", `(ref 1)`, "`ref` target must be a name"},
		{"duplicated-function-signature", `(def (f int) ((x int)) 0) (def (f int) ((x int)) 0) 0`, `duplicated function "f"`},
		{"var-not-allowed-in-operand-position", `(+ (var x 1) 2)`, "variable declaration not allowed here"},
		{"duplicated-variable-name", `(var x 1) (var x 2)`, `duplicated name "x"`},
		{"empty-list", `()`, "empty list"},
		{"unknown-form-head", `(frobnicate 1 2)`, "unknown expression"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			root, err := parse.Program(c.src)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			unit, err := Lower(root)
			if err == nil {
				t.Fatalf("Lower(%q) succeeded, want error containing %q", c.src, c.wantErr)
			}
			if !strings.Contains(err.Error(), c.wantErr) {
				t.Errorf("Lower(%q) error = %q, want it to contain %q", c.src, err.Error(), c.wantErr)
			}
			if unit != nil {
				t.Errorf("Lower(%q) returned a non-nil unit alongside an error", c.src)
			}
		})
	}
}
