// Command c67c compiles a single source file into either a standalone
// ELF64 executable or, with --exec, runs it immediately from memory.
package main

import (
	"flag"
	"fmt"
	"os"
	stdruntime "runtime"

	"github.com/xyproto/env/v2"

	"github.com/xyproto/pl67/internal/compileerr"
	"github.com/xyproto/pl67/internal/elfimg"
	"github.com/xyproto/pl67/internal/emit"
	"github.com/xyproto/pl67/internal/ir"
	"github.com/xyproto/pl67/internal/lower"
	"github.com/xyproto/pl67/internal/parse"
	pl67runtime "github.com/xyproto/pl67/internal/runtime"
)

// VerboseMode guards every diagnostic write, the same package-level
// bool + fmt.Fprintf(os.Stderr, ...) idiom the teacher's CLI uses
// throughout instead of a logging framework.
var VerboseMode bool

func main() {
	defaultAlignment := env.Int("C67_ALIGNMENT", 16)
	useColor := !env.Bool("NO_COLOR")

	execFlag := flag.Bool("exec", false, "compile and run immediately from memory instead of writing a file")
	printIR := flag.Bool("print-ir", false, "dump the lowered instruction stream to stderr before emitting code")
	output := flag.String("o", "a.out", "output executable path")
	flag.StringVar(output, "output", "a.out", "output executable path")
	alignment := flag.Int("alignment", defaultAlignment, "byte alignment for function/section padding")
	verbose := flag.Bool("v", false, "verbose mode")
	flag.BoolVar(verbose, "verbose", false, "verbose mode")
	flag.Parse()
	VerboseMode = *verbose

	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: c67c [flags] <source-file>")
		flag.PrintDefaults()
		os.Exit(1)
	}

	src, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "c67c: %v\n", err)
		os.Exit(1)
	}

	unit, err := compile(string(src))
	if err != nil {
		reportAndExit(err, useColor)
	}

	if *printIR {
		fmt.Fprint(os.Stderr, lower.DumpUnit(unit))
	}

	if *execFlag {
		runInMemory(unit, *alignment)
		return
	}
	writeELF(unit, *alignment, *output)
}

func compile(src string) (*ir.Unit, error) {
	root, err := parse.Program(src)
	if err != nil {
		return nil, err
	}
	return lower.Lower(root)
}

func runInMemory(unit *ir.Unit, alignment int) {
	conv := emit.SystemV
	if stdruntime.GOOS == "windows" {
		conv = emit.Microsoft
	}
	code := emit.EmitMemory(unit, conv, alignment)

	prog, err := pl67runtime.New(code)
	if err != nil {
		fmt.Fprintf(os.Stderr, "c67c: %v\n", err)
		os.Exit(1)
	}

	if VerboseMode {
		fmt.Fprintf(os.Stderr, "c67c: running %d bytes of machine code\n", len(code))
	}
	result := prog.Invoke()
	prog.Close()
	os.Exit(int(result))
}

func writeELF(unit *ir.Unit, alignment int, path string) {
	text := emit.EmitELFText(unit, alignment)
	image := elfimg.Build(text, alignment)
	if err := os.WriteFile(path, image, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "c67c: %v\n", err)
		os.Exit(1)
	}
	if VerboseMode {
		fmt.Fprintf(os.Stderr, "c67c: wrote %s (%d bytes)\n", path, len(image))
	}
}

func reportAndExit(err error, useColor bool) {
	if ce, ok := err.(*compileerr.Error); ok {
		fmt.Fprint(os.Stderr, ce.Format(useColor))
	} else {
		fmt.Fprintf(os.Stderr, "c67c: %v\n", err)
	}
	os.Exit(1)
}
