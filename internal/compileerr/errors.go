// Package compileerr implements the compiler's error taxonomy: every
// fatal condition raised while parsing, lowering, or emitting a
// program is a compileerr.Error carrying a Category and a
// human-readable message naming the offending form's shape.
package compileerr

import (
	"fmt"
	"strings"
)

// Category classifies a compiler error into one of the taxonomy
// buckets from the error handling design: Syntactic errors come from
// the reader, Semantic and Unsupported from lowering, Emission from
// the native code emitter (always an internal bug, never a user
// mistake).
type Category int

const (
	Syntactic Category = iota
	Semantic
	Unsupported
	Emission
)

func (c Category) String() string {
	switch c {
	case Syntactic:
		return "syntax error"
	case Semantic:
		return "semantic error"
	case Unsupported:
		return "unsupported"
	case Emission:
		return "internal error"
	default:
		return "error"
	}
}

// Location is a position in the source text. Line and Column are
// 1-based; a zero Line means "no location available" (e.g. for
// Emission errors, which describe a bug rather than a source span).
type Location struct {
	Line   int
	Column int
}

func (l Location) String() string {
	if l.Line == 0 {
		return "?"
	}
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// Error is a single compilation failure. Compilation stops at the
// first Error raised — there is no per-expression recovery, matching
// the fatal-only error handling design.
type Error struct {
	Category Category
	Message  string
	Location Location
	Help     string
}

func (e *Error) Error() string {
	if e.Location.Line == 0 {
		return fmt.Sprintf("%s: %s", e.Category, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Location, e.Category, e.Message)
}

// Format renders the error with ANSI color when useColor is true,
// following the same "colored header, plain body" layout used
// throughout this compiler's diagnostics.
func (e *Error) Format(useColor bool) string {
	var sb strings.Builder
	bold := func(code, text string) {
		if useColor {
			sb.WriteString("\033[1;" + code + "m")
		}
		sb.WriteString(text)
		if useColor {
			sb.WriteString("\033[0m")
		}
	}
	bold("31", e.Category.String())
	sb.WriteString(": ")
	sb.WriteString(e.Message)
	sb.WriteString("\n")
	if e.Location.Line != 0 {
		sb.WriteString("  --> ")
		sb.WriteString(e.Location.String())
		sb.WriteString("\n")
	}
	if e.Help != "" {
		bold("36", "  note: ")
		sb.WriteString(e.Help)
		sb.WriteString("\n")
	}
	return sb.String()
}

// New constructs a syntax/semantic/unsupported/emission error without
// a source location (used by the lowerer and emitter, which operate
// on an already-parsed tree and often cannot recover the original
// text span of the offending form).
func New(cat Category, format string, args ...any) *Error {
	return &Error{Category: cat, Message: fmt.Sprintf(format, args...)}
}

// At constructs an error with a source location, used by the reader.
func At(cat Category, loc Location, format string, args ...any) *Error {
	return &Error{Category: cat, Location: loc, Message: fmt.Sprintf(format, args...)}
}

// Internal constructs an Emission-category error for conditions the
// spec calls fatal internal errors: unknown opcodes, invalid register
// combinations, unresolved patch sites. These always indicate a
// compiler bug, never a user mistake.
func Internal(format string, args ...any) *Error {
	return &Error{
		Category: Emission,
		Message:  fmt.Sprintf(format, args...),
		Help:     "this is an internal compiler error, not a source-program error",
	}
}

// Collector accumulates non-fatal warnings separately from the single
// fatal error that ends compilation, and renders them through the
// same Format path. No stage of this compiler (parser, lowerer,
// emitter or CLI) records warnings into a Collector.
type Collector struct {
	warnings []*Error
}

// Warn records a non-fatal diagnostic.
func (c *Collector) Warn(cat Category, format string, args ...any) {
	c.warnings = append(c.warnings, New(cat, format, args...))
}

// Warnings returns the accumulated warnings in emission order.
func (c *Collector) Warnings() []*Error {
	return c.warnings
}

// Report renders every collected warning, one per paragraph.
func (c *Collector) Report(useColor bool) string {
	var sb strings.Builder
	for i, w := range c.warnings {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(w.Format(useColor))
	}
	return sb.String()
}
