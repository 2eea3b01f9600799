package lower

import (
	"github.com/xyproto/pl67/internal/compileerr"
	"github.com/xyproto/pl67/internal/ir"
)

// ValidateTypeNode reads a type-position node and returns the
// TypeDef it denotes. A type is written either as a single scalar
// keyword (`int`, `byte`, `void`) or as a parenthesized sequence of
// one or more `ptr` prefixes followed by a scalar keyword (`(ptr
// int)`, `(ptr (ptr byte))`'s flat cousin `(ptr ptr byte)`).
//
// Grammar: type := "void" | "int" | "byte" | "ptr" type
func ValidateTypeNode(n ir.Node) (ir.TypeDef, error) {
	return validateTypeTokens(flattenType(n))
}

// flattenType turns a type-position node into its token sequence: a
// bare Identifier becomes a one-element sequence, a List's Items are
// used directly (its head may itself be a "ptr" token).
func flattenType(n ir.Node) []ir.Node {
	switch v := n.(type) {
	case *ir.Identifier:
		return []ir.Node{v}
	case *ir.List:
		return v.Items
	default:
		return nil
	}
}

// ValidateTypeTail validates the type carried by the tail of a
// function-header or argument list, e.g. (name int) or (name ptr
// byte) — the tokens after the leading name.
func ValidateTypeTail(items []ir.Node) (ir.TypeDef, error) {
	return validateTypeTokens(items[1:])
}

func validateTypeTokens(tokens []ir.Node) (ir.TypeDef, error) {
	if len(tokens) == 0 {
		return ir.TypeDef{}, compileerr.New(compileerr.Semantic, "type missing")
	}
	head, ok := tokens[0].(*ir.Identifier)
	if !ok {
		return ir.TypeDef{}, compileerr.New(compileerr.Semantic, "unknown type %q", tokens[0])
	}
	switch head.Name {
	case "ptr":
		inner, err := validateTypeTokens(tokens[1:])
		if err != nil {
			return ir.TypeDef{}, err
		}
		if inner.IsVoid() {
			return ir.TypeDef{}, compileerr.New(compileerr.Semantic, "bad pointer element: ptr void is not allowed")
		}
		return ir.PointerTo(inner), nil
	case "void":
		if len(tokens) > 1 {
			return ir.TypeDef{}, compileerr.New(compileerr.Semantic, "bad scalar type: trailing tokens after 'void'")
		}
		return ir.VoidType(), nil
	case "int":
		if len(tokens) > 1 {
			return ir.TypeDef{}, compileerr.New(compileerr.Semantic, "bad scalar type: trailing tokens after 'int'")
		}
		return ir.IntType(), nil
	case "byte":
		if len(tokens) > 1 {
			return ir.TypeDef{}, compileerr.New(compileerr.Semantic, "bad scalar type: trailing tokens after 'byte'")
		}
		return ir.ByteType(), nil
	default:
		return ir.TypeDef{}, compileerr.New(compileerr.Semantic, "unknown type %q", head.Name)
	}
}
