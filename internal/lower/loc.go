package lower

import (
	"github.com/xyproto/pl67/internal/compileerr"
	"github.com/xyproto/pl67/internal/ir"
)

// loc converts a parser-level source position into the compileerr
// package's own Location type.
func loc(l ir.Location) compileerr.Location {
	return compileerr.Location{Line: l.Line, Column: l.Column}
}
