package sema

import (
	"foxc/internal/ast"
	"foxc/internal/report"
	"foxc/internal/types"
)

// primitiveNames maps the surface names a TypeLocNamed can spell to their
// singleton (spec 3.3).
var primitiveNames = map[string]types.Type{
	"int":    types.Int,
	"double": types.Double,
	"bool":   types.Bool,
	"char":   types.Char,
	"string": types.String,
	"void":   types.Void,
}

// resolveTypeLoc resolves tl's surface syntax to a concrete types.Type,
// storing the result on tl.Resolved so a later pass never has to re-walk
// the syntax. A nil tl (an omitted return type) resolves to Void.
func (c *Checker) resolveTypeLoc(tl *ast.TypeLoc) types.Type {
	if tl == nil {
		return types.Void
	}

	switch tl.Kind {
	case ast.TypeLocNamed:
		if t, ok := primitiveNames[tl.Name]; ok {
			tl.Resolved = t
			return t
		}
		c.diag.Errorf(report.KindExpectedType, tl.Range(), "unknown type %q", tl.Name)
		tl.Resolved = types.Error
		return types.Error

	case ast.TypeLocArray:
		elem := c.resolveTypeLoc(tl.Elem)
		t := c.ctx.InternArray(elem)
		tl.Resolved = t
		return t

	default:
		report.PanicICE("resolveTypeLoc: unhandled TypeLocKind %v", tl.Kind)
		return types.Error
	}
}
