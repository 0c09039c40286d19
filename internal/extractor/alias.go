package extractor

import (
	"github.com/rainbowcheck/rainbow/internal/cppast"
	"github.com/rainbowcheck/rainbow/internal/rbwerrors"
	"github.com/rainbowcheck/rainbow/internal/scope"
)

// processAliasDecl handles the declaration-alias shape: `auto NEW =
// EXISTING;`. Unlike libclang, tree-sitter never wraps a bare name
// reference in an implicit-conversion cursor, so the initializer is
// simply an identifier when this shape applies; anything else isn't an
// alias and the caller falls back to ordinary descent.
//
// declNode is the enclosing `declaration` node, not initDecl itself: a
// leading GNU attribute (`__attribute__((annotate(...))) auto x = ...;`)
// attaches to the statement as a whole, the same place processFunction
// and collectParams look for it on a function or parameter declaration.
func (e *Extractor) processAliasDecl(declNode, initDecl *cppast.Node, scopeIn *scope.Scope) (bool, error) {
	nameNode := declaratorName(initDecl.ChildByFieldName("declarator"))
	if nameNode == nil {
		return false, nil
	}
	alias := nameNode.Text()

	color, err := e.colorOf(declNode, alias)
	if err != nil {
		return false, err
	}

	value := initDecl.ChildByFieldName("value")
	if value == nil || !isIdentifierKind(value.Kind()) {
		return false, nil
	}

	return e.processAliasFunction(scopeIn, initDecl.Location(), alias, color, value.Text())
}

// processAliasAssign handles the assignment-alias shape: `NEW =
// EXISTING;` where NEW names a prior function-typed declaration.
func (e *Extractor) processAliasAssign(lhs, rhs *cppast.Node, scopeIn *scope.Scope) (bool, error) {
	if !isIdentifierKind(lhs.Kind()) || !isIdentifierKind(rhs.Kind()) {
		return false, nil
	}

	lhsFn := scopeIn.Resolve(lhs.Text())
	if lhsFn == nil {
		return false, nil
	}
	rhsFn := scopeIn.Resolve(rhs.Text())
	if rhsFn == nil {
		return false, nil
	}

	if !colorsEqual(lhsFn.Color, rhsFn.Color) || !paramSignaturesEqual(lhsFn, rhsFn) {
		return false, &rbwerrors.InvalidAssignment{
			Loc: lhs.Location(), Name: lhs.Text(), Color: lhsFn.Color, NewColor: rhsFn.Color,
		}
	}

	return e.processAliasFunction(scopeIn, lhs.Location(), lhs.Text(), lhsFn.Color, rhs.Text())
}

// processAliasFunction resolves sourceName from scopeIn and, provided
// the alias's own declared color (if any) agrees with the source's,
// registers a fresh function Scope under alias with the source's color
// and parameter signature (spec §4.3 "Alias handling"). An alias with no
// color of its own inherits the source's.
func (e *Extractor) processAliasFunction(scopeIn *scope.Scope, loc rbwerrors.Location, alias string, color *string, sourceName string) (bool, error) {
	resolved := scopeIn.Resolve(sourceName)
	if resolved == nil {
		return false, nil
	}
	if color != nil && !colorsEqual(resolved.Color, color) {
		return false, &rbwerrors.InvalidAssignment{Loc: loc, Name: alias, Color: color, NewColor: resolved.Color}
	}

	order := resolved.ParamOrder()
	specs := make([]scope.ParamSpec, len(order))
	for i, name := range order {
		p := resolved.Params[name]
		specs[i] = scope.ParamSpec{ID: -e.newID(), Name: name, Color: p.Color}
	}
	scope.CreateFunction(e.newID(), scopeIn, alias, resolved.Color, specs)
	return true, nil
}
