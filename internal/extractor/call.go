package extractor

import (
	"fmt"

	"github.com/rainbowcheck/rainbow/internal/cppast"
	"github.com/rainbowcheck/rainbow/internal/rbwerrors"
	"github.com/rainbowcheck/rainbow/internal/scope"
)

// processCall implements spec §4.3's call processing. Resolution is
// name-based only: tree-sitter performs no symbol binding (it has
// nothing analogous to libclang's Cursor.referenced), so the
// node-identity-first step spec §4.3 specifies has no reference to
// consult at a call site in this implementation — see DESIGN.md.
func (e *Extractor) processCall(node *cppast.Node, fnName string, scopeIn *scope.Scope) error {
	callee := scopeIn.Resolve(fnName)
	if callee == nil {
		if fnName == "" {
			fnName = "`???`"
		}
		e.log.Warn("could not resolve function call", "name", fnName, "location", node.Location().String())
		return nil
	}
	scopeIn.RegisterCall(callee)

	return e.checkCallArguments(node, fnName, callee, scopeIn)
}

// checkCallArguments verifies colored function-typed arguments against
// the callee's declared parameter colors, and registers each resolved
// argument function as a call of the corresponding parameter proxy so
// that patterns spanning parameter-mediated indirection can traverse it
// (spec §4.3, §8's "Parameter edge" law).
func (e *Extractor) checkCallArguments(node *cppast.Node, fnName string, callee *scope.Scope, scopeIn *scope.Scope) error {
	argNodes := namedChildren(node.ChildByFieldName("arguments"))
	paramNames := callee.ParamOrder()
	if len(argNodes) != len(paramNames) {
		e.log.Warn("could not verify parameters passed into function",
			"function", fnName, "location", node.Location().String())
		return nil
	}

	for i, argNode := range argNodes {
		paramScope := callee.Params[paramNames[i]]

		argFn, err := e.isFnParam(scopeIn, argNode)
		if err != nil {
			return err
		}
		if argFn == nil {
			continue
		}

		if paramScope.Color != nil {
			if argFn.Color != nil && *argFn.Color != *paramScope.Color {
				return &rbwerrors.InvalidAssignment{
					Loc:      node.Location(),
					Name:     fmt.Sprintf("(parameter %d of %s)", i, fnName),
					Color:    paramScope.Color,
					NewColor: argFn.Color,
				}
			}
		}
		paramScope.RegisterCall(argFn)
	}
	return nil
}

func namedChildren(n *cppast.Node) []*cppast.Node {
	if n == nil {
		return nil
	}
	var out []*cppast.Node
	for _, c := range n.Children() {
		if c.IsNamed() {
			out = append(out, c)
		}
	}
	return out
}

// isFnParam determines whether arg is itself function-valued: a
// function name, a previously-bound callback variable, an in-place
// lambda, or an explicit std::function<...>(lambda) construction. It
// mirrors rainbow's _is_fn_param, simplified by tree-sitter never
// inserting the implicit-conversion wrapper cursors libclang's version
// has to unwind through.
func (e *Extractor) isFnParam(scopeIn *scope.Scope, arg *cppast.Node) (*scope.Scope, error) {
	switch {
	case arg.Kind() == cppast.KindLambdaExpression:
		return e.processAnonymousLambda(scopeIn, arg)
	case arg.Kind() == cppast.KindCallExpression:
		fn := arg.ChildByFieldName("function")
		args := arg.ChildByFieldName("arguments")
		if fn != nil && fn.Text() == "function" && args != nil {
			if inner := namedChildren(args); len(inner) == 1 && inner[0].Kind() == cppast.KindLambdaExpression {
				return e.processAnonymousLambda(scopeIn, inner[0])
			}
		}
		return nil, nil
	case isIdentifierKind(arg.Kind()):
		return scopeIn.Resolve(arg.Text()), nil
	}
	return nil, nil
}

// processAnonymousLambda registers an unnamed in-place lambda argument
// as an uncolored function (spec §4.3's "anonymous in-place lambda").
// Its body is pushed onto the walker's frontier so calls inside it are
// still discovered.
func (e *Extractor) processAnonymousLambda(scopeIn *scope.Scope, lambda *cppast.Node) (*scope.Scope, error) {
	name := fmt.Sprintf("!unnamed_lambda%d", len(scopeIn.Functions))
	body, fn, err := e.processFunction(name, lambda, scopeIn)
	if err != nil {
		return nil, err
	}
	if body != nil {
		e.pushChildren(body, fn)
	}
	return fn, nil
}
