package extractor

import (
	"github.com/rainbowcheck/rainbow/internal/cppast"
	"github.com/rainbowcheck/rainbow/internal/scope"
)

// walk drives the iterative frontier described by workItem: root is
// queued in global, and each visit may enqueue further work rather than
// recursing, per spec §9. The frontier behaves as a stack (pushFront
// prepends, walk pops from the front), so newly discovered work runs
// before whatever else is still queued — the same depth-first,
// source-order traversal the original's recursive visitor produces
// (spec §5: "calls are recorded in source order").
func (e *Extractor) walk(root *cppast.Node, global *scope.Scope) error {
	e.frontier = append(e.frontier, workItem{node: root, scope: global})
	for len(e.frontier) > 0 {
		item := e.frontier[0]
		e.frontier = e.frontier[1:]
		if err := e.visit(item.node, item.scope); err != nil {
			return err
		}
	}
	return nil
}

// visit classifies one node and dispatches it, in the order spec §4.3
// lays out: unsupported, skipped, scope-opener, function-definition,
// variable-declaration/alias, assignment/alias, call, generic descend.
//
// Only the call branch falls through to a descend afterward (it must,
// so that calls nested inside a call's own arguments are still found);
// every other branch that fully handles its node returns without one.
func (e *Extractor) visit(n *cppast.Node, scopeIn *scope.Scope) error {
	kind := n.Kind()

	if isUnsupported(kind) {
		e.warnUnsupported(kind, n.Location())
		return nil
	}
	if isSkipped(kind) {
		return nil
	}

	if isScope(kind) {
		child := scope.NewBlockScope(e.newID(), scopeIn)
		e.pushChildren(n, child)
		return nil
	}

	if kind == cppast.KindFunctionDefinition {
		return e.visitFunctionDefinition(n, scopeIn)
	}

	if isVarDecl(kind) {
		return e.visitDeclaration(n, scopeIn)
	}

	if lhs, rhs, ok := isAssignment(n); ok {
		handled, err := e.processAliasAssign(lhs, rhs, scopeIn)
		if err != nil {
			return err
		}
		if handled {
			return nil
		}
		e.pushChildren(n, scopeIn)
		return nil
	}

	if lambda := isIIFE(n); lambda != nil {
		if _, err := e.processAnonymousLambda(scopeIn, lambda); err != nil {
			return err
		}
		if args := n.ChildByFieldName("arguments"); args != nil {
			var items []workItem
			for _, a := range args.Children() {
				if a.IsNamed() {
					items = append(items, workItem{node: a, scope: scopeIn})
				}
			}
			e.pushFront(items)
		}
		return nil
	}

	if name, ok := isCall(n); ok {
		if err := e.processCall(n, name, scopeIn); err != nil {
			return err
		}
		e.pushCallChildren(n, scopeIn)
		return nil
	}

	e.pushChildren(n, scopeIn)
	return nil
}

func (e *Extractor) visitFunctionDefinition(n *cppast.Node, scopeIn *scope.Scope) error {
	name, _, _, ok, err := classifyFunction(n)
	if err != nil {
		return err
	}
	if !ok {
		e.pushChildren(n, scopeIn)
		return nil
	}
	body, fn, err := e.processFunction(name, n, scopeIn)
	if err != nil {
		return err
	}
	if body != nil {
		e.pushChildren(body, fn)
	}
	return nil
}

// visitDeclaration handles a `declaration` node, which may carry several
// comma-separated init_declarators, or — with none — be a bare function
// prototype (`void f(int x);`).
func (e *Extractor) visitDeclaration(n *cppast.Node, scopeIn *scope.Scope) error {
	handled := false
	for _, c := range n.Children() {
		if c.Kind() == cppast.KindInitDeclarator {
			if err := e.visitInitDeclarator(n, c, scopeIn); err != nil {
				return err
			}
			handled = true
			continue
		}
		if fd := unwrapToFunctionDeclarator(c); fd != nil {
			if err := e.visitPrototype(n, fd, scopeIn); err != nil {
				return err
			}
			handled = true
		}
	}
	if !handled {
		e.pushChildren(n, scopeIn)
	}
	return nil
}

// visitInitDeclarator handles one `NAME = VALUE` (or bare `NAME;`)
// declarator: a named lambda binding, a function alias, or — failing
// both — an ordinary variable whose initializer may still contain calls
// worth descending into. declNode is the enclosing `declaration`, the
// node a leading attribute attaches to.
func (e *Extractor) visitInitDeclarator(declNode, initDecl *cppast.Node, scopeIn *scope.Scope) error {
	if value := initDecl.ChildByFieldName("value"); value != nil && value.Kind() == cppast.KindLambdaExpression {
		name, _, owner, ok, err := classifyFunction(value)
		if err != nil {
			return err
		}
		if ok {
			body, fn, err := e.processFunction(name, value, scopeIn, owner, declNode)
			if err != nil {
				return err
			}
			if body != nil {
				e.pushChildren(body, fn)
			}
			return nil
		}
	}

	handled, err := e.processAliasDecl(declNode, initDecl, scopeIn)
	if err != nil {
		return err
	}
	if handled {
		return nil
	}

	e.pushChildren(initDecl, scopeIn)
	return nil
}

// visitPrototype registers a body-less function declaration, the
// spec §4.3 function-definition case with no compound_statement to
// queue.
func (e *Extractor) visitPrototype(declNode, fd *cppast.Node, scopeIn *scope.Scope) error {
	nameNode := declaratorName(fd)
	if nameNode == nil {
		return nil
	}
	fnName := nameNode.Text()

	color, err := e.colorOf(declNode, fnName)
	if err != nil {
		return err
	}
	params, err := e.collectParams(fd.ChildByFieldName("parameters"), fnName)
	if err != nil {
		return err
	}

	if existing, ok := scopeIn.Functions[fnName]; ok {
		return mergeFunction(existing, fnName, color, params)
	}

	specs := make([]scope.ParamSpec, len(params))
	for i, p := range params {
		specs[i] = scope.ParamSpec{ID: -e.newID(), Name: p.name, Color: p.color}
	}
	scope.CreateFunction(e.newID(), scopeIn, fnName, color, specs)
	return nil
}

// pushCallChildren descends into a processed call's function and
// argument nodes to discover further nested calls, skipping any
// argument that is itself a lambda_expression: processCall's
// checkCallArguments already routed such arguments through
// isFnParam/processAnonymousLambda and queued their bodies directly, so
// re-enqueuing the lambda node here would walk each body a second time,
// recording its calls again under a block scope of the caller.
func (e *Extractor) pushCallChildren(n *cppast.Node, scopeIn *scope.Scope) {
	var items []workItem
	for _, c := range n.Children() {
		if !c.IsNamed() {
			continue
		}
		if c.Kind() == cppast.KindArgumentList {
			for _, a := range c.Children() {
				if a.IsNamed() && a.Kind() != cppast.KindLambdaExpression {
					items = append(items, workItem{node: a, scope: scopeIn})
				}
			}
			continue
		}
		items = append(items, workItem{node: c, scope: scopeIn})
	}
	e.pushFront(items)
}
