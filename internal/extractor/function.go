package extractor

import (
	"fmt"

	"github.com/rainbowcheck/rainbow/internal/cppast"
	"github.com/rainbowcheck/rainbow/internal/rbwerrors"
	"github.com/rainbowcheck/rainbow/internal/scope"
)

// paramInfo is one parameter recovered from a function-like node's
// parameter list, before it is turned into a scope.ParamSpec (which
// needs an id only the Extractor's generator can vend).
type paramInfo struct {
	name  string
	color *string
}

// classifyFunction reports whether n is a function-definition-category
// node (spec §4.3): a function definition, or a lambda bound to a named
// variable. It returns the recovered name, a per-occurrence identity,
// and — for a lambda — the init_declarator that owns it (the source of
// its color annotation, per spec §4.3 step 1).
func classifyFunction(n *cppast.Node) (name string, identity int, lambdaOwner *cppast.Node, ok bool, err error) {
	switch n.Kind() {
	case cppast.KindFunctionDefinition:
		fd := funcDeclaratorOf(n)
		nameNode := declaratorName(fd)
		if nameNode == nil {
			return "", 0, nil, false, nil
		}
		return nameNode.Text(), n.Identity(), nil, true, nil
	case cppast.KindLambdaExpression:
		owner := findLambdaOwner(n)
		if owner == nil {
			return "", 0, nil, false, &rbwerrors.UnnamedLambdaUnsupported{Loc: n.Location()}
		}
		nameNode := declaratorName(owner.ChildByFieldName("declarator"))
		if nameNode == nil {
			return "", 0, nil, false, &rbwerrors.UnnamedLambdaUnsupported{Loc: n.Location()}
		}
		return nameNode.Text(), owner.Identity(), owner, true, nil
	}
	return "", 0, nil, false, nil
}

// findLambdaOwner returns the init_declarator binding a lambda to a
// name, i.e. the tree-sitter equivalent of libclang's
// "lambda.semantic_parent is a VAR_DECL".
func findLambdaOwner(n *cppast.Node) *cppast.Node {
	p := n.Parent()
	if p != nil && p.Kind() == cppast.KindInitDeclarator {
		return p
	}
	return nil
}

// paramListOf returns the parameter_list of a function_definition or
// lambda_expression; both grammar productions expose it identically
// (through an intervening function_declarator for the former).
func paramListOf(node *cppast.Node) *cppast.Node {
	switch node.Kind() {
	case cppast.KindFunctionDefinition:
		if fd := funcDeclaratorOf(node); fd != nil {
			return fd.ChildByFieldName("parameters")
		}
	case cppast.KindLambdaExpression:
		if d := node.ChildByFieldName("declarator"); d != nil {
			return d.ChildByFieldName("parameters")
		}
	}
	return nil
}

// bodyOf returns the compound_statement body of a function-like node, or
// nil for a body-less prototype.
func bodyOf(node *cppast.Node) *cppast.Node {
	return node.ChildByFieldName("body")
}

// collectParams recovers (name, color) for every parameter in paramList
// in declaration order. An unnamed parameter gets a synthetic name
// stable per position, matching spec §4.3 step 2.
func (e *Extractor) collectParams(paramList *cppast.Node, fnName string) ([]paramInfo, error) {
	if paramList == nil {
		return nil, nil
	}
	var params []paramInfo
	idx := 0
	for _, c := range paramList.Children() {
		switch c.Kind() {
		case cppast.KindParameterDecl, cppast.KindOptionalParamDecl:
			name := ""
			if d := c.ChildByFieldName("declarator"); d != nil {
				if nameNode := declaratorName(d); nameNode != nil {
					name = nameNode.Text()
				}
			}
			if name == "" {
				name = fmt.Sprintf("!unnamed_param%d", idx)
			}
			color, err := e.colorOf(c, fmt.Sprintf("param %s of %s", name, fnName))
			if err != nil {
				return nil, err
			}
			params = append(params, paramInfo{name: name, color: color})
			idx++
		case cppast.KindVariadicParam:
			params = append(params, paramInfo{name: fmt.Sprintf("!unnamed_param%d", idx)})
			idx++
		}
	}
	return params, nil
}

// processFunction implements spec §4.3's function processor: collect
// color, collect parameters, locate the body, and either merge with an
// existing same-named entry in scopeIn or register a fresh one. Returns
// the body (nil for a pure declaration) and the function's Scope.
//
// colorSources lists every node a leading annotate(...) attribute might
// attach to for this occurrence: the function/lambda node itself, and —
// for a named lambda — both its owning init_declarator and the
// init_declarator's enclosing declaration (a GNU attribute attaches to
// the statement as a whole, not to either declarator individually). All
// must agree; nil entries are ignored.
func (e *Extractor) processFunction(fnName string, node *cppast.Node, scopeIn *scope.Scope, colorSources ...*cppast.Node) (*cppast.Node, *scope.Scope, error) {
	var fnColor *string
	for _, src := range append([]*cppast.Node{node}, colorSources...) {
		if src == nil {
			continue
		}
		c, err := e.colorOf(src, fnName)
		if err != nil {
			return nil, nil, err
		}
		if c == nil {
			continue
		}
		if fnColor != nil && *fnColor != *c {
			return nil, nil, &rbwerrors.MultipleColors{Loc: node.Location(), Subject: fnName}
		}
		fnColor = c
	}

	params, err := e.collectParams(paramListOf(node), fnName)
	if err != nil {
		return nil, nil, err
	}
	body := bodyOf(node)

	if existing, ok := scopeIn.Functions[fnName]; ok {
		if err := mergeFunction(existing, fnName, fnColor, params); err != nil {
			return nil, nil, err
		}
		return body, existing, nil
	}

	specs := make([]scope.ParamSpec, len(params))
	for i, p := range params {
		specs[i] = scope.ParamSpec{ID: -e.newID(), Name: p.name, Color: p.color}
	}
	fn := scope.CreateFunction(e.newID(), scopeIn, fnName, fnColor, specs)
	return body, fn, nil
}

// mergeFunction reconciles a freshly-processed redeclaration against an
// existing entry under the same name in the same scope. Per spec DESIGN
// NOTES (a), a differing parameter count, or a parameter named in the new
// occurrence that the existing entry doesn't know about, is a hard error,
// not a best-effort merge.
func mergeFunction(existing *scope.Scope, fnName string, fnColor *string, params []paramInfo) error {
	if fnColor != nil {
		if existing.Color != nil && *existing.Color != *fnColor {
			return &rbwerrors.MultipleColors{Subject: fnName}
		}
		existing.Color = fnColor
	}

	if n := len(existing.ParamOrder()); len(params) != n {
		return &rbwerrors.ParamSignatureMismatch{
			Function: fnName,
			Detail:   fmt.Sprintf("%d parameter(s), earlier declaration has %d", len(params), n),
		}
	}

	for _, p := range params {
		proxy, ok := existing.Params[p.name]
		if !ok {
			return &rbwerrors.ParamSignatureMismatch{
				Function: fnName,
				Detail:   fmt.Sprintf("parameter %q not present in earlier declaration", p.name),
			}
		}
		if !colorsEqual(proxy.Color, p.color) {
			return &rbwerrors.MultipleColors{Subject: fmt.Sprintf("param %s of %s", p.name, fnName)}
		}
	}
	return nil
}

func colorsEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func paramSignaturesEqual(a, b *scope.Scope) bool {
	ao, bo := a.ParamOrder(), b.ParamOrder()
	if len(ao) != len(bo) {
		return false
	}
	for _, name := range ao {
		ap, aok := a.Params[name]
		bp, bok := b.Params[name]
		if aok != bok {
			return false
		}
		if aok && !colorsEqual(ap.Color, bp.Color) {
			return false
		}
	}
	return true
}
