package extractor

import "github.com/rainbowcheck/rainbow/internal/cppast"

// unsupportedKinds mirrors rainbow's is_unsupported: node kinds the
// extractor deliberately cannot reason about. Each is warned about once
// (deduplicated by kind) and its subtree is pruned.
var unsupportedKinds = map[string]bool{
	cppast.KindClassSpecifier:      true,
	cppast.KindStructSpecifier:     true,
	cppast.KindTemplateDeclaration: true,
	"operator_cast":                true, // conversion operators
}

// skippedKinds mirrors rainbow's is_skipped: node kinds pruned silently,
// with no warning, because they carry no color/call information Rainbow
// cares about.
var skippedKinds = map[string]bool{
	cppast.KindEnumSpecifier:       true,
	cppast.KindTypeDefinition:      true,
	cppast.KindAliasDeclaration:    true,
	cppast.KindUsingDeclaration:    true,
	cppast.KindNumberLiteral:       true,
	cppast.KindStringLiteral:       true,
	"char_literal":                 true,
	"null":                         true,
	"true":                         true,
	"false":                        true,
	"comment":                      true,
	"preproc_include":              true,
	"preproc_def":                  true,
	"preproc_function_def":         true,
	"preproc_ifdef":                true,
	"preproc_call":                 true,
	"friend_declaration":           true,
	"static_assert_declaration":    true,
	"namespace_alias_definition":   true,
}

func isUnsupported(kind string) bool { return unsupportedKinds[kind] }

func isSkipped(kind string) bool { return skippedKinds[kind] }

// isScope mirrors rainbow's is_scope: a compound statement opens a new
// anonymous block scope.
func isScope(kind string) bool { return kind == cppast.KindCompoundStatement }

// isVarDecl mirrors rainbow's is_var_decl at the granularity tree-sitter
// actually offers: a `declaration` node may carry several comma-separated
// init_declarators, unlike libclang's one-VAR_DECL-cursor-per-declarator
// model. The extractor processes each init_declarator independently.
func isVarDecl(kind string) bool { return kind == cppast.KindDeclaration }

// isAssignment reports whether n is a top-level `lhs = rhs` assignment,
// returning its operands. tree-sitter-cpp gives assignment its own node
// kind with named fields, so unlike the token-counting libclang workaround
// this is a direct field lookup.
func isAssignment(n *cppast.Node) (lhs, rhs *cppast.Node, ok bool) {
	if n.Kind() != cppast.KindAssignmentExpr {
		return nil, nil, false
	}
	op := n.ChildByFieldName("operator")
	if op != nil && op.Text() != "=" {
		return nil, nil, false
	}
	lhs = n.ChildByFieldName("left")
	rhs = n.ChildByFieldName("right")
	if lhs == nil || rhs == nil {
		return nil, nil, false
	}
	return lhs, rhs, true
}

// isCall reports whether n is a call expression, returning the callee
// name when it can be determined syntactically. For an `operator()`
// invocation through a functor/std::function value, the callee name is
// the invoked variable's name (see unwrapInvocable).
func isCall(n *cppast.Node) (name string, ok bool) {
	if n.Kind() != cppast.KindCallExpression {
		return "", false
	}
	fn := n.ChildByFieldName("function")
	if fn == nil {
		return "", false
	}
	if isIdentifierKind(fn.Kind()) {
		return fn.Text(), true
	}
	if callee := unwrapInvocable(fn); callee != nil {
		return callee.Text(), true
	}
	return fn.Text(), true
}

// isIdentifierKind is re-declared here (rather than exported from cppast)
// to keep cppast's kind vocabulary free of classification policy.
func isIdentifierKind(kind string) bool {
	switch kind {
	case cppast.KindIdentifier, cppast.KindFieldIdentifier, cppast.KindQualifiedIdentifier,
		cppast.KindOperatorName, cppast.KindDestructorName:
		return true
	}
	return false
}

// unwrapInvocable implements the call-site matcher's UnwrapInvocable
// state (spec §4.3's state-machine table): when a call's `function` field
// is itself a parenthesized or field expression around a bound variable
// (the `operator()` style invocation of a functor), find the invocable
// identifier within it.
func unwrapInvocable(n *cppast.Node) *cppast.Node {
	switch n.Kind() {
	case cppast.KindFieldExpression:
		if arg := n.ChildByFieldName("argument"); arg != nil && isIdentifierKind(arg.Kind()) {
			return arg
		}
	case cppast.KindParenthesizedExpr:
		for _, c := range n.Children() {
			if isIdentifierKind(c.Kind()) {
				return c
			}
		}
	}
	return nil
}

// isIIFE reports whether n is an immediately-invoked lambda
// (`[](){}();`) by checking whether its `function` field is itself a
// lambda_expression, returning that lambda. This is the tree-sitter
// equivalent of the original's up-to-four-layer `UNEXPOSED_EXPR`
// unwrap that has to see through libclang's implicit-conversion
// cursors to reach the same `LAMBDA_EXPR`: tree-sitter never inserts
// that wrapper, so the lambda sits directly in the call's function
// field.
func isIIFE(n *cppast.Node) *cppast.Node {
	if n.Kind() != cppast.KindCallExpression {
		return nil
	}
	if fn := n.ChildByFieldName("function"); fn != nil && fn.Kind() == cppast.KindLambdaExpression {
		return fn
	}
	return nil
}
