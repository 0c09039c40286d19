package extractor

import "github.com/rainbowcheck/rainbow/internal/cppast"

// funcDeclaratorOf returns the function_declarator carrying a function
// definition's name and parameter list, unwrapping any pointer/reference
// declarator the return type forces in between (e.g. `int *f(int x)`).
// It only follows the "declarator" field chain rooted at fnDef's own
// declarator, so it can never wander into fnDef's body.
func funcDeclaratorOf(fnDef *cppast.Node) *cppast.Node {
	return unwrapToFunctionDeclarator(fnDef.ChildByFieldName("declarator"))
}

func unwrapToFunctionDeclarator(n *cppast.Node) *cppast.Node {
	if n == nil {
		return nil
	}
	if n.Kind() == cppast.KindFunctionDeclarator {
		return n
	}
	return unwrapToFunctionDeclarator(n.ChildByFieldName("declarator"))
}

// declaratorName recovers the identifier at the bottom of a declarator
// chain (pointer_declarator, reference_declarator, ... -> identifier).
func declaratorName(n *cppast.Node) *cppast.Node {
	if n == nil {
		return nil
	}
	if isIdentifierKind(n.Kind()) {
		return n
	}
	return declaratorName(n.ChildByFieldName("declarator"))
}
