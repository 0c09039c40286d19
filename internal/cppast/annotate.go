package cppast

import "regexp"

// annotatePattern matches the argument of an `annotate("...")`
// attribute call. tree-sitter-cpp has no dedicated ANNOTATE_ATTR node
// kind the way libclang does; GNU `__attribute__((annotate("...")))`
// and standard `[[...]]` attributes both just parse down to ordinary
// attribute nodes whose text contains the call, so a text-level match
// is the most direct way to recover the argument without hand-modeling
// every attribute grammar shape tree-sitter-cpp exposes.
var annotatePattern = regexp.MustCompile(`annotate\(\s*"((?:[^"\\]|\\.)*)"\s*\)`)

// FindAnnotations returns the string argument of every annotate(...)
// attribute attached directly to n (a function_definition, declaration,
// or parameter_declaration). It only inspects n's direct children, so an
// annotation on code nested inside n's body is never mistaken for one
// belonging to n itself.
func FindAnnotations(n *Node) []string {
	if n == nil {
		return nil
	}
	var out []string
	for _, c := range n.Children() {
		if c.Kind() != KindAttributeSpecifier && c.Kind() != KindAttributeDecl {
			continue
		}
		for _, m := range annotatePattern.FindAllStringSubmatch(c.Text(), -1) {
			out = append(out, m[1])
		}
	}
	return out
}
