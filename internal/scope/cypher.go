package scope

import "strings"

// ToCypher serializes the tree rooted at s as a single openCypher CREATE
// statement (spec.md §4.1, §6). Traversal order is deterministic: a
// scope's own functions are emitted before its child scopes, and a
// function's nested functions are emitted before its call edges, so the
// same tree produces byte-identical Cypher on every run (this is load
// bearing for golden-file tests; see spec.md §5).
//
// An empty tree (no functions anywhere) emits "RETURN 0" instead of an
// empty CREATE, which would be invalid Cypher — a no-op that still leaves
// the executor in a defined state.
func (s *Scope) ToCypher() string {
	var nodes []string
	s.collectNodeClauses(&nodes)

	var edges []string
	s.collectEdgeClauses(&edges)

	if len(nodes) == 0 {
		return "RETURN 0"
	}

	clauses := append(nodes, edges...)
	return "CREATE " + strings.Join(clauses, ",\n  ")
}

// collectNodeClauses appends one node pattern per function (and per
// parameter of every function) reachable from s, in declaration order:
// a scope's direct functions first, then its child scopes, and for each
// function its parameters before its nested functions.
func (s *Scope) collectNodeClauses(out *[]string) {
	for _, name := range s.sortedFunctionNames() {
		fn := s.Functions[name]
		*out = append(*out, nodeClause(fn.Alias(), fn.Name, fn.Color))
		for _, pname := range fn.paramOrder {
			p := fn.Params[pname]
			*out = append(*out, nodeClause(p.Alias(), p.Name, p.Color))
		}
		fn.collectNodeClauses(out)
	}
	for _, child := range s.ChildScopes {
		child.collectNodeClauses(out)
	}
}

func nodeClause(alias, name string, color *string) string {
	colorStr := ""
	if color != nil {
		colorStr = ":" + *color
	}
	return "(" + alias + colorStr + " {name: '" + escapeCypherString(name) + "'})"
}

// collectEdgeClauses appends one (:CALLS) edge clause per entry of
// CalledFunctions on every function, parameter proxy, and function-nested
// block scope reachable from s. Mirrors the node ordering: a scope's own
// functions' calls before its child scopes' calls, and a function's own
// calls, then its parameters' calls, before its nested functions' calls.
// Calls registered on a scope outside any function (such as the root)
// have no named source node and are not emitted.
func (s *Scope) collectEdgeClauses(out *[]string) {
	for _, name := range s.sortedFunctionNames() {
		fn := s.Functions[name]
		fn.appendOwnEdges(out)
		for _, pname := range fn.paramOrder {
			fn.Params[pname].appendOwnEdges(out)
		}
		fn.collectEdgeClauses(out)
	}
	for _, child := range s.ChildScopes {
		child.collectEdgeClauses(out)
	}
}

// appendOwnEdges walks s and every block scope nested directly or
// transitively inside s (but not inside a nested function — those are
// walked by their own appendOwnEdges call) collecting CALLS edges whose
// source is s itself.
func (s *Scope) appendOwnEdges(out *[]string) {
	var called []*Scope
	s.collectOwnCalledFunctions(&called)
	for _, callee := range called {
		*out = append(*out, s.Alias()+" -[:CALLS]-> "+callee.Alias())
	}
}

func (s *Scope) collectOwnCalledFunctions(out *[]*Scope) {
	*out = append(*out, s.CalledFunctions...)
	for _, child := range s.ChildScopes {
		child.collectOwnCalledFunctions(out)
	}
}

// sortedFunctionNames returns s.Functions' keys in a stable order. Go map
// iteration is randomized, but the Extractor only ever inserts names in
// source order and never reorders them, so the declaration order can be
// recovered by threading it through alongside the map; for simplicity
// (and because the functions map is small per scope) this package instead
// keeps a parallel insertion-ordered slice on Scope.
func (s *Scope) sortedFunctionNames() []string {
	return s.functionOrder
}

func escapeCypherString(raw string) string {
	return strings.ReplaceAll(raw, "'", "\\'")
}
