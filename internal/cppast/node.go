// Package cppast wraps a tree-sitter C++ syntax tree behind the
// cursor-like node shape the extraction pass expects: a node kind, its
// source text, an ordered child list, a parent link, and a stable
// per-node identity. See internal/extractor for the walker that consumes
// it.
package cppast

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/rainbowcheck/rainbow/internal/rbwerrors"
)

// Node is one position in a parsed translation unit. Node values are
// cheap, immutable views over a shared source buffer and tree-sitter
// tree; copying a Node copies only the view.
type Node struct {
	raw  *sitter.Node
	src  []byte
	file string
}

func newNode(raw *sitter.Node, src []byte, file string) *Node {
	if raw == nil {
		return nil
	}
	return &Node{raw: raw, src: src, file: file}
}

// Kind is the node's grammar production name, e.g. "function_definition",
// "call_expression", "compound_statement". These are tree-sitter-cpp's
// native node type strings; internal/cppast's Kind* constants name the
// ones the extractor cares about.
func (n *Node) Kind() string {
	return n.raw.Type()
}

// Text returns the verbatim source text spanned by the node.
func (n *Node) Text() string {
	return string(n.src[n.raw.StartByte():n.raw.EndByte()])
}

// ChildCount returns the number of direct children, named and anonymous.
func (n *Node) ChildCount() int {
	return int(n.raw.ChildCount())
}

// Child returns the i'th direct child, or nil if i is out of range.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= n.ChildCount() {
		return nil
	}
	return newNode(n.raw.Child(i), n.src, n.file)
}

// Children returns every direct child in source order.
func (n *Node) Children() []*Node {
	out := make([]*Node, 0, n.ChildCount())
	for i := 0; i < n.ChildCount(); i++ {
		if c := n.Child(i); c != nil {
			out = append(out, c)
		}
	}
	return out
}

// ChildByFieldName returns the child bound to the named grammar field
// (e.g. "declarator", "body", "value"), or nil if the field is absent on
// this node.
func (n *Node) ChildByFieldName(name string) *Node {
	return newNode(n.raw.ChildByFieldName(name), n.src, n.file)
}

// Parent returns the node's syntactic parent, or nil at the root.
//
// tree-sitter has no equivalent of libclang's semantic_parent (which,
// for a lambda, names the enclosing declaration rather than the
// syntactic container); the extractor recovers that relationship itself
// by walking up from a lambda_expression to its owning init_declarator
// when it needs that specific behavior (see extractor.findLambdaOwner).
func (n *Node) Parent() *Node {
	return newNode(n.raw.Parent(), n.src, n.file)
}

// Identity is a stable per-node handle. The extractor does not consult it
// when resolving call sites: tree-sitter binds no call to a declaration,
// so call resolution is by name only (see extractor.processCall).
//
// This implementation uses the node's start byte offset: tree-sitter
// builds one syntax node per occurrence and does not unify a function's
// declaration with its later definition the way libclang's cursor
// hashing does, so identity here is necessarily per-occurrence. Function
// redeclaration-with-body is instead merged by (scope, name) lookup in
// the extractor, not by identity. See DESIGN.md for this resolution of
// the spec's open question on identity-merging behavior.
func (n *Node) Identity() int {
	return int(n.raw.StartByte())
}

// IsNamed reports whether the node is a named grammar production (as
// opposed to an anonymous token like "," or "(").
func (n *Node) IsNamed() bool {
	return n.raw.IsNamed()
}

// HasError reports whether this node or any descendant is a tree-sitter
// ERROR node or a MISSING token, the closest tree-sitter equivalent of a
// parser-reported error diagnostic.
func (n *Node) HasError() bool {
	return n.raw.HasError()
}

// Location returns the node's starting source position.
func (n *Node) Location() rbwerrors.Location {
	pt := n.raw.StartPoint()
	return rbwerrors.Location{File: n.file, Line: int(pt.Row) + 1, Column: int(pt.Column) + 1}
}

func (n *Node) String() string {
	return fmt.Sprintf("%s@%s", n.Kind(), n.Location())
}
