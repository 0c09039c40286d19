// Package scope implements Rainbow's scope tree: the nested name hierarchy
// the Extractor builds while walking a translation unit, the lexical
// name-resolution algorithm over it, and its Cypher serialization.
//
// The tree is linked by pointers, not kept in an ID-indexed arena: a
// *Scope holds a pointer to its parent, and child functions, parameter
// proxies and callees are likewise held as *Scope values. Nothing in this
// package mutates a Scope after extraction hands the root back to the
// driver. The package provides no copy or clone operation.
package scope

import (
	"fmt"

	"github.com/rainbowcheck/rainbow/internal/rbwerrors"
)

// RootID is the ID assigned to the tree root. InvalidID marks an
// unresolved reference. Parameter proxies carry negative IDs (the
// Extractor negates a fresh generator value, so the first one equals
// InvalidID); they are never looked up by numeric ID.
const (
	RootID    = 0
	InvalidID = -1
)

// Scope is a node in the program's nested name tree. A function is itself
// a Scope (function-kind) that owns parameter proxies and, if it has a
// body, a nested sequence of child block scopes. See spec.md §3 for the
// field-level invariants this type must uphold.
type Scope struct {
	ID     int
	Parent *Scope

	// Functions maps a function name, unique within this scope, to its
	// child Scope. Re-declaring the same name updates the existing entry
	// (see CreateFunction); it never creates a sibling.
	Functions map[string]*Scope

	// functionOrder records the order in which names were first inserted
	// into Functions, since Go map iteration order is randomized and
	// Cypher serialization must be deterministic (spec.md §5).
	functionOrder []string

	// ChildScopes holds anonymous nested block scopes in source order.
	ChildScopes []*Scope

	// CalledFunctions holds resolved callee Scopes in source order. Only
	// resolved references are stored here; resolution happens at
	// registration time (RegisterCall), never lazily at serialization
	// time.
	CalledFunctions []*Scope

	// Function-only fields. Zero-valued on block scopes and the root.
	Name   string
	Color  *string
	Params map[string]*Scope // ordered view: see ParamOrder
	paramOrder []string

	// IsParam distinguishes a parameter proxy Scope from an ordinary
	// function.
	IsParam bool
}

// NewRoot returns an empty root Scope: ID 0, no parent, no function
// fields.
func NewRoot() *Scope {
	return &Scope{
		ID:        RootID,
		Functions: map[string]*Scope{},
	}
}

// ParamSpec is one entry of a function's ordered parameter list: a name
// (possibly a synthetic "!unnamed_paramN"), an optional declared color,
// and the (already negative) ID the caller's id generator vended for the
// parameter proxy.
type ParamSpec struct {
	ID    int
	Name  string
	Color *string
}

// CreateFunction creates a function Scope under parent.Functions[name],
// materializing one parameter-proxy child Scope per entry of params in
// order. The caller guarantees id and every params[i].ID are fresh;
// CreateFunction does not vend IDs itself (that's the Extractor's id
// generator's job, per spec §5).
func CreateFunction(id int, parent *Scope, name string, color *string, params []ParamSpec) *Scope {
	fn := &Scope{
		ID:        id,
		Parent:    parent,
		Name:      name,
		Color:     color,
		Functions: map[string]*Scope{},
		Params:    map[string]*Scope{},
	}
	for _, p := range params {
		fn.Params[p.Name] = &Scope{
			ID:      p.ID,
			Parent:  fn,
			Name:    p.Name,
			Color:   p.Color,
			IsParam: true,
		}
		fn.paramOrder = append(fn.paramOrder, p.Name)
	}
	if parent != nil {
		if _, exists := parent.Functions[name]; !exists {
			parent.functionOrder = append(parent.functionOrder, name)
		}
		parent.Functions[name] = fn
	}
	return fn
}

// NewBlockScope creates an anonymous child scope under parent and appends
// it to parent.ChildScopes. Used by the Extractor for every COMPOUND_STMT
// it descends into that isn't already a function body.
func NewBlockScope(id int, parent *Scope) *Scope {
	s := &Scope{ID: id, Parent: parent, Functions: map[string]*Scope{}}
	parent.ChildScopes = append(parent.ChildScopes, s)
	return s
}

// ParamOrder returns parameter names in declaration order.
func (s *Scope) ParamOrder() []string {
	return s.paramOrder
}

// RegisterCall appends a resolved callee Scope to CalledFunctions.
func (s *Scope) RegisterCall(callee *Scope) {
	s.CalledFunctions = append(s.CalledFunctions, callee)
}

// RegisterCallByName resolves name from s and registers the call, raising
// rbwerrors.FunctionResolution if resolution fails. This is the
// test-facing counterpart of RegisterCall; the Extractor always resolves
// explicitly first and falls back to a warning instead of raising.
func (s *Scope) RegisterCallByName(name string) error {
	resolved := s.Resolve(name)
	if resolved == nil {
		return &rbwerrors.FunctionResolution{Name: name}
	}
	s.RegisterCall(resolved)
	return nil
}

// Resolve implements spec.md §4.1's name-resolution algorithm: lexical,
// innermost-first, never crossing function boundaries laterally.
//
//  1. If s is itself a function named name, return s (direct recursion).
//  2. If name is a key of s.Functions, return it.
//  3. If s is a function and name is a key of s.Params, return the
//     parameter proxy.
//  4. Otherwise recurse into s.Parent; with no parent, return nil.
//
// Parameters shadow enclosing functions of the same name; inner function
// declarations shadow outer ones. Resolution never mutates the tree, so
// it is idempotent by construction.
func (s *Scope) Resolve(name string) *Scope {
	if s.Name != "" && s.Name == name && !s.IsParam {
		return s
	}
	if fn, ok := s.Functions[name]; ok {
		return fn
	}
	if param, ok := s.Params[name]; ok {
		return param
	}
	if s.Parent == nil {
		return nil
	}
	return s.Parent.Resolve(name)
}

// Alias returns the Cypher alias for a function or parameter Scope:
// `` `name__id` `` for a function, `` `name__param__fn__id` `` for a
// parameter proxy (fn and id referring to the owning function). Alias
// panics if called on the root or an unnamed block scope — those never
// appear in the emitted graph.
func (s *Scope) Alias() string {
	if s.Name == "" {
		panic("scope: Alias called on an unnamed scope")
	}
	if s.IsParam {
		owner := s.Parent
		return fmt.Sprintf("`%s__param__%s__%d`", s.Name, owner.Name, owner.ID)
	}
	return fmt.Sprintf("`%s__%d`", s.Name, s.ID)
}
