// Package rbwerrors holds the cross-cutting error taxonomy raised by
// Rainbow's extraction and validation pipeline (spec §7). Errors that are
// only ever raised and handled within a single package (a malformed Cypher
// pattern, say) stay declared next to the code that raises them instead of
// living here.
package rbwerrors

import "fmt"

// Location is the minimal source position Rainbow needs to report errors.
// It mirrors the handful of fields Rainbow's parser adapter can reliably
// recover from a tree-sitter node (see internal/cppast).
type Location struct {
	File   string
	Line   int
	Column int
}

func (l Location) String() string {
	if l.File == "" {
		return fmt.Sprintf("%d:%d", l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// SyntaxErrors means the C++ parser reported at least one error diagnostic.
// It aborts the run before extraction begins.
type SyntaxErrors struct {
	Count int
}

func (e *SyntaxErrors) Error() string {
	return fmt.Sprintf("detected %d syntax error(s) in source", e.Count)
}

// InvalidAssignment means an alias target and its source disagree in color
// or parameter-color signature, or a colored call argument disagrees with
// the callee parameter's declared color.
type InvalidAssignment struct {
	Loc      Location
	Name     string
	Color    *string
	NewColor *string
}

func (e *InvalidAssignment) Error() string {
	return fmt.Sprintf("invalid assignment to %s at %s: original color %s, new color %s",
		e.Name, e.Loc, colorStr(e.Color), colorStr(e.NewColor))
}

// UnknownColor means an annotate attribute decoded to a string outside the
// configured palette.
type UnknownColor struct {
	Loc   Location
	Color string
}

func (e *UnknownColor) Error() string {
	return fmt.Sprintf("unknown color %q at %s", e.Color, e.Loc)
}

// MultipleColors means the same function, lambda, or parameter was tagged
// with two different colors across its declaration, definition, or closure
// annotation.
type MultipleColors struct {
	Loc     Location
	Subject string
}

func (e *MultipleColors) Error() string {
	return fmt.Sprintf("multiple colors found for %s at %s", e.Subject, e.Loc)
}

// FunctionResolution means a callee name could not be resolved lexically
// from the calling scope. The extractor itself downgrades this to a
// warning (spec §4.3); only the test-facing Scope.RegisterCallByName raises
// it directly.
type FunctionResolution struct {
	Name string
}

func (e *FunctionResolution) Error() string {
	return fmt.Sprintf("could not resolve function %q", e.Name)
}

// ConfigError means the JSON configuration was malformed: a missing or
// mistyped field, a non-existent executor path, or an ill-formed pattern.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string {
	return e.Msg
}

// ParamSignatureMismatch means a re-declaration of a function disagrees
// with its earlier declaration's parameter count or names (a parameter
// color disagreement is reported as MultipleColors instead). Per
// spec DESIGN NOTES (a), parameter-name disagreement is a hard error, not a
// best-effort merge.
type ParamSignatureMismatch struct {
	Loc      Location
	Function string
	Detail   string
}

func (e *ParamSignatureMismatch) Error() string {
	return fmt.Sprintf("mismatched parameters for %s at %s: %s", e.Function, e.Loc, e.Detail)
}

// UnnamedLambdaUnsupported means a lambda expression appears somewhere
// other than the initializer of a named variable declaration, so it has no
// name to register under.
type UnnamedLambdaUnsupported struct {
	Loc Location
}

func (e *UnnamedLambdaUnsupported) Error() string {
	return fmt.Sprintf("unnamed lambda unsupported at %s", e.Loc)
}

func colorStr(c *string) string {
	if c == nil {
		return "<none>"
	}
	return *c
}
