package cppast

import (
	"context"
	"fmt"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/cpp"
)

// Severity classifies a Diagnostic the same way the external parser this
// package stands in for would: "error" aborts the run, "warning" is only
// logged (spec §4.5 step 2).
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Diagnostic is a single parser-reported problem. tree-sitter carries no
// diagnostic API of its own; Diagnostics are synthesized from ERROR nodes
// and MISSING tokens in the resulting tree, which is the closest signal
// tree-sitter exposes to libclang's diagnostic stream.
type Diagnostic struct {
	Severity Severity
	Location string
	Message  string
}

// ParseResult is a parsed translation unit: its root node plus any
// diagnostics recovered from the tree.
type ParseResult struct {
	Root        *Node
	Diagnostics []Diagnostic
}

// HasErrors reports whether any diagnostic is SeverityError.
func (r *ParseResult) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ParserOption configures a Parser instance.
type ParserOption func(*Parser)

// WithMaxSourceSize rejects sources larger than bytes.
func WithMaxSourceSize(bytes int) ParserOption {
	return func(p *Parser) {
		if bytes > 0 {
			p.maxSourceSize = bytes
		}
	}
}

// DefaultMaxSourceSize is the size past which Parse refuses a source
// outright rather than handing tree-sitter a multi-hundred-megabyte
// buffer; Rainbow analyzes one translation unit at a time and has no
// legitimate reason to exceed this.
const DefaultMaxSourceSize = 64 * 1024 * 1024

// Parser parses a single C++ translation unit into a Node tree.
//
// Parser instances are safe for concurrent use: each Parse call creates
// its own tree-sitter parser, mirroring the one-parser-per-call pattern
// used throughout this codebase's other language adapters.
type Parser struct {
	maxSourceSize int
}

// NewParser creates a Parser with the given options applied over
// sensible defaults.
func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{maxSourceSize: DefaultMaxSourceSize}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses src (the contents of file) into a ParseResult. It never
// returns an error for syntax problems in src — those surface as
// SeverityError Diagnostics, per spec §4.5's "scan diagnostics" step.
// Parse only returns an error for conditions that make analysis
// impossible altogether: an oversized or non-UTF-8 source, a canceled
// context, or tree-sitter itself failing to produce a tree.
func (p *Parser) Parse(ctx context.Context, src []byte, file string) (*ParseResult, error) {
	if p.maxSourceSize > 0 && len(src) > p.maxSourceSize {
		return nil, fmt.Errorf("cppast: source %q exceeds maximum size of %d bytes", file, p.maxSourceSize)
	}
	if !utf8.Valid(src) {
		return nil, fmt.Errorf("cppast: source %q is not valid UTF-8", file)
	}

	parser := sitter.NewParser()
	parser.SetLanguage(cpp.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("cppast: tree-sitter parse of %q failed: %w", file, err)
	}
	defer tree.Close()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("cppast: parse of %q canceled: %w", file, err)
	}

	rawRoot := tree.RootNode()
	if rawRoot == nil {
		return nil, fmt.Errorf("cppast: tree-sitter returned no root node for %q", file)
	}

	result := &ParseResult{Root: newNode(rawRoot, src, file)}
	collectDiagnostics(result.Root, &result.Diagnostics)
	return result, nil
}

// collectDiagnostics walks the tree with an explicit stack (not
// recursion; tree-sitter ASTs for generated or heavily templated C++ can
// be deep) looking for ERROR nodes and MISSING tokens.
func collectDiagnostics(root *Node, out *[]Diagnostic) {
	stack := []*Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == nil {
			continue
		}
		if n.raw.IsMissing() {
			*out = append(*out, Diagnostic{
				Severity: SeverityError,
				Location: n.Location().String(),
				Message:  fmt.Sprintf("missing %s", n.Kind()),
			})
		} else if n.Kind() == KindERROR {
			*out = append(*out, Diagnostic{
				Severity: SeverityError,
				Location: n.Location().String(),
				Message:  "syntax error",
			})
		}
		for i := n.ChildCount() - 1; i >= 0; i-- {
			stack = append(stack, n.Child(i))
		}
	}
}
