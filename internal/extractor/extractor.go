// Package extractor implements Rainbow's extraction pass: the iterative
// syntax-tree walk that classifies nodes, builds the scope tree, and
// enforces color-consistency invariants while doing it (spec §4.3).
package extractor

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/rainbowcheck/rainbow/internal/cppast"
	"github.com/rainbowcheck/rainbow/internal/rbwerrors"
	"github.com/rainbowcheck/rainbow/internal/scope"
)

// Extractor owns the state of a single extraction run: the id generator,
// the scope tree under construction, and the set of unsupported kinds
// already warned about. It is not safe for concurrent use and not meant
// to be reused across translation units — construct a fresh one per run.
type Extractor struct {
	prefix string
	colors map[string]bool

	log *slog.Logger

	nextID          int
	seenUnsupported map[string]bool

	frontier []workItem
}

// workItem pairs a not-yet-visited node with the scope it was
// discovered in. The walker consumes an iterative queue of these
// instead of recursing, per spec §9's non-recursive mandate — this
// also lets processAnonymousLambda (reached indirectly from inside
// call-argument processing) enqueue its body for later traversal
// rather than needing to recurse into it immediately.
type workItem struct {
	node  *cppast.Node
	scope *scope.Scope
}

// New creates an Extractor configured with the palette prefix and the
// set of valid color names. log receives warnings; a nil log falls back
// to slog.Default().
func New(prefix string, colors []string, log *slog.Logger) *Extractor {
	if log == nil {
		log = slog.Default()
	}
	palette := make(map[string]bool, len(colors))
	for _, c := range colors {
		palette[c] = true
	}
	return &Extractor{
		prefix:          prefix,
		colors:          palette,
		log:             log,
		seenUnsupported: map[string]bool{},
	}
}

func (e *Extractor) newID() int {
	e.nextID++
	return e.nextID
}

// Process walks root (a translation_unit node) and returns the populated
// root Scope, or the first hard error encountered (spec §7's fatal
// class). Warnings are logged, never returned.
func (e *Extractor) Process(root *cppast.Node) (*scope.Scope, error) {
	global := scope.NewRoot()
	if err := e.walk(root, global); err != nil {
		return nil, err
	}
	return global, nil
}

// colorOf decodes every annotate(...) attribute directly attached to n,
// validating each against the configured palette, and returns the single
// agreed-upon color (nil if n carries none). Two different decoded
// colors on the same node is fatal (rbwerrors.MultipleColors); repeated
// identical ones are fine.
func (e *Extractor) colorOf(n *cppast.Node, subject string) (*string, error) {
	var found *string
	for _, raw := range cppast.FindAnnotations(n) {
		color := strings.TrimPrefix(raw, e.prefix)
		if color == raw && e.prefix != "" {
			// annotation didn't carry our prefix at all; not a color tag
			continue
		}
		if !e.colors[color] {
			return nil, &rbwerrors.UnknownColor{Loc: n.Location(), Color: color}
		}
		if found != nil && *found != color {
			return nil, &rbwerrors.MultipleColors{Loc: n.Location(), Subject: subject}
		}
		found = &color
	}
	return found, nil
}

func (e *Extractor) warnUnsupported(kind string, loc fmt.Stringer) {
	if e.seenUnsupported[kind] {
		return
	}
	e.seenUnsupported[kind] = true
	e.log.Warn("unsupported node kind", "kind", kind, "location", loc.String())
}

// pushChildren enqueues every named direct child of n to be visited next,
// in scopeIn.
func (e *Extractor) pushChildren(n *cppast.Node, scopeIn *scope.Scope) {
	var items []workItem
	for _, c := range n.Children() {
		if c.IsNamed() {
			items = append(items, workItem{node: c, scope: scopeIn})
		}
	}
	e.pushFront(items)
}

// pushFront prepends items to the frontier so they are visited before
// anything already queued, giving the iterative walk the same
// depth-first, left-to-right source order as the original's recursive
// visitor (spec §5: "calls are recorded in source order").
func (e *Extractor) pushFront(items []workItem) {
	if len(items) == 0 {
		return
	}
	e.frontier = append(items, e.frontier...)
}
