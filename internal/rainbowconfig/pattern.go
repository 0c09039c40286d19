package rainbowconfig

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

// OnMatchPair is one `free_variable -> projection_expression` entry of a
// pattern's on_match object. Representing it as an ordered slice (rather
// than a Go map) preserves the JSON object's declared key order, which
// Go's map type would otherwise randomize — and the assembled query
// text must be stable across runs for the deterministic-Cypher property
// spec §8 invariant 5 relies on downstream.
type OnMatchPair struct {
	Var  string
	Expr string
}

// Pattern is one configured Cypher path pattern, plus the optional
// projection (on_match) and diagnostic template (msg) that together
// select its query-assembly and result-interpretation mode (spec §4.2).
type Pattern struct {
	Query   string
	OnMatch []OnMatchPair
	Msg     string
}

// diagnostic reports whether this pattern runs in diagnostic mode (a
// match is reported as one or more rows, each formatted through Msg)
// rather than aggregate mode (a single boolean row).
func (p Pattern) diagnostic() bool {
	return p.Msg != ""
}

// assemble builds the MATCH query for this pattern per spec §4.2:
//   - neither on_match nor msg: boolean aggregate.
//   - on_match set (msg is then required): DISTINCT projection.
//   - only msg set: every column, one diagnostic row per match.
func (p Pattern) assemble() string {
	if !p.diagnostic() {
		return fmt.Sprintf("MATCH %s RETURN count(*) > 0 AS invalidcalls", p.Query)
	}
	if len(p.OnMatch) > 0 {
		projections := make([]string, len(p.OnMatch))
		for i, pair := range p.OnMatch {
			projections[i] = fmt.Sprintf("%s AS %s", pair.Expr, pair.Var)
		}
		return fmt.Sprintf("MATCH %s RETURN DISTINCT %s", p.Query, strings.Join(projections, ", "))
	}
	return fmt.Sprintf("MATCH %s RETURN *", p.Query)
}

// interpret turns a query result Table into this pattern's Verdict,
// logging one ERROR line per diagnostic-mode row (spec §4.2's "Result
// interpretation").
func (p Pattern) interpret(table Table, log *slog.Logger) Verdict {
	if table == nil {
		return Unknown
	}

	if !p.diagnostic() {
		if len(table) == 0 {
			return Unknown
		}
		hit, _ := table[0]["invalidcalls"].(bool)
		if hit {
			return Invalid
		}
		return Valid
	}

	for _, row := range table {
		log.Error(p.renderMsg(row), "pattern", p.Query)
	}
	if len(table) > 0 {
		return Invalid
	}
	return Valid
}

// renderMsg substitutes every `%var` occurrence in p.Msg with row's
// stringified binding for var. Keys are substituted longest-first so
// that one key being a prefix of another (`%cb` and `%callback`) cannot
// produce a partial, wrong substitution.
func (p Pattern) renderMsg(row Row) string {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return len(keys[i]) > len(keys[j]) })

	msg := p.Msg
	for _, k := range keys {
		msg = strings.ReplaceAll(msg, "%"+k, fmt.Sprintf("%v", row[k]))
	}
	return msg
}
