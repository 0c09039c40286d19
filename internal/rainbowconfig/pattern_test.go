package rainbowconfig

import (
	"io"
	"log/slog"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAssembleAggregateMode(t *testing.T) {
	p := Pattern{Query: "(:RED)-->(:BLUE)"}
	got := p.assemble()
	want := "MATCH (:RED)-->(:BLUE) RETURN count(*) > 0 AS invalidcalls"
	if got != want {
		t.Fatalf("assemble() = %q, want %q", got, want)
	}
}

func TestAssembleDiagnosticStarMode(t *testing.T) {
	p := Pattern{Query: "(a)-->(b)", Msg: "bad: %a"}
	got := p.assemble()
	want := "MATCH (a)-->(b) RETURN *"
	if got != want {
		t.Fatalf("assemble() = %q, want %q", got, want)
	}
}

func TestAssembleDiagnosticProjectionMode(t *testing.T) {
	p := Pattern{
		Query:   "(a)-->(b)",
		OnMatch: []OnMatchPair{{Var: "n1", Expr: "a.name"}, {Var: "n2", Expr: "b.name"}},
		Msg:     "%n1 calls %n2",
	}
	got := p.assemble()
	want := "MATCH (a)-->(b) RETURN DISTINCT a.name AS n1, b.name AS n2"
	if got != want {
		t.Fatalf("assemble() = %q, want %q", got, want)
	}
}

func TestInterpretAggregateHit(t *testing.T) {
	p := Pattern{Query: "(:RED)-->(:BLUE)"}
	v := p.interpret(Table{Row{"invalidcalls": true}}, discardLogger())
	if v != Invalid {
		t.Fatalf("interpret() = %v, want Invalid", v)
	}
}

func TestInterpretAggregateMiss(t *testing.T) {
	p := Pattern{Query: "(:RED)-->(:BLUE)"}
	v := p.interpret(Table{Row{"invalidcalls": false}}, discardLogger())
	if v != Valid {
		t.Fatalf("interpret() = %v, want Valid", v)
	}
}

func TestInterpretAggregateEmptyTableIsUnknown(t *testing.T) {
	p := Pattern{Query: "(:RED)-->(:BLUE)"}
	v := p.interpret(Table{}, discardLogger())
	if v != Unknown {
		t.Fatalf("interpret() = %v, want Unknown", v)
	}
}

func TestInterpretNilTableIsUnknown(t *testing.T) {
	p := Pattern{Query: "(:RED)-->(:BLUE)"}
	v := p.interpret(nil, discardLogger())
	if v != Unknown {
		t.Fatalf("interpret() = %v, want Unknown", v)
	}
}

func TestInterpretDiagnosticModeInvalidOnAnyRow(t *testing.T) {
	p := Pattern{Query: "(a)-->(b)", Msg: "bad call from %caller"}
	v := p.interpret(Table{Row{"caller": "foo"}}, discardLogger())
	if v != Invalid {
		t.Fatalf("interpret() = %v, want Invalid", v)
	}
}

func TestInterpretDiagnosticModeValidWhenNoRows(t *testing.T) {
	p := Pattern{Query: "(a)-->(b)", Msg: "bad call from %caller"}
	v := p.interpret(Table{}, discardLogger())
	if v != Valid {
		t.Fatalf("interpret() = %v, want Valid", v)
	}
}

func TestRenderMsgSubstitutesLongestKeyFirst(t *testing.T) {
	p := Pattern{Msg: "%cb and %callback"}
	got := p.renderMsg(Row{"cb": "x", "callback": "y"})
	want := "x and y"
	if got != want {
		t.Fatalf("renderMsg() = %q, want %q", got, want)
	}
}

func TestCombineVerdicts(t *testing.T) {
	cases := []struct {
		a, b, want Verdict
	}{
		{Valid, Valid, Valid},
		{Valid, Unknown, Unknown},
		{Valid, Invalid, Invalid},
		{Unknown, Invalid, Invalid},
		{Invalid, Invalid, Invalid},
	}
	for _, c := range cases {
		if got := combine(c.a, c.b); got != c.want {
			t.Errorf("combine(%v, %v) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}
