package scope

import "testing"

func TestToCypherTrivial(t *testing.T) {
	root := NewRoot()
	if got, want := root.ToCypher(), "RETURN 0"; got != want {
		t.Fatalf("ToCypher() = %q, want %q", got, want)
	}
}

func TestToCypherFunction(t *testing.T) {
	root := NewRoot()
	CreateFunction(1, root, "fnname", nil, nil)

	want := "CREATE (`fnname__1` {name: 'fnname'})"
	if got := root.ToCypher(); got != want {
		t.Fatalf("ToCypher() = %q, want %q", got, want)
	}
}

func TestToCypherFunctionWithColor(t *testing.T) {
	root := NewRoot()
	red := "RED"
	CreateFunction(1, root, "fnname", &red, nil)

	want := "CREATE (`fnname__1`:RED {name: 'fnname'})"
	if got := root.ToCypher(); got != want {
		t.Fatalf("ToCypher() = %q, want %q", got, want)
	}
}

func TestToCypherFunctionWithParams(t *testing.T) {
	root := NewRoot()
	blue := "BLUE"
	CreateFunction(1, root, "fnname", nil, []ParamSpec{
		{ID: -1, Name: "param0", Color: nil},
		{ID: -2, Name: "param1", Color: &blue},
	})

	want := "CREATE (`fnname__1` {name: 'fnname'}),\n" +
		"  (`param0__param__fnname__1` {name: 'param0'}),\n" +
		"  (`param1__param__fnname__1`:BLUE {name: 'param1'})"
	if got := root.ToCypher(); got != want {
		t.Fatalf("ToCypher() =\n%q\nwant\n%q", got, want)
	}
}

func TestToCypherCallEdge(t *testing.T) {
	root := NewRoot()
	caller := CreateFunction(1, root, "caller", nil, nil)
	callee := CreateFunction(2, root, "callee", nil, nil)
	caller.RegisterCall(callee)

	want := "CREATE (`caller__1` {name: 'caller'}),\n" +
		"  (`callee__2` {name: 'callee'}),\n" +
		"  `caller__1` -[:CALLS]-> `callee__2`"
	if got := root.ToCypher(); got != want {
		t.Fatalf("ToCypher() =\n%q\nwant\n%q", got, want)
	}
}

func TestToCypherNestedFunction(t *testing.T) {
	root := NewRoot()
	outer := CreateFunction(1, root, "outer", nil, nil)
	CreateFunction(2, outer, "inner", nil, nil)

	want := "CREATE (`outer__1` {name: 'outer'}),\n" +
		"  (`inner__2` {name: 'inner'})"
	if got := root.ToCypher(); got != want {
		t.Fatalf("ToCypher() =\n%q\nwant\n%q", got, want)
	}
}

func TestToCypherEscapesQuotes(t *testing.T) {
	root := NewRoot()
	CreateFunction(1, root, "o'brien", nil, nil)

	want := "CREATE (`o'brien__1` {name: 'o\\'brien'})"
	if got := root.ToCypher(); got != want {
		t.Fatalf("ToCypher() = %q, want %q", got, want)
	}
}

func TestToCypherDeterministicOrder(t *testing.T) {
	root := NewRoot()
	CreateFunction(1, root, "a", nil, nil)
	CreateFunction(2, root, "b", nil, nil)
	CreateFunction(3, root, "c", nil, nil)

	first := root.ToCypher()
	for i := 0; i < 10; i++ {
		if got := root.ToCypher(); got != first {
			t.Fatalf("ToCypher() is non-deterministic: %q vs %q", got, first)
		}
	}
}
