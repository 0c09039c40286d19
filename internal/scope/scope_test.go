package scope

import "testing"

func strptr(s string) *string { return &s }

func TestNewRoot(t *testing.T) {
	root := NewRoot()
	if root.Parent != nil {
		t.Fatalf("expected root to have no parent")
	}
	if root.ID != RootID {
		t.Fatalf("expected root ID %d, got %d", RootID, root.ID)
	}
}

func TestCreateFunction(t *testing.T) {
	root := NewRoot()
	fn := CreateFunction(1, root, "fnname", nil, nil)
	if fn.Parent != root {
		t.Fatalf("expected fn.Parent == root")
	}
	if fn.ID != 1 {
		t.Fatalf("expected fn.ID == 1, got %d", fn.ID)
	}
	if root.Functions["fnname"] != fn {
		t.Fatalf("expected root.Functions[fnname] == fn")
	}
}

func TestRegisterCall(t *testing.T) {
	root := NewRoot()
	call1 := CreateFunction(1, root, "call1", nil, nil)
	call2 := CreateFunction(2, root, "call2", nil, nil)
	call3 := CreateFunction(3, root, "call3", nil, nil)

	if err := root.RegisterCallByName("call1"); err != nil {
		t.Fatal(err)
	}
	if err := root.RegisterCallByName("call2"); err != nil {
		t.Fatal(err)
	}
	if err := root.RegisterCallByName("call3"); err != nil {
		t.Fatal(err)
	}

	want := []*Scope{call1, call2, call3}
	if len(root.CalledFunctions) != len(want) {
		t.Fatalf("expected %d called functions, got %d", len(want), len(root.CalledFunctions))
	}
	for i, fn := range want {
		if root.CalledFunctions[i] != fn {
			t.Fatalf("called function %d: expected %v, got %v", i, fn, root.CalledFunctions[i])
		}
	}
}

func TestRegisterCallByNameUnresolved(t *testing.T) {
	root := NewRoot()
	if err := root.RegisterCallByName("nope"); err == nil {
		t.Fatalf("expected resolution error")
	}
}

func TestAlias(t *testing.T) {
	root := NewRoot()
	fn1 := CreateFunction(1, root, "fnname", nil, nil)
	fn2 := CreateFunction(2, root, "fnname", nil, nil)
	if got, want := fn1.Alias(), "`fnname__1`"; got != want {
		t.Fatalf("fn1.Alias() = %q, want %q", got, want)
	}
	if got, want := fn2.Alias(), "`fnname__2`"; got != want {
		t.Fatalf("fn2.Alias() = %q, want %q", got, want)
	}
}

func TestAliasPanicsOnRoot(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected Alias on the root to panic")
		}
	}()
	NewRoot().Alias()
}

func TestResolveFunction(t *testing.T) {
	root := NewRoot()
	if root.Resolve("fnname") != nil {
		t.Fatalf("expected nil resolution against empty root")
	}

	fn1 := CreateFunction(1, root, "fnname", nil, nil)
	if fn1.Resolve("fnname") != fn1 {
		t.Fatalf("expected fn1 to resolve itself (direct recursion)")
	}
	if root.Resolve("fnname") != fn1 {
		t.Fatalf("expected root to resolve fn1")
	}

	// Re-declaring under the same name in the same scope replaces the
	// entry rather than creating a sibling.
	fn2 := CreateFunction(2, root, "fnname", nil, nil)
	if root.Resolve("fnname") != fn2 {
		t.Fatalf("expected root to resolve the newest fnname")
	}
}

func TestResolveFunctionNested(t *testing.T) {
	// root
	//  |- fn1()
	//  |  |- fn3()
	//  |  |- fn1_scope1
	//  |     |- fn1_scope2
	//  |- fn2()
	root := NewRoot()
	fn1 := CreateFunction(1, root, "fn1", nil, nil)
	fn2 := CreateFunction(2, root, "fn2", nil, nil)
	fn3 := CreateFunction(3, fn1, "fn3", nil, nil)
	fn1Scope1 := NewBlockScope(4, fn1)
	fn1Scope2 := NewBlockScope(5, fn1Scope1)

	assertAllResolve := func(s *Scope) {
		t.Helper()
		if s.Resolve("fn1") != fn1 {
			t.Fatalf("expected fn1 to resolve from %v", s)
		}
		if s.Resolve("fn2") != fn2 {
			t.Fatalf("expected fn2 to resolve from %v", s)
		}
		if s.Resolve("fn3") != fn3 {
			t.Fatalf("expected fn3 to resolve from %v", s)
		}
	}
	assertAllResolve(fn3)
	assertAllResolve(fn1Scope1)
	assertAllResolve(fn1Scope2)

	// fn3 is lexically nested inside fn1; it must not be visible from
	// root or from fn1's sibling fn2.
	if root.Resolve("fn3") != nil {
		t.Fatalf("expected fn3 to be invisible from root")
	}
	if fn2.Resolve("fn3") != nil {
		t.Fatalf("expected fn3 to be invisible from fn2")
	}
	if fn1.Resolve("fn3") != fn3 {
		t.Fatalf("expected fn3 to resolve from within fn1")
	}
}

func TestResolveParameter(t *testing.T) {
	root := NewRoot()
	red := "RED"
	fn1 := CreateFunction(1, root, "fn1", nil, []ParamSpec{{ID: -1, Name: "param0", Color: &red}})

	p, ok := fn1.Params["param0"]
	if !ok {
		t.Fatalf("expected param0 to exist")
	}
	if !p.IsParam {
		t.Fatalf("expected param0.IsParam == true")
	}
	if fn1.Resolve("param0") != p {
		t.Fatalf("expected fn1.Resolve(param0) == the param proxy")
	}
}

func TestParameterShadowsEnclosingFunction(t *testing.T) {
	// A parameter named the same as an enclosing function name shadows it
	// from within the function body (spec.md §8 Laws: Shadowing).
	root := NewRoot()
	CreateFunction(1, root, "x", nil, nil)
	fColor := strptr("RED")
	f := CreateFunction(2, root, "F", fColor, []ParamSpec{{ID: -1, Name: "x", Color: nil}})

	if f.Resolve("x") != f.Params["x"] {
		t.Fatalf("expected F.Resolve(x) to return the parameter proxy, shadowing the global")
	}
}
