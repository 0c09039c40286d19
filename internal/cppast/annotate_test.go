package cppast

import (
	"context"
	"testing"
)

func TestFindAnnotationsOnFunction(t *testing.T) {
	src := []byte(`__attribute__((annotate("COLOR::RED"))) int ret0() { return 0; }`)
	p := NewParser()
	result, err := p.Parse(context.Background(), src, "test.cpp")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	fn := findFirst(result.Root, KindFunctionDefinition)
	if fn == nil {
		t.Fatalf("expected a function_definition node")
	}

	annotations := FindAnnotations(fn)
	if len(annotations) != 1 || annotations[0] != "COLOR::RED" {
		t.Fatalf("FindAnnotations = %v, want [COLOR::RED]", annotations)
	}
}

func TestFindAnnotationsNone(t *testing.T) {
	src := []byte(`int ret0() { return 0; }`)
	p := NewParser()
	result, err := p.Parse(context.Background(), src, "test.cpp")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	fn := findFirst(result.Root, KindFunctionDefinition)
	if fn == nil {
		t.Fatalf("expected a function_definition node")
	}
	if got := FindAnnotations(fn); len(got) != 0 {
		t.Fatalf("FindAnnotations = %v, want none", got)
	}
}

func findFirst(n *Node, kind string) *Node {
	if n == nil {
		return nil
	}
	if n.Kind() == kind {
		return n
	}
	for _, c := range n.Children() {
		if found := findFirst(c, kind); found != nil {
			return found
		}
	}
	return nil
}
