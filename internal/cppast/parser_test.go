package cppast

import (
	"context"
	"testing"
)

func TestParseSimpleFunction(t *testing.T) {
	src := []byte(`int ret0() { return 0; }`)
	p := NewParser()
	result, err := p.Parse(context.Background(), src, "test.cpp")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if result.Root == nil {
		t.Fatalf("expected non-nil root")
	}
	if got := result.Root.Kind(); got != KindTranslationUnit {
		t.Fatalf("root.Kind() = %q, want %q", got, KindTranslationUnit)
	}
	if result.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", result.Diagnostics)
	}

	if !containsKind(result.Root, KindFunctionDefinition) {
		t.Fatalf("expected a function_definition node somewhere in the tree")
	}
}

func TestParseRejectsInvalidUTF8(t *testing.T) {
	p := NewParser()
	_, err := p.Parse(context.Background(), []byte{0xff, 0xfe, 0xfd}, "bad.cpp")
	if err == nil {
		t.Fatalf("expected an error for invalid UTF-8 input")
	}
}

func TestParseRejectsOversizedSource(t *testing.T) {
	p := NewParser(WithMaxSourceSize(8))
	_, err := p.Parse(context.Background(), []byte("int ret0(){return 0;}"), "big.cpp")
	if err == nil {
		t.Fatalf("expected an error for oversized input")
	}
}

func containsKind(n *Node, kind string) bool {
	if n == nil {
		return false
	}
	if n.Kind() == kind {
		return true
	}
	for _, c := range n.Children() {
		if containsKind(c, kind) {
			return true
		}
	}
	return false
}
