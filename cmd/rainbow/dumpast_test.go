package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestRunDumpASTPrintsIndentedTree(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.cpp")
	if err := os.WriteFile(path, []byte("void f() {}\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cmd := newDumpASTCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{path})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if out.Len() == 0 {
		t.Fatalf("expected tree output, got nothing")
	}
}

func TestRunDumpASTMissingFile(t *testing.T) {
	cmd := newDumpASTCmd()
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "missing.cpp")})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}
