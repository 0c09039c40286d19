package main

import (
	"context"
	"os/exec"
	"testing"

	"github.com/rainbowcheck/rainbow/internal/executor"
	"github.com/rainbowcheck/rainbow/internal/rainbowconfig"
)

func TestSelectExecutorPrefersSubprocessWhenConfigured(t *testing.T) {
	catPath, err := exec.LookPath("cat")
	if err != nil {
		t.Skip("cat not on PATH")
	}

	cfg := &rainbowconfig.Config{ExecutorPath: catPath}
	ex, closeEx, err := selectExecutor(context.Background(), cfg)
	if err != nil {
		t.Fatalf("selectExecutor: %v", err)
	}
	defer closeEx()

	if _, ok := ex.(*executor.SubprocessExecutor); !ok {
		t.Fatalf("selectExecutor returned %T, want *executor.SubprocessExecutor", ex)
	}
}
