package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rainbowcheck/rainbow/internal/cppast"
)

func newDumpASTCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump-ast <cpp-file>",
		Short: "print the parsed syntax tree for a C++ file, indented by depth",
		Args:  cobra.ExactArgs(1),
		RunE:  runDumpAST,
	}
}

func runDumpAST(cmd *cobra.Command, args []string) error {
	file := args[0]
	src, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("reading %s: %w", file, err)
	}

	result, err := cppast.NewParser().Parse(cmd.Context(), src, file)
	if err != nil {
		return err
	}
	for _, d := range result.Diagnostics {
		cmd.PrintErrln(fmt.Sprintf("%s: %s: %s", d.Severity, d.Location, d.Message))
	}
	printNode(cmd, result.Root, 0)

	if result.HasErrors() {
		exitCode = 2
	}
	return nil
}

func printNode(cmd *cobra.Command, n *cppast.Node, depth int) {
	if n == nil {
		return
	}
	cmd.Println(strings.Repeat("  ", depth) + n.Kind())
	for _, c := range n.Children() {
		printNode(cmd, c, depth+1)
	}
}
