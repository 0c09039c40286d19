package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/rainbowcheck/rainbow/internal/driver"
	"github.com/rainbowcheck/rainbow/internal/executor"
	"github.com/rainbowcheck/rainbow/internal/rainbowconfig"
)

var (
	neo4jURI      string
	neo4jUsername string
	neo4jPassword string
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <cpp-file> <config-file>",
		Short: "validate a C++ translation unit's function coloring against a configured ruleset",
		Args:  cobra.ExactArgs(2),
		RunE:  runCheck,
	}
	cmd.Flags().StringVar(&neo4jURI, "neo4j-uri", "", "Neo4j bolt URI for the in-process executor strategy (default bolt://localhost:7687)")
	cmd.Flags().StringVar(&neo4jUsername, "neo4j-username", "", "Neo4j username (default neo4j)")
	cmd.Flags().StringVar(&neo4jPassword, "neo4j-password", "", "Neo4j password (default admin)")
	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	cppFile, configFile := args[0], args[1]

	src, err := os.ReadFile(cppFile)
	if err != nil {
		return fmt.Errorf("reading %s: %w", cppFile, err)
	}
	configData, err := os.ReadFile(configFile)
	if err != nil {
		return fmt.Errorf("reading %s: %w", configFile, err)
	}

	cfg, err := rainbowconfig.FromJSON(configData)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	ex, closeEx, err := selectExecutor(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeEx()

	result, err := driver.Run(ctx, src, cppFile, cfg, ex, slog.Default())
	if err != nil {
		return err
	}

	cmd.Println(result.Verdict.String())
	exitCode = result.ExitCode()
	return nil
}

// selectExecutor picks the subprocess strategy when the config names an
// executor (spec §6: an "executor" path in the config selects it), the
// in-process Neo4j strategy otherwise.
func selectExecutor(ctx context.Context, cfg *rainbowconfig.Config) (rainbowconfig.Executor, func(), error) {
	if cfg.ExecutorPath != "" {
		sub, err := executor.NewSubprocessExecutor(ctx, cfg.ExecutorPath)
		if err != nil {
			return nil, nil, fmt.Errorf("starting subprocess executor %q: %w", cfg.ExecutorPath, err)
		}
		return sub, func() { _ = sub.Close() }, nil
	}

	neo, err := executor.NewNeo4jExecutor(ctx, neo4jURI, neo4jUsername, neo4jPassword)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to Neo4j: %w", err)
	}
	return neo, func() { _ = neo.Close(ctx) }, nil
}
