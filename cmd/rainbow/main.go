// Command rainbow checks a C++ translation unit's function coloring
// against a configured ruleset and reports a tri-valued verdict via its
// process exit code (spec §6/§8). Grounded on
// _examples/original_source/rainbow/rainbow.py's click-based main() for
// the flag surface and verbosity mapping, and on cmd/trace's flag +
// slog + otel wiring for the ambient CLI stack.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	verboseCount int
	quiet        bool
	traceEnabled bool

	levelVar = new(slog.LevelVar)
	exitCode = 0

	tracingShutdown = func(context.Context) error { return nil }
)

var rootCmd = &cobra.Command{
	Use:           "rainbow",
	Short:         "rainbow checks C++ function coloring against a ruleset",
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if quiet && verboseCount > 0 {
			return fmt.Errorf("--quiet and --verbose may not be combined")
		}
		levelVar.Set(verbosityToLevel(verboseCount, quiet))
		slog.SetDefault(slog.New(newColorHandler(os.Stderr, levelVar)))

		if traceEnabled {
			shutdown, err := setupTracing()
			if err != nil {
				return fmt.Errorf("setting up tracing: %w", err)
			}
			tracingShutdown = shutdown
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verboseCount, "verbose", "v", "increase log verbosity (repeatable)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress all but critical log output")
	rootCmd.PersistentFlags().BoolVar(&traceEnabled, "trace", false, "emit OpenTelemetry spans to stdout")

	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newDumpASTCmd())
}

// verbosityToLevel mirrors rainbow.py main()'s verbosity_map: -1 (quiet)
// through 3 (-vvv) walk CRITICAL..DEBUG. slog has no CRITICAL level, so
// quiet is modeled as one step above Error instead.
func verbosityToLevel(verbose int, quiet bool) slog.Level {
	v := verbose
	if quiet {
		v = -1
	}
	if v > 3 {
		v = 3
	}
	switch v {
	case -1:
		return slog.LevelError + 4
	case 0:
		return slog.LevelError
	case 1:
		return slog.LevelWarn
	case 2:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}

func main() {
	err := rootCmd.Execute()
	_ = tracingShutdown(context.Background())
	if err != nil {
		os.Exit(1)
	}
	os.Exit(exitCode)
}
