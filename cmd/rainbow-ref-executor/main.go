// Command rainbow-ref-executor is a tiny reference out-of-process
// executor speaking the subprocess protocol of spec.md §4.4/§6, backed by
// a real Neo4j instance through internal/executor's in-process strategy.
// It exists mainly to drive Rainbow's own end-to-end tests against the
// subprocess code path without hand-rolling a second Cypher backend
// (SPEC_FULL.md §4 item 5), the Go analog of the original's standalone
// executors/neo4j_adapter.py.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/rainbowcheck/rainbow/internal/executor"
	"github.com/rainbowcheck/rainbow/internal/rainbowconfig"
)

const sentinel = "--"

func main() {
	uri := flag.String("uri", "", "Neo4j bolt URI (default bolt://localhost:7687)")
	username := flag.String("username", "", "Neo4j username (default neo4j)")
	password := flag.String("password", "", "Neo4j password (default admin)")
	flag.Parse()

	ctx := context.Background()
	neo, err := executor.NewNeo4jExecutor(ctx, *uri, *username, *password)
	if err != nil {
		slog.Error("could not connect to Neo4j", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer neo.Close(ctx)

	if err := run(ctx, neo, os.Stdin, os.Stdout); err != nil {
		slog.Error("reference executor exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// run reads queries delimited by a bare "--" line from r and writes one
// JSON response line per query to w, matching the protocol a Rainbow
// driver speaks to any subprocess executor. A CREATE statement wipes the
// graph first, so each new translation unit starts from an empty graph
// the same way the original's adapter does between validation cycles.
func run(ctx context.Context, ex *executor.Neo4jExecutor, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for {
		query, ok := readUntilSentinel(scanner)
		if !ok {
			return nil
		}

		trimmed := strings.TrimSpace(query)
		if strings.HasPrefix(strings.ToUpper(trimmed), "CREATE") {
			if err := ex.Reset(ctx); err != nil {
				return fmt.Errorf("resetting graph before create: %w", err)
			}
		}

		table, err := ex.Execute(ctx, trimmed)
		if err != nil {
			slog.Warn("query failed", slog.String("query", trimmed), slog.String("error", err.Error()))
			if _, werr := fmt.Fprintln(w, "null"); werr != nil {
				return werr
			}
			continue
		}

		line, err := encodeResponse(table)
		if err != nil {
			return fmt.Errorf("encoding response: %w", err)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
}

// encodeResponse maps a result table back to the response shapes spec §6
// allows: a nil table becomes a JSON null; a single invalidcalls-boolean
// row becomes a bare boolean, matching the aggregate-mode convention;
// anything else, including the empty table a CREATE returns, becomes an
// array of row objects.
func encodeResponse(table rainbowconfig.Table) (string, error) {
	if table == nil {
		return "null", nil
	}
	if len(table) == 1 {
		if v, ok := table[0]["invalidcalls"]; ok && len(table[0]) == 1 {
			b, err := json.Marshal(v)
			return string(b), err
		}
	}
	b, err := json.Marshal(table)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// readUntilSentinel accumulates lines until one equal to sentinel,
// mirroring the original adapter's readUntilDelim. Returns ok=false on
// EOF with no pending data, matching the original's EOFError shutdown.
func readUntilSentinel(scanner *bufio.Scanner) (string, bool) {
	var lines []string
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == sentinel {
			return strings.Join(lines, "\n"), true
		}
		lines = append(lines, line)
	}
	return "", false
}
