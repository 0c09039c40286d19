// Package executor provides the two concrete strategies behind
// rainbowconfig.Executor (spec §4.4): an in-process adapter over a running
// Neo4j instance, and a subprocess adapter speaking the line-framed
// protocol of spec §6. No embedded pure-Go openCypher engine exists
// anywhere in the example corpus, so the in-process strategy is the
// closest faithful analog to the original's in-memory spycy engine.
package executor

import (
	"context"
	"fmt"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/rainbowcheck/rainbow/internal/rainbowconfig"
)

const (
	defaultURI      = "bolt://localhost:7687"
	defaultUsername = "neo4j"
	defaultPassword = "admin"
)

// Neo4jExecutor is the in-process strategy: one driver, a fresh session
// per query, always run as a write transaction since CREATE statements
// pass through the same Execute path as read-only MATCH queries.
type Neo4jExecutor struct {
	driver neo4j.DriverWithContext
}

// NewNeo4jExecutor dials uri and verifies connectivity before returning,
// the same fail-fast shape as services/llm's client constructors. Empty
// arguments fall back to a local default instance.
func NewNeo4jExecutor(ctx context.Context, uri, username, password string) (*Neo4jExecutor, error) {
	if uri == "" {
		uri = defaultURI
	}
	if username == "" {
		username = defaultUsername
	}
	if password == "" {
		password = defaultPassword
	}

	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("executor: dialing %s: %w", uri, err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("executor: verifying connectivity to %s: %w", uri, err)
	}
	return &Neo4jExecutor{driver: driver}, nil
}

// Execute runs query in its own session and write transaction, collecting
// every returned record into a rainbowconfig.Table. A query error is
// returned as-is; Config.Run is responsible for degrading it to Unknown
// (spec §4.4's read-failure rule lives at the Config layer, not here).
//
// A CREATE statement resets the graph first, the same rule
// cmd/rainbow-ref-executor applies over the subprocess protocol. Against
// a persistent Neo4j instance (unlike the original's spycy.CypherExecutor,
// rebuilt fresh per run in config.py), skipping this would let a second
// rainbow check see nodes left over from the first.
func (e *Neo4jExecutor) Execute(ctx context.Context, query string) (rainbowconfig.Table, error) {
	if isCreateStatement(query) {
		if err := e.Reset(ctx); err != nil {
			return nil, fmt.Errorf("executor: resetting graph before create: %w", err)
		}
	}

	session := e.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	result, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, nil)
		if err != nil {
			return nil, err
		}
		records, err := res.Collect(ctx)
		if err != nil {
			return nil, err
		}
		table := make(rainbowconfig.Table, len(records))
		for i, rec := range records {
			row := make(rainbowconfig.Row, len(rec.Keys))
			for _, key := range rec.Keys {
				val, _ := rec.Get(key)
				row[key] = val
			}
			table[i] = row
		}
		return table, nil
	})
	if err != nil {
		return nil, fmt.Errorf("executor: running query: %w", err)
	}
	return result.(rainbowconfig.Table), nil
}

// Reset detach-deletes every node in the graph, leaving it empty for the
// next run. Execute calls this itself ahead of every CREATE; it stays
// exported so callers (tests, cmd/rainbow-ref-executor) can force a reset
// without sending a throwaway CREATE statement.
func (e *Neo4jExecutor) Reset(ctx context.Context) error {
	_, err := e.Execute(ctx, "MATCH (a) DETACH DELETE a")
	return err
}

// Close releases the underlying driver and its connection pool.
func (e *Neo4jExecutor) Close(ctx context.Context) error {
	return e.driver.Close(ctx)
}

// isCreateStatement reports whether query is the scope tree's CREATE
// statement, split out of Execute so the reset trigger is testable
// without a live driver.
func isCreateStatement(query string) bool {
	return strings.HasPrefix(strings.ToUpper(strings.TrimSpace(query)), "CREATE")
}
