package rainbowconfig

import "context"

// Row is one result row: column name to its (possibly stringified
// downstream, never here) value.
type Row map[string]any

// Table is a query's full result set. A nil Table (as opposed to an
// empty, non-nil one) means the executor could not determine an answer
// at all — spec §4.4's "read failure ⇒ unknown" — and Config.Run must
// treat it as Unknown, never as Invalid.
type Table []Row

// Executor is the single interface both C4 strategies (in-process
// neo4j-go-driver, subprocess line protocol) implement, per spec §9's
// "define a single trait/interface... callers remain oblivious."
// Config.Run is written entirely against this interface and never knows
// which strategy backs it.
type Executor interface {
	Execute(ctx context.Context, query string) (Table, error)
}
