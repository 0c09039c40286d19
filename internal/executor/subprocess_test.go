package executor

import (
	"context"
	"os/exec"
	"testing"

	"github.com/rainbowcheck/rainbow/internal/rainbowconfig"
)

func TestDecodeResponseNull(t *testing.T) {
	table, err := decodeResponse("null\n")
	if err != nil {
		t.Fatalf("decodeResponse: %v", err)
	}
	if table != nil {
		t.Fatalf("table = %v, want nil", table)
	}
}

func TestDecodeResponseBoolean(t *testing.T) {
	table, err := decodeResponse("true\n")
	if err != nil {
		t.Fatalf("decodeResponse: %v", err)
	}
	if len(table) != 1 || table[0]["invalidcalls"] != true {
		t.Fatalf("table = %+v, want one row with invalidcalls=true", table)
	}
}

func TestDecodeResponseRows(t *testing.T) {
	table, err := decodeResponse(`[{"caller": "foo", "callee": "bar"}]` + "\n")
	if err != nil {
		t.Fatalf("decodeResponse: %v", err)
	}
	if len(table) != 1 || table[0]["caller"] != "foo" {
		t.Fatalf("table = %+v", table)
	}
}

func TestDecodeResponseMalformed(t *testing.T) {
	if _, err := decodeResponse("not json\n"); err == nil {
		t.Fatalf("expected an error for malformed JSON")
	}
}

func TestDecodeResponseEmptyLine(t *testing.T) {
	if _, err := decodeResponse("\n"); err == nil {
		t.Fatalf("expected an error for an empty response line")
	}
}

// echoScript implements just enough of the protocol to drive
// SubprocessExecutor end to end: every query is acknowledged with a fixed
// JSON reply once the sentinel line arrives, independent of the query's
// own text.
const echoScript = `
while IFS= read -r line; do
  if [ "$line" = "--" ]; then
    echo "$REPLY"
  fi
done
`

func startEcho(t *testing.T, reply string) *SubprocessExecutor {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("no POSIX shell available to drive the reference protocol script")
	}
	ctx := context.Background()
	exe, err := NewSubprocessExecutor(ctx, "sh", "-c", "REPLY='"+reply+"'; "+echoScript)
	if err != nil {
		t.Fatalf("NewSubprocessExecutor: %v", err)
	}
	t.Cleanup(func() { _ = exe.Close() })
	return exe
}

func TestSubprocessExecutorRoundTripsBoolean(t *testing.T) {
	exe := startEcho(t, "true")
	table, err := exe.Execute(context.Background(), "MATCH (:RED)-->(:BLUE) RETURN count(*) > 0 AS invalidcalls")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(table) != 1 || table[0]["invalidcalls"] != true {
		t.Fatalf("table = %+v, want one row with invalidcalls=true", table)
	}
}

func TestSubprocessExecutorRoundTripsNull(t *testing.T) {
	exe := startEcho(t, "null")
	table, err := exe.Execute(context.Background(), "MATCH (a) RETURN *")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if table != nil {
		t.Fatalf("table = %v, want nil", table)
	}
}

func TestSubprocessExecutorAnswersEveryQuery(t *testing.T) {
	exe := startEcho(t, "true")
	for i := 0; i < 3; i++ {
		table, err := exe.Execute(context.Background(), "MATCH () RETURN count(*) > 0 AS invalidcalls")
		if err != nil {
			t.Fatalf("Execute #%d: %v", i, err)
		}
		if len(table) != 1 {
			t.Fatalf("Execute #%d: table = %+v", i, table)
		}
	}
}

var _ rainbowconfig.Executor = (*SubprocessExecutor)(nil)
var _ rainbowconfig.Executor = (*Neo4jExecutor)(nil)
