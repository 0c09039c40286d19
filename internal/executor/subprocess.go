package executor

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"

	"github.com/rainbowcheck/rainbow/internal/rainbowconfig"
)

// sentinel is the bare line that terminates a query write, per the
// subprocess executor protocol (spec §6).
const sentinel = "--"

// SubprocessExecutor drives a user-supplied out-of-process executor over
// the line-framed protocol of spec §4.4/§6: write a query, then a sentinel
// line, flush, then read exactly one JSON line back — null, a boolean, or
// an array of row objects.
type SubprocessExecutor struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout *bufio.Reader

	mu sync.Mutex
}

// NewSubprocessExecutor starts path and wires its stdin/stdout for the
// line protocol. No deadline is attached to the child beyond ctx itself:
// spec §5 leaves query cancellation to process termination, not to
// per-query timeouts.
func NewSubprocessExecutor(ctx context.Context, path string, args ...string) (*SubprocessExecutor, error) {
	cmd := exec.CommandContext(ctx, path, args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("executor: wiring subprocess stdin: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("executor: wiring subprocess stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("executor: starting %s: %w", path, err)
	}
	return &SubprocessExecutor{cmd: cmd, stdin: stdin, stdout: bufio.NewReader(stdout)}, nil
}

// Execute writes query and the sentinel line, then reads and decodes
// exactly one JSON response line. A read or decode failure is returned as
// an error; Config.Run degrades it to Unknown rather than treating it as
// fatal (spec §4.4's "Read failure ⇒ unknown").
func (e *SubprocessExecutor) Execute(ctx context.Context, query string) (rainbowconfig.Table, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := fmt.Fprintf(e.stdin, "%s\n%s\n", query, sentinel); err != nil {
		return nil, fmt.Errorf("executor: writing query: %w", err)
	}

	line, err := e.stdout.ReadString('\n')
	if err != nil && line == "" {
		return nil, fmt.Errorf("executor: reading response: %w", err)
	}
	return decodeResponse(line)
}

// decodeResponse interprets one response line per spec §6: a JSON null
// means the executor could not determine an answer (-> nil Table, the
// signal Pattern.interpret treats as Unknown); a boolean is the aggregate
// pattern's single-column result; an array is a diagnostic pattern's rows.
func decodeResponse(line string) (rainbowconfig.Table, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, fmt.Errorf("executor: empty response line")
	}

	var raw any
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return nil, fmt.Errorf("executor: decoding response %q: %w", line, err)
	}

	switch v := raw.(type) {
	case nil:
		return nil, nil
	case bool:
		return rainbowconfig.Table{rainbowconfig.Row{"invalidcalls": v}}, nil
	case []any:
		table := make(rainbowconfig.Table, len(v))
		for i, item := range v {
			obj, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("executor: response row %d is not an object", i)
			}
			table[i] = rainbowconfig.Row(obj)
		}
		return table, nil
	default:
		return nil, fmt.Errorf("executor: unexpected response shape %T", raw)
	}
}

// Close closes stdin, signaling end-of-input, then awaits the child's
// exit (spec §5's subprocess-lifetime guarantee: "normal exit closes
// stdin then awaits").
func (e *SubprocessExecutor) Close() error {
	if err := e.stdin.Close(); err != nil {
		return fmt.Errorf("executor: closing subprocess stdin: %w", err)
	}
	return e.cmd.Wait()
}
