package repl

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/yndnr/respkv/internal/cli/output"
	"github.com/yndnr/respkv/pkg/resp"
)

// recorder is an Executor that records calls and echoes the verb.
type recorder struct {
	calls [][]string
	err   error
}

func (r *recorder) exec(_ context.Context, args []string) (resp.Frame, error) {
	r.calls = append(r.calls, args)
	if r.err != nil {
		return resp.Frame{}, r.err
	}
	return resp.SimpleString(strings.ToUpper(args[0])), nil
}

func newTestREPL(t *testing.T, input string, rec *recorder) (*REPL, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	h := NewHistory(filepath.Join(t.TempDir(), "history"))
	r := New(rec.exec, output.NewFormatter(output.FormatPlain),
		WithIO(strings.NewReader(input), out),
		WithHistory(h),
	)
	return r, out
}

func TestREPL_Run_Exit(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"exit command", "exit\n"},
		{"quit command", "quit\n"},
		{"EOF", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			r, _ := newTestREPL(t, tt.input, rec)
			if err := r.Run(context.Background()); err != nil {
				t.Errorf("Run() error = %v", err)
			}
			if len(rec.calls) != 0 {
				t.Errorf("executor called %d times, want 0", len(rec.calls))
			}
		})
	}
}

func TestREPL_Run_Commands(t *testing.T) {
	rec := &recorder{}
	r, out := newTestREPL(t, "set k \"a b\"\n\n  get k  \nexit\n", rec)

	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := [][]string{{"set", "k", "a b"}, {"get", "k"}}
	if diff := cmp.Diff(want, rec.calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(out.String(), "SET\n") || !strings.Contains(out.String(), "GET\n") {
		t.Errorf("output = %q, want replies", out.String())
	}
	if n := strings.Count(out.String(), "respkv> "); n != 4 {
		t.Errorf("prompts = %d, want 4", n)
	}
}

func TestREPL_Run_LastLineWithoutNewline(t *testing.T) {
	rec := &recorder{}
	r, _ := newTestREPL(t, "get k", rec)

	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(rec.calls) != 1 {
		t.Errorf("calls = %v, want one", rec.calls)
	}
}

func TestREPL_Run_ErrorsContinue(t *testing.T) {
	rec := &recorder{err: errors.New("connection reset")}
	r, out := newTestREPL(t, "get k\nset \"open\nexit\n", rec)

	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "Error: connection reset") {
		t.Errorf("output missing transport error: %q", out.String())
	}
	if !strings.Contains(out.String(), "Error: "+ErrUnbalancedQuotes.Error()) {
		t.Errorf("output missing quote error: %q", out.String())
	}
	if len(rec.calls) != 1 {
		t.Errorf("calls = %d, want 1", len(rec.calls))
	}
}

func TestREPL_Run_Help(t *testing.T) {
	rec := &recorder{}
	r, out := newTestREPL(t, "help sm\nexit\n", rec)

	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "SMEMBERS\n") {
		t.Errorf("help output = %q, want SMEMBERS", out.String())
	}
	if len(rec.calls) != 0 {
		t.Error("help should not reach the executor")
	}
}

func TestREPL_Run_History(t *testing.T) {
	rec := &recorder{}
	h := NewHistory(filepath.Join(t.TempDir(), "history"))
	r := New(rec.exec, output.NewFormatter(output.FormatPlain),
		WithIO(strings.NewReader("get a\n  get b  \nexit\n"), &bytes.Buffer{}),
		WithHistory(h),
	)

	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	for i, want := range []string{"exit", "get b", "get a"} {
		if got := h.Get(i); got != want {
			t.Errorf("Get(%d) = %q, want %q", i, got, want)
		}
	}
}

func TestREPL_Run_CancelledContext(t *testing.T) {
	rec := &recorder{}
	r, _ := newTestREPL(t, "get k\n", rec)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := r.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(rec.calls) != 0 {
		t.Error("cancelled REPL should not execute commands")
	}
}
