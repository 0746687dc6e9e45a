package command

import (
	"bytes"
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yndnr/respkv/internal/cli/config"
	"github.com/yndnr/respkv/internal/server/redisserver"
	"github.com/yndnr/respkv/internal/storage/memory"
	"github.com/yndnr/respkv/internal/telemetry/logger"
)

// startServer runs a respkv server on a loopback port.
func startServer(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	srv := redisserver.New(nil, memory.New(), redisserver.WithLogger(logger.Nop()))
	go srv.Serve(context.Background(), ln)
	t.Cleanup(func() { srv.Shutdown(context.Background()) })
	return ln.Addr().String()
}

// run executes the CLI with args and returns stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	app := App()
	app.Reader = strings.NewReader(stdin)
	app.Writer = &out
	app.ErrWriter = &errOut
	err := app.Run(append([]string{"respkv-cli"}, args...))
	return out.String(), err
}

func TestExec(t *testing.T) {
	addr := startServer(t)
	cfgPath := filepath.Join(t.TempDir(), "cli.yaml")

	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr error
	}{
		{name: "set", args: []string{"exec", "SET", "k", "v"}, want: "OK\n"},
		{name: "get", args: []string{"exec", "GET", "k"}, want: "\"v\"\n"},
		{name: "missing", args: []string{"exec", "GET", "nope"}, want: "(nil)\n"},
		{name: "sadd", args: []string{"exec", "SADD", "s", "m"}, want: "(integer) 1\n"},
		{name: "json output", args: []string{"-o", "json", "exec", "SMEMBERS", "s"}, want: "[\n  \"m\"\n]\n"},
		{
			name:    "error reply",
			args:    []string{"exec", "SET", "k"},
			want:    "(error) ERR wrong number of arguments for 'set' command\n",
			wantErr: ErrReply,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--config", cfgPath, "--addr", addr}, tt.args...)
			got, err := run(t, "", args...)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Run() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExec_NoArgs(t *testing.T) {
	if _, err := run(t, "", "--config", filepath.Join(t.TempDir(), "cli.yaml"), "exec"); err == nil {
		t.Error("exec without a command should fail")
	}
}

func TestExec_ConnectFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := ln.Addr().String()
	ln.Close()

	_, err = run(t, "", "--config", filepath.Join(t.TempDir(), "cli.yaml"), "--addr", addr, "exec", "GET", "k")
	if err == nil || !strings.Contains(err.Error(), "connect") {
		t.Errorf("Run() error = %v, want connect failure", err)
	}
}

func TestREPL(t *testing.T) {
	addr := startServer(t)
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "cli.yaml")

	cfg := config.Default()
	cfg.HistoryFile = filepath.Join(dir, "history")
	if err := config.Save(cfg, cfgPath); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "hset h f v\nhget h f\nexit\n", "--config", cfgPath, "--addr", addr)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(out, "(integer) 1\n") || !strings.Contains(out, "\"v\"\n") {
		t.Errorf("output = %q", out)
	}
	if !strings.Contains(out, addr+"> ") {
		t.Errorf("prompt missing from %q", out)
	}
}

func TestConfigSetShow(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "cli.yaml")

	if _, err := run(t, "", "--config", cfgPath, "config", "set", "addr", "10.1.1.1:7000"); err != nil {
		t.Fatalf("config set error = %v", err)
	}
	if _, err := run(t, "", "--config", cfgPath, "config", "set", "output", "yaml"); err != nil {
		t.Fatalf("config set error = %v", err)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != "10.1.1.1:7000" || cfg.Output != "yaml" {
		t.Errorf("saved config = %+v", cfg)
	}

	out, err := run(t, "", "--config", cfgPath, "--output", "json", "config", "show")
	if err != nil {
		t.Fatalf("config show error = %v", err)
	}
	if !strings.Contains(out, "10.1.1.1:7000") || !strings.Contains(out, "output: json") {
		t.Errorf("config show = %q", out)
	}
}

func TestConfigSet_Invalid(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "cli.yaml")

	tests := [][]string{
		{"config", "set", "color", "on"},
		{"config", "set", "output", "xml"},
		{"config", "set", "timeout", "soon"},
		{"config", "set", "addr"},
	}
	for _, args := range tests {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			if _, err := run(t, "", append([]string{"--config", cfgPath}, args...)...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/healthz" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","version":"v1.2.3","uptime":"5s","keys":{"scalar":2,"hash":0,"set":1}}`))
	}))
	defer ts.Close()

	out, err := run(t, "", "--config", filepath.Join(t.TempDir(), "cli.yaml"), "status", "--http-addr", ts.URL)
	if err != nil {
		t.Fatalf("status error = %v", err)
	}
	for _, want := range []string{"status:  ok", "version: v1.2.3", "keys.scalar: 2", "keys.set: 1"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}
