package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/respkv/internal/cli/connection"
	"github.com/yndnr/respkv/internal/cli/output"
	"github.com/yndnr/respkv/internal/cli/repl"
	"github.com/yndnr/respkv/pkg/resp"
)

func replAction(c *cli.Context) error {
	if c.NArg() > 0 {
		return fmt.Errorf("unknown command %q, use exec to send a command", c.Args().First())
	}

	s, err := resolveSettings(c)
	if err != nil {
		return err
	}

	client, err := connection.Dial(c.Context, s.Addr, connection.WithTimeout(s.Timeout))
	if err != nil {
		return fmt.Errorf("connect %s: %w", s.Addr, err)
	}
	defer client.Close()

	history := repl.NewHistory(s.HistoryFile)
	if err := history.Load(); err != nil {
		fmt.Fprintf(c.App.ErrWriter, "warning: load history: %v\n", err)
	}

	exec := func(ctx context.Context, args []string) (resp.Frame, error) {
		return client.Do(ctx, args...)
	}
	r := repl.New(exec, output.NewFormatter(s.Output),
		repl.WithIO(c.App.Reader, c.App.Writer),
		repl.WithPrompt(s.Addr+"> "),
		repl.WithHistory(history),
	)

	runErr := r.Run(c.Context)
	if err := history.Save(); err != nil {
		fmt.Fprintf(c.App.ErrWriter, "warning: save history: %v\n", err)
	}
	return runErr
}
