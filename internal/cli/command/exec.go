package command

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/respkv/internal/cli/connection"
	"github.com/yndnr/respkv/internal/cli/output"
	"github.com/yndnr/respkv/pkg/resp"
)

// ErrReply is returned when the server answers with an error reply, so
// scripts see a non-zero exit status.
var ErrReply = errors.New("server returned an error reply")

// ExecCommand returns the exec command.
func ExecCommand() *cli.Command {
	return &cli.Command{
		Name:      "exec",
		Aliases:   []string{"x"},
		Usage:     "Send one command and print the reply",
		ArgsUsage: "VERB [ARG...]",
		Action:    execAction,
	}
}

func execAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("exec: command required")
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

	reply, err := client.Do(c.Context, c.Args().Slice()...)
	if err != nil {
		return err
	}
	if err := output.NewFormatter(s.Output).Format(c.App.Writer, reply); err != nil {
		return err
	}
	if k := reply.Kind(); k == resp.KindSimpleError || k == resp.KindBulkError {
		return ErrReply
	}
	return nil
}
