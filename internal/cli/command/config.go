package command

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"
	"go.yaml.in/yaml/v3"

	"github.com/yndnr/respkv/internal/cli/config"
	"github.com/yndnr/respkv/internal/cli/output"
)

// ConfigCommand returns the config subcommand group.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Local CLI configuration",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the effective configuration",
				Action: configShow,
			},
			{
				Name:        "set",
				Usage:       "Set a value in the config file",
				ArgsUsage:   "KEY VALUE",
				Description: "KEY is one of addr, output, timeout, history_file.",
				Action:      configSet,
			},
		},
	}
}

func configShow(c *cli.Context) error {
	s, err := resolveSettings(c)
	if err != nil {
		return err
	}
	shown := config.CLIConfig{
		Addr:        s.Addr,
		Output:      string(s.Output),
		Timeout:     s.Timeout,
		HistoryFile: s.HistoryFile,
	}
	enc := yaml.NewEncoder(c.App.Writer)
	enc.SetIndent(2)
	if err := enc.Encode(shown); err != nil {
		return err
	}
	return enc.Close()
}

func configSet(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("config set: KEY and VALUE required")
	}
	key, value := c.Args().Get(0), c.Args().Get(1)

	path := c.String("config")
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	switch key {
	case "addr":
		cfg.Addr = value
	case "output":
		f, err := output.ParseFormat(value)
		if err != nil {
			return err
		}
		cfg.Output = string(f)
	case "timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("config set: timeout: %w", err)
		}
		cfg.Timeout = d
	case "history_file":
		cfg.HistoryFile = value
	default:
		return fmt.Errorf("config set: unknown key %q", key)
	}

	if err := config.Save(cfg, path); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "%s = %s\n", key, value)
	return nil
}
