package command

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/respkv/internal/cli/config"
	"github.com/yndnr/respkv/internal/cli/output"
	"github.com/yndnr/respkv/internal/infra/buildinfo"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "respkv-cli",
		Usage:   "respkv command-line client",
		Version: buildinfo.Get().String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			ExecCommand(),
			ConfigCommand(),
			StatusCommand(),
		},
		Action: replAction,
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "CLI config file (default ~/.respkv/cli.yaml)",
			EnvVars: []string{"RESPKV_CLI_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "addr",
			Aliases: []string{"a"},
			Usage:   "server address (host:port)",
			EnvVars: []string{"RESPKV_CLI_ADDR"},
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format: plain, table, json, yaml",
			EnvVars: []string{"RESPKV_CLI_OUTPUT"},
		},
		&cli.DurationFlag{
			Name:    "timeout",
			Aliases: []string{"t"},
			Usage:   "dial and request timeout",
			EnvVars: []string{"RESPKV_CLI_TIMEOUT"},
		},
	}
}

// Settings is the effective CLI configuration: the config file overlaid
// with global flags.
type Settings struct {
	ConfigPath  string
	Addr        string
	Output      output.Format
	Timeout     time.Duration
	HistoryFile string
}

// resolveSettings loads the config file and applies the global flags that
// were set explicitly.
func resolveSettings(c *cli.Context) (*Settings, error) {
	path := c.String("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if c.IsSet("addr") {
		cfg.Addr = c.String("addr")
	}
	if c.IsSet("output") {
		cfg.Output = c.String("output")
	}
	if c.IsSet("timeout") {
		cfg.Timeout = c.Duration("timeout")
	}

	format, err := output.ParseFormat(cfg.Output)
	if err != nil {
		return nil, err
	}
	if cfg.Addr == "" {
		return nil, fmt.Errorf("server address is empty")
	}

	return &Settings{
		ConfigPath:  path,
		Addr:        cfg.Addr,
		Output:      format,
		Timeout:     cfg.Timeout,
		HistoryFile: cfg.HistoryFile,
	}, nil
}
