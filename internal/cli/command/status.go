package command

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/urfave/cli/v2"
)

// healthResponse mirrors the body of the server's GET /healthz.
type healthResponse struct {
	Status  string         `json:"status"`
	Version string         `json:"version"`
	Uptime  string         `json:"uptime"`
	Keys    map[string]int `json:"keys,omitempty"`
}

// StatusCommand returns the status command.
func StatusCommand() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Query the server's admin health endpoint",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "http-addr",
				Usage:   "admin HTTP address (host:port)",
				EnvVars: []string{"RESPKV_CLI_HTTP_ADDR"},
				Value:   "127.0.0.1:9121",
			},
		},
		Action: statusAction,
	}
}

func statusAction(c *cli.Context) error {
	s, err := resolveSettings(c)
	if err != nil {
		return err
	}

	url := c.String("http-addr")
	if !strings.Contains(url, "://") {
		url = "http://" + url
	}
	req, err := http.NewRequestWithContext(c.Context, http.MethodGet, url+"/healthz", nil)
	if err != nil {
		return err
	}
	client := &http.Client{Timeout: s.Timeout}
	res, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("status: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("status: unexpected HTTP status %s", res.Status)
	}
	var h healthResponse
	if err := json.NewDecoder(res.Body).Decode(&h); err != nil {
		return fmt.Errorf("status: decode: %w", err)
	}

	fmt.Fprintf(c.App.Writer, "status:  %s\nversion: %s\nuptime:  %s\n", h.Status, h.Version, h.Uptime)
	for _, ns := range []string{"scalar", "hash", "set"} {
		if n, ok := h.Keys[ns]; ok {
			fmt.Fprintf(c.App.Writer, "keys.%s: %d\n", ns, n)
		}
	}
	return nil
}
