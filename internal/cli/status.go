package cli

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show knowledge base status",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			defer app.Close()

			ctx := cmd.Context()
			count, err := app.Store.Count(ctx)
			if err != nil {
				return err
			}
			guides, err := app.Store.Guides(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "site:      %s\n", app.Cfg.GetString("dozuki.site_id"))
			fmt.Fprintf(out, "documents: %d\n", count)
			fmt.Fprintf(out, "guides:    %d\n", len(guides))
			if app.Dozuki.Token() != "" {
				fmt.Fprintln(out, "login:     token stored")
			} else {
				fmt.Fprintln(out, "login:     not logged in")
			}
			fmt.Fprintf(out, "server:    %s\n", serverHealth(app.Cfg.GetString("http_addr")))
			return nil
		},
	}
}

// serverHealth probes a locally running chat server's /healthz.
func serverHealth(addr string) string {
	if addr == "" {
		return "not configured"
	}
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	client := http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get("http://" + addr + "/healthz")
	if err != nil {
		return "not running (" + addr + ")"
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode == http.StatusOK {
		return "up (" + addr + ")"
	}
	return fmt.Sprintf("unhealthy (%d)", resp.StatusCode)
}
