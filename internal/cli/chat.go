package cli

import (
	"github.com/spf13/cobra"

	"github.com/Dozuki/rag-guide-chat-poc/internal/tui"
)

func newChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Open an interactive chat session",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			defer app.Close()
			return tui.Run(cmd.Context(), app.Answer, app.Cfg.GetString("dozuki.site_id"))
		},
	}
}
