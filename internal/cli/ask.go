package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Dozuki/rag-guide-chat-poc/internal/present"
	"github.com/Dozuki/rag-guide-chat-poc/internal/render"
	"github.com/Dozuki/rag-guide-chat-poc/pkg/api"
)

func newAskCmd() *cobra.Command {
	var output string
	var topK int
	cmd := &cobra.Command{
		Use:   "ask <question...>",
		Short: "Ask a one-shot question against the ingested guides",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			defer app.Close()

			question := strings.TrimSpace(strings.Join(args, " "))
			if question == "" {
				return fmt.Errorf("question cannot be empty")
			}

			svc := *app.Answer
			if topK > 0 {
				svc.TopK = topK
			}
			res, err := svc.Answer(cmd.Context(), question, nil)
			if err != nil {
				return err
			}

			mode := resolveMode(output)
			return present.RenderAnswer(cmd.OutOrStdout(), api.QueryResult{
				Answer:       res.Answer,
				AnswerHTML:   render.HTML(res.Answer),
				Sources:      res.Sources,
				NumContexts:  len(res.Contexts),
				SourceGuides: res.SourceGuides,
			}, present.Options{Mode: mode, JSONIndent: true})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output mode: plain|pretty|json (default pretty on a terminal)")
	cmd.Flags().IntVar(&topK, "top-k", 0, "context chunks to retrieve (default from config)")
	return cmd
}

// resolveMode picks pretty output on a terminal and plain when piped,
// unless the flag forces a mode.
func resolveMode(flag string) present.Mode {
	if flag != "" {
		if m, ok := present.ParseMode(flag); ok {
			return m
		}
	}
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return present.ModePretty
	}
	return present.ModePlain
}
