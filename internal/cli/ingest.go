package cli

import (
	"errors"
	"fmt"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Dozuki/rag-guide-chat-poc/internal/ingest"
	"github.com/Dozuki/rag-guide-chat-poc/pkg/api"
)

func newIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Load guides into the local knowledge base",
	}
	cmd.AddCommand(newIngestGuideCmd())
	cmd.AddCommand(newIngestSiteCmd())
	cmd.AddCommand(newIngestClearCmd())
	return cmd
}

func newIngestClearCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Drop every ingested chunk and stored setting",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			defer app.Close()

			if !yes {
				return fmt.Errorf("refusing to clear the knowledge base without --yes")
			}
			if err := app.Store.ClearAll(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "knowledge base cleared")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm clearing the knowledge base")
	return cmd
}

func newIngestGuideCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guide <id>",
		Short: "Ingest a single guide by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			defer app.Close()

			id, err := strconv.Atoi(args[0])
			if err != nil || id <= 0 {
				return fmt.Errorf("guide id must be a positive integer, got %q", args[0])
			}
			n, err := app.Ingest.IngestGuide(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "guide %d: %d chunks stored\n", id, n)
			return nil
		},
	}
}

func newIngestSiteCmd() *cobra.Command {
	var resume int
	var batchSize int
	cmd := &cobra.Command{
		Use:   "site",
		Short: "Ingest every guide on the configured site",
		Long: "Walks the full guide list and ingests each guide. Ctrl-C pauses " +
			"after the current guide finishes and prints the offset to resume from.",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			defer app.Close()

			if batchSize <= 0 {
				batchSize = app.Cfg.GetInt("ingest.batch_size")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			ev, err := app.Ingest.IngestSite(ctx, ingest.SiteOptions{
				ResumeOffset: resume,
				BatchSize:    batchSize,
				Progress: func(ev api.ProgressEvent) {
					switch {
					case ev.Err != "":
						fmt.Fprintf(out, "failed: %s\n", ev.Err)
					case ev.Status == api.IngestFetching:
						fmt.Fprintf(out, "site %s: %d guides found\n", ev.SiteID, ev.TotalGuides)
					case ev.Status == api.IngestProcessing:
						fmt.Fprintf(out, "processed %d/%d guides (%d chunks, %d failed)\n",
							ev.Processed+resume, ev.TotalGuides, ev.TotalChunks, ev.Failed)
					}
				},
			})
			if errors.Is(err, ingest.ErrPaused) {
				fmt.Fprintf(out, "paused; resume with: guidechat ingest site --resume %d\n", ev.ResumeOffset)
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "done: %d guides ingested, %d chunks, %d failed\n",
				ev.Processed, ev.TotalChunks, ev.Failed)
			return nil
		},
	}
	cmd.Flags().IntVar(&resume, "resume", 0, "guide-list offset to resume from")
	cmd.Flags().IntVar(&batchSize, "batch-size", 0, "guides between progress lines (default from config)")
	return cmd
}
