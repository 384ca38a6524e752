package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"carbongpt/internal/chunker"
	"carbongpt/internal/ingest"
)

var updateWatch bool

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Rebuild the vector index from the document corpus",
	Long: `Update reads the configured data directory (plain text, markdown and
PDF via pdftotext), scrapes any configured standard-body URLs, chunks the
pages into overlapping sentence windows, embeds them and replaces the
index contents. With --watch it stays running and rebuilds whenever the
corpus directory changes.`,
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().BoolVar(&updateWatch, "watch", false, "watch the data directory and reindex on changes")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := buildApp(ctx, appConfig, logger)
	if err != nil {
		return err
	}
	defer a.close()

	ing := appConfig.Ingest
	pipeline := ingest.NewPipeline(
		ingest.NewLoader(logger),
		ingest.NewScraper(&http.Client{Timeout: 30 * time.Second}, logger),
		chunker.New(ing.SentencesPerChunk, ing.OverlapSentences),
		a.embedder,
		a.store,
		ing.URLs,
		ing.BatchSize,
		logger,
	)

	reindex := func(ctx context.Context) error {
		stats, err := pipeline.Run(ctx, ing.DataDir)
		if err != nil {
			return err
		}
		fmt.Printf("Indexed %d chunks from %d pages.\n", stats.Chunks, stats.Pages)
		return nil
	}

	if err := reindex(ctx); err != nil {
		return err
	}
	if !updateWatch {
		return nil
	}

	watchCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	fmt.Printf("Watching %s for changes (ctrl+c to stop)...\n", ing.DataDir)
	err = ingest.Watch(watchCtx, ing.DataDir, 2*time.Second, logger, reindex)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
