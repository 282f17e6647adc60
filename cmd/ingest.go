package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/subwaylabs/traintrack"
	"github.com/subwaylabs/traintrack/downloader"
	"github.com/subwaylabs/traintrack/metrics"
)

var ingestInterval time.Duration

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Fetch realtime feeds and record observations",
	Long: "Fetches every configured realtime feed, replaces the snapshot table and " +
		"appends newly seen stop events to the history table. With --interval the " +
		"cycle repeats until interrupted.",
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().DurationVar(&ingestInterval, "interval", 0, "repeat ingestion at this interval (0 runs once)")
}

func runIngest(cmd *cobra.Command, args []string) error {
	p, err := loadPipeline()
	if err != nil {
		return err
	}
	defer p.store.Close()

	collector := metrics.NewCollector()
	if p.cfg.MetricsAddr != "" {
		go func() {
			if err := collector.Serve(p.cfg.MetricsAddr); err != nil {
				log.Printf("metrics server: %v", err)
			}
		}()
	}

	ingestor := &traintrack.Ingestor{
		Store:    p.store,
		Static:   p.static,
		Location: p.location,
		Metrics:  collector,
	}

	dl := downloader.NewHTTP()
	ctx := cmd.Context()

	for {
		if err := ingestCycle(ctx, p, dl, ingestor); err != nil {
			if ingestInterval == 0 {
				return err
			}
			log.Printf("ingest cycle: %v", err)
		}

		if ingestInterval == 0 {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(ingestInterval):
		}
	}
}

func ingestCycle(ctx context.Context, p *pipeline, dl downloader.Downloader, ingestor *traintrack.Ingestor) error {
	opts := downloader.GetOptions{Timeout: p.cfg.FetchTimeout()}

	feeds := make([][]byte, 0, len(p.cfg.Feeds))
	for _, feed := range p.cfg.Feeds {
		body, err := dl.Get(ctx, feed.URL, feed.Headers, opts)
		if err != nil {
			log.Printf("fetching feed %s: %v", feed.Name, err)
			continue
		}
		feeds = append(feeds, body)
	}

	if len(feeds) == 0 {
		return fmt.Errorf("no feeds could be fetched")
	}

	report, err := ingestor.Ingest(ctx, feeds)
	if err != nil {
		return err
	}

	log.Printf("ingested %d observations (%d new) from %d feeds, %d failed to decode",
		report.Observations, report.NewRows, report.FeedsDecoded, report.FeedsFailed)
	return nil
}
