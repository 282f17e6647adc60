package traintrack

import (
	"context"
	"fmt"
	"time"

	"github.com/subwaylabs/traintrack/metrics"
	"github.com/subwaylabs/traintrack/model"
	"github.com/subwaylabs/traintrack/parse"
	"github.com/subwaylabs/traintrack/storage"
)

// Ingestor runs one ingestion cycle: decode the cycle's realtime
// feeds, expand them into per-stop observations, then replace the
// snapshot and append to the historical log.
type Ingestor struct {
	Store    storage.Store
	Static   *Static
	Location *time.Location

	// Optional. When set, cycle counters are published.
	Metrics *metrics.Collector
}

// Outcome of one ingestion cycle.
type CycleReport struct {
	FeedsDecoded int
	FeedsFailed  int
	Observations int
	NewRows      int
}

// Ingest processes one cycle's worth of raw feed bytes. A feed that
// fails to decode contributes nothing this cycle; a storage failure
// aborts the cycle without corrupting previously committed data.
func (ing *Ingestor) Ingest(ctx context.Context, feeds [][]byte) (CycleReport, error) {
	rt := parse.ParseRealtime(ctx, feeds)

	obs := []model.TripUpdate{}
	for _, update := range rt.Updates {
		for _, ev := range update.StopEvents {
			obs = append(obs, model.TripUpdate{
				RouteID:        update.RouteID,
				TripID:         update.TripID,
				DirectionID:    update.DirectionID,
				TrackDirection: model.TrackDirectionFromStopID(ev.StopID),
				StartTime:      update.StartTime,
				StartDate:      update.StartDate,
				StopID:         ev.StopID,
				StopName:       ing.Static.StopName(ev.StopID),
				ArrivalTime:    ing.wallClock(ev.Arrival),
				DepartureTime:  ing.wallClock(ev.Departure),
			})
		}
	}

	report := CycleReport{
		FeedsDecoded: rt.FeedsDecoded,
		FeedsFailed:  rt.FeedsFailed,
		Observations: len(obs),
	}

	if err := ing.Store.ReplaceSnapshot(obs); err != nil {
		return report, fmt.Errorf("replacing snapshot: %w", err)
	}

	inserted, err := ing.Store.AppendHistory(obs)
	if err != nil {
		return report, fmt.Errorf("appending history: %w", err)
	}
	report.NewRows = inserted

	if ing.Metrics != nil {
		ing.Metrics.FeedsDecoded.Add(float64(report.FeedsDecoded))
		ing.Metrics.FeedsFailed.Add(float64(report.FeedsFailed))
		ing.Metrics.ObservationsIngested.Add(float64(report.Observations))
		ing.Metrics.HistoryRowsInserted.Add(float64(report.NewRows))
	}

	return report, nil
}

// wallClock renders an epoch timestamp as a local HH:MM:SS string in
// the feed's timezone. Absent timestamps become blank strings.
func (ing *Ingestor) wallClock(epoch int64) string {
	if epoch == 0 {
		return ""
	}
	return time.Unix(epoch, 0).In(ing.Location).Format("15:04:05")
}
