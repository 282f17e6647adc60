package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Data-quality and throughput counters for the pipeline. A rising
// unmatched-trip rate is the early warning that the upstream trip ID
// format has drifted away from the matcher's token heuristic.
type Collector struct {
	reg *prometheus.Registry

	FeedsDecoded prometheus.Counter
	FeedsFailed  prometheus.Counter

	ObservationsIngested prometheus.Counter
	HistoryRowsInserted  prometheus.Counter

	DroppedObservations *prometheus.CounterVec // reason label
	DatasetRows         prometheus.Counter
}

// Drop reason labels.
const (
	ReasonUnresolvedService = "unresolved_service"
	ReasonUnmatchedTrip     = "unmatched_trip"
	ReasonAmbiguousTrip     = "ambiguous_trip"
	ReasonMissingStopTime   = "missing_stop_time"
	ReasonUnparseableTime   = "unparseable_time"
	ReasonImplausibleDelay  = "implausible_delay"
)

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		FeedsDecoded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "traintrack_feeds_decoded_total",
			Help: "Realtime feeds successfully decoded.",
		}),
		FeedsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "traintrack_feeds_failed_total",
			Help: "Realtime feeds that failed to decode and were skipped.",
		}),
		ObservationsIngested: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "traintrack_observations_ingested_total",
			Help: "Stop-level observations written to the snapshot.",
		}),
		HistoryRowsInserted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "traintrack_history_rows_inserted_total",
			Help: "New rows appended to the historical log.",
		}),
		DroppedObservations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "traintrack_dropped_observations_total",
			Help: "Observations dropped during dataset assembly.",
		}, []string{"reason"}),
		DatasetRows: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "traintrack_dataset_rows_total",
			Help: "Rows emitted into the reconciled dataset.",
		}),
	}

	reg.MustRegister(
		c.FeedsDecoded,
		c.FeedsFailed,
		c.ObservationsIngested,
		c.HistoryRowsInserted,
		c.DroppedObservations,
		c.DatasetRows,
	)

	return c
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}

// Serve exposes the metrics endpoint. Blocks; meant to run in its
// own goroutine. A blank addr disables the server.
func (c *Collector) Serve(addr string) error {
	if addr == "" {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	return http.ListenAndServe(addr, mux)
}
