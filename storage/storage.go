package storage

import (
	"github.com/subwaylabs/traintrack/model"
)

// Store persists realtime observations across ingestion cycles. Two
// collections are kept:
//
//   - The snapshot: the most recent cycle's observations, replaced
//     wholesale every cycle. A reader racing an in-flight refresh may
//     observe the previous or the new generation, never a mix from
//     both plus anything older.
//
//   - The history: an append-only log, deduplicated at insertion on
//     the (trip_id, start_date, stop_name) natural key. Re-ingesting
//     an already recorded observation is a no-op, which makes
//     repeated cycles over the same live data idempotent.
//
// Each write runs in its own fully committed transaction; a failed
// cycle never corrupts previously committed data.
type Store interface {
	// Replaces the snapshot with this cycle's observations,
	// all-or-nothing.
	ReplaceSnapshot(obs []model.TripUpdate) error

	// Appends observations to the history, skipping any whose
	// natural key is already recorded. Returns the number of rows
	// actually inserted.
	AppendHistory(obs []model.TripUpdate) (int, error)

	// The current snapshot generation, in insertion order.
	Snapshot() ([]model.TripUpdate, error)

	// The full historical log, in insertion order.
	History() ([]model.TripUpdate, error)

	Close() error
}
