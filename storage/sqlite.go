package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/subwaylabs/traintrack/model"
)

type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (and if necessary initializes) an observation
// store at the given path. An empty path yields an in-memory store.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	sourceName := ":memory:"
	if path != "" {
		sourceName = path
	}

	db, err := sql.Open("sqlite3", sourceName)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS trip_updates_snapshot (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    route_id TEXT NOT NULL,
    trip_id TEXT NOT NULL,
    direction_id INTEGER NOT NULL,
    track_direction TEXT NOT NULL,
    start_time TEXT NOT NULL,
    start_date TEXT NOT NULL,
    stop_id TEXT NOT NULL,
    stop_name TEXT NOT NULL,
    arrival_time TEXT NOT NULL,
    departure_time TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS trip_updates_history (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    route_id TEXT NOT NULL,
    trip_id TEXT NOT NULL,
    direction_id INTEGER NOT NULL,
    track_direction TEXT NOT NULL,
    start_time TEXT NOT NULL,
    start_date TEXT NOT NULL,
    stop_id TEXT NOT NULL,
    stop_name TEXT NOT NULL,
    arrival_time TEXT NOT NULL,
    departure_time TEXT NOT NULL,
UNIQUE (trip_id, start_date, stop_name)
);`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating trip_updates tables: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

const observationColumns = `
    route_id,
    trip_id,
    direction_id,
    track_direction,
    start_time,
    start_date,
    stop_id,
    stop_name,
    arrival_time,
    departure_time`

func (s *SQLiteStore) ReplaceSnapshot(obs []model.TripUpdate) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}

	_, err = tx.Exec(`DELETE FROM trip_updates_snapshot`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("clearing snapshot: %w", err)
	}

	stmt, err := tx.Prepare(`
INSERT INTO trip_updates_snapshot (` + observationColumns + `)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("preparing snapshot insert: %w", err)
	}
	defer stmt.Close()

	for _, o := range obs {
		_, err = stmt.Exec(
			o.RouteID,
			o.TripID,
			o.DirectionID,
			string(o.TrackDirection),
			o.StartTime,
			o.StartDate,
			o.StopID,
			o.StopName,
			o.ArrivalTime,
			o.DepartureTime,
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("inserting snapshot row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing snapshot: %w", err)
	}

	return nil
}

func (s *SQLiteStore) AppendHistory(obs []model.TripUpdate) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %w", err)
	}

	stmt, err := tx.Prepare(`
INSERT OR IGNORE INTO trip_updates_history (` + observationColumns + `)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("preparing history insert: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, o := range obs {
		res, err := stmt.Exec(
			o.RouteID,
			o.TripID,
			o.DirectionID,
			string(o.TrackDirection),
			o.StartTime,
			o.StartDate,
			o.StopID,
			o.StopName,
			o.ArrivalTime,
			o.DepartureTime,
		)
		if err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("inserting history row: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("checking history insert: %w", err)
		}
		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing history: %w", err)
	}

	return inserted, nil
}

func (s *SQLiteStore) Snapshot() ([]model.TripUpdate, error) {
	return s.readObservations("trip_updates_snapshot")
}

func (s *SQLiteStore) History() ([]model.TripUpdate, error) {
	return s.readObservations("trip_updates_history")
}

func (s *SQLiteStore) readObservations(table string) ([]model.TripUpdate, error) {
	rows, err := s.db.Query(`
SELECT ` + observationColumns + `
FROM ` + table + `
ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", table, err)
	}
	defer rows.Close()

	obs := []model.TripUpdate{}
	for rows.Next() {
		var o model.TripUpdate
		var trackDirection string
		err := rows.Scan(
			&o.RouteID,
			&o.TripID,
			&o.DirectionID,
			&trackDirection,
			&o.StartTime,
			&o.StartDate,
			&o.StopID,
			&o.StopName,
			&o.ArrivalTime,
			&o.DepartureTime,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning %s row: %w", table, err)
		}
		o.TrackDirection = model.TrackDirection(trackDirection)
		obs = append(obs, o)
	}

	return obs, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
