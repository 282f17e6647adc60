package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/subwaylabs/traintrack/model"
)

type PSQLStore struct {
	db *sql.DB
}

// NewPSQLStore connects to a Postgres observation store. With
// clearDB set, both observation tables are dropped and recreated;
// this is meant for tests.
func NewPSQLStore(connStr string, clearDB bool) (*PSQLStore, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if clearDB {
		_, err = db.Exec(`
DROP TABLE IF EXISTS trip_updates_snapshot;
DROP TABLE IF EXISTS trip_updates_history;`)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("clearing tables: %w", err)
		}
	}

	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS trip_updates_snapshot (
    id BIGSERIAL PRIMARY KEY,
    route_id TEXT NOT NULL,
    trip_id TEXT NOT NULL,
    direction_id SMALLINT NOT NULL,
    track_direction TEXT NOT NULL,
    start_time TEXT NOT NULL,
    start_date TEXT NOT NULL,
    stop_id TEXT NOT NULL,
    stop_name TEXT NOT NULL,
    arrival_time TEXT NOT NULL,
    departure_time TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS trip_updates_history (
    id BIGSERIAL PRIMARY KEY,
    route_id TEXT NOT NULL,
    trip_id TEXT NOT NULL,
    direction_id SMALLINT NOT NULL,
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

	return &PSQLStore{db: db}, nil
}

func (s *PSQLStore) ReplaceSnapshot(obs []model.TripUpdate) error {
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
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`)
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

func (s *PSQLStore) AppendHistory(obs []model.TripUpdate) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %w", err)
	}

	stmt, err := tx.Prepare(`
INSERT INTO trip_updates_history (` + observationColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (trip_id, start_date, stop_name) DO NOTHING`)
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

func (s *PSQLStore) Snapshot() ([]model.TripUpdate, error) {
	return s.readObservations("trip_updates_snapshot")
}

func (s *PSQLStore) History() ([]model.TripUpdate, error) {
	return s.readObservations("trip_updates_history")
}

func (s *PSQLStore) readObservations(table string) ([]model.TripUpdate, error) {
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

func (s *PSQLStore) Close() error {
	return s.db.Close()
}
