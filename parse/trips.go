package parse

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/subwaylabs/traintrack/model"
)

type TripCSV struct {
	ID          string `csv:"trip_id"`
	RouteID     string `csv:"route_id"`
	ServiceID   string `csv:"service_id"`
	DirectionID int8   `csv:"direction_id"`
}

func ParseTrips(data io.Reader) ([]model.Trip, error) {
	tripCsv := []*TripCSV{}
	if err := gocsv.Unmarshal(data, &tripCsv); err != nil {
		return nil, fmt.Errorf("unmarshaling trips csv: %w", err)
	}

	known := map[string]bool{}
	trips := []model.Trip{}
	for _, t := range tripCsv {
		if t.ID == "" {
			return nil, fmt.Errorf("empty trip_id")
		}
		if known[t.ID] {
			return nil, fmt.Errorf("repeated trip_id '%s'", t.ID)
		}
		known[t.ID] = true

		if t.RouteID == "" {
			return nil, fmt.Errorf("empty route_id for trip '%s'", t.ID)
		}
		if t.ServiceID == "" {
			return nil, fmt.Errorf("empty service_id for trip '%s'", t.ID)
		}
		if t.DirectionID != 0 && t.DirectionID != 1 {
			return nil, fmt.Errorf("invalid direction_id '%d'", t.DirectionID)
		}

		trips = append(trips, model.Trip{
			ID:          t.ID,
			RouteID:     t.RouteID,
			ServiceID:   t.ServiceID,
			DirectionID: t.DirectionID,
		})
	}

	return trips, nil
}
