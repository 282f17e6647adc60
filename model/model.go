package model

// Holds all external facing types and constants.

import (
	"strings"
	"time"
)

// Direction of travel along the track, derived from the stop_id
// suffix convention used by the feed ("N" and "S" suffixes).
type TrackDirection string

const (
	Northbound       TrackDirection = "Northbound"
	Southbound       TrackDirection = "Southbound"
	DirectionUnknown TrackDirection = "Unknown"
)

// TrackDirectionFromStopID derives the track direction from a stop
// ID. Stop IDs without a recognized suffix map to DirectionUnknown.
func TrackDirectionFromStopID(stopID string) TrackDirection {
	switch {
	case strings.HasSuffix(stopID, "N"):
		return Northbound
	case strings.HasSuffix(stopID, "S"):
		return Southbound
	default:
		return DirectionUnknown
	}
}

// A single observed arrival/departure event for one stop on one
// trip, as decoded from a realtime feed. TripID is the feed-native
// identifier, not the static schedule's trip key.
type TripUpdate struct {
	RouteID        string
	TripID         string
	DirectionID    int8
	TrackDirection TrackDirection
	StartTime      string // schedule-style clock, trip's nominal origin departure
	StartDate      string // YYYYMMDD
	StopID         string
	StopName       string
	ArrivalTime    string // wall-clock HH:MM:SS, localized at ingestion
	DepartureTime  string
}

// Natural key for deduplication in the historical log.
type ObservationKey struct {
	TripID    string
	StartDate string
	StopName  string
}

func (tu *TripUpdate) Key() ObservationKey {
	return ObservationKey{
		TripID:    tu.TripID,
		StartDate: tu.StartDate,
		StopName:  tu.StopName,
	}
}

// A calendar row from the static schedule: a service pattern with
// per-weekday flags, valid over an inclusive date range.
type Calendar struct {
	ServiceID string
	StartDate string
	EndDate   string
	Weekday   int8
}

// ActiveOn reports whether the service runs on the given date
// (YYYYMMDD) falling on the given weekday.
func (c *Calendar) ActiveOn(date string, weekday time.Weekday) bool {
	if c.Weekday&(1<<weekday) == 0 {
		return false
	}
	return c.StartDate <= date && date <= c.EndDate
}

// A trip from the static schedule.
type Trip struct {
	ID          string
	RouteID     string
	ServiceID   string
	DirectionID int8
}

// A scheduled arrival for one (trip, stop) pair. Arrival is a
// schedule-style clock string whose hour may exceed 24 for trips
// running past midnight.
type StopTime struct {
	TripID  string
	StopID  string
	Arrival string
}

// Coarse service-day classification used as a categorical feature.
type DayType string

const (
	DayTypeWeekday  DayType = "Weekday"
	DayTypeSaturday DayType = "Saturday"
	DayTypeSunday   DayType = "Sunday"
)

func DayTypeOf(weekday time.Weekday) DayType {
	switch weekday {
	case time.Saturday:
		return DayTypeSaturday
	case time.Sunday:
		return DayTypeSunday
	default:
		return DayTypeWeekday
	}
}

// One row of the reconciled output dataset: an observation joined
// against the static schedule, with its computed delay.
type ReconciledStopTime struct {
	RouteID          string         `csv:"route_id"`
	TripID           string         `csv:"trip_id"`
	StaticTripID     string         `csv:"static_trip_id"`
	DirectionID      int8           `csv:"direction_id"`
	TrackDirection   TrackDirection `csv:"track_direction"`
	StopID           string         `csv:"stop_id"`
	StopName         string         `csv:"stop_name"`
	StartDate        string         `csv:"start_date"`
	StartTime        string         `csv:"start_time"`
	DayType          DayType        `csv:"day_type"`
	ScheduledArrival string         `csv:"scheduled_arrival"`
	ScheduledSeconds int64          `csv:"scheduled_seconds"`
	ActualArrival    string         `csv:"actual_arrival"`
	DelaySeconds     int64          `csv:"delay_seconds"`
}
