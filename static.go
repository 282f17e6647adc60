package traintrack

import (
	"errors"
	"fmt"

	"github.com/subwaylabs/traintrack/model"
	"github.com/subwaylabs/traintrack/parse"
)

// A required static table was absent or empty at job start. No
// partial run is meaningful without the full reference data.
var ErrMissingReferenceData = errors.New("missing reference data")

type tripStop struct {
	TripID string
	StopID string
}

// Static holds the loaded static schedule: the read-only reference
// tables plus the lookup indexes reconciliation needs. Calendar rows
// keep their file order, which decides ties in ServiceOnDate.
type Static struct {
	Calendars []model.Calendar
	Trips     []model.Trip

	stopNames map[string]string
	arrivals  map[tripStop]string
}

func NewStatic(tables *parse.StaticTables) (*Static, error) {
	if len(tables.Calendars) == 0 {
		return nil, fmt.Errorf("%w: calendar", ErrMissingReferenceData)
	}
	if len(tables.Trips) == 0 {
		return nil, fmt.Errorf("%w: trips", ErrMissingReferenceData)
	}
	if len(tables.StopTimes) == 0 {
		return nil, fmt.Errorf("%w: stop_times", ErrMissingReferenceData)
	}

	arrivals := make(map[tripStop]string, len(tables.StopTimes))
	for _, st := range tables.StopTimes {
		arrivals[tripStop{st.TripID, st.StopID}] = st.Arrival
	}

	stopNames := tables.StopNames
	if stopNames == nil {
		stopNames = map[string]string{}
	}

	return &Static{
		Calendars: tables.Calendars,
		Trips:     tables.Trips,
		stopNames: stopNames,
		arrivals:  arrivals,
	}, nil
}

// ServiceOnDate resolves the service pattern active on a date
// (YYYYMMDD). When several calendar rows cover the date, the first
// row in table order wins; the tie-break is deliberate and stable
// across calls. Returns false for malformed dates and dates no
// service covers.
func (s *Static) ServiceOnDate(date string) (string, bool) {
	parsed, err := model.ParseDate(date)
	if err != nil {
		return "", false
	}

	weekday := parsed.Weekday()
	for _, c := range s.Calendars {
		if c.ActiveOn(date, weekday) {
			return c.ServiceID, true
		}
	}

	return "", false
}

// StopName resolves a stop ID to its name, falling back to the raw
// ID when the stop table has no entry.
func (s *Static) StopName(stopID string) string {
	if name, found := s.stopNames[stopID]; found && name != "" {
		return name
	}
	return stopID
}

// ScheduledArrival returns the schedule-style arrival time for a
// (static trip, stop) pair.
func (s *Static) ScheduledArrival(tripID, stopID string) (string, bool) {
	arrival, found := s.arrivals[tripStop{tripID, stopID}]
	return arrival, found
}
