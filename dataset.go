package traintrack

import (
	"errors"
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/subwaylabs/traintrack/metrics"
	"github.com/subwaylabs/traintrack/model"
	"github.com/subwaylabs/traintrack/storage"
)

// Assembler reconciles the historical log against the static
// schedule and emits the flat dataset consumed by model training. It
// runs independently of live ingestion: the log is read once, at
// invocation, and records appended afterwards are picked up by the
// next run.
type Assembler struct {
	Static *Static
	Store  storage.Store

	// Optional. When set, drop reasons and row counts are published.
	Metrics *metrics.Collector
}

// Per-run accounting. Input = Rows + sum of all drop counts.
type AssemblyReport struct {
	Input int
	Rows  int

	UnresolvedService int
	UnmatchedTrips    int
	AmbiguousTrips    int
	MissingStopTimes  int
	UnparseableTimes  int
	ImplausibleDelays int
}

// Assemble walks the historical log in stored order and emits one
// dataset row per observation that survives every reconciliation
// step. Observations failing a step are dropped and counted, never
// emitted with null fields.
func (a *Assembler) Assemble() ([]model.ReconciledStopTime, AssemblyReport, error) {
	report := AssemblyReport{}

	observations, err := a.Store.History()
	if err != nil {
		return nil, report, fmt.Errorf("reading history: %w", err)
	}
	report.Input = len(observations)

	matcher := NewMatcher(a.Static.Trips)

	rows := []model.ReconciledStopTime{}
	for i := range observations {
		obs := &observations[i]

		serviceID, ok := a.Static.ServiceOnDate(obs.StartDate)
		if !ok {
			report.UnresolvedService++
			a.drop(metrics.ReasonUnresolvedService)
			continue
		}

		staticTripID, err := matcher.Match(obs, serviceID)
		if errors.Is(err, ErrAmbiguousTripMatch) {
			report.AmbiguousTrips++
			a.drop(metrics.ReasonAmbiguousTrip)
			continue
		} else if err != nil {
			report.UnmatchedTrips++
			a.drop(metrics.ReasonUnmatchedTrip)
			continue
		}

		scheduled, ok := a.Static.ScheduledArrival(staticTripID, obs.StopID)
		if !ok {
			report.MissingStopTimes++
			a.drop(metrics.ReasonMissingStopTime)
			continue
		}

		delay, err := Delay(scheduled, obs.ArrivalTime)
		if err != nil {
			report.UnparseableTimes++
			a.drop(metrics.ReasonUnparseableTime)
			continue
		}

		if delay.Abs() >= MaxPlausibleDelay {
			report.ImplausibleDelays++
			a.drop(metrics.ReasonImplausibleDelay)
			continue
		}

		// Both parse: Delay succeeded above.
		scheduledOffset, _ := model.ParseClock(scheduled)
		date, _ := model.ParseDate(obs.StartDate)

		rows = append(rows, model.ReconciledStopTime{
			RouteID:          obs.RouteID,
			TripID:           obs.TripID,
			StaticTripID:     staticTripID,
			DirectionID:      obs.DirectionID,
			TrackDirection:   obs.TrackDirection,
			StopID:           obs.StopID,
			StopName:         obs.StopName,
			StartDate:        obs.StartDate,
			StartTime:        obs.StartTime,
			DayType:          model.DayTypeOf(date.Weekday()),
			ScheduledArrival: scheduled,
			ScheduledSeconds: int64(scheduledOffset.Seconds()),
			ActualArrival:    obs.ArrivalTime,
			DelaySeconds:     int64(delay.Seconds()),
		})
	}

	report.Rows = len(rows)
	if a.Metrics != nil {
		a.Metrics.DatasetRows.Add(float64(report.Rows))
	}

	return rows, report, nil
}

func (a *Assembler) drop(reason string) {
	if a.Metrics != nil {
		a.Metrics.DroppedObservations.WithLabelValues(reason).Inc()
	}
}

// WriteCSV renders the assembled dataset as CSV with the documented
// column set.
func WriteCSV(w io.Writer, rows []model.ReconciledStopTime) error {
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("writing dataset csv: %w", err)
	}
	return nil
}
