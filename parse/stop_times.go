package parse

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"

	"github.com/subwaylabs/traintrack/model"
)

type StopTimeCSV struct {
	TripID      string `csv:"trip_id"`
	StopID      string `csv:"stop_id"`
	ArrivalTime string `csv:"arrival_time"`
}

type tripStopKey struct {
	TripID string
	StopID string
}

// ParseStopTimes reads the scheduled arrival table. The (trip_id,
// stop_id) composite key must be unique; arrival times are validated
// but stored in their original schedule-style form, hours past 24
// included.
func ParseStopTimes(data io.Reader) ([]model.StopTime, error) {
	stopTimes := []model.StopTime{}
	seen := map[tripStopKey]bool{}

	i := -1
	err := gocsv.UnmarshalToCallbackWithError(data, func(st *StopTimeCSV) error {
		i += 1
		if st.TripID == "" {
			return fmt.Errorf("missing trip_id (row %d)", i+1)
		}
		if st.StopID == "" {
			return fmt.Errorf("missing stop_id (row %d)", i+1)
		}

		key := tripStopKey{st.TripID, st.StopID}
		if seen[key] {
			return fmt.Errorf("repeated (trip_id, stop_id) ('%s', '%s')", st.TripID, st.StopID)
		}
		seen[key] = true

		if _, err := model.ParseClock(st.ArrivalTime); err != nil {
			return errors.Wrapf(err, "parsing arrival_time (row %d)", i+1)
		}

		stopTimes = append(stopTimes, model.StopTime{
			TripID:  st.TripID,
			StopID:  st.StopID,
			Arrival: st.ArrivalTime,
		})

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "unmarshaling stop_times csv")
	}

	return stopTimes, nil
}
