package traintrack

import (
	"time"

	"github.com/subwaylabs/traintrack/model"
)

// Delays at or beyond this magnitude are considered implausible and
// excluded from the assembled dataset, never clipped.
const MaxPlausibleDelay = 2 * time.Hour

// Delay computes the signed difference between a scheduled and an
// observed clock time, in both cases relative to the same service
// date. Positive means late. Either string failing to parse is an
// error; the caller drops the record.
//
// Schedules may express times past 24:00:00 while observed
// wall-clock times never do, and an observation near midnight may be
// stored on the same calendar date as a trip scheduled late the
// previous evening. When the naive difference puts the observation
// more than 12 hours before the schedule, it is taken to belong to
// the following day and shifted forward by 24 hours.
func Delay(scheduled, observed string) (time.Duration, error) {
	schedOffset, err := model.ParseClock(scheduled)
	if err != nil {
		return 0, err
	}

	obsOffset, err := model.ParseClock(observed)
	if err != nil {
		return 0, err
	}

	delay := obsOffset - schedOffset
	if delay < -12*time.Hour {
		delay += 24 * time.Hour
	}

	return delay, nil
}
