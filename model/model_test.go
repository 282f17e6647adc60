package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTrackDirectionFromStopID(t *testing.T) {
	assert.Equal(t, Northbound, TrackDirectionFromStopID("101N"))
	assert.Equal(t, Southbound, TrackDirectionFromStopID("101S"))
	assert.Equal(t, DirectionUnknown, TrackDirectionFromStopID("101"))
	assert.Equal(t, DirectionUnknown, TrackDirectionFromStopID(""))
}

func TestCalendarActiveOn(t *testing.T) {
	weekdays := Calendar{
		ServiceID: "wd",
		StartDate: "20240101",
		EndDate:   "20241231",
		Weekday: 1<<time.Monday | 1<<time.Tuesday | 1<<time.Wednesday |
			1<<time.Thursday | 1<<time.Friday,
	}

	// 20240116 is a Tuesday, 20240113 a Saturday
	assert.True(t, weekdays.ActiveOn("20240116", time.Tuesday))
	assert.False(t, weekdays.ActiveOn("20240113", time.Saturday))

	// Range is inclusive on both ends
	assert.True(t, weekdays.ActiveOn("20240101", time.Monday))
	assert.True(t, weekdays.ActiveOn("20241231", time.Tuesday))
	assert.False(t, weekdays.ActiveOn("20231229", time.Friday))
	assert.False(t, weekdays.ActiveOn("20250101", time.Wednesday))
}

func TestDayTypeOf(t *testing.T) {
	assert.Equal(t, DayTypeWeekday, DayTypeOf(time.Monday))
	assert.Equal(t, DayTypeWeekday, DayTypeOf(time.Friday))
	assert.Equal(t, DayTypeSaturday, DayTypeOf(time.Saturday))
	assert.Equal(t, DayTypeSunday, DayTypeOf(time.Sunday))
}

func TestObservationKey(t *testing.T) {
	a := TripUpdate{TripID: "t", StartDate: "20240116", StopName: "Union Sq", StopID: "635N"}
	b := TripUpdate{TripID: "t", StartDate: "20240116", StopName: "Union Sq", StopID: "635S"}

	// Stop ID is deliberately not part of the key; the name is.
	assert.Equal(t, a.Key(), b.Key())

	c := TripUpdate{TripID: "t", StartDate: "20240117", StopName: "Union Sq"}
	assert.NotEqual(t, a.Key(), c.Key())
}
