package traintrack

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subwaylabs/traintrack/model"
	"github.com/subwaylabs/traintrack/parse"
)

func testTables() *parse.StaticTables {
	return &parse.StaticTables{
		Calendars: []model.Calendar{
			{
				ServiceID: "Sunday",
				Weekday:   1 << time.Sunday,
				StartDate: "20240101",
				EndDate:   "20241231",
			},
			{
				ServiceID: "Saturday",
				Weekday:   1 << time.Saturday,
				StartDate: "20240101",
				EndDate:   "20241231",
			},
			{
				ServiceID: "Weekday",
				Weekday: 1<<time.Monday | 1<<time.Tuesday | 1<<time.Wednesday |
					1<<time.Thursday | 1<<time.Friday,
				StartDate: "20240101",
				EndDate:   "20241231",
			},
		},
		Trips: []model.Trip{
			{
				ID:          "AFA23GEN-1038-Weekday-00_000600_1..S03R",
				RouteID:     "1",
				ServiceID:   "Weekday",
				DirectionID: 1,
			},
		},
		StopTimes: []model.StopTime{
			{
				TripID:  "AFA23GEN-1038-Weekday-00_000600_1..S03R",
				StopID:  "101S",
				Arrival: "06:00:00",
			},
		},
		StopNames: map[string]string{
			"101S": "Van Cortlandt Park-242 St",
		},
	}
}

func TestNewStaticRequiresReferenceData(t *testing.T) {
	for _, tc := range []struct {
		name   string
		mutate func(*parse.StaticTables)
	}{
		{"no calendars", func(tables *parse.StaticTables) { tables.Calendars = nil }},
		{"no trips", func(tables *parse.StaticTables) { tables.Trips = nil }},
		{"no stop times", func(tables *parse.StaticTables) { tables.StopTimes = nil }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			tables := testTables()
			tc.mutate(tables)
			_, err := NewStatic(tables)
			assert.ErrorIs(t, err, ErrMissingReferenceData)
		})
	}

	// Stop names are optional reference data
	tables := testTables()
	tables.StopNames = nil
	static, err := NewStatic(tables)
	require.NoError(t, err)
	assert.Equal(t, "101S", static.StopName("101S"))
}

func TestServiceOnDate(t *testing.T) {
	static, err := NewStatic(testTables())
	require.NoError(t, err)

	for _, tc := range []struct {
		name     string
		date     string
		expected string
		found    bool
	}{
		{"tuesday", "20240116", "Weekday", true},
		{"saturday", "20240113", "Saturday", true},
		{"sunday", "20240114", "Sunday", true},
		{"before all ranges", "20231229", "", false},
		{"after all ranges", "20250106", "", false},
		{"malformed date", "2024-01-16", "", false},
		{"empty date", "", "", false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			serviceID, found := static.ServiceOnDate(tc.date)
			assert.Equal(t, tc.found, found)
			assert.Equal(t, tc.expected, serviceID)
		})
	}
}

func TestServiceOnDateOverlapTieBreak(t *testing.T) {
	tables := testTables()
	tables.Calendars = []model.Calendar{
		{
			ServiceID: "Special",
			Weekday:   127,
			StartDate: "20240115",
			EndDate:   "20240121",
		},
		{
			ServiceID: "Weekday",
			Weekday: 1<<time.Monday | 1<<time.Tuesday | 1<<time.Wednesday |
				1<<time.Thursday | 1<<time.Friday,
			StartDate: "20240101",
			EndDate:   "20241231",
		},
	}

	static, err := NewStatic(tables)
	require.NoError(t, err)

	// Both services cover this Tuesday; the first row in table order
	// wins, every time.
	for i := 0; i < 10; i++ {
		serviceID, found := static.ServiceOnDate("20240116")
		require.True(t, found)
		assert.Equal(t, "Special", serviceID)
	}

	// Outside the overlap the later row still resolves
	serviceID, found := static.ServiceOnDate("20240123")
	require.True(t, found)
	assert.Equal(t, "Weekday", serviceID)
}

func TestStopName(t *testing.T) {
	static, err := NewStatic(testTables())
	require.NoError(t, err)

	assert.Equal(t, "Van Cortlandt Park-242 St", static.StopName("101S"))

	// Unknown stops fall back to the raw ID
	assert.Equal(t, "X99N", static.StopName("X99N"))
}

func TestScheduledArrival(t *testing.T) {
	static, err := NewStatic(testTables())
	require.NoError(t, err)

	arrival, found := static.ScheduledArrival("AFA23GEN-1038-Weekday-00_000600_1..S03R", "101S")
	require.True(t, found)
	assert.Equal(t, "06:00:00", arrival)

	_, found = static.ScheduledArrival("AFA23GEN-1038-Weekday-00_000600_1..S03R", "999S")
	assert.False(t, found)

	_, found = static.ScheduledArrival("nope", "101S")
	assert.False(t, found)
}
