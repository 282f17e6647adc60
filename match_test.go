package traintrack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subwaylabs/traintrack/model"
)

func TestStartTokens(t *testing.T) {
	// Feed-native IDs: token precedes the first underscore
	assert.Equal(t, "000600", realtimeStartToken("000600_1..S03R"))
	assert.Equal(t, "000000", realtimeStartToken("000000_7..N97R"))
	assert.Equal(t, "123450", realtimeStartToken("123450"))
	assert.Equal(t, "", realtimeStartToken("_1..S03R"))

	// Static IDs: token sits between the first and second underscore
	assert.Equal(t, "000600", staticStartToken("AFA23GEN-1038-Weekday-00_000600_1..S03R"))
	assert.Equal(t, "000000", staticStartToken("AFA23GEN-7100-Sunday-00_000000_7..N97R"))
	assert.Equal(t, "000600", staticStartToken("prefix_000600"))
	assert.Equal(t, "bare", staticStartToken("bare"))
}

func matchTrips() []model.Trip {
	return []model.Trip{
		{
			ID:          "AFA23GEN-1038-Weekday-00_000600_1..S03R",
			RouteID:     "1",
			ServiceID:   "Weekday",
			DirectionID: 1,
		},
		{
			ID:          "AFA23GEN-1038-Weekday-00_000600_1..N03R",
			RouteID:     "1",
			ServiceID:   "Weekday",
			DirectionID: 0,
		},
		{
			ID:          "AFA23GEN-1038-Saturday-00_000600_1..S03R",
			RouteID:     "1",
			ServiceID:   "Saturday",
			DirectionID: 1,
		},
	}
}

func TestMatch(t *testing.T) {
	matcher := NewMatcher(matchTrips())

	obs := &model.TripUpdate{
		RouteID:     "1",
		TripID:      "000600_1..S03R",
		DirectionID: 1,
	}

	// Route, direction, service and token all line up
	tripID, err := matcher.Match(obs, "Weekday")
	require.NoError(t, err)
	assert.Equal(t, "AFA23GEN-1038-Weekday-00_000600_1..S03R", tripID)

	// The same observation under Saturday service picks the
	// Saturday trip
	tripID, err = matcher.Match(obs, "Saturday")
	require.NoError(t, err)
	assert.Equal(t, "AFA23GEN-1038-Saturday-00_000600_1..S03R", tripID)
}

func TestMatchNoCandidates(t *testing.T) {
	matcher := NewMatcher(matchTrips())

	for _, tc := range []struct {
		name      string
		obs       model.TripUpdate
		serviceID string
	}{
		{
			"unknown token",
			model.TripUpdate{RouteID: "1", TripID: "000700_1..S03R", DirectionID: 1},
			"Weekday",
		},
		{
			"wrong route",
			model.TripUpdate{RouteID: "2", TripID: "000600_1..S03R", DirectionID: 1},
			"Weekday",
		},
		{
			"wrong direction",
			model.TripUpdate{RouteID: "1", TripID: "000600_1..S03R", DirectionID: 0},
			"Saturday",
		},
		{
			"unknown service",
			model.TripUpdate{RouteID: "1", TripID: "000600_1..S03R", DirectionID: 1},
			"Sunday",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := matcher.Match(&tc.obs, tc.serviceID)
			assert.ErrorIs(t, err, ErrNoTripMatch)
		})
	}
}

func TestMatchAmbiguous(t *testing.T) {
	trips := append(matchTrips(), model.Trip{
		// Same key as the first weekday trip, different suffix
		ID:          "AFA23GEN-1038-Weekday-00_000600_1..S04R",
		RouteID:     "1",
		ServiceID:   "Weekday",
		DirectionID: 1,
	})
	matcher := NewMatcher(trips)

	obs := &model.TripUpdate{
		RouteID:     "1",
		TripID:      "000600_1..S03R",
		DirectionID: 1,
	}

	_, err := matcher.Match(obs, "Weekday")
	assert.ErrorIs(t, err, ErrAmbiguousTripMatch)
}
