package traintrack

import (
	"errors"
	"strings"

	"github.com/subwaylabs/traintrack/model"
)

// Correlating realtime trips with static trips. The two sides share
// no primary key, but both embed the trip's nominal start time as a
// token inside the trip ID, with different separators and positions:
//
//	realtime: "000600_1..S03R"                        -> "000600"
//	static:   "AFA23GEN-1038-Sunday-00_000600_1..S03R" -> "000600"
//
// The join key is then (route_id, direction_id, service_id, token).
// Ambiguity means no match: picking one of several candidates would
// silently attribute delays to the wrong trip.
//
// The token extraction encodes an undocumented contract with the
// upstream feed's ID format. It lives in the two functions below and
// nowhere else, so a format change breaks loudly in their tests.

var (
	ErrNoTripMatch        = errors.New("no static trip matches")
	ErrAmbiguousTripMatch = errors.New("multiple static trips match")
)

// realtimeStartToken extracts the start-time token from a feed-native
// trip ID: the substring before the first underscore.
func realtimeStartToken(tripID string) string {
	if i := strings.IndexByte(tripID, '_'); i >= 0 {
		return tripID[:i]
	}
	return tripID
}

// staticStartToken extracts the start-time token from a static trip
// ID: the substring between the first and second underscore.
func staticStartToken(tripID string) string {
	i := strings.IndexByte(tripID, '_')
	if i < 0 {
		return tripID
	}
	rest := tripID[i+1:]
	if j := strings.IndexByte(rest, '_'); j >= 0 {
		return rest[:j]
	}
	return rest
}

type matchKey struct {
	RouteID     string
	DirectionID int8
	ServiceID   string
	StartToken  string
}

// Matcher indexes the static trip table for realtime correlation.
type Matcher struct {
	byKey map[matchKey][]string
}

func NewMatcher(trips []model.Trip) *Matcher {
	byKey := map[matchKey][]string{}
	for _, t := range trips {
		key := matchKey{
			RouteID:     t.RouteID,
			DirectionID: t.DirectionID,
			ServiceID:   t.ServiceID,
			StartToken:  staticStartToken(t.ID),
		}
		byKey[key] = append(byKey[key], t.ID)
	}
	return &Matcher{byKey: byKey}
}

// Match resolves an observation to its static trip ID under the
// given service. Zero candidates yields ErrNoTripMatch; more than
// one yields ErrAmbiguousTripMatch.
func (m *Matcher) Match(obs *model.TripUpdate, serviceID string) (string, error) {
	key := matchKey{
		RouteID:     obs.RouteID,
		DirectionID: obs.DirectionID,
		ServiceID:   serviceID,
		StartToken:  realtimeStartToken(obs.TripID),
	}

	candidates := m.byKey[key]
	switch len(candidates) {
	case 0:
		return "", ErrNoTripMatch
	case 1:
		return candidates[0], nil
	default:
		return "", ErrAmbiguousTripMatch
	}
}
