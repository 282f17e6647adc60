package parse

import (
	"context"
	"fmt"

	gtfsproto "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	proto "google.golang.org/protobuf/proto"
)

// Decodes GTFS Realtime trip update feeds into plain records. Only
// trip updates are extracted; vehicle positions and alerts are
// ignored. A feed that fails to decode yields no records for the
// cycle without affecting the other feeds.

// One per-stop event within a trip update. Arrival and Departure are
// epoch seconds; zero means the field was absent.
type StopEvent struct {
	StopID    string
	Arrival   int64
	Departure int64
}

// One trip update from a realtime feed. TripID is feed-native.
type TripUpdateRecord struct {
	RouteID     string
	TripID      string
	DirectionID int8
	StartTime   string // schedule-style clock string
	StartDate   string // YYYYMMDD
	StopEvents  []StopEvent
}

// Decoded contents of one ingestion cycle's worth of feeds.
type Realtime struct {
	Updates []*TripUpdateRecord

	// Per-cycle decode accounting. A failed feed is skipped, not
	// fatal.
	FeedsDecoded int
	FeedsFailed  int
}

func ParseRealtime(ctx context.Context, feeds [][]byte) *Realtime {
	rt := &Realtime{
		Updates: []*TripUpdateRecord{},
	}

	for _, feed := range feeds {
		if err := ctx.Err(); err != nil {
			return rt
		}

		updates, err := decodeFeed(feed)
		if err != nil {
			rt.FeedsFailed++
			continue
		}

		rt.Updates = append(rt.Updates, updates...)
		rt.FeedsDecoded++
	}

	return rt
}

func decodeFeed(feed []byte) ([]*TripUpdateRecord, error) {
	f := &gtfsproto.FeedMessage{}
	if err := proto.Unmarshal(feed, f); err != nil {
		return nil, fmt.Errorf("unmarshaling protobuf: %w", err)
	}

	updates := []*TripUpdateRecord{}
	for _, entity := range f.GetEntity() {
		// We only care about TripUpdates
		if entity.TripUpdate == nil {
			continue
		}

		trip := entity.TripUpdate.Trip
		if trip == nil || trip.GetTripId() == "" {
			continue
		}

		record := &TripUpdateRecord{
			RouteID:     trip.GetRouteId(),
			TripID:      trip.GetTripId(),
			DirectionID: int8(trip.GetDirectionId()),
			StartTime:   trip.GetStartTime(),
			StartDate:   trip.GetStartDate(),
		}

		for _, stu := range entity.TripUpdate.GetStopTimeUpdate() {
			if stu.GetStopId() == "" {
				continue
			}
			record.StopEvents = append(record.StopEvents, StopEvent{
				StopID:    stu.GetStopId(),
				Arrival:   stu.GetArrival().GetTime(),
				Departure: stu.GetDeparture().GetTime(),
			})
		}

		updates = append(updates, record)
	}

	return updates, nil
}
