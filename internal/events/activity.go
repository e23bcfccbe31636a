package events

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/rs/zerolog"

	"fyyur/internal/metrics"
)

// Activity records every committed listing change in the log and in the
// fyyur_listing_events_total counter.
type Activity struct {
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

func NewActivity(logger zerolog.Logger, m *metrics.Metrics) *Activity {
	return &Activity{logger: logger, metrics: m}
}

// Handlers returns one cqrs handler per event type.
func (a *Activity) Handlers() []cqrs.EventHandler {
	return []cqrs.EventHandler{
		cqrs.NewEventHandler("activity-venue-listed", func(ctx context.Context, e *VenueListed) error {
			a.record("venue_listed", e.Header).
				Int64("venue_id", e.VenueID).
				Str("name", e.Name).
				Str("area", e.City+", "+e.State).
				Msg("venue listed")
			return nil
		}),
		cqrs.NewEventHandler("activity-venue-updated", func(ctx context.Context, e *VenueUpdated) error {
			a.record("venue_updated", e.Header).Int64("venue_id", e.VenueID).Str("name", e.Name).Msg("venue updated")
			return nil
		}),
		cqrs.NewEventHandler("activity-venue-deleted", func(ctx context.Context, e *VenueDeleted) error {
			a.record("venue_deleted", e.Header).
				Int64("venue_id", e.VenueID).
				Int64("shows_removed", e.ShowsRemoved).
				Msg("venue deleted")
			return nil
		}),
		cqrs.NewEventHandler("activity-artist-listed", func(ctx context.Context, e *ArtistListed) error {
			a.record("artist_listed", e.Header).Int64("artist_id", e.ArtistID).Str("name", e.Name).Msg("artist listed")
			return nil
		}),
		cqrs.NewEventHandler("activity-artist-updated", func(ctx context.Context, e *ArtistUpdated) error {
			a.record("artist_updated", e.Header).Int64("artist_id", e.ArtistID).Str("name", e.Name).Msg("artist updated")
			return nil
		}),
		cqrs.NewEventHandler("activity-show-listed", func(ctx context.Context, e *ShowListed) error {
			a.record("show_listed", e.Header).
				Int64("show_id", e.ShowID).
				Int64("venue_id", e.VenueID).
				Int64("artist_id", e.ArtistID).
				Time("start_time", e.StartTime).
				Msg("show listed")
			return nil
		}),
	}
}

func (a *Activity) record(event string, h Header) *zerolog.Event {
	a.metrics.RecordListingEvent(event)
	return a.logger.Info().
		Str("event", event).
		Str("event_id", h.ID).
		Str("request_id", h.RequestID)
}
