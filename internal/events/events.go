// Package events carries listing mutations from the services to the activity
// handler after they commit. Events travel over an in-process watermill
// channel through the cqrs event bus.
package events

import (
	"time"

	"github.com/ThreeDotsLabs/watermill"
)

type Header struct {
	ID          string    `json:"id"`
	PublishedAt time.Time `json:"published_at"`
	RequestID   string    `json:"request_id,omitempty"`
}

func NewHeader(requestID string) Header {
	return Header{
		ID:          watermill.NewUUID(),
		PublishedAt: time.Now().UTC(),
		RequestID:   requestID,
	}
}

type VenueListed struct {
	Header  Header `json:"header"`
	VenueID int64  `json:"venue_id"`
	Name    string `json:"name"`
	City    string `json:"city"`
	State   string `json:"state"`
}

type VenueUpdated struct {
	Header  Header `json:"header"`
	VenueID int64  `json:"venue_id"`
	Name    string `json:"name"`
}

type VenueDeleted struct {
	Header       Header `json:"header"`
	VenueID      int64  `json:"venue_id"`
	ShowsRemoved int64  `json:"shows_removed"`
}

type ArtistListed struct {
	Header   Header `json:"header"`
	ArtistID int64  `json:"artist_id"`
	Name     string `json:"name"`
}

type ArtistUpdated struct {
	Header   Header `json:"header"`
	ArtistID int64  `json:"artist_id"`
	Name     string `json:"name"`
}

type ShowListed struct {
	Header    Header    `json:"header"`
	ShowID    int64     `json:"show_id"`
	VenueID   int64     `json:"venue_id"`
	ArtistID  int64     `json:"artist_id"`
	StartTime time.Time `json:"start_time"`
}
