package listing

import (
	"time"

	"fyyur/internal/models"
)

// Appearance is one show seen from a venue or an artist: the counterpart is
// the other side of the show.
type Appearance struct {
	CounterpartID        int64
	CounterpartName      string
	CounterpartImageLink string
	StartTime            time.Time
}

// Entry is an appearance ready for display.
type Entry struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	ImageLink string    `json:"image_link"`
	StartTime string    `json:"start_time"`
	At        time.Time `json:"-"`
}

// Partition holds a venue's or artist's shows split around now.
type Partition struct {
	Past          []Entry `json:"past_shows"`
	Upcoming      []Entry `json:"upcoming_shows"`
	PastCount     int     `json:"past_shows_count"`
	UpcomingCount int     `json:"upcoming_shows_count"`
}

// VenueAppearances views a venue's shows from the venue: the counterpart is
// the artist.
func VenueAppearances(details []models.ShowDetail) []Appearance {
	out := make([]Appearance, 0, len(details))
	for _, d := range details {
		out = append(out, Appearance{
			CounterpartID:        d.ArtistID,
			CounterpartName:      d.ArtistName,
			CounterpartImageLink: d.ArtistImageLink,
			StartTime:            d.StartTime,
		})
	}
	return out
}

// ArtistAppearances views an artist's shows from the artist: the counterpart
// is the venue.
func ArtistAppearances(details []models.ShowDetail) []Appearance {
	out := make([]Appearance, 0, len(details))
	for _, d := range details {
		out = append(out, Appearance{
			CounterpartID:        d.VenueID,
			CounterpartName:      d.VenueName,
			CounterpartImageLink: d.VenueImageLink,
			StartTime:            d.StartTime,
		})
	}
	return out
}

// Partition splits appearances into past (start before now) and upcoming
// (start after now). A show starting exactly at now is in neither list.
// Input order is preserved within each list.
func (e *Engine) Partition(appearances []Appearance) Partition {
	now := e.now()
	p := Partition{Past: []Entry{}, Upcoming: []Entry{}}

	for _, a := range appearances {
		entry := Entry{
			ID:        a.CounterpartID,
			Name:      a.CounterpartName,
			ImageLink: a.CounterpartImageLink,
			StartTime: a.StartTime.UTC().Format(TimeLayout),
			At:        a.StartTime,
		}
		switch {
		case a.StartTime.Before(now):
			p.Past = append(p.Past, entry)
		case a.StartTime.After(now):
			p.Upcoming = append(p.Upcoming, entry)
		}
	}

	p.PastCount = len(p.Past)
	p.UpcomingCount = len(p.Upcoming)
	return p
}

// ShowRow is one line of the flat show listing.
type ShowRow struct {
	VenueID         int64     `json:"venue_id"`
	VenueName       string    `json:"venue_name"`
	ArtistID        int64     `json:"artist_id"`
	ArtistName      string    `json:"artist_name"`
	ArtistImageLink string    `json:"artist_image_link"`
	StartTime       string    `json:"start_time"`
	At              time.Time `json:"-"`
}

// ShowRows flattens joined shows for the show listing.
func ShowRows(details []models.ShowDetail) []ShowRow {
	rows := make([]ShowRow, 0, len(details))
	for _, d := range details {
		rows = append(rows, ShowRow{
			VenueID:         d.VenueID,
			VenueName:       d.VenueName,
			ArtistID:        d.ArtistID,
			ArtistName:      d.ArtistName,
			ArtistImageLink: d.ArtistImageLink,
			StartTime:       d.StartTime.UTC().Format(TimeLayout),
			At:              d.StartTime,
		})
	}
	return rows
}
