package models

import "time"

// Show is a scheduled pairing of one venue and one artist
type Show struct {
	ID        int64     `json:"id"`
	VenueID   int64     `json:"venue_id"`
	ArtistID  int64     `json:"artist_id"`
	StartTime time.Time `json:"start_time"`
}

// ShowDetail includes the names and images of both sides of a show.
// Populated via JOIN queries.
type ShowDetail struct {
	Show
	VenueName       string `json:"venue_name"`
	VenueImageLink  string `json:"venue_image_link"`
	ArtistName      string `json:"artist_name"`
	ArtistImageLink string `json:"artist_image_link"`
}
