package listing

import (
	"time"

	"fyyur/internal/models"
)

// Named identifies a search match.
type Named struct {
	ID   int64
	Name string
}

// SearchResult is the payload of the search pages and their JSON form.
type SearchResult struct {
	Count int       `json:"count"`
	Data  []Summary `json:"data"`
}

// VenueNames extracts search matches from venues.
func VenueNames(venues []models.Venue) []Named {
	out := make([]Named, 0, len(venues))
	for _, v := range venues {
		out = append(out, Named{ID: v.ID, Name: v.Name})
	}
	return out
}

// ArtistNames extracts search matches from artists.
func ArtistNames(artists []models.Artist) []Named {
	out := make([]Named, 0, len(artists))
	for _, a := range artists {
		out = append(out, Named{ID: a.ID, Name: a.Name})
	}
	return out
}

// Search summarizes matches with their live upcoming show counts.
func (e *Engine) Search(matches []Named, showTimes map[int64][]time.Time) SearchResult {
	result := SearchResult{Count: len(matches), Data: make([]Summary, 0, len(matches))}
	for _, m := range matches {
		result.Data = append(result.Data, Summary{
			ID:               m.ID,
			Name:             m.Name,
			NumUpcomingShows: e.CountUpcoming(showTimes[m.ID]),
		})
	}
	return result
}
