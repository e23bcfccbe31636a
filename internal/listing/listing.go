// Package listing turns gateway rows into the payloads shown on listing pages:
// venues grouped by area, shows split into past and upcoming, search summaries.
// Nothing here performs I/O; the clock is injected so tests can pin "now".
package listing

import (
	"time"

	"fyyur/internal/models"
)

// TimeLayout is the fixed format of start times in show payloads.
const TimeLayout = "01/02/2006, 15:04:05"

// Engine evaluates show times against its clock.
type Engine struct {
	now func() time.Time
}

// New returns an Engine reading time from now. A nil now uses time.Now.
func New(now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{now: now}
}

// Now reports the engine's current time.
func (e *Engine) Now() time.Time {
	return e.now()
}

// Summary is a venue or artist with its count of upcoming shows.
type Summary struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}

// Area groups the venues of one city.
type Area struct {
	City   string    `json:"city"`
	State  string    `json:"state"`
	Venues []Summary `json:"venues"`
}

// CountUpcoming returns how many of starts are strictly after now.
func (e *Engine) CountUpcoming(starts []time.Time) int {
	now := e.now()
	n := 0
	for _, start := range starts {
		if start.After(now) {
			n++
		}
	}
	return n
}

// GroupByArea groups venues by (state, city) in a single pass. Venues must
// already be ordered by state then city; a new area starts whenever either
// field differs from the previous venue. showTimes maps venue IDs to the start
// times of their shows.
func (e *Engine) GroupByArea(venues []models.Venue, showTimes map[int64][]time.Time) []Area {
	areas := []Area{}

	var current *Area
	for _, v := range venues {
		if current == nil || current.State != v.State || current.City != v.City {
			if current != nil {
				areas = append(areas, *current)
			}
			current = &Area{City: v.City, State: v.State}
		}
		current.Venues = append(current.Venues, Summary{
			ID:               v.ID,
			Name:             v.Name,
			NumUpcomingShows: e.CountUpcoming(showTimes[v.ID]),
		})
	}
	if current != nil {
		areas = append(areas, *current)
	}
	return areas
}
