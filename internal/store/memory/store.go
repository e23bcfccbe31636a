// Package memory implements the listing gateway in process memory. It backs the
// server when STORE_DRIVER=memory and the service and handler tests.
package memory

import (
	"context"
	"errors"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"fyyur/internal/models"
	"fyyur/internal/store"
)

// Store keeps venues, artists and shows in maps guarded by one lock. Every
// mutation is applied whole or not at all.
type Store struct {
	mu      sync.RWMutex
	venues  map[int64]models.Venue
	artists map[int64]models.Artist
	shows   map[int64]models.Show
	nextID  map[string]int64
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		venues:  make(map[int64]models.Venue),
		artists: make(map[int64]models.Artist),
		shows:   make(map[int64]models.Show),
		nextID:  map[string]int64{"venues": 1, "artists": 1, "shows": 1},
	}
}

// Ping always succeeds.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) id(table string) int64 {
	id := s.nextID[table]
	s.nextID[table] = id + 1
	return id
}

func cloneVenue(v models.Venue) models.Venue {
	v.Genres = slices.Clone(v.Genres)
	if v.Genres == nil {
		v.Genres = []string{}
	}
	return v
}

func cloneArtist(a models.Artist) models.Artist {
	a.Genres = slices.Clone(a.Genres)
	if a.Genres == nil {
		a.Genres = []string{}
	}
	return a
}

func contains(name, term string) bool {
	return strings.Contains(strings.ToLower(name), strings.ToLower(term))
}

// ListVenues returns every venue ordered by state, then city, then id.
func (s *Store) ListVenues(_ context.Context) ([]models.Venue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	venues := make([]models.Venue, 0, len(s.venues))
	for _, v := range s.venues {
		venues = append(venues, cloneVenue(v))
	}
	sort.Slice(venues, func(i, j int) bool {
		a, b := venues[i], venues[j]
		if a.State != b.State {
			return a.State < b.State
		}
		if a.City != b.City {
			return a.City < b.City
		}
		return a.ID < b.ID
	})
	return venues, nil
}

// SearchVenues returns venues whose name contains term, ignoring case.
func (s *Store) SearchVenues(_ context.Context, term string) ([]models.Venue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	venues := make([]models.Venue, 0)
	for _, v := range s.venues {
		if contains(v.Name, term) {
			venues = append(venues, cloneVenue(v))
		}
	}
	sort.Slice(venues, func(i, j int) bool {
		if venues[i].Name != venues[j].Name {
			return venues[i].Name < venues[j].Name
		}
		return venues[i].ID < venues[j].ID
	})
	return venues, nil
}

// GetVenue retrieves a single venue by ID.
func (s *Store) GetVenue(_ context.Context, id int64) (*models.Venue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.venues[id]
	if !ok {
		return nil, store.ErrVenueNotFound
	}
	v = cloneVenue(v)
	return &v, nil
}

// CreateVenue stores venue under a new ID.
func (s *Store) CreateVenue(ctx context.Context, venue *models.Venue) (*models.Venue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	venue.ID = s.id("venues")
	s.venues[venue.ID] = cloneVenue(*venue)
	return venue, nil
}

// UpdateVenue replaces the stored venue. The last call wins.
func (s *Store) UpdateVenue(ctx context.Context, id int64, venue *models.Venue) (*models.Venue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.venues[id]; !ok {
		return nil, store.ErrVenueNotFound
	}
	venue.ID = id
	s.venues[id] = cloneVenue(*venue)
	return venue, nil
}

// DeleteVenue removes the venue and its shows.
func (s *Store) DeleteVenue(ctx context.Context, id int64) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.venues[id]; !ok {
		return 0, store.ErrVenueNotFound
	}

	var removed int64
	for showID, show := range s.shows {
		if show.VenueID == id {
			delete(s.shows, showID)
			removed++
		}
	}
	delete(s.venues, id)
	return removed, nil
}

// VenueShowTimes maps venue IDs to the start times of their shows.
func (s *Store) VenueShowTimes(_ context.Context) (map[int64][]time.Time, error) {
	return s.showTimes(func(show models.Show) int64 { return show.VenueID }), nil
}

// ShowsByVenue returns the venue's shows joined with their artists.
func (s *Store) ShowsByVenue(_ context.Context, venueID int64) ([]models.ShowDetail, error) {
	return s.details(func(show models.Show) bool { return show.VenueID == venueID }), nil
}

// ListArtists returns every artist ordered by name.
func (s *Store) ListArtists(_ context.Context) ([]models.Artist, error) {
	return s.artistsWhere(func(models.Artist) bool { return true }), nil
}

// SearchArtists returns artists whose name contains term, ignoring case.
func (s *Store) SearchArtists(_ context.Context, term string) ([]models.Artist, error) {
	return s.artistsWhere(func(a models.Artist) bool { return contains(a.Name, term) }), nil
}

func (s *Store) artistsWhere(keep func(models.Artist) bool) []models.Artist {
	s.mu.RLock()
	defer s.mu.RUnlock()

	artists := make([]models.Artist, 0, len(s.artists))
	for _, a := range s.artists {
		if keep(a) {
			artists = append(artists, cloneArtist(a))
		}
	}
	sort.Slice(artists, func(i, j int) bool {
		if artists[i].Name != artists[j].Name {
			return artists[i].Name < artists[j].Name
		}
		return artists[i].ID < artists[j].ID
	})
	return artists
}

// GetArtist retrieves a single artist by ID.
func (s *Store) GetArtist(_ context.Context, id int64) (*models.Artist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.artists[id]
	if !ok {
		return nil, store.ErrArtistNotFound
	}
	a = cloneArtist(a)
	return &a, nil
}

// CreateArtist stores artist under a new ID.
func (s *Store) CreateArtist(ctx context.Context, artist *models.Artist) (*models.Artist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	artist.ID = s.id("artists")
	s.artists[artist.ID] = cloneArtist(*artist)
	return artist, nil
}

// UpdateArtist replaces the stored artist. The last call wins.
func (s *Store) UpdateArtist(ctx context.Context, id int64, artist *models.Artist) (*models.Artist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.artists[id]; !ok {
		return nil, store.ErrArtistNotFound
	}
	artist.ID = id
	s.artists[id] = cloneArtist(*artist)
	return artist, nil
}

// ArtistShowTimes maps artist IDs to the start times of their shows.
func (s *Store) ArtistShowTimes(_ context.Context) (map[int64][]time.Time, error) {
	return s.showTimes(func(show models.Show) int64 { return show.ArtistID }), nil
}

// ShowsByArtist returns the artist's shows joined with their venues.
func (s *Store) ShowsByArtist(_ context.Context, artistID int64) ([]models.ShowDetail, error) {
	return s.details(func(show models.Show) bool { return show.ArtistID == artistID }), nil
}

// ListShows returns every show with venue and artist names, earliest first.
func (s *Store) ListShows(_ context.Context) ([]models.ShowDetail, error) {
	return s.details(func(models.Show) bool { return true }), nil
}

// CreateShow stores show after checking both references exist, mirroring the
// foreign keys of the SQL schema.
func (s *Store) CreateShow(ctx context.Context, show *models.Show) (*models.Show, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.venues[show.VenueID]; !ok {
		return nil, &store.ConflictError{Constraint: "shows_venue_id_fkey", Code: "23503", Err: errors.New("venue does not exist")}
	}
	if _, ok := s.artists[show.ArtistID]; !ok {
		return nil, &store.ConflictError{Constraint: "shows_artist_id_fkey", Code: "23503", Err: errors.New("artist does not exist")}
	}

	show.ID = s.id("shows")
	s.shows[show.ID] = *show
	return show, nil
}

func (s *Store) showTimes(owner func(models.Show) int64) map[int64][]time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	times := make(map[int64][]time.Time)
	for _, show := range s.shows {
		id := owner(show)
		times[id] = append(times[id], show.StartTime)
	}
	for _, starts := range times {
		sort.Slice(starts, func(i, j int) bool { return starts[i].Before(starts[j]) })
	}
	return times
}

func (s *Store) details(keep func(models.Show) bool) []models.ShowDetail {
	s.mu.RLock()
	defer s.mu.RUnlock()

	details := make([]models.ShowDetail, 0)
	for _, show := range s.shows {
		if !keep(show) {
			continue
		}
		venue := s.venues[show.VenueID]
		artist := s.artists[show.ArtistID]
		details = append(details, models.ShowDetail{
			Show:            show,
			VenueName:       venue.Name,
			VenueImageLink:  venue.ImageLink,
			ArtistName:      artist.Name,
			ArtistImageLink: artist.ImageLink,
		})
	}
	sort.Slice(details, func(i, j int) bool {
		a, b := details[i], details[j]
		if !a.StartTime.Equal(b.StartTime) {
			return a.StartTime.Before(b.StartTime)
		}
		return a.ID < b.ID
	})
	return details
}
