package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"fyyur/internal/models"
)

// seedDemoData lists the demo venues, artists and shows when no venue exists yet.
func seedDemoData(ctx context.Context, data dataStore) error {
	existing, err := data.ListVenues(ctx)
	if err != nil {
		return fmt.Errorf("seed: list venues: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	venueIDs := make([]int64, 0, len(demoVenues))
	for _, v := range demoVenues {
		created, err := data.CreateVenue(ctx, &v)
		if err != nil {
			return fmt.Errorf("seed venue %q: %w", v.Name, err)
		}
		venueIDs = append(venueIDs, created.ID)
	}

	artistIDs := make([]int64, 0, len(demoArtists))
	for _, a := range demoArtists {
		created, err := data.CreateArtist(ctx, &a)
		if err != nil {
			return fmt.Errorf("seed artist %q: %w", a.Name, err)
		}
		artistIDs = append(artistIDs, created.ID)
	}

	for _, s := range demoShows {
		show := &models.Show{
			VenueID:   venueIDs[s.venue],
			ArtistID:  artistIDs[s.artist],
			StartTime: s.start,
		}
		if _, err := data.CreateShow(ctx, show); err != nil {
			return fmt.Errorf("seed show: %w", err)
		}
	}

	zerolog.Ctx(ctx).Info().
		Int("venues", len(venueIDs)).
		Int("artists", len(artistIDs)).
		Int("shows", len(demoShows)).
		Msg("demo data seeded")
	return nil
}

var demoVenues = []models.Venue{
	{
		Name:               "The Musical Hop",
		Address:            "1015 Folsom Street",
		City:               "San Francisco",
		State:              "CA",
		Phone:              "123-123-1234",
		Website:            "https://www.themusicalhop.com",
		FacebookLink:       "https://www.facebook.com/TheMusicalHop",
		ImageLink:          "https://images.unsplash.com/photo-1543900694-133f37abaaa5?w=400",
		Genres:             []string{"Jazz", "Reggae", "Swing", "Classical", "Folk"},
		SeekingTalent:      true,
		SeekingDescription: "We are on the lookout for a local artist to play every two weeks. Please call us.",
	},
	{
		Name:         "The Dueling Pianos Bar",
		Address:      "335 Delancey Street",
		City:         "New York",
		State:        "NY",
		Phone:        "914-003-1132",
		Website:      "https://www.theduelingpianos.com",
		FacebookLink: "https://www.facebook.com/theduelingpianos",
		ImageLink:    "https://images.unsplash.com/photo-1497032205916-ac775f0649ae?w=400",
		Genres:       []string{"Classical", "R&B", "Hip-Hop"},
	},
	{
		Name:         "Park Square Live Music & Coffee",
		Address:      "34 Whiskey Moore Ave",
		City:         "San Francisco",
		State:        "CA",
		Phone:        "415-000-1234",
		Website:      "https://www.parksquarelivemusicandcoffee.com",
		FacebookLink: "https://www.facebook.com/ParkSquareLiveMusicAndCoffee",
		ImageLink:    "https://images.unsplash.com/photo-1485686531765-ba63b07845a7?w=400",
		Genres:       []string{"Rock n Roll", "Jazz", "Classical", "Folk"},
	},
}

var demoArtists = []models.Artist{
	{
		Name:               "Guns N Petals",
		City:               "San Francisco",
		State:              "CA",
		Phone:              "326-123-5000",
		Website:            "https://www.gunsnpetalsband.com",
		FacebookLink:       "https://www.facebook.com/GunsNPetals",
		ImageLink:          "https://images.unsplash.com/photo-1549213783-8284d0336c4f?w=300",
		Genres:             []string{"Rock n Roll"},
		SeekingVenue:       true,
		SeekingDescription: "Looking for shows to perform at in the San Francisco Bay Area!",
	},
	{
		Name:         "Matt Quevedo",
		City:         "New York",
		State:        "NY",
		Phone:        "300-400-5000",
		FacebookLink: "https://www.facebook.com/mattquevedo923251523",
		ImageLink:    "https://images.unsplash.com/photo-1495223153807-b916f75de8c5?w=334",
		Genres:       []string{"Jazz"},
	},
	{
		Name:      "The Wild Sax Band",
		City:      "San Francisco",
		State:     "CA",
		Phone:     "432-325-5432",
		ImageLink: "https://images.unsplash.com/photo-1558369981-f9ca78462e61?w=794",
		Genres:    []string{"Jazz", "Classical"},
	},
}

// demoShows index into demoVenues and demoArtists.
var demoShows = []struct {
	venue, artist int
	start         time.Time
}{
	{0, 0, time.Date(2019, 5, 21, 21, 30, 0, 0, time.UTC)},
	{2, 1, time.Date(2019, 6, 15, 23, 0, 0, 0, time.UTC)},
	{2, 2, time.Date(2035, 4, 1, 20, 0, 0, 0, time.UTC)},
	{2, 2, time.Date(2035, 4, 8, 20, 0, 0, 0, time.UTC)},
	{2, 2, time.Date(2035, 4, 15, 20, 0, 0, 0, time.UTC)},
}
