package artists

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fyyur/internal/events"
	"fyyur/internal/listing"
	"fyyur/internal/models"
	"fyyur/internal/store"
	"fyyur/internal/store/memory"
)

var now = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

type recordingPublisher struct {
	events []any
}

func (p *recordingPublisher) Publish(_ context.Context, event any) error {
	p.events = append(p.events, event)
	return nil
}

func TestArtistLifecycle(t *testing.T) {
	ctx := context.Background()
	mem := memory.New()
	pub := &recordingPublisher{}
	svc := New(mem, listing.New(func() time.Time { return now }), pub)

	petals := &models.Artist{
		Name:               "Guns N Petals",
		City:               "San Francisco",
		State:              "CA",
		Phone:              "326-123-5000",
		Website:            "https://www.gunsnpetalsband.com",
		FacebookLink:       "https://www.facebook.com/GunsNPetals",
		ImageLink:          "https://images.example.com/petals.jpg",
		Genres:             []string{"Rock n Roll"},
		SeekingVenue:       true,
		SeekingDescription: "Looking for shows to perform at in the San Francisco Bay Area!",
	}
	created, err := svc.Create(ctx, petals)
	require.NoError(t, err)

	_, err = svc.Create(ctx, &models.Artist{Name: "Matt Quevedo", City: "New York", State: "NY"})
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Guns N Petals", list[0].Name)

	venue, err := mem.CreateVenue(ctx, &models.Venue{Name: "The Musical Hop", ImageLink: "hop.jpg"})
	require.NoError(t, err)
	_, err = mem.CreateShow(ctx, &models.Show{VenueID: venue.ID, ArtistID: created.ID, StartTime: now.Add(-time.Hour)})
	require.NoError(t, err)

	detail, err := svc.Detail(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, petals.Genres, detail.Genres)
	require.Len(t, detail.Past, 1)
	assert.Equal(t, "The Musical Hop", detail.Past[0].Name)
	assert.Equal(t, "hop.jpg", detail.Past[0].ImageLink)
	assert.Equal(t, 0, detail.UpcomingCount)

	result, err := svc.Search(ctx, "PETALS")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Count)
	assert.Equal(t, 0, result.Data[0].NumUpcomingShows)

	edited := *petals
	edited.Name = "Guns N Roses"
	_, err = svc.Update(ctx, created.ID, &edited)
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Guns N Roses", got.Name)

	_, err = svc.Update(ctx, 999, &edited)
	assert.Equal(t, store.KindNotFound, store.KindOf(err))

	require.Len(t, pub.events, 3)
	_, ok := pub.events[2].(*events.ArtistUpdated)
	assert.True(t, ok)
}
