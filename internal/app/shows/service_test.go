package shows

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fyyur/internal/events"
	"fyyur/internal/models"
	"fyyur/internal/store"
	"fyyur/internal/store/memory"
)

type recordingPublisher struct {
	events []any
}

func (p *recordingPublisher) Publish(_ context.Context, event any) error {
	p.events = append(p.events, event)
	return nil
}

func TestCreateAndList(t *testing.T) {
	ctx := context.Background()
	mem := memory.New()
	pub := &recordingPublisher{}
	svc := New(mem, pub)

	venue, err := mem.CreateVenue(ctx, &models.Venue{Name: "The Musical Hop"})
	require.NoError(t, err)
	artist, err := mem.CreateArtist(ctx, &models.Artist{Name: "Guns N Petals", ImageLink: "petals.jpg"})
	require.NoError(t, err)

	start := time.Date(2019, 5, 21, 21, 30, 0, 0, time.UTC)
	created, err := svc.Create(ctx, &models.Show{VenueID: venue.ID, ArtistID: artist.ID, StartTime: start})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	rows, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "The Musical Hop", rows[0].VenueName)
	assert.Equal(t, "petals.jpg", rows[0].ArtistImageLink)
	assert.Equal(t, "05/21/2019, 21:30:00", rows[0].StartTime)

	require.Len(t, pub.events, 1)
	listed := pub.events[0].(*events.ShowListed)
	assert.Equal(t, created.ID, listed.ShowID)
}

func TestCreateWithUnknownVenueIsConflict(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{}
	svc := New(memory.New(), pub)

	_, err := svc.Create(ctx, &models.Show{VenueID: 1, ArtistID: 1, StartTime: time.Now()})
	require.Error(t, err)
	assert.Equal(t, store.KindConflict, store.KindOf(err))
	assert.Empty(t, pub.events)
}
