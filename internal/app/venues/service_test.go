package venues

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
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
	mu     sync.Mutex
	events []any
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func newService(t *testing.T) (Service, *memory.Store, *recordingPublisher) {
	t.Helper()
	mem := memory.New()
	pub := &recordingPublisher{}
	engine := listing.New(func() time.Time { return now })
	return New(mem, engine, pub), mem, pub
}

func hop() *models.Venue {
	return &models.Venue{
		Name:               "The Musical Hop",
		Address:            "1015 Folsom Street",
		City:               "San Francisco",
		State:              "CA",
		Phone:              "123-123-1234",
		Website:            "https://www.themusicalhop.com",
		FacebookLink:       "https://www.facebook.com/TheMusicalHop",
		ImageLink:          "https://images.example.com/hop.jpg",
		Genres:             []string{"Jazz", "Reggae", "Swing"},
		SeekingTalent:      true,
		SeekingDescription: "We are on the lookout for a local artist to play every two weeks.",
	}
}

func TestCreateThenDetailRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, _, pub := newService(t)

	submitted := hop()
	created, err := svc.Create(ctx, submitted)
	require.NoError(t, err)

	detail, err := svc.Detail(ctx, created.ID)
	require.NoError(t, err)

	want := *hop()
	want.ID = created.ID
	assert.Equal(t, want, detail.Venue)
	assert.Empty(t, detail.Past)
	assert.Empty(t, detail.Upcoming)

	require.Len(t, pub.events, 1)
	listed, ok := pub.events[0].(*events.VenueListed)
	require.True(t, ok)
	assert.Equal(t, created.ID, listed.VenueID)
}

func TestAreasAndSearch(t *testing.T) {
	ctx := context.Background()
	svc, mem, _ := newService(t)

	sf, err := svc.Create(ctx, hop())
	require.NoError(t, err)
	_, err = svc.Create(ctx, &models.Venue{Name: "The Dueling Pianos Bar", City: "New York", State: "NY"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &models.Venue{Name: "Park Square Live Music & Coffee", City: "San Francisco", State: "CA"})
	require.NoError(t, err)

	artist, err := mem.CreateArtist(ctx, &models.Artist{Name: "Guns N Petals"})
	require.NoError(t, err)
	_, err = mem.CreateShow(ctx, &models.Show{VenueID: sf.ID, ArtistID: artist.ID, StartTime: now.Add(time.Hour)})
	require.NoError(t, err)

	areas, err := svc.Areas(ctx)
	require.NoError(t, err)
	require.Len(t, areas, 2)
	assert.Equal(t, "CA", areas[0].State)
	require.Len(t, areas[0].Venues, 2)
	assert.Equal(t, 1, areas[0].Venues[0].NumUpcomingShows)

	result, err := svc.Search(ctx, "music")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Count)

	all, err := svc.Search(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 3, all.Count)
}

func TestAreasEmpty(t *testing.T) {
	svc, _, _ := newService(t)

	areas, err := svc.Areas(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, areas)
	assert.Empty(t, areas)
}

func TestDetailPartitionsShows(t *testing.T) {
	ctx := context.Background()
	svc, mem, _ := newService(t)

	venue, err := svc.Create(ctx, hop())
	require.NoError(t, err)
	artist, err := mem.CreateArtist(ctx, &models.Artist{Name: "Guns N Petals", ImageLink: "petals.jpg"})
	require.NoError(t, err)

	for _, start := range []time.Time{now.Add(-48 * time.Hour), now, now.Add(48 * time.Hour), now.Add(72 * time.Hour)} {
		_, err := mem.CreateShow(ctx, &models.Show{VenueID: venue.ID, ArtistID: artist.ID, StartTime: start})
		require.NoError(t, err)
	}

	detail, err := svc.Detail(ctx, venue.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, detail.PastCount)
	assert.Equal(t, 2, detail.UpcomingCount)
	assert.Equal(t, "Guns N Petals", detail.Upcoming[0].Name)
	assert.Equal(t, artist.ID, detail.Upcoming[0].ID)
}

func TestDetailNotFound(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.Detail(context.Background(), 42)
	assert.True(t, errors.Is(err, store.ErrVenueNotFound))
	assert.Equal(t, store.KindNotFound, store.KindOf(err))
}

func TestDeleteCascadesToShows(t *testing.T) {
	ctx := context.Background()
	svc, mem, pub := newService(t)

	venue, err := svc.Create(ctx, hop())
	require.NoError(t, err)
	artist, err := mem.CreateArtist(ctx, &models.Artist{Name: "The Wild Sax Band"})
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err := mem.CreateShow(ctx, &models.Show{VenueID: venue.ID, ArtistID: artist.ID, StartTime: now.Add(time.Duration(i) * time.Hour)})
		require.NoError(t, err)
	}

	removed, err := svc.Delete(ctx, venue.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, removed)

	shows, err := mem.ShowsByArtist(ctx, artist.ID)
	require.NoError(t, err)
	assert.Empty(t, shows)

	deleted, ok := pub.events[len(pub.events)-1].(*events.VenueDeleted)
	require.True(t, ok)
	assert.EqualValues(t, 3, deleted.ShowsRemoved)

	_, err = svc.Delete(ctx, venue.ID)
	assert.Equal(t, store.KindNotFound, store.KindOf(err))
}

func TestConcurrentEditsLastWriteWins(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService(t)

	venue, err := svc.Create(ctx, hop())
	require.NoError(t, err)

	first := hop()
	first.Name = "First Editor"
	first.Phone = "111-111-1111"
	second := hop()
	second.Name = "Second Editor"

	_, err = svc.Update(ctx, venue.ID, first)
	require.NoError(t, err)
	_, err = svc.Update(ctx, venue.ID, second)
	require.NoError(t, err)

	got, err := svc.Get(ctx, venue.ID)
	require.NoError(t, err)
	assert.Equal(t, "Second Editor", got.Name)
	assert.Equal(t, "123-123-1234", got.Phone, "no field of the first edit survives")
}

func TestPublishFailureIsLoggedNotReturned(t *testing.T) {
	svc, _, pub := newService(t)
	pub.err = errors.New("bus closed")

	var buf bytes.Buffer
	ctx := zerolog.New(&buf).WithContext(context.Background())

	_, err := svc.Create(ctx, hop())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "bus closed")
	assert.Contains(t, buf.String(), "publish event")
}

func TestCanceledContext(t *testing.T) {
	svc, _, pub := newService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Create(ctx, hop())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, pub.events)
}
