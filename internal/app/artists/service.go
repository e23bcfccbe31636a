package artists

import (
	"context"
	"fmt"
	"time"

	"fyyur/internal/app"
	"fyyur/internal/events"
	"fyyur/internal/listing"
	"fyyur/internal/logging"
	"fyyur/internal/models"
)

// Store defines persistence operations for artists
type Store interface {
	ListArtists(ctx context.Context) ([]models.Artist, error)
	SearchArtists(ctx context.Context, term string) ([]models.Artist, error)
	GetArtist(ctx context.Context, id int64) (*models.Artist, error)
	CreateArtist(ctx context.Context, artist *models.Artist) (*models.Artist, error)
	UpdateArtist(ctx context.Context, id int64, artist *models.Artist) (*models.Artist, error)
	ArtistShowTimes(ctx context.Context) (map[int64][]time.Time, error)
	ShowsByArtist(ctx context.Context, artistID int64) ([]models.ShowDetail, error)
}

// Detail is an artist with their shows split into past and upcoming.
type Detail struct {
	models.Artist
	listing.Partition
}

// Service coordinates artist-related operations
type Service interface {
	List(ctx context.Context) ([]models.Artist, error)
	Search(ctx context.Context, term string) (listing.SearchResult, error)
	Get(ctx context.Context, id int64) (*models.Artist, error)
	Detail(ctx context.Context, id int64) (*Detail, error)
	Create(ctx context.Context, artist *models.Artist) (*models.Artist, error)
	Update(ctx context.Context, id int64, artist *models.Artist) (*models.Artist, error)
}

type service struct {
	store     Store
	engine    *listing.Engine
	publisher app.Publisher
}

// New constructs an artists Service
func New(store Store, engine *listing.Engine, publisher app.Publisher) Service {
	return &service{store: store, engine: engine, publisher: publisher}
}

func (s *service) List(ctx context.Context) ([]models.Artist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListArtists(ctx)
}

func (s *service) Search(ctx context.Context, term string) (listing.SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return listing.SearchResult{}, err
	}

	artists, err := s.store.SearchArtists(ctx, term)
	if err != nil {
		return listing.SearchResult{}, fmt.Errorf("search artists: %w", err)
	}
	times, err := s.store.ArtistShowTimes(ctx)
	if err != nil {
		return listing.SearchResult{}, fmt.Errorf("artist show times: %w", err)
	}
	return s.engine.Search(listing.ArtistNames(artists), times), nil
}

func (s *service) Get(ctx context.Context, id int64) (*models.Artist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.GetArtist(ctx, id)
}

func (s *service) Detail(ctx context.Context, id int64) (*Detail, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	artist, err := s.store.GetArtist(ctx, id)
	if err != nil {
		return nil, err
	}
	shows, err := s.store.ShowsByArtist(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("shows for artist %d: %w", id, err)
	}

	return &Detail{
		Artist:    *artist,
		Partition: s.engine.Partition(listing.ArtistAppearances(shows)),
	}, nil
}

func (s *service) Create(ctx context.Context, artist *models.Artist) (*models.Artist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	created, err := s.store.CreateArtist(ctx, artist)
	if err != nil {
		return nil, err
	}

	app.Publish(ctx, s.publisher, &events.ArtistListed{
		Header:   events.NewHeader(logging.RequestID(ctx)),
		ArtistID: created.ID,
		Name:     created.Name,
	})
	return created, nil
}

// Update overwrites every field of the artist; the last committed edit wins.
func (s *service) Update(ctx context.Context, id int64, artist *models.Artist) (*models.Artist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	updated, err := s.store.UpdateArtist(ctx, id, artist)
	if err != nil {
		return nil, err
	}

	app.Publish(ctx, s.publisher, &events.ArtistUpdated{
		Header:   events.NewHeader(logging.RequestID(ctx)),
		ArtistID: updated.ID,
		Name:     updated.Name,
	})
	return updated, nil
}
