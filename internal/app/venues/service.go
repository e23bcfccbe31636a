package venues

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

// Store defines persistence operations for venues
type Store interface {
	ListVenues(ctx context.Context) ([]models.Venue, error)
	SearchVenues(ctx context.Context, term string) ([]models.Venue, error)
	GetVenue(ctx context.Context, id int64) (*models.Venue, error)
	CreateVenue(ctx context.Context, venue *models.Venue) (*models.Venue, error)
	UpdateVenue(ctx context.Context, id int64, venue *models.Venue) (*models.Venue, error)
	DeleteVenue(ctx context.Context, id int64) (int64, error)
	VenueShowTimes(ctx context.Context) (map[int64][]time.Time, error)
	ShowsByVenue(ctx context.Context, venueID int64) ([]models.ShowDetail, error)
}

// Detail is a venue with its shows split into past and upcoming.
type Detail struct {
	models.Venue
	listing.Partition
}

// Service coordinates venue-related operations
type Service interface {
	Areas(ctx context.Context) ([]listing.Area, error)
	Search(ctx context.Context, term string) (listing.SearchResult, error)
	Get(ctx context.Context, id int64) (*models.Venue, error)
	Detail(ctx context.Context, id int64) (*Detail, error)
	Create(ctx context.Context, venue *models.Venue) (*models.Venue, error)
	Update(ctx context.Context, id int64, venue *models.Venue) (*models.Venue, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type service struct {
	store     Store
	engine    *listing.Engine
	publisher app.Publisher // optional
}

// New constructs a venues Service
func New(store Store, engine *listing.Engine, publisher app.Publisher) Service {
	return &service{store: store, engine: engine, publisher: publisher}
}

func (s *service) Areas(ctx context.Context) ([]listing.Area, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	venues, err := s.store.ListVenues(ctx)
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	times, err := s.store.VenueShowTimes(ctx)
	if err != nil {
		return nil, fmt.Errorf("venue show times: %w", err)
	}
	return s.engine.GroupByArea(venues, times), nil
}

func (s *service) Search(ctx context.Context, term string) (listing.SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return listing.SearchResult{}, err
	}

	venues, err := s.store.SearchVenues(ctx, term)
	if err != nil {
		return listing.SearchResult{}, fmt.Errorf("search venues: %w", err)
	}
	times, err := s.store.VenueShowTimes(ctx)
	if err != nil {
		return listing.SearchResult{}, fmt.Errorf("venue show times: %w", err)
	}
	return s.engine.Search(listing.VenueNames(venues), times), nil
}

func (s *service) Get(ctx context.Context, id int64) (*models.Venue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.GetVenue(ctx, id)
}

func (s *service) Detail(ctx context.Context, id int64) (*Detail, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	venue, err := s.store.GetVenue(ctx, id)
	if err != nil {
		return nil, err
	}
	shows, err := s.store.ShowsByVenue(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("shows for venue %d: %w", id, err)
	}

	return &Detail{
		Venue:     *venue,
		Partition: s.engine.Partition(listing.VenueAppearances(shows)),
	}, nil
}

func (s *service) Create(ctx context.Context, venue *models.Venue) (*models.Venue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	created, err := s.store.CreateVenue(ctx, venue)
	if err != nil {
		return nil, err
	}

	app.Publish(ctx, s.publisher, &events.VenueListed{
		Header:  events.NewHeader(logging.RequestID(ctx)),
		VenueID: created.ID,
		Name:    created.Name,
		City:    created.City,
		State:   created.State,
	})
	return created, nil
}

// Update overwrites every field of the venue. Concurrent edits are not
// detected; the last one to commit wins.
func (s *service) Update(ctx context.Context, id int64, venue *models.Venue) (*models.Venue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	updated, err := s.store.UpdateVenue(ctx, id, venue)
	if err != nil {
		return nil, err
	}

	app.Publish(ctx, s.publisher, &events.VenueUpdated{
		Header:  events.NewHeader(logging.RequestID(ctx)),
		VenueID: updated.ID,
		Name:    updated.Name,
	})
	return updated, nil
}

// Delete removes the venue together with its shows and reports how many
// shows went with it.
func (s *service) Delete(ctx context.Context, id int64) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	removed, err := s.store.DeleteVenue(ctx, id)
	if err != nil {
		return 0, err
	}

	app.Publish(ctx, s.publisher, &events.VenueDeleted{
		Header:       events.NewHeader(logging.RequestID(ctx)),
		VenueID:      id,
		ShowsRemoved: removed,
	})
	return removed, nil
}
