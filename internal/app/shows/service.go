package shows

import (
	"context"
	"fmt"

	"fyyur/internal/app"
	"fyyur/internal/events"
	"fyyur/internal/listing"
	"fyyur/internal/logging"
	"fyyur/internal/models"
)

// Store defines persistence operations for shows
type Store interface {
	ListShows(ctx context.Context) ([]models.ShowDetail, error)
	CreateShow(ctx context.Context, show *models.Show) (*models.Show, error)
}

// Service coordinates show-related operations
type Service interface {
	List(ctx context.Context) ([]listing.ShowRow, error)
	Create(ctx context.Context, show *models.Show) (*models.Show, error)
}

type service struct {
	store     Store
	publisher app.Publisher
}

// New constructs a shows Service
func New(store Store, publisher app.Publisher) Service {
	return &service{store: store, publisher: publisher}
}

func (s *service) List(ctx context.Context) ([]listing.ShowRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	details, err := s.store.ListShows(ctx)
	if err != nil {
		return nil, fmt.Errorf("list shows: %w", err)
	}
	return listing.ShowRows(details), nil
}

// Create books a show. A venue or artist that does not exist surfaces as a
// store.KindConflict error from the foreign keys.
func (s *service) Create(ctx context.Context, show *models.Show) (*models.Show, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	created, err := s.store.CreateShow(ctx, show)
	if err != nil {
		return nil, err
	}

	app.Publish(ctx, s.publisher, &events.ShowListed{
		Header:    events.NewHeader(logging.RequestID(ctx)),
		ShowID:    created.ID,
		VenueID:   created.VenueID,
		ArtistID:  created.ArtistID,
		StartTime: created.StartTime,
	})
	return created, nil
}
