package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"fyyur/internal/models"
)

const venueColumns = `id, name, address, city, state, phone, website, facebook_link, image_link,
		       genres, seeking_talent, seeking_description`

func scanVenue(row rowScanner) (models.Venue, error) {
	var v models.Venue
	err := row.Scan(&v.ID, &v.Name, &v.Address, &v.City, &v.State, &v.Phone,
		&v.Website, &v.FacebookLink, &v.ImageLink, pq.Array(&v.Genres),
		&v.SeekingTalent, &v.SeekingDescription)
	return v, err
}

func (s *Store) queryVenues(ctx context.Context, query string, args ...any) ([]models.Venue, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	venues := make([]models.Venue, 0)
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, err
		}
		venues = append(venues, v)
	}

	return venues, rows.Err()
}

// ListVenues returns every venue ordered by state, then city, then id.
// Grouping by area depends on this order.
func (s *Store) ListVenues(ctx context.Context) ([]models.Venue, error) {
	venues, err := s.queryVenues(ctx, `
		SELECT `+venueColumns+`
		FROM venues
		ORDER BY state ASC, city ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	return venues, nil
}

// SearchVenues returns venues whose name contains term, ignoring case.
func (s *Store) SearchVenues(ctx context.Context, term string) ([]models.Venue, error) {
	venues, err := s.queryVenues(ctx, `
		SELECT `+venueColumns+`
		FROM venues
		WHERE name ILIKE $1
		ORDER BY name ASC, id ASC
	`, containsPattern(term))
	if err != nil {
		return nil, fmt.Errorf("search venues: %w", err)
	}
	return venues, nil
}

// GetVenue retrieves a single venue by ID
func (s *Store) GetVenue(ctx context.Context, id int64) (*models.Venue, error) {
	v, err := scanVenue(s.db.QueryRowContext(ctx, `
		SELECT `+venueColumns+`
		FROM venues
		WHERE id = $1
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVenueNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get venue %d: %w", id, err)
	}
	return &v, nil
}

// CreateVenue inserts venue and sets its ID.
func (s *Store) CreateVenue(ctx context.Context, venue *models.Venue) (*models.Venue, error) {
	err := s.withTx(ctx, "create_venue", func(tx *sql.Tx) error {
		return tx.QueryRowContext(ctx, `
			INSERT INTO venues (name, address, city, state, phone, website, facebook_link,
			                    image_link, genres, seeking_talent, seeking_description)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			RETURNING id
		`,
			venue.Name, venue.Address, venue.City, venue.State, venue.Phone,
			venue.Website, venue.FacebookLink, venue.ImageLink, pq.Array(nonNilGenres(venue.Genres)),
			venue.SeekingTalent, venue.SeekingDescription,
		).Scan(&venue.ID)
	})
	if err != nil {
		return nil, err
	}
	return venue, nil
}

// UpdateVenue overwrites every field of the venue with the given ID.
// There is no version check: the last committed write wins.
func (s *Store) UpdateVenue(ctx context.Context, id int64, venue *models.Venue) (*models.Venue, error) {
	err := s.withTx(ctx, "update_venue", func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE venues
			SET name = $1, address = $2, city = $3, state = $4, phone = $5, website = $6,
			    facebook_link = $7, image_link = $8, genres = $9, seeking_talent = $10,
			    seeking_description = $11
			WHERE id = $12
		`,
			venue.Name, venue.Address, venue.City, venue.State, venue.Phone,
			venue.Website, venue.FacebookLink, venue.ImageLink, pq.Array(nonNilGenres(venue.Genres)),
			venue.SeekingTalent, venue.SeekingDescription, id,
		)
		if err != nil {
			return err
		}
		return expectOneRow(result, ErrVenueNotFound)
	})
	if err != nil {
		return nil, err
	}
	venue.ID = id
	return venue, nil
}

// DeleteVenue removes a venue together with its shows and reports how many
// shows went with it.
func (s *Store) DeleteVenue(ctx context.Context, id int64) (int64, error) {
	var removed int64
	err := s.withTx(ctx, "delete_venue", func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `DELETE FROM shows WHERE venue_id = $1`, id)
		if err != nil {
			return err
		}
		if removed, err = result.RowsAffected(); err != nil {
			return err
		}

		result, err = tx.ExecContext(ctx, `DELETE FROM venues WHERE id = $1`, id)
		if err != nil {
			return err
		}
		return expectOneRow(result, ErrVenueNotFound)
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

// VenueShowTimes maps venue IDs to the start times of their shows.
func (s *Store) VenueShowTimes(ctx context.Context) (map[int64][]time.Time, error) {
	times, err := s.showTimes(ctx, `
		SELECT venue_id, start_time
		FROM shows
		ORDER BY venue_id ASC, start_time ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("venue show times: %w", err)
	}
	return times, nil
}

// ShowsByVenue returns the venue's shows joined with their artists.
func (s *Store) ShowsByVenue(ctx context.Context, venueID int64) ([]models.ShowDetail, error) {
	shows, err := s.queryShowDetails(ctx, showDetailSelect+`
		WHERE s.venue_id = $1
		ORDER BY s.start_time ASC, s.id ASC
	`, venueID)
	if err != nil {
		return nil, fmt.Errorf("shows by venue %d: %w", venueID, err)
	}
	return shows, nil
}

func expectOneRow(result sql.Result, notFound error) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
