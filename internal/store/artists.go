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

const artistColumns = `id, name, city, state, phone, website, facebook_link, image_link,
		       genres, seeking_venue, seeking_description`

func scanArtist(row rowScanner) (models.Artist, error) {
	var a models.Artist
	err := row.Scan(&a.ID, &a.Name, &a.City, &a.State, &a.Phone, &a.Website,
		&a.FacebookLink, &a.ImageLink, pq.Array(&a.Genres), &a.SeekingVenue,
		&a.SeekingDescription)
	return a, err
}

func (s *Store) queryArtists(ctx context.Context, query string, args ...any) ([]models.Artist, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	artists := make([]models.Artist, 0)
	for rows.Next() {
		a, err := scanArtist(rows)
		if err != nil {
			return nil, err
		}
		artists = append(artists, a)
	}

	return artists, rows.Err()
}

// ListArtists returns every artist ordered by name.
func (s *Store) ListArtists(ctx context.Context) ([]models.Artist, error) {
	artists, err := s.queryArtists(ctx, `
		SELECT `+artistColumns+`
		FROM artists
		ORDER BY name ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list artists: %w", err)
	}
	return artists, nil
}

// SearchArtists returns artists whose name contains term, ignoring case.
func (s *Store) SearchArtists(ctx context.Context, term string) ([]models.Artist, error) {
	artists, err := s.queryArtists(ctx, `
		SELECT `+artistColumns+`
		FROM artists
		WHERE name ILIKE $1
		ORDER BY name ASC, id ASC
	`, containsPattern(term))
	if err != nil {
		return nil, fmt.Errorf("search artists: %w", err)
	}
	return artists, nil
}

// GetArtist retrieves a single artist by ID
func (s *Store) GetArtist(ctx context.Context, id int64) (*models.Artist, error) {
	a, err := scanArtist(s.db.QueryRowContext(ctx, `
		SELECT `+artistColumns+`
		FROM artists
		WHERE id = $1
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrArtistNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get artist %d: %w", id, err)
	}
	return &a, nil
}

// CreateArtist inserts artist and sets its ID.
func (s *Store) CreateArtist(ctx context.Context, artist *models.Artist) (*models.Artist, error) {
	err := s.withTx(ctx, "create_artist", func(tx *sql.Tx) error {
		return tx.QueryRowContext(ctx, `
			INSERT INTO artists (name, city, state, phone, website, facebook_link, image_link,
			                     genres, seeking_venue, seeking_description)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id
		`,
			artist.Name, artist.City, artist.State, artist.Phone, artist.Website,
			artist.FacebookLink, artist.ImageLink, pq.Array(nonNilGenres(artist.Genres)),
			artist.SeekingVenue, artist.SeekingDescription,
		).Scan(&artist.ID)
	})
	if err != nil {
		return nil, err
	}
	return artist, nil
}

// UpdateArtist overwrites every field of the artist with the given ID.
// There is no version check: the last committed write wins.
func (s *Store) UpdateArtist(ctx context.Context, id int64, artist *models.Artist) (*models.Artist, error) {
	err := s.withTx(ctx, "update_artist", func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE artists
			SET name = $1, city = $2, state = $3, phone = $4, website = $5,
			    facebook_link = $6, image_link = $7, genres = $8, seeking_venue = $9,
			    seeking_description = $10
			WHERE id = $11
		`,
			artist.Name, artist.City, artist.State, artist.Phone, artist.Website,
			artist.FacebookLink, artist.ImageLink, pq.Array(nonNilGenres(artist.Genres)),
			artist.SeekingVenue, artist.SeekingDescription, id,
		)
		if err != nil {
			return err
		}
		return expectOneRow(result, ErrArtistNotFound)
	})
	if err != nil {
		return nil, err
	}
	artist.ID = id
	return artist, nil
}

// ArtistShowTimes maps artist IDs to the start times of their shows.
func (s *Store) ArtistShowTimes(ctx context.Context) (map[int64][]time.Time, error) {
	times, err := s.showTimes(ctx, `
		SELECT artist_id, start_time
		FROM shows
		ORDER BY artist_id ASC, start_time ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("artist show times: %w", err)
	}
	return times, nil
}

// ShowsByArtist returns the artist's shows joined with their venues.
func (s *Store) ShowsByArtist(ctx context.Context, artistID int64) ([]models.ShowDetail, error) {
	shows, err := s.queryShowDetails(ctx, showDetailSelect+`
		WHERE s.artist_id = $1
		ORDER BY s.start_time ASC, s.id ASC
	`, artistID)
	if err != nil {
		return nil, fmt.Errorf("shows by artist %d: %w", artistID, err)
	}
	return shows, nil
}
