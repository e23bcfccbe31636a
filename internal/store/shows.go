package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"fyyur/internal/models"
)

const showDetailSelect = `
		SELECT s.id, s.venue_id, s.artist_id, s.start_time,
		       v.name, v.image_link, a.name, a.image_link
		FROM shows s
		INNER JOIN venues v ON v.id = s.venue_id
		INNER JOIN artists a ON a.id = s.artist_id`

func (s *Store) queryShowDetails(ctx context.Context, query string, args ...any) ([]models.ShowDetail, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shows := make([]models.ShowDetail, 0)
	for rows.Next() {
		var d models.ShowDetail
		if err := rows.Scan(&d.ID, &d.VenueID, &d.ArtistID, &d.StartTime,
			&d.VenueName, &d.VenueImageLink, &d.ArtistName, &d.ArtistImageLink); err != nil {
			return nil, err
		}
		shows = append(shows, d)
	}

	return shows, rows.Err()
}

// showTimes reads (owner id, start time) pairs into a map.
func (s *Store) showTimes(ctx context.Context, query string) (map[int64][]time.Time, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	times := make(map[int64][]time.Time)
	for rows.Next() {
		var (
			id    int64
			start time.Time
		)
		if err := rows.Scan(&id, &start); err != nil {
			return nil, err
		}
		times[id] = append(times[id], start)
	}

	return times, rows.Err()
}

// ListShows returns every show with venue and artist names, earliest first.
func (s *Store) ListShows(ctx context.Context) ([]models.ShowDetail, error) {
	shows, err := s.queryShowDetails(ctx, showDetailSelect+`
		ORDER BY s.start_time ASC, s.id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list shows: %w", err)
	}
	return shows, nil
}

// CreateShow inserts show and sets its ID. A missing venue or artist is
// reported by the foreign keys as a ConflictError.
func (s *Store) CreateShow(ctx context.Context, show *models.Show) (*models.Show, error) {
	err := s.withTx(ctx, "create_show", func(tx *sql.Tx) error {
		return tx.QueryRowContext(ctx, `
			INSERT INTO shows (venue_id, artist_id, start_time)
			VALUES ($1, $2, $3)
			RETURNING id
		`, show.VenueID, show.ArtistID, show.StartTime).Scan(&show.ID)
	})
	if err != nil {
		return nil, err
	}
	return show, nil
}
