// Package repository contains data access logic for Show domain operations.
// A Show links an artist to a venue at a start time; both references are
// enforced by foreign keys.
package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/fyyur/internal/model"
)

const listingSelect = `SELECT s.id, v.id, v.name, v.image_link, a.id, a.name, a.image_link, s.start_time
	FROM shows s
	JOIN venues v  ON v.id = s.venue_id
	JOIN artists a ON a.id = s.artist_id`

// ShowRepo manages persistence for shows.
type ShowRepo struct {
	db *sql.DB
}

// NewShowRepo constructs a ShowRepo with the given DB handle.
func NewShowRepo(db *sql.DB) *ShowRepo {
	return &ShowRepo{db: db}
}

// Create inserts a new show and assigns the generated ID back to the
// struct.  A missing artist or venue yields ErrInvalidReference.
func (r *ShowRepo) Create(ctx context.Context, s *model.Show) error {
	const q = `INSERT INTO shows (artist_id, venue_id, start_time) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, s.ArtistID, s.VenueID, s.StartTime.UTC())
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrInvalidReference
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return r.db.QueryRowContext(ctx, `SELECT created_at FROM shows WHERE id = ?`, s.ID).Scan(&s.CreatedAt)
}

// ListAll returns every show with venue and artist display fields,
// ordered by start time ascending.
func (r *ShowRepo) ListAll(ctx context.Context) ([]model.ShowListing, error) {
	return r.list(ctx, listingSelect+` ORDER BY s.start_time ASC, s.id ASC`)
}

// ListByVenue returns the shows hosted by one venue ordered by start time.
func (r *ShowRepo) ListByVenue(ctx context.Context, venueID uint64) ([]model.ShowListing, error) {
	return r.list(ctx, listingSelect+` WHERE s.venue_id = ? ORDER BY s.start_time ASC, s.id ASC`, venueID)
}

// ListByArtist returns the shows played by one artist ordered by start time.
func (r *ShowRepo) ListByArtist(ctx context.Context, artistID uint64) ([]model.ShowListing, error) {
	return r.list(ctx, listingSelect+` WHERE s.artist_id = ? ORDER BY s.start_time ASC, s.id ASC`, artistID)
}

func (r *ShowRepo) list(ctx context.Context, q string, args ...any) ([]model.ShowListing, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.ShowListing{}
	for rows.Next() {
		var l model.ShowListing
		if err := rows.Scan(&l.ShowID, &l.VenueID, &l.VenueName, &l.VenueImageLink,
			&l.ArtistID, &l.ArtistName, &l.ArtistImageLink, &l.StartTime); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
