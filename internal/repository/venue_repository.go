// Package repository contains data access logic separated from HTTP handlers.
// This file defines the repository methods for venues. A Venue is a place
// that hosts shows; deleting one removes its shows as well.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/fyyur/internal/booking"
	"github.com/iliyamo/fyyur/internal/model"
)

const venueColumns = `v.id, v.name, v.genres, v.address, v.city, v.state, v.phone, v.website,
	v.facebook_link, v.seeking_talent, v.seeking_description, v.image_link, v.created_at`

// upcoming count for list rows; the single argument is "now".
const venueUpcoming = `(SELECT COUNT(*) FROM shows s WHERE s.venue_id = v.id AND s.start_time > ?)`

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// VenueRepo encapsulates all database queries related to venues.  It
// depends on a sql.DB connection which should be configured elsewhere.
type VenueRepo struct {
	db *sql.DB
}

// NewVenueRepo constructs a VenueRepo with the provided DB handle.
func NewVenueRepo(db *sql.DB) *VenueRepo {
	return &VenueRepo{db: db}
}

func scanVenue(s rowScanner, v *model.Venue, extra ...any) error {
	var genres []byte
	dest := []any{&v.ID, &v.Name, &genres, &v.Address, &v.City, &v.State, &v.Phone, &v.Website,
		&v.FacebookLink, &v.SeekingTalent, &v.SeekingDescription, &v.ImageLink, &v.CreatedAt}
	if err := s.Scan(append(dest, extra...)...); err != nil {
		return err
	}
	g, err := decodeGenres(genres)
	if err != nil {
		return err
	}
	v.Genres = g
	return nil
}

// Create inserts a new venue.  On success the venue's ID and CreatedAt
// fields are populated from the stored row.
func (r *VenueRepo) Create(ctx context.Context, v *model.Venue) error {
	genres, err := encodeGenres(v.Genres)
	if err != nil {
		return err
	}
	const qInsert = `INSERT INTO venues (name, genres, address, city, state, phone, website,
	                 facebook_link, seeking_talent, seeking_description, image_link)
	                 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert, v.Name, genres, v.Address, v.City, v.State, v.Phone,
		v.Website, v.FacebookLink, v.SeekingTalent, v.SeekingDescription, v.ImageLink)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	v.ID = uint64(id)

	// Follow-up SELECT picks up the DB default for created_at.
	const qSelect = `SELECT created_at FROM venues WHERE id = ?`
	return r.db.QueryRowContext(ctx, qSelect, v.ID).Scan(&v.CreatedAt)
}

// GetByID fetches a venue by its ID.  It returns ErrVenueNotFound if no
// row is found.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (*model.Venue, error) {
	q := `SELECT ` + venueColumns + ` FROM venues v WHERE v.id = ?`
	var v model.Venue
	if err := scanVenue(r.db.QueryRowContext(ctx, q, id), &v); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return &v, nil
}

// Update replaces every editable column of the venue.  It returns
// ErrVenueNotFound when the row does not exist and ErrNoChange when the
// submitted values equal the stored ones.
func (r *VenueRepo) Update(ctx context.Context, v *model.Venue) error {
	genres, err := encodeGenres(v.Genres)
	if err != nil {
		return err
	}
	const q = `UPDATE venues
	           SET name = ?, genres = ?, address = ?, city = ?, state = ?, phone = ?, website = ?,
	               facebook_link = ?, seeking_talent = ?, seeking_description = ?, image_link = ?
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, v.Name, genres, v.Address, v.City, v.State, v.Phone,
		v.Website, v.FacebookLink, v.SeekingTalent, v.SeekingDescription, v.ImageLink, v.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	// Determine if it's "not found" or simply "no change".
	var one int
	if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM venues WHERE id = ? LIMIT 1`, v.ID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrVenueNotFound
		}
		return err
	}
	return ErrNoChange
}

// Delete removes a venue and all of its shows within a transaction.  If
// the venue does not exist, ErrVenueNotFound is returned.
func (r *VenueRepo) Delete(ctx context.Context, id uint64) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	var one int
	if err = tx.QueryRowContext(ctx, `SELECT 1 FROM venues WHERE id = ? FOR UPDATE`, id).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrVenueNotFound
		}
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM shows WHERE venue_id = ?`, id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM venues WHERE id = ?`, id); err != nil {
		return err
	}
	return nil
}

// ListAll returns every venue ordered by id, each with its count of shows
// starting after now.
func (r *VenueRepo) ListAll(ctx context.Context, now time.Time) ([]model.Venue, error) {
	q := `SELECT ` + venueColumns + `, ` + venueUpcoming + ` FROM venues v ORDER BY v.id`
	return r.list(ctx, q, now.UTC())
}

// ListRecent returns the most recently created venues, newest first.
func (r *VenueRepo) ListRecent(ctx context.Context, limit int, now time.Time) ([]model.Venue, error) {
	q := `SELECT ` + venueColumns + `, ` + venueUpcoming + ` FROM venues v
	      ORDER BY v.created_at DESC, v.id DESC LIMIT ?`
	return r.list(ctx, q, now.UTC(), limit)
}

// Search returns venues matching the query ordered by id.  A name search
// is a case-insensitive substring match; an area search is an exact
// (city, state) match.
func (r *VenueRepo) Search(ctx context.Context, sq booking.SearchQuery, now time.Time) ([]model.Venue, error) {
	if sq.ByArea {
		q := `SELECT ` + venueColumns + `, ` + venueUpcoming + ` FROM venues v
		      WHERE v.city = ? AND v.state = ? ORDER BY v.id`
		return r.list(ctx, q, now.UTC(), sq.City, sq.State)
	}
	q := `SELECT ` + venueColumns + `, ` + venueUpcoming + ` FROM venues v
	      WHERE LOWER(v.name) LIKE ? ORDER BY v.id`
	return r.list(ctx, q, now.UTC(), sq.LikePattern())
}

func (r *VenueRepo) list(ctx context.Context, q string, args ...any) ([]model.Venue, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Venue{}
	for rows.Next() {
		var v model.Venue
		if err := scanVenue(rows, &v, &v.NumUpcomingShows); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
