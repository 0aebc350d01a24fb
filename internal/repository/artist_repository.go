// Package repository contains data access logic for artists. An Artist is
// a performer that can be booked at venues; artists are never deleted.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/fyyur/internal/booking"
	"github.com/iliyamo/fyyur/internal/model"
)

const artistColumns = `a.id, a.name, a.genres, a.city, a.state, a.phone, a.website,
	a.facebook_link, a.seeking_venue, a.seeking_description, a.image_link, a.created_at`

const artistUpcoming = `(SELECT COUNT(*) FROM shows s WHERE s.artist_id = a.id AND s.start_time > ?)`

// ArtistRepo manages persistence for artists.
type ArtistRepo struct {
	db *sql.DB
}

// NewArtistRepo constructs an ArtistRepo with the given DB handle.
func NewArtistRepo(db *sql.DB) *ArtistRepo {
	return &ArtistRepo{db: db}
}

func scanArtist(s rowScanner, a *model.Artist, extra ...any) error {
	var genres []byte
	dest := []any{&a.ID, &a.Name, &genres, &a.City, &a.State, &a.Phone, &a.Website,
		&a.FacebookLink, &a.SeekingVenue, &a.SeekingDescription, &a.ImageLink, &a.CreatedAt}
	if err := s.Scan(append(dest, extra...)...); err != nil {
		return err
	}
	g, err := decodeGenres(genres)
	if err != nil {
		return err
	}
	a.Genres = g
	return nil
}

// Create inserts a new artist and assigns the generated ID and
// creation time back to the struct.
func (r *ArtistRepo) Create(ctx context.Context, a *model.Artist) error {
	genres, err := encodeGenres(a.Genres)
	if err != nil {
		return err
	}
	const qInsert = `INSERT INTO artists (name, genres, city, state, phone, website,
	                 facebook_link, seeking_venue, seeking_description, image_link)
	                 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert, a.Name, genres, a.City, a.State, a.Phone, a.Website,
		a.FacebookLink, a.SeekingVenue, a.SeekingDescription, a.ImageLink)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)

	const qSelect = `SELECT created_at FROM artists WHERE id = ?`
	return r.db.QueryRowContext(ctx, qSelect, a.ID).Scan(&a.CreatedAt)
}

// GetByID retrieves an artist by its ID.  It returns ErrArtistNotFound
// if there is no matching row.
func (r *ArtistRepo) GetByID(ctx context.Context, id uint64) (*model.Artist, error) {
	q := `SELECT ` + artistColumns + ` FROM artists a WHERE a.id = ?`
	var a model.Artist
	if err := scanArtist(r.db.QueryRowContext(ctx, q, id), &a); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrArtistNotFound
		}
		return nil, err
	}
	return &a, nil
}

// Update replaces every editable column of the artist.  Like
// VenueRepo.Update it distinguishes a missing row from an identical one.
func (r *ArtistRepo) Update(ctx context.Context, a *model.Artist) error {
	genres, err := encodeGenres(a.Genres)
	if err != nil {
		return err
	}
	const q = `UPDATE artists
	           SET name = ?, genres = ?, city = ?, state = ?, phone = ?, website = ?,
	               facebook_link = ?, seeking_venue = ?, seeking_description = ?, image_link = ?
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, a.Name, genres, a.City, a.State, a.Phone, a.Website,
		a.FacebookLink, a.SeekingVenue, a.SeekingDescription, a.ImageLink, a.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	var one int
	if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM artists WHERE id = ? LIMIT 1`, a.ID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrArtistNotFound
		}
		return err
	}
	return ErrNoChange
}

// ListAll returns every artist ordered by id with upcoming show counts.
func (r *ArtistRepo) ListAll(ctx context.Context, now time.Time) ([]model.Artist, error) {
	q := `SELECT ` + artistColumns + `, ` + artistUpcoming + ` FROM artists a ORDER BY a.id`
	return r.list(ctx, q, now.UTC())
}

// ListRecent returns the most recently created artists, newest first.
func (r *ArtistRepo) ListRecent(ctx context.Context, limit int, now time.Time) ([]model.Artist, error) {
	q := `SELECT ` + artistColumns + `, ` + artistUpcoming + ` FROM artists a
	      ORDER BY a.created_at DESC, a.id DESC LIMIT ?`
	return r.list(ctx, q, now.UTC(), limit)
}

// Search returns artists matching the query ordered by id.
func (r *ArtistRepo) Search(ctx context.Context, sq booking.SearchQuery, now time.Time) ([]model.Artist, error) {
	if sq.ByArea {
		q := `SELECT ` + artistColumns + `, ` + artistUpcoming + ` FROM artists a
		      WHERE a.city = ? AND a.state = ? ORDER BY a.id`
		return r.list(ctx, q, now.UTC(), sq.City, sq.State)
	}
	q := `SELECT ` + artistColumns + `, ` + artistUpcoming + ` FROM artists a
	      WHERE LOWER(a.name) LIKE ? ORDER BY a.id`
	return r.list(ctx, q, now.UTC(), sq.LikePattern())
}

func (r *ArtistRepo) list(ctx context.Context, q string, args ...any) ([]model.Artist, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Artist{}
	for rows.Next() {
		var a model.Artist
		if err := scanArtist(rows, &a, &a.NumUpcomingShows); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
