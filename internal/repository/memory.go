package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/iliyamo/fyyur/internal/booking"
	"github.com/iliyamo/fyyur/internal/model"
)

// MemoryStore keeps venues, artists and shows in process memory.  It
// enforces the same rules as the MySQL repositories: shows must reference
// existing rows and deleting a venue deletes its shows.  It backs the
// "memory" store driver and handler tests.
type MemoryStore struct {
	mu      sync.RWMutex
	venues  map[uint64]model.Venue
	artists map[uint64]model.Artist
	shows   map[uint64]model.Show
	nextID  struct{ venue, artist, show uint64 }
	now     func() time.Time
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		venues:  map[uint64]model.Venue{},
		artists: map[uint64]model.Artist{},
		shows:   map[uint64]model.Show{},
		now:     time.Now,
	}
}

// Venues returns the venue repository view of the store.
func (m *MemoryStore) Venues() *MemoryVenueRepo { return &MemoryVenueRepo{m: m} }

// Artists returns the artist repository view of the store.
func (m *MemoryStore) Artists() *MemoryArtistRepo { return &MemoryArtistRepo{m: m} }

// Shows returns the show repository view of the store.
func (m *MemoryStore) Shows() *MemoryShowRepo { return &MemoryShowRepo{m: m} }

func cloneGenres(g []string) []string {
	out := make([]string, len(g))
	copy(out, g)
	return out
}

// upcoming counts shows after now matching the predicate.  Callers hold mu.
func (m *MemoryStore) upcoming(now time.Time, match func(model.Show) bool) int {
	n := 0
	for _, s := range m.shows {
		if match(s) && s.StartTime.After(now) {
			n++
		}
	}
	return n
}

// MemoryVenueRepo implements the venue repository over a MemoryStore.
type MemoryVenueRepo struct{ m *MemoryStore }

// Create assigns the next venue id and stamps CreatedAt.
func (r *MemoryVenueRepo) Create(_ context.Context, v *model.Venue) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.nextID.venue++
	v.ID = r.m.nextID.venue
	v.CreatedAt = r.m.now().UTC().Truncate(time.Second)
	v.Genres = cloneGenres(v.Genres)
	stored := *v
	stored.NumUpcomingShows = 0
	r.m.venues[v.ID] = stored
	return nil
}

// GetByID returns a copy of the venue or ErrVenueNotFound.
func (r *MemoryVenueRepo) GetByID(_ context.Context, id uint64) (*model.Venue, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	v, ok := r.m.venues[id]
	if !ok {
		return nil, ErrVenueNotFound
	}
	v.Genres = cloneGenres(v.Genres)
	return &v, nil
}

// Update replaces the venue's editable fields, keeping CreatedAt.
func (r *MemoryVenueRepo) Update(_ context.Context, v *model.Venue) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	cur, ok := r.m.venues[v.ID]
	if !ok {
		return ErrVenueNotFound
	}
	next := *v
	next.Genres = cloneGenres(v.Genres)
	next.CreatedAt = cur.CreatedAt
	next.NumUpcomingShows = 0
	r.m.venues[v.ID] = next
	return nil
}

// Delete removes the venue together with its shows.
func (r *MemoryVenueRepo) Delete(_ context.Context, id uint64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.venues[id]; !ok {
		return ErrVenueNotFound
	}
	for sid, s := range r.m.shows {
		if s.VenueID == id {
			delete(r.m.shows, sid)
		}
	}
	delete(r.m.venues, id)
	return nil
}

// ListAll returns every venue ordered by id.
func (r *MemoryVenueRepo) ListAll(_ context.Context, now time.Time) ([]model.Venue, error) {
	return r.filter(now, func(model.Venue) bool { return true }), nil
}

// ListRecent returns up to limit venues, newest first.
func (r *MemoryVenueRepo) ListRecent(_ context.Context, limit int, now time.Time) ([]model.Venue, error) {
	out := r.filter(now, func(model.Venue) bool { return true })
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Search returns venues matching q ordered by id.
func (r *MemoryVenueRepo) Search(_ context.Context, q booking.SearchQuery, now time.Time) ([]model.Venue, error) {
	return r.filter(now, func(v model.Venue) bool { return q.Matches(v.Name, v.City, v.State) }), nil
}

// filter returns matching venues ordered by id with upcoming counts.
func (r *MemoryVenueRepo) filter(now time.Time, keep func(model.Venue) bool) []model.Venue {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	out := []model.Venue{}
	for _, v := range r.m.venues {
		if !keep(v) {
			continue
		}
		v.Genres = cloneGenres(v.Genres)
		id := v.ID
		v.NumUpcomingShows = r.m.upcoming(now, func(s model.Show) bool { return s.VenueID == id })
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// MemoryArtistRepo implements the artist repository over a MemoryStore.
type MemoryArtistRepo struct{ m *MemoryStore }

// Create assigns the next artist id and stamps CreatedAt.
func (r *MemoryArtistRepo) Create(_ context.Context, a *model.Artist) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.nextID.artist++
	a.ID = r.m.nextID.artist
	a.CreatedAt = r.m.now().UTC().Truncate(time.Second)
	a.Genres = cloneGenres(a.Genres)
	stored := *a
	stored.NumUpcomingShows = 0
	r.m.artists[a.ID] = stored
	return nil
}

// GetByID returns a copy of the artist or ErrArtistNotFound.
func (r *MemoryArtistRepo) GetByID(_ context.Context, id uint64) (*model.Artist, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	a, ok := r.m.artists[id]
	if !ok {
		return nil, ErrArtistNotFound
	}
	a.Genres = cloneGenres(a.Genres)
	return &a, nil
}

// Update replaces the artist's editable fields, keeping CreatedAt.
func (r *MemoryArtistRepo) Update(_ context.Context, a *model.Artist) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	cur, ok := r.m.artists[a.ID]
	if !ok {
		return ErrArtistNotFound
	}
	next := *a
	next.Genres = cloneGenres(a.Genres)
	next.CreatedAt = cur.CreatedAt
	next.NumUpcomingShows = 0
	r.m.artists[a.ID] = next
	return nil
}

// ListAll returns every artist ordered by id.
func (r *MemoryArtistRepo) ListAll(_ context.Context, now time.Time) ([]model.Artist, error) {
	return r.filter(now, func(model.Artist) bool { return true }), nil
}

// ListRecent returns up to limit artists, newest first.
func (r *MemoryArtistRepo) ListRecent(_ context.Context, limit int, now time.Time) ([]model.Artist, error) {
	out := r.filter(now, func(model.Artist) bool { return true })
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Search returns artists matching q ordered by id.
func (r *MemoryArtistRepo) Search(_ context.Context, q booking.SearchQuery, now time.Time) ([]model.Artist, error) {
	return r.filter(now, func(a model.Artist) bool { return q.Matches(a.Name, a.City, a.State) }), nil
}

// filter returns matching artists ordered by id with upcoming counts.
func (r *MemoryArtistRepo) filter(now time.Time, keep func(model.Artist) bool) []model.Artist {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	out := []model.Artist{}
	for _, a := range r.m.artists {
		if !keep(a) {
			continue
		}
		a.Genres = cloneGenres(a.Genres)
		id := a.ID
		a.NumUpcomingShows = r.m.upcoming(now, func(s model.Show) bool { return s.ArtistID == id })
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// MemoryShowRepo implements the show repository over a MemoryStore.
type MemoryShowRepo struct{ m *MemoryStore }

// Create stores the show at second precision.  Unknown artist or venue
// ids yield ErrInvalidReference.
func (r *MemoryShowRepo) Create(_ context.Context, s *model.Show) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.artists[s.ArtistID]; !ok {
		return ErrInvalidReference
	}
	if _, ok := r.m.venues[s.VenueID]; !ok {
		return ErrInvalidReference
	}
	r.m.nextID.show++
	s.ID = r.m.nextID.show
	s.StartTime = s.StartTime.UTC().Truncate(time.Second)
	s.CreatedAt = r.m.now().UTC().Truncate(time.Second)
	r.m.shows[s.ID] = *s
	return nil
}

// ListAll returns every show with artist and venue details.
func (r *MemoryShowRepo) ListAll(_ context.Context) ([]model.ShowListing, error) {
	return r.listings(func(model.Show) bool { return true }), nil
}

// ListByVenue returns the shows held at one venue.
func (r *MemoryShowRepo) ListByVenue(_ context.Context, venueID uint64) ([]model.ShowListing, error) {
	return r.listings(func(s model.Show) bool { return s.VenueID == venueID }), nil
}

// ListByArtist returns the shows one artist plays.
func (r *MemoryShowRepo) ListByArtist(_ context.Context, artistID uint64) ([]model.ShowListing, error) {
	return r.listings(func(s model.Show) bool { return s.ArtistID == artistID }), nil
}

// listings joins matching shows with their venue and artist, ordered by
// start time then id.
func (r *MemoryShowRepo) listings(keep func(model.Show) bool) []model.ShowListing {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	out := []model.ShowListing{}
	for _, s := range r.m.shows {
		if !keep(s) {
			continue
		}
		v := r.m.venues[s.VenueID]
		a := r.m.artists[s.ArtistID]
		out = append(out, model.ShowListing{
			ShowID:          s.ID,
			VenueID:         v.ID,
			VenueName:       v.Name,
			VenueImageLink:  v.ImageLink,
			ArtistID:        a.ID,
			ArtistName:      a.Name,
			ArtistImageLink: a.ImageLink,
			StartTime:       s.StartTime,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartTime.Equal(out[j].StartTime) {
			return out[i].StartTime.Before(out[j].StartTime)
		}
		return out[i].ShowID < out[j].ShowID
	})
	return out
}
