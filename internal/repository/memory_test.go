package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/fyyur/internal/booking"
	"github.com/iliyamo/fyyur/internal/model"
)

func names[T any](rows []T, name func(T) string) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, name(r))
	}
	return out
}

func venueName(v model.Venue) string   { return v.Name }
func artistName(a model.Artist) string { return a.Name }

func seedMemory(t *testing.T) *MemoryStore {
	t.Helper()
	ctx := context.Background()
	m := NewMemoryStore()
	for _, v := range []model.Venue{
		{Name: "The Musical Hop", City: "San Francisco", State: "CA", Genres: []string{"Jazz", "Reggae"}},
		{Name: "The Dueling Pianos Bar", City: "New York", State: "NY"},
		{Name: "Park Square Live Music & Coffee", City: "San Francisco", State: "CA"},
	} {
		v := v
		require.NoError(t, m.Venues().Create(ctx, &v))
	}
	for _, a := range []model.Artist{
		{Name: "Guns N Petals", City: "San Francisco", State: "CA"},
		{Name: "Matt Quevedo", City: "New York", State: "NY"},
		{Name: "The Wild Sax Band", City: "San Francisco", State: "CA"},
	} {
		a := a
		require.NoError(t, m.Artists().Create(ctx, &a))
	}
	return m
}

func TestMemoryVenueSearch(t *testing.T) {
	m := seedMemory(t)
	ctx := context.Background()
	now := time.Now()

	got, err := m.Venues().Search(ctx, booking.ParseSearch("Hop"), now)
	require.NoError(t, err)
	assert.Equal(t, []string{"The Musical Hop"}, names(got, venueName))

	got, err = m.Venues().Search(ctx, booking.ParseSearch("Music"), now)
	require.NoError(t, err)
	assert.Equal(t, []string{"The Musical Hop", "Park Square Live Music & Coffee"}, names(got, venueName))

	got, err = m.Venues().Search(ctx, booking.ParseSearch("san francisco, ca"), now)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestMemoryArtistSearch(t *testing.T) {
	m := seedMemory(t)
	ctx := context.Background()

	got, err := m.Artists().Search(ctx, booking.ParseSearch("A"), time.Now())
	require.NoError(t, err)
	assert.Equal(t, []string{"Guns N Petals", "Matt Quevedo", "The Wild Sax Band"}, names(got, artistName))

	got, err = m.Artists().Search(ctx, booking.ParseSearch("band"), time.Now())
	require.NoError(t, err)
	assert.Equal(t, []string{"The Wild Sax Band"}, names(got, artistName))
}

func TestMemoryShowRequiresExistingReferences(t *testing.T) {
	m := seedMemory(t)
	ctx := context.Background()
	start := time.Date(2035, 1, 1, 20, 0, 0, 0, time.UTC)

	err := m.Shows().Create(ctx, &model.Show{ArtistID: 99, VenueID: 1, StartTime: start})
	assert.ErrorIs(t, err, ErrInvalidReference)
	err = m.Shows().Create(ctx, &model.Show{ArtistID: 1, VenueID: 99, StartTime: start})
	assert.ErrorIs(t, err, ErrInvalidReference)

	s := &model.Show{ArtistID: 1, VenueID: 1, StartTime: start}
	require.NoError(t, m.Shows().Create(ctx, s))
	assert.NotZero(t, s.ID)
}

func TestMemoryShowStartTimeStoredAtSecondPrecision(t *testing.T) {
	m := seedMemory(t)
	ctx := context.Background()
	start := time.Date(2035, 1, 1, 20, 0, 0, 750_000_000, time.UTC)

	s := &model.Show{ArtistID: 1, VenueID: 1, StartTime: start}
	require.NoError(t, m.Shows().Create(ctx, s))
	assert.True(t, start.Truncate(time.Second).Equal(s.StartTime))
}

func TestMemoryListingsAndCounts(t *testing.T) {
	m := seedMemory(t)
	ctx := context.Background()
	now := time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)

	for _, s := range []model.Show{
		{ArtistID: 1, VenueID: 1, StartTime: now.Add(48 * time.Hour)},
		{ArtistID: 2, VenueID: 1, StartTime: now.Add(-48 * time.Hour)},
		{ArtistID: 1, VenueID: 3, StartTime: now.Add(24 * time.Hour)},
	} {
		s := s
		require.NoError(t, m.Shows().Create(ctx, &s))
	}

	byVenue, err := m.Shows().ListByVenue(ctx, 1)
	require.NoError(t, err)
	require.Len(t, byVenue, 2)
	assert.Equal(t, "Matt Quevedo", byVenue[0].ArtistName, "ordered by start time")
	assert.Equal(t, "Guns N Petals", byVenue[1].ArtistName)

	byArtist, err := m.Shows().ListByArtist(ctx, 1)
	require.NoError(t, err)
	require.Len(t, byArtist, 2)
	assert.Equal(t, "Park Square Live Music & Coffee", byArtist[0].VenueName)

	venues, err := m.Venues().ListAll(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, venues[0].NumUpcomingShows)
	assert.Equal(t, 0, venues[1].NumUpcomingShows)
	assert.Equal(t, 1, venues[2].NumUpcomingShows)

	artists, err := m.Artists().ListAll(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 2, artists[0].NumUpcomingShows)

	all, err := m.Shows().ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestMemoryVenueDeleteCascades(t *testing.T) {
	m := seedMemory(t)
	ctx := context.Background()
	require.NoError(t, m.Shows().Create(ctx, &model.Show{ArtistID: 1, VenueID: 2, StartTime: time.Now()}))

	require.NoError(t, m.Venues().Delete(ctx, 2))

	_, err := m.Venues().GetByID(ctx, 2)
	assert.ErrorIs(t, err, ErrVenueNotFound)
	shows, err := m.Shows().ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, shows)
	assert.ErrorIs(t, m.Venues().Delete(ctx, 2), ErrVenueNotFound)
}

func TestMemoryUpdateKeepsCreatedAt(t *testing.T) {
	m := seedMemory(t)
	ctx := context.Background()
	before, err := m.Artists().GetByID(ctx, 2)
	require.NoError(t, err)

	upd := *before
	upd.Name = "Matt Quevedo Trio"
	upd.CreatedAt = time.Time{}
	require.NoError(t, m.Artists().Update(ctx, &upd))

	after, err := m.Artists().GetByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Matt Quevedo Trio", after.Name)
	assert.Equal(t, before.CreatedAt, after.CreatedAt)

	assert.ErrorIs(t, m.Artists().Update(ctx, &model.Artist{ID: 42}), ErrArtistNotFound)
}

func TestMemoryListRecent(t *testing.T) {
	m := seedMemory(t)
	got, err := m.Venues().ListRecent(context.Background(), 2, time.Now())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, uint64(3), got[0].ID)
	assert.Equal(t, uint64(2), got[1].ID)
}

func TestMemoryGenresAreCopied(t *testing.T) {
	m := seedMemory(t)
	ctx := context.Background()
	v, err := m.Venues().GetByID(ctx, 1)
	require.NoError(t, err)
	v.Genres[0] = "Metal"

	again, err := m.Venues().GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Jazz", "Reggae"}, again.Genres)
}
