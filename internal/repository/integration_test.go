//go:build integration
// +build integration

package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mysql"

	"github.com/iliyamo/fyyur/internal/booking"
	"github.com/iliyamo/fyyur/internal/database"
	"github.com/iliyamo/fyyur/internal/model"
	"github.com/iliyamo/fyyur/internal/repository"
)

// setupMySQL starts a MySQL container, applies the schema and returns the
// three repositories over it.
func setupMySQL(t *testing.T) (*repository.VenueRepo, *repository.ArtistRepo, *repository.ShowRepo) {
	t.Helper()
	ctx := context.Background()

	container, err := mysql.Run(ctx, "mysql:8.0.36",
		mysql.WithDatabase("fyyur"),
		mysql.WithUsername("fyyur"),
		mysql.WithPassword("fyyur"),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "3306/tcp")
	require.NoError(t, err)

	db, err := database.Open(ctx, database.Options{
		User: "fyyur", Pass: "fyyur", Host: host, Port: port.Port(), Name: "fyyur",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.Migrate(ctx, db))
	// Applying the schema twice must be harmless.
	require.NoError(t, database.Migrate(ctx, db))

	return repository.NewVenueRepo(db), repository.NewArtistRepo(db), repository.NewShowRepo(db)
}

func TestMySQL_EndToEnd(t *testing.T) {
	venues, artists, shows := setupMySQL(t)
	ctx := context.Background()
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

	hop := &model.Venue{Name: "The Musical Hop", City: "San Francisco", State: "CA", Genres: []string{"Jazz", "Reggae", "Swing"}}
	park := &model.Venue{Name: "Park Square Live Music & Coffee", City: "San Francisco", State: "CA", Genres: []string{"Folk"}}
	pianos := &model.Venue{Name: "The Dueling Pianos Bar", City: "New York", State: "NY"}
	for _, v := range []*model.Venue{hop, park, pianos} {
		require.NoError(t, venues.Create(ctx, v))
		assert.NotZero(t, v.ID)
	}
	sax := &model.Artist{Name: "The Wild Sax Band", City: "San Francisco", State: "CA", Genres: []string{"Jazz"}}
	require.NoError(t, artists.Create(ctx, sax))

	got, err := venues.GetByID(ctx, hop.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Jazz", "Reggae", "Swing"}, got.Genres)

	require.NoError(t, shows.Create(ctx, &model.Show{ArtistID: sax.ID, VenueID: park.ID, StartTime: now.Add(-time.Hour)}))
	require.NoError(t, shows.Create(ctx, &model.Show{ArtistID: sax.ID, VenueID: park.ID, StartTime: now.Add(time.Hour)}))
	err = shows.Create(ctx, &model.Show{ArtistID: sax.ID + 100, VenueID: park.ID, StartTime: now})
	assert.ErrorIs(t, err, repository.ErrInvalidReference)
	err = shows.Create(ctx, &model.Show{ArtistID: sax.ID, VenueID: park.ID + 100, StartTime: now})
	assert.ErrorIs(t, err, repository.ErrInvalidReference)

	listed, err := shows.ListByVenue(ctx, park.ID)
	require.NoError(t, err)
	b := booking.Bucket(listed, now)
	assert.Equal(t, 1, b.PastCount)
	assert.Equal(t, 1, b.UpcomingCount)
	assert.Equal(t, "The Wild Sax Band", b.Upcoming[0].ArtistName)

	all, err := venues.ListAll(ctx, now)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, 1, all[1].NumUpcomingShows)
	areas := booking.GroupByArea(all)
	require.Len(t, areas, 2)
	assert.Len(t, areas[0].Venues, 2)

	found, err := venues.Search(ctx, booking.ParseSearch("Music"), now)
	require.NoError(t, err)
	assert.Len(t, found, 2)
	found, err = venues.Search(ctx, booking.ParseSearch("new york, ny"), now)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "The Dueling Pianos Bar", found[0].Name)
	found, err = venues.Search(ctx, booking.ParseSearch("100%"), now)
	require.NoError(t, err)
	assert.Empty(t, found)

	pianos.Phone = "914-003-1132"
	require.NoError(t, venues.Update(ctx, pianos))
	assert.ErrorIs(t, venues.Update(ctx, pianos), repository.ErrNoChange)

	require.NoError(t, venues.Delete(ctx, park.ID))
	assert.ErrorIs(t, venues.Delete(ctx, park.ID), repository.ErrVenueNotFound)
	remaining, err := shows.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}
