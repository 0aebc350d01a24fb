// Package seed loads the demo venues, artists and shows into an empty store.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/iliyamo/fyyur/internal/model"
)

// VenueCreator is the part of a venue store seeding needs.
type VenueCreator interface {
	Create(ctx context.Context, v *model.Venue) error
	ListRecent(ctx context.Context, limit int, now time.Time) ([]model.Venue, error)
}

// ArtistCreator is the part of an artist store seeding needs.
type ArtistCreator interface {
	Create(ctx context.Context, a *model.Artist) error
}

// ShowCreator is the part of a show store seeding needs.
type ShowCreator interface {
	Create(ctx context.Context, s *model.Show) error
}

// Venues are the demo venues.
func Venues() []model.Venue {
	return []model.Venue{
		{
			Name:               "The Musical Hop",
			Genres:             []string{"Jazz", "Reggae", "Swing", "Classical", "Folk"},
			Address:            "1015 Folsom Street",
			City:               "San Francisco",
			State:              "CA",
			Phone:              "123-123-1234",
			Website:            "https://www.themusicalhop.com",
			FacebookLink:       "https://www.facebook.com/TheMusicalHop",
			SeekingTalent:      true,
			SeekingDescription: "We are on the lookout for a local artist to play every two weeks. Please call us.",
			ImageLink:          "https://images.unsplash.com/photo-1543900694-133f37abaaa5?ixlib=rb-1.2.1&ixid=eyJhcHBfaWQiOjEyMDd9&auto=format&fit=crop&w=400&q=60",
		},
		{
			Name:         "The Dueling Pianos Bar",
			Genres:       []string{"Classical", "R&B", "Hip-Hop"},
			Address:      "335 Delancey Street",
			City:         "New York",
			State:        "NY",
			Phone:        "914-003-1132",
			Website:      "https://www.theduelingpianos.com",
			FacebookLink: "https://www.facebook.com/theduelingpianos",
			ImageLink:    "https://images.unsplash.com/photo-1497032205916-ac775f0649ae?ixlib=rb-1.2.1&ixid=eyJhcHBfaWQiOjEyMDd9&auto=format&fit=crop&w=750&q=80",
		},
		{
			Name:         "Park Square Live Music & Coffee",
			Genres:       []string{"Rock n Roll", "Jazz", "Classical", "Folk"},
			Address:      "34 Whiskey Moore Ave",
			City:         "San Francisco",
			State:        "CA",
			Phone:        "415-000-1234",
			Website:      "https://www.parksquarelivemusicandcoffee.com",
			FacebookLink: "https://www.facebook.com/ParkSquareLiveMusicAndCoffee",
			ImageLink:    "https://images.unsplash.com/photo-1485686531765-ba63b07845a7?ixlib=rb-1.2.1&ixid=eyJhcHBfaWQiOjEyMDd9&auto=format&fit=crop&w=747&q=80",
		},
	}
}

// Artists are the demo artists.
func Artists() []model.Artist {
	return []model.Artist{
		{
			Name:               "Guns N Petals",
			Genres:             []string{"Rock n Roll"},
			City:               "San Francisco",
			State:              "CA",
			Phone:              "326-123-5000",
			Website:            "https://www.gunsnpetalsband.com",
			FacebookLink:       "https://www.facebook.com/GunsNPetals",
			SeekingVenue:       true,
			SeekingDescription: "Looking for shows to perform at in the San Francisco Bay Area!",
			ImageLink:          "https://images.unsplash.com/photo-1549213783-8284d0336c4f?ixlib=rb-1.2.1&ixid=eyJhcHBfaWQiOjEyMDd9&auto=format&fit=crop&w=300&q=80",
		},
		{
			Name:         "Matt Quevedo",
			Genres:       []string{"Jazz"},
			City:         "New York",
			State:        "NY",
			Phone:        "300-400-5000",
			FacebookLink: "https://www.facebook.com/mattquevedo923251523",
			ImageLink:    "https://images.unsplash.com/photo-1495223153807-b916f75de8c5?ixlib=rb-1.2.1&ixid=eyJhcHBfaWQiOjEyMDd9&auto=format&fit=crop&w=334&q=80",
		},
		{
			Name:      "The Wild Sax Band",
			Genres:    []string{"Jazz", "Classical"},
			City:      "San Francisco",
			State:     "CA",
			Phone:     "432-325-5432",
			ImageLink: "https://images.unsplash.com/photo-1558369981-f9ca78462e61?ixlib=rb-1.2.1&ixid=eyJhcHBfaWQiOjEyMDd9&auto=format&fit=crop&w=794&q=80",
		},
	}
}

// showPlan links a demo venue and artist by their index in Venues and
// Artists.
type showPlan struct {
	venue, artist int
	start         time.Time
}

func utc(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

var shows = []showPlan{
	{venue: 0, artist: 0, start: utc(2019, time.May, 21, 21, 30)},
	{venue: 2, artist: 1, start: utc(2019, time.June, 15, 23, 0)},
	{venue: 2, artist: 2, start: utc(2035, time.April, 1, 20, 0)},
	{venue: 2, artist: 2, start: utc(2035, time.April, 8, 20, 0)},
	{venue: 2, artist: 2, start: utc(2035, time.April, 15, 20, 0)},
}

// Load inserts the demo data unless the store already holds a venue.  It
// reports whether anything was inserted.
func Load(ctx context.Context, venues VenueCreator, artists ArtistCreator, showStore ShowCreator) (bool, error) {
	existing, err := venues.ListRecent(ctx, 1, time.Now())
	if err != nil {
		return false, fmt.Errorf("check existing venues: %w", err)
	}
	if len(existing) > 0 {
		return false, nil
	}

	vs := Venues()
	for i := range vs {
		if err := venues.Create(ctx, &vs[i]); err != nil {
			return false, fmt.Errorf("seed venue %q: %w", vs[i].Name, err)
		}
	}
	as := Artists()
	for i := range as {
		if err := artists.Create(ctx, &as[i]); err != nil {
			return false, fmt.Errorf("seed artist %q: %w", as[i].Name, err)
		}
	}
	for _, p := range shows {
		s := &model.Show{VenueID: vs[p.venue].ID, ArtistID: as[p.artist].ID, StartTime: p.start}
		if err := showStore.Create(ctx, s); err != nil {
			return false, fmt.Errorf("seed show: %w", err)
		}
	}
	return true, nil
}
