package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/fyyur/internal/model"
)

func TestGroupByArea(t *testing.T) {
	venues := []model.Venue{
		{ID: 1, Name: "The Musical Hop", City: "San Francisco", State: "CA"},
		{ID: 2, Name: "The Dueling Pianos Bar", City: "New York", State: "NY"},
		{ID: 3, Name: "Park Square Live Music & Coffee", City: "San Francisco", State: "CA"},
		{ID: 4, Name: "Lowercase", City: "san francisco", State: "CA"},
	}

	areas := GroupByArea(venues)

	require.Len(t, areas, 3)
	assert.Equal(t, "San Francisco", areas[0].City)
	assert.Equal(t, "CA", areas[0].State)
	require.Len(t, areas[0].Venues, 2)
	assert.Equal(t, uint64(1), areas[0].Venues[0].ID)
	assert.Equal(t, uint64(3), areas[0].Venues[1].ID)
	assert.Equal(t, "New York", areas[1].City)
	assert.Equal(t, "san francisco", areas[2].City, "no case normalization")
}

func TestGroupByAreaPartitionsVenues(t *testing.T) {
	cities := []string{"Austin", "Boston", "Austin", "Chicago", "Boston", "Austin"}
	var venues []model.Venue
	for i, c := range cities {
		venues = append(venues, model.Venue{ID: uint64(i + 1), City: c, State: "XX"})
	}

	areas := GroupByArea(venues)

	total := 0
	keys := map[string]bool{}
	for _, a := range areas {
		k := a.City + "|" + a.State
		assert.False(t, keys[k], "duplicate area %s", k)
		keys[k] = true
		total += len(a.Venues)
		for _, v := range a.Venues {
			assert.Equal(t, a.City, v.City)
		}
	}
	assert.Equal(t, len(venues), total)
	assert.Equal(t, []string{"Austin", "Boston", "Chicago"}, []string{areas[0].City, areas[1].City, areas[2].City})
}

func TestGroupByAreaEmpty(t *testing.T) {
	assert.Empty(t, GroupByArea(nil))
}
