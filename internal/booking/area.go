package booking

import "github.com/iliyamo/fyyur/internal/model"

// Area is a (city, state) grouping of venues.
type Area struct {
	City   string
	State  string
	Venues []model.Venue
}

type areaKey struct{ city, state string }

// GroupByArea groups venues by exact (city, state) match. Groups are ordered
// by the first occurrence of each pair in venues, and venues keep their
// relative order inside a group.
func GroupByArea(venues []model.Venue) []Area {
	index := make(map[areaKey]int)
	var areas []Area
	for _, v := range venues {
		k := areaKey{v.City, v.State}
		i, ok := index[k]
		if !ok {
			i = len(areas)
			index[k] = i
			areas = append(areas, Area{City: v.City, State: v.State})
		}
		areas[i].Venues = append(areas[i].Venues, v)
	}
	return areas
}
