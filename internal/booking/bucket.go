// Package booking holds the display logic shared by venue and artist pages:
// splitting shows into past and upcoming, grouping venues into areas and
// interpreting search terms.
package booking

import (
	"time"

	"github.com/iliyamo/fyyur/internal/model"
)

// Buckets is the past/upcoming partition of one venue's or artist's shows.
type Buckets struct {
	Past          []model.ShowListing
	Upcoming      []model.ShowListing
	PastCount     int
	UpcomingCount int
}

// Bucket partitions shows relative to now. A show starting at or before now
// is past; the boundary is inclusive. Both sides are compared at whole-second
// precision, the resolution of the start_time column.
// Input order is preserved inside each bucket, so callers pass shows ordered
// by start time.
func Bucket(shows []model.ShowListing, now time.Time) Buckets {
	now = now.Truncate(time.Second)
	b := Buckets{
		Past:     make([]model.ShowListing, 0, len(shows)),
		Upcoming: make([]model.ShowListing, 0, len(shows)),
	}
	for _, s := range shows {
		if s.StartTime.Truncate(time.Second).After(now) {
			b.Upcoming = append(b.Upcoming, s)
		} else {
			b.Past = append(b.Past, s)
		}
	}
	b.PastCount = len(b.Past)
	b.UpcomingCount = len(b.Upcoming)
	return b
}
