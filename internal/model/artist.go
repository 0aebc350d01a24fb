package model

import "time"

// Artist represents a performer who can be booked for shows.  This
// struct corresponds to a row in the `artists` table.
//
// Fields:
//  ID                 – primary key identifier.
//  Name               – display name of the artist.
//  Genres             – ordered list of genres the artist plays.
//  City, State        – home location used for search.
//  Phone, Website     – contact details.
//  FacebookLink       – facebook page URL.
//  SeekingVenue       – whether the artist is looking for venues.
//  SeekingDescription – free text shown when SeekingVenue is set.
//  ImageLink          – URL of the artist image.
//  CreatedAt          – creation timestamp.
//  NumUpcomingShows   – computed on list queries; not stored.
type Artist struct {
	ID                 uint64    // artists.id
	Name               string    // artists.name
	Genres             []string  // artists.genres (JSON array)
	City               string    // artists.city
	State              string    // artists.state
	Phone              string    // artists.phone
	Website            string    // artists.website
	FacebookLink       string    // artists.facebook_link
	SeekingVenue       bool      // artists.seeking_venue
	SeekingDescription string    // artists.seeking_description
	ImageLink          string    // artists.image_link
	CreatedAt          time.Time // artists.created_at
	NumUpcomingShows   int
}
