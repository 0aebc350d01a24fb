package model

import "time"

// Venue represents a place that can host shows.  This struct
// corresponds to a row in the `venues` table.
//
// Fields:
//  ID                 – primary key identifier.
//  Name               – display name of the venue.
//  Genres             – ordered list of genres the venue books.
//  Address            – street address.
//  City, State        – location used for area grouping and search.
//  Phone, Website     – contact details.
//  FacebookLink       – facebook page URL.
//  SeekingTalent      – whether the venue is looking for artists.
//  SeekingDescription – free text shown when SeekingTalent is set.
//  ImageLink          – URL of the venue image.
//  CreatedAt          – creation timestamp.
//  NumUpcomingShows   – computed on list queries; not stored.
type Venue struct {
	ID                 uint64    // venues.id
	Name               string    // venues.name
	Genres             []string  // venues.genres (JSON array)
	Address            string    // venues.address
	City               string    // venues.city
	State              string    // venues.state
	Phone              string    // venues.phone
	Website            string    // venues.website
	FacebookLink       string    // venues.facebook_link
	SeekingTalent      bool      // venues.seeking_talent
	SeekingDescription string    // venues.seeking_description
	ImageLink          string    // venues.image_link
	CreatedAt          time.Time // venues.created_at
	NumUpcomingShows   int
}
