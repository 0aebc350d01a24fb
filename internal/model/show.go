package model

import "time"

// Show links one artist to one venue at a start time.  Both
// references are foreign keys; StartTime is stored as a DATETIME in UTC.
//
// Fields:
//  ID        – primary key identifier.
//  ArtistID  – performing artist (artists.id).
//  VenueID   – hosting venue (venues.id).
//  StartTime – when the show begins.
//  CreatedAt – creation timestamp.
type Show struct {
	ID        uint64    // shows.id
	ArtistID  uint64    // shows.artist_id
	VenueID   uint64    // shows.venue_id
	StartTime time.Time // shows.start_time
	CreatedAt time.Time // shows.created_at
}

// ShowListing is a show joined with the display fields of both sides.
// Venue pages use the artist fields and artist pages use the venue
// fields; the /shows list uses both.
type ShowListing struct {
	ShowID          uint64
	VenueID         uint64
	VenueName       string
	VenueImageLink  string
	ArtistID        uint64
	ArtistName      string
	ArtistImageLink string
	StartTime       time.Time
}
