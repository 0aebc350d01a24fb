// Package queue defines message payloads exchanged over the message broker
// and the background consumer that records them.
package queue

// ShowListedQueue is the durable queue show.listed events are routed to.
const ShowListedQueue = "show.listed"

// ShowListedEvent is published after a show is created.  It carries the
// names of both sides so consumers never need to query the primary
// database.
type ShowListedEvent struct {
	ShowID     uint64 `json:"show_id"`
	ArtistID   uint64 `json:"artist_id"`
	ArtistName string `json:"artist_name"`
	VenueID    uint64 `json:"venue_id"`
	VenueName  string `json:"venue_name"`
	StartTime  string `json:"start_time"`
	ListedAt   string `json:"listed_at"`
}
