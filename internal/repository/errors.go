// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrVenueNotFound becomes an HTTP 404 while
// ErrInvalidReference signals that a show points at an artist or venue
// that does not exist.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrVenueNotFound is returned when a venue cannot be found.
var ErrVenueNotFound = errors.New("venue not found")

// ErrArtistNotFound is returned when an artist cannot be found.
var ErrArtistNotFound = errors.New("artist not found")

// ErrInvalidReference is returned when a show references a missing
// artist or venue. Handlers should translate this into an HTTP 400.
var ErrInvalidReference = errors.New("invalid reference")

// ErrNoChange indicates the UPDATE attempted to set fields equal to current values.
var ErrNoChange = errors.New("no change")

// MySQL error 1452: cannot add or update a child row, a foreign key
// constraint fails.
const mysqlErrNoReferencedRow = 1452

func isForeignKeyViolation(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlErrNoReferencedRow
}
