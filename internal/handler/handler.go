package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/fyyur/internal/booking"
	"github.com/iliyamo/fyyur/internal/logger"
	"github.com/iliyamo/fyyur/internal/middleware"
	"github.com/iliyamo/fyyur/internal/model"
	"github.com/iliyamo/fyyur/internal/queue"
)

// VenueStore is the venue persistence used by the handlers.  Both the MySQL
// repository and the in-memory store satisfy it.
type VenueStore interface {
	Create(ctx context.Context, v *model.Venue) error
	GetByID(ctx context.Context, id uint64) (*model.Venue, error)
	Update(ctx context.Context, v *model.Venue) error
	Delete(ctx context.Context, id uint64) error
	ListAll(ctx context.Context, now time.Time) ([]model.Venue, error)
	ListRecent(ctx context.Context, limit int, now time.Time) ([]model.Venue, error)
	Search(ctx context.Context, q booking.SearchQuery, now time.Time) ([]model.Venue, error)
}

// ArtistStore is the artist persistence used by the handlers.
type ArtistStore interface {
	Create(ctx context.Context, a *model.Artist) error
	GetByID(ctx context.Context, id uint64) (*model.Artist, error)
	Update(ctx context.Context, a *model.Artist) error
	ListAll(ctx context.Context, now time.Time) ([]model.Artist, error)
	ListRecent(ctx context.Context, limit int, now time.Time) ([]model.Artist, error)
	Search(ctx context.Context, q booking.SearchQuery, now time.Time) ([]model.Artist, error)
}

// ShowStore is the show persistence used by the handlers.
type ShowStore interface {
	Create(ctx context.Context, s *model.Show) error
	ListAll(ctx context.Context) ([]model.ShowListing, error)
	ListByVenue(ctx context.Context, venueID uint64) ([]model.ShowListing, error)
	ListByArtist(ctx context.Context, artistID uint64) ([]model.ShowListing, error)
}

// ShowPublisher announces newly listed shows.
type ShowPublisher interface {
	PublishShowListed(ctx context.Context, ev queue.ShowListedEvent) error
}

// recentLimit is how many venues and artists the home page lists.
const recentLimit = 10

// Handler bundles the stores behind every page.  Publisher may be nil.
// Now defaults to time.Now and is replaced in tests.
type Handler struct {
	Venues    VenueStore
	Artists   ArtistStore
	Shows     ShowStore
	Publisher ShowPublisher
	Now       func() time.Time
}

// New constructs a Handler and panics if any store is nil.
func New(venues VenueStore, artists ArtistStore, shows ShowStore, pub ShowPublisher) *Handler {
	if venues == nil || artists == nil || shows == nil {
		panic("nil store passed to handler.New")
	}
	return &Handler{Venues: venues, Artists: artists, Shows: shows, Publisher: pub, Now: time.Now}
}

func (h *Handler) now() time.Time {
	if h.Now == nil {
		return time.Now().UTC().Truncate(time.Second)
	}
	return h.Now().UTC().Truncate(time.Second)
}

// parseID reads a positive integer path parameter.  Anything else is a 404
// since no such page exists.
func parseID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.ErrNotFound
	}
	return id, nil
}

// writeFailed logs a failed write, flashes msg and renders the 500 page.
func writeFailed(c echo.Context, msg string, err error) error {
	logger.FromEcho(c).Error(msg, zap.Error(err))
	middleware.AddFlash(c, middleware.FlashError, msg)
	return c.Render(http.StatusInternalServerError, "errors/500.html", nil)
}

// page wraps handler data with a title for the layout.
type page struct {
	title string
}

func (p page) PageTitle() string { return p.title }
