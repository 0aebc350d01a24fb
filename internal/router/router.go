package router // package router wires middleware and page routes onto echo

import (
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/fyyur/internal/config"
	"github.com/iliyamo/fyyur/internal/handler"
	"github.com/iliyamo/fyyur/internal/logger"
	"github.com/iliyamo/fyyur/internal/middleware"
)

// Deps collects what the routes need.  Redis, DB and Metrics may be nil;
// the middleware they back is then skipped.
type Deps struct {
	Handler     *handler.Handler
	DB          handler.Pinger
	Metrics     *middleware.HTTPMetrics
	Redis       *redis.Client
	Cache       config.CacheConfig
	RateLimit   config.RateLimitConfig
	FlashSecret string
	FlashTTL    time.Duration
}

// RegisterRoutes installs the middleware chain, the error handler and every
// route on e.
func RegisterRoutes(e *echo.Echo, d Deps) {
	e.HTTPErrorHandler = handler.HTTPErrorHandler

	// HTML forms can only GET or POST; a hidden _method field turns a POST
	// into DELETE before routing.
	e.Pre(echomw.MethodOverrideWithConfig(echomw.MethodOverrideConfig{
		Getter: echomw.MethodFromForm("_method"),
	}))

	e.Use(middleware.RequestID())
	if d.Metrics != nil {
		e.Use(d.Metrics.Middleware())
	}
	// The logger hands errors to the error handler, so the middleware
	// above it always sees the final status.
	e.Use(logger.Middleware())
	e.Use(echomw.Recover())
	e.Use(middleware.Flash(d.FlashSecret, d.FlashTTL))

	e.GET("/healthz", handler.Health(d.DB))
	if d.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(d.Metrics.Handler()))
	}

	pages := e.Group("", middleware.NewRedisCache(d.Cache, d.Redis))
	RegisterPages(pages, d.Handler,
		middleware.NewTokenBucket(d.RateLimit, d.Redis),
		middleware.PurgeOnWrite(d.Cache, d.Redis),
	)
}

// RegisterPages maps the venue, artist and show pages.  Static segments
// such as /venues/create take precedence over /venues/:id.  The write
// middleware wraps only the routes that change data; searches are reads
// even when posted.
func RegisterPages(g *echo.Group, h *handler.Handler, write ...echo.MiddlewareFunc) {
	g.GET("/", h.Home)

	// ---- Venues ----
	g.GET("/venues", h.ListVenues)
	g.GET("/venues/search", h.SearchVenues)
	g.POST("/venues/search", h.SearchVenues)
	g.GET("/venues/create", h.NewVenueForm)
	g.POST("/venues/create", h.CreateVenue, write...)
	g.GET("/venues/:id", h.ShowVenue)
	g.DELETE("/venues/:id", h.DeleteVenue, write...)
	g.POST("/venues/:id/delete", h.DeleteVenueForm, write...)
	g.GET("/venues/:id/edit", h.EditVenueForm)
	g.POST("/venues/:id/edit", h.UpdateVenue, write...)

	// ---- Artists ----
	g.GET("/artists", h.ListArtists)
	g.GET("/artists/search", h.SearchArtists)
	g.POST("/artists/search", h.SearchArtists)
	g.GET("/artists/create", h.NewArtistForm)
	g.POST("/artists/create", h.CreateArtist, write...)
	g.GET("/artists/:id", h.ShowArtist)
	g.GET("/artists/:id/edit", h.EditArtistForm)
	g.POST("/artists/:id/edit", h.UpdateArtist, write...)

	// ---- Shows ----
	g.GET("/shows", h.ListShows)
	g.GET("/shows/create", h.NewShowForm)
	g.POST("/shows/create", h.CreateShow, write...)
}
