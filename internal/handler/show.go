package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/fyyur/internal/logger"
	"github.com/iliyamo/fyyur/internal/middleware"
	"github.com/iliyamo/fyyur/internal/model"
	"github.com/iliyamo/fyyur/internal/queue"
	"github.com/iliyamo/fyyur/internal/repository"
)

// publishTimeout bounds the best-effort event publish after a show is listed.
const publishTimeout = 3 * time.Second

type showsPage struct {
	page
	Shows []model.ShowListing
}

// ListShows handles GET /shows.
func (h *Handler) ListShows(c echo.Context) error {
	shows, err := h.Shows.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "pages/shows.html", showsPage{page: page{title: "Shows"}, Shows: shows})
}

// NewShowForm handles GET /shows/create.
func (h *Handler) NewShowForm(c echo.Context) error {
	return c.Render(http.StatusOK, "forms/new_show.html", showPage{page: page{title: "New show"}})
}

// CreateShow handles POST /shows/create.  A missing artist or venue is a
// validation failure, not a server error.
func (h *Handler) CreateShow(c echo.Context) error {
	var f ShowForm
	if err := c.Bind(&f); err != nil {
		return echo.ErrBadRequest
	}
	s, errs := f.parsed()
	if len(errs) > 0 {
		return c.Render(http.StatusBadRequest, "forms/new_show.html", showPage{page: page{title: "New show"}, Form: f, Errors: errs})
	}
	if err := h.Shows.Create(c.Request().Context(), s); err != nil {
		if errors.Is(err, repository.ErrInvalidReference) {
			return c.Render(http.StatusBadRequest, "forms/new_show.html", showPage{
				page:   page{title: "New show"},
				Form:   f,
				Errors: []string{"The artist or venue does not exist."},
			})
		}
		return writeFailed(c, "An error occurred. Show could not be listed.", err)
	}
	h.publishListed(c, s)
	middleware.AddFlash(c, middleware.FlashSuccess, "Show was successfully listed!")
	return c.Redirect(http.StatusSeeOther, "/")
}

// publishListed announces the show.  Failures are logged only.
func (h *Handler) publishListed(c echo.Context, s *model.Show) {
	if h.Publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), publishTimeout)
	defer cancel()

	ev := queue.ShowListedEvent{
		ShowID:    s.ID,
		ArtistID:  s.ArtistID,
		VenueID:   s.VenueID,
		StartTime: s.StartTime.UTC().Format(time.RFC3339),
		ListedAt:  h.now().Format(time.RFC3339),
	}
	if a, err := h.Artists.GetByID(ctx, s.ArtistID); err == nil {
		ev.ArtistName = a.Name
	}
	if v, err := h.Venues.GetByID(ctx, s.VenueID); err == nil {
		ev.VenueName = v.Name
	}
	if err := h.Publisher.PublishShowListed(ctx, ev); err != nil {
		logger.FromEcho(c).Warn("publish show.listed failed", zap.Uint64("show_id", s.ID), zap.Error(err))
	}
}
