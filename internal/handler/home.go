package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/model"
)

type homePage struct {
	page
	Venues  []model.Venue
	Artists []model.Artist
}

// Home renders the landing page with the most recently listed venues and
// artists.
func (h *Handler) Home(c echo.Context) error {
	ctx := c.Request().Context()
	now := h.now()
	venues, err := h.Venues.ListRecent(ctx, recentLimit, now)
	if err != nil {
		return err
	}
	artists, err := h.Artists.ListRecent(ctx, recentLimit, now)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "pages/home.html", homePage{Venues: venues, Artists: artists})
}
