package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/booking"
	"github.com/iliyamo/fyyur/internal/middleware"
	"github.com/iliyamo/fyyur/internal/model"
	"github.com/iliyamo/fyyur/internal/repository"
)

type artistsPage struct {
	page
	Artists []model.Artist
}

type artistSearchPage struct {
	page
	Term    string
	Count   int
	Artists []model.Artist
}

type artistDetailPage struct {
	page
	Artist *model.Artist
	booking.Buckets
}

// ListArtists handles GET /artists.
func (h *Handler) ListArtists(c echo.Context) error {
	artists, err := h.Artists.ListAll(c.Request().Context(), h.now())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "pages/artists.html", artistsPage{page: page{title: "Artists"}, Artists: artists})
}

// SearchArtists handles GET and POST /artists/search.
func (h *Handler) SearchArtists(c echo.Context) error {
	q := booking.ParseSearch(c.FormValue("search_term"))
	artists, err := h.Artists.Search(c.Request().Context(), q, h.now())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "pages/search_artists.html", artistSearchPage{
		page:    page{title: "Search artists"},
		Term:    q.Raw,
		Count:   len(artists),
		Artists: artists,
	})
}

// ShowArtist handles GET /artists/:id.
func (h *Handler) ShowArtist(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	a, err := h.Artists.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrArtistNotFound) {
			return echo.ErrNotFound
		}
		return err
	}
	shows, err := h.Shows.ListByArtist(ctx, id)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "pages/show_artist.html", artistDetailPage{
		page:    page{title: a.Name},
		Artist:  a,
		Buckets: booking.Bucket(shows, h.now()),
	})
}

// NewArtistForm handles GET /artists/create.
func (h *Handler) NewArtistForm(c echo.Context) error {
	return c.Render(http.StatusOK, "forms/new_artist.html", newProfilePage("New artist", 0, ProfileForm{}, nil))
}

// CreateArtist handles POST /artists/create.
func (h *Handler) CreateArtist(c echo.Context) error {
	var f ProfileForm
	if err := c.Bind(&f); err != nil {
		return echo.ErrBadRequest
	}
	f.normalize()
	if errs := f.Validate(); len(errs) > 0 {
		return c.Render(http.StatusBadRequest, "forms/new_artist.html", newProfilePage("New artist", 0, f, errs))
	}
	if err := h.Artists.Create(c.Request().Context(), f.artist(0)); err != nil {
		return writeFailed(c, fmt.Sprintf("An error occurred. Artist %s could not be listed.", f.Name), err)
	}
	middleware.AddFlash(c, middleware.FlashSuccess, fmt.Sprintf("Artist %s was successfully listed!", f.Name))
	return c.Redirect(http.StatusSeeOther, "/")
}

// EditArtistForm handles GET /artists/:id/edit.
func (h *Handler) EditArtistForm(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	a, err := h.Artists.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrArtistNotFound) {
			return echo.ErrNotFound
		}
		return err
	}
	return c.Render(http.StatusOK, "forms/edit_artist.html", newProfilePage("Edit artist", id, artistForm(a), nil))
}

// UpdateArtist handles POST /artists/:id/edit.
func (h *Handler) UpdateArtist(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var f ProfileForm
	if err := c.Bind(&f); err != nil {
		return echo.ErrBadRequest
	}
	f.normalize()
	if errs := f.Validate(); len(errs) > 0 {
		return c.Render(http.StatusBadRequest, "forms/edit_artist.html", newProfilePage("Edit artist", id, f, errs))
	}
	err = h.Artists.Update(c.Request().Context(), f.artist(id))
	switch {
	case errors.Is(err, repository.ErrArtistNotFound):
		return echo.ErrNotFound
	case err != nil && !errors.Is(err, repository.ErrNoChange):
		return writeFailed(c, fmt.Sprintf("An error occurred. Artist %s could not be updated.", f.Name), err)
	}
	middleware.AddFlash(c, middleware.FlashSuccess, fmt.Sprintf("Artist %s info was successfully updated!", f.Name))
	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/artists/%d", id))
}
