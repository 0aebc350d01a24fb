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

type venuesPage struct {
	page
	Areas []booking.Area
}

type venueSearchPage struct {
	page
	Term   string
	Count  int
	Venues []model.Venue
}

type venueDetailPage struct {
	page
	Venue *model.Venue
	booking.Buckets
}

// ListVenues handles GET /venues: every venue grouped by city and state.
func (h *Handler) ListVenues(c echo.Context) error {
	venues, err := h.Venues.ListAll(c.Request().Context(), h.now())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "pages/venues.html", venuesPage{
		page:  page{title: "Venues"},
		Areas: booking.GroupByArea(venues),
	})
}

// SearchVenues handles GET and POST /venues/search.
func (h *Handler) SearchVenues(c echo.Context) error {
	q := booking.ParseSearch(c.FormValue("search_term"))
	venues, err := h.Venues.Search(c.Request().Context(), q, h.now())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "pages/search_venues.html", venueSearchPage{
		page:   page{title: "Search venues"},
		Term:   q.Raw,
		Count:  len(venues),
		Venues: venues,
	})
}

// ShowVenue handles GET /venues/:id with the venue's shows split into past
// and upcoming.
func (h *Handler) ShowVenue(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	v, err := h.Venues.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return echo.ErrNotFound
		}
		return err
	}
	shows, err := h.Shows.ListByVenue(ctx, id)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "pages/show_venue.html", venueDetailPage{
		page:    page{title: v.Name},
		Venue:   v,
		Buckets: booking.Bucket(shows, h.now()),
	})
}

// NewVenueForm handles GET /venues/create.
func (h *Handler) NewVenueForm(c echo.Context) error {
	return c.Render(http.StatusOK, "forms/new_venue.html", newProfilePage("New venue", 0, ProfileForm{}, nil))
}

// CreateVenue handles POST /venues/create.
func (h *Handler) CreateVenue(c echo.Context) error {
	var f ProfileForm
	if err := c.Bind(&f); err != nil {
		return echo.ErrBadRequest
	}
	f.normalize()
	if errs := f.Validate(); len(errs) > 0 {
		return c.Render(http.StatusBadRequest, "forms/new_venue.html", newProfilePage("New venue", 0, f, errs))
	}
	if err := h.Venues.Create(c.Request().Context(), f.venue(0)); err != nil {
		return writeFailed(c, fmt.Sprintf("An error occurred. Venue %s could not be listed.", f.Name), err)
	}
	middleware.AddFlash(c, middleware.FlashSuccess, fmt.Sprintf("Venue %s was successfully listed!", f.Name))
	return c.Redirect(http.StatusSeeOther, "/")
}

// EditVenueForm handles GET /venues/:id/edit.
func (h *Handler) EditVenueForm(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	v, err := h.Venues.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return echo.ErrNotFound
		}
		return err
	}
	return c.Render(http.StatusOK, "forms/edit_venue.html", newProfilePage("Edit venue", id, venueForm(v), nil))
}

// UpdateVenue handles POST /venues/:id/edit.  Submitting unchanged values
// counts as success.
func (h *Handler) UpdateVenue(c echo.Context) error {
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
		return c.Render(http.StatusBadRequest, "forms/edit_venue.html", newProfilePage("Edit venue", id, f, errs))
	}
	err = h.Venues.Update(c.Request().Context(), f.venue(id))
	switch {
	case errors.Is(err, repository.ErrVenueNotFound):
		return echo.ErrNotFound
	case err != nil && !errors.Is(err, repository.ErrNoChange):
		return writeFailed(c, fmt.Sprintf("An error occurred. Venue %s could not be updated.", f.Name), err)
	}
	middleware.AddFlash(c, middleware.FlashSuccess, fmt.Sprintf("Venue %s info was successfully updated!", f.Name))
	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/venues/%d", id))
}

// DeleteVenue handles DELETE /venues/:id and removes the venue with all of
// its shows.
func (h *Handler) DeleteVenue(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.Venues.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return echo.ErrNotFound
		}
		return writeFailed(c, "An error occurred. Venue could not be deleted.", err)
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteVenueForm handles POST /venues/:id/delete from the venue page.
func (h *Handler) DeleteVenueForm(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	v, err := h.Venues.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return echo.ErrNotFound
		}
		return err
	}
	if err := h.Venues.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return echo.ErrNotFound
		}
		return writeFailed(c, fmt.Sprintf("An error occurred. Venue %s could not be deleted.", v.Name), err)
	}
	middleware.AddFlash(c, middleware.FlashSuccess, fmt.Sprintf("Venue %s was successfully deleted.", v.Name))
	return c.Redirect(http.StatusSeeOther, "/")
}
