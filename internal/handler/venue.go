package handler // handler package contains the venue pages

import (
	"database/sql" // sql provides the transaction type
	"fmt"          // fmt builds redirect targets and flash texts
	"net/http"     // http provides status code constants

	"github.com/labstack/echo/v4" // echo is the web framework used for handlers

	"github.com/iliyamo/fyyur/internal/model"      // model holds the domain types
	"github.com/iliyamo/fyyur/internal/queue"      // queue names the event actions
	"github.com/iliyamo/fyyur/internal/repository" // repository holds the data access layer
	"github.com/iliyamo/fyyur/internal/utils"      // utils names the flash categories
)

type searchResult struct {
	Kind    string // "venues" or "artists", used to build links
	Term    string
	Count   int
	Results any
}

type venueDetail struct {
	Venue    *model.Venue
	Genres   []string
	Schedule model.Schedule
}

type venueFormPage struct {
	ID     uint64 // zero on the create form
	Action string
	Form   VenueForm
	Genres []string
}

// ListVenues handles GET /venues and lists every venue grouped by area.
func (h *Handler) ListVenues(c echo.Context) error {
	summaries, err := h.Venues.ListSummaries(c.Request().Context(), h.now()) // count upcoming shows per venue
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "venues.html", "Venues", model.GroupByArea(summaries))
}

// SearchVenues handles POST /venues/search.
func (h *Handler) SearchVenues(c echo.Context) error {
	term := c.FormValue("search_term")
	found, err := h.Venues.Search(c.Request().Context(), term, h.now())
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "search.html", "Venue search", searchResult{
		Kind: "venues", Term: term, Count: len(found), Results: found,
	})
}

// ShowVenue handles GET /venues/:id with the venue's past and upcoming shows.
func (h *Handler) ShowVenue(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	v, err := h.Venues.GetByID(ctx, id)
	if err != nil {
		return lookupError(err) // missing venue becomes a 404 page
	}
	shows, err := h.Shows.ListByVenue(ctx, id)
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "show_venue.html", v.Name, venueDetail{
		Venue:    v,
		Genres:   v.GenreList(),
		Schedule: model.Partition(shows, h.now()),
	})
}

// CreateVenueForm handles GET /venues/create.
func (h *Handler) CreateVenueForm(c echo.Context) error {
	return h.render(c, http.StatusOK, "forms/venue.html", "New venue", venueFormPage{
		Action: "/venues/create",
		Genres: model.Genres,
	})
}

// CreateVenue handles POST /venues/create.  Any failure rolls the insert
// back and sends the user back to the form.
func (h *Handler) CreateVenue(c echo.Context) error {
	var form VenueForm
	err := c.Bind(&form)
	if err == nil {
		err = form.validate()
	}
	var v model.Venue
	if err == nil {
		v = form.Venue()
		ctx := c.Request().Context()
		err = repository.WithTx(ctx, h.DB, func(tx *sql.Tx) error { return h.Venues.CreateTx(ctx, tx, &v) })
	}
	if err != nil {
		return h.redirect(c, "/venues/create", utils.FlashDanger,
			fmt.Sprintf("An error occurred. Venue %s could not be listed because of the error: %v", form.Name, err))
	}
	h.afterWrite(c, queue.ActionCreated, queue.EntityVenue, v.ID, v.Name)
	return h.redirect(c, "/", utils.FlashSuccess, fmt.Sprintf("Venue %s was successfully listed!", v.Name))
}

// EditVenueForm handles GET /venues/:id/edit with the stored values filled in.
func (h *Handler) EditVenueForm(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	v, err := h.Venues.GetByID(c.Request().Context(), id)
	if err != nil {
		return lookupError(err)
	}
	return h.render(c, http.StatusOK, "forms/venue.html", "Edit "+v.Name, venueFormPage{
		ID:     id,
		Action: fmt.Sprintf("/venues/%d/edit", id),
		Form:   venueForm(v),
		Genres: model.Genres,
	})
}

// EditVenue handles POST /venues/:id/edit.  The venue row and the venue
// name/image copies on its shows change in one transaction.
func (h *Handler) EditVenue(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var form VenueForm
	err = c.Bind(&form)
	if err == nil {
		err = form.validate()
	}
	v := form.Venue()
	v.ID = id
	if err == nil {
		ctx := c.Request().Context()
		err = repository.WithTx(ctx, h.DB, func(tx *sql.Tx) error { return h.Venues.UpdateTx(ctx, tx, &v) })
	}
	if err != nil {
		if isNotFound(err) {
			return lookupError(err)
		}
		return h.redirect(c, fmt.Sprintf("/venues/%d/edit", id), utils.FlashDanger, "An error occurred: "+err.Error())
	}
	h.afterWrite(c, queue.ActionUpdated, queue.EntityVenue, v.ID, v.Name)
	return h.redirect(c, fmt.Sprintf("/venues/%d", id), utils.FlashSuccess, "Venue has been updated successfully")
}

// DeleteVenue handles GET /venues/:id/delete and removes the venue with all
// of its shows.  Failures, a missing venue included, flash on the home page.
func (h *Handler) DeleteVenue(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	var deleted *model.Venue
	err = repository.WithTx(ctx, h.DB, func(tx *sql.Tx) error {
		var err error
		deleted, err = h.Venues.DeleteTx(ctx, tx, id)
		return err
	})
	if err != nil {
		return h.redirect(c, "/", utils.FlashDanger, "An error occurred: "+err.Error())
	}
	h.afterWrite(c, queue.ActionDeleted, queue.EntityVenue, id, deleted.Name)
	return h.redirect(c, "/", utils.FlashSuccess, fmt.Sprintf("Venue %s has been deleted", deleted.Name))
}
