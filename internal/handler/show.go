package handler

import (
	"database/sql"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/model"
	"github.com/iliyamo/fyyur/internal/queue"
	"github.com/iliyamo/fyyur/internal/repository"
	"github.com/iliyamo/fyyur/internal/utils"
)

type showFormPage struct {
	Artists   []model.Choice
	Venues    []model.Choice
	StartTime string // datetime-local default value
}

// ListShows handles GET /shows.
func (h *Handler) ListShows(c echo.Context) error {
	shows, err := h.Shows.List(c.Request().Context())
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "shows.html", "Shows", shows)
}

// CreateShowForm handles GET /shows/create.  The choice lists are read on
// every request so new venues and artists appear immediately.
func (h *Handler) CreateShowForm(c echo.Context) error {
	ctx := c.Request().Context()
	artists, err := h.Artists.Choices(ctx)
	if err != nil {
		return err
	}
	venues, err := h.Venues.Choices(ctx)
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "forms/new_show.html", "New show", showFormPage{
		Artists:   artists,
		Venues:    venues,
		StartTime: h.now().In(h.Location).Format("2006-01-02T15:04"),
	})
}

// CreateShow handles POST /shows/create.  The venue and artist are read in
// the same transaction as the insert, so the copied names and images match
// the rows at submission time.
func (h *Handler) CreateShow(c echo.Context) error {
	var form ShowForm
	var show model.Show
	err := c.Bind(&form)
	if err == nil {
		show.ArtistID, show.VenueID, show.StartTime, err = form.parse(h.Location)
	}
	if err == nil {
		ctx := c.Request().Context()
		err = repository.WithTx(ctx, h.DB, func(tx *sql.Tx) error {
			venue, err := h.Venues.GetByIDTx(ctx, tx, show.VenueID)
			if err != nil {
				return err
			}
			artist, err := h.Artists.GetByIDTx(ctx, tx, show.ArtistID)
			if err != nil {
				return err
			}
			show.VenueName, show.VenueImageLink = venue.Name, venue.ImageLink
			show.ArtistName, show.ArtistImageLink = artist.Name, artist.ImageLink
			return h.Shows.CreateTx(ctx, tx, &show)
		})
	}
	if err != nil {
		return h.redirect(c, "/shows/create", utils.FlashDanger, "An error occurred. Show could not be listed: "+err.Error())
	}
	h.afterWrite(c, queue.ActionCreated, queue.EntityShow, show.ID,
		fmt.Sprintf("%s at %s", show.ArtistName, show.VenueName))
	return h.redirect(c, "/shows", utils.FlashSuccess, "Show was successfully listed!")
}
