package handler // handler package contains the artist pages

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

type artistDetail struct {
	Artist   *model.Artist
	Genres   []string
	Schedule model.Schedule
}

type artistFormPage struct {
	ID     uint64
	Action string
	Form   ArtistForm
	Genres []string
}

// ListArtists handles GET /artists.
func (h *Handler) ListArtists(c echo.Context) error {
	artists, err := h.Artists.ListSummaries(c.Request().Context(), h.now())
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "artists.html", "Artists", artists)
}

// SearchArtists handles POST /artists/search.
func (h *Handler) SearchArtists(c echo.Context) error {
	term := c.FormValue("search_term")
	found, err := h.Artists.Search(c.Request().Context(), term, h.now())
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "search.html", "Artist search", searchResult{
		Kind: "artists", Term: term, Count: len(found), Results: found,
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
		return lookupError(err)
	}
	shows, err := h.Shows.ListByArtist(ctx, id)
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "show_artist.html", a.Name, artistDetail{
		Artist:   a,
		Genres:   a.GenreList(),
		Schedule: model.Partition(shows, h.now()),
	})
}

func (h *Handler) CreateArtistForm(c echo.Context) error {
	return h.render(c, http.StatusOK, "forms/artist.html", "New artist", artistFormPage{
		Action: "/artists/create",
		Genres: model.Genres,
	})
}

// CreateArtist handles POST /artists/create.
func (h *Handler) CreateArtist(c echo.Context) error {
	var form ArtistForm
	err := c.Bind(&form)
	if err == nil {
		err = form.validate()
	}
	var a model.Artist
	if err == nil {
		a = form.Artist()
		ctx := c.Request().Context()
		err = repository.WithTx(ctx, h.DB, func(tx *sql.Tx) error { return h.Artists.CreateTx(ctx, tx, &a) })
	}
	if err != nil {
		return h.redirect(c, "/artists/create", utils.FlashDanger,
			fmt.Sprintf("An error occurred. Artist %s could not be listed because of the error: %v", form.Name, err))
	}
	h.afterWrite(c, queue.ActionCreated, queue.EntityArtist, a.ID, a.Name)
	return h.redirect(c, "/", utils.FlashSuccess, fmt.Sprintf("Artist %s was successfully listed!", a.Name))
}

func (h *Handler) EditArtistForm(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	a, err := h.Artists.GetByID(c.Request().Context(), id)
	if err != nil {
		return lookupError(err)
	}
	return h.render(c, http.StatusOK, "forms/artist.html", "Edit "+a.Name, artistFormPage{
		ID:     id,
		Action: fmt.Sprintf("/artists/%d/edit", id),
		Form:   artistForm(a),
		Genres: model.Genres,
	})
}

// EditArtist handles POST /artists/:id/edit and rewrites the artist
// name/image copies on its shows in the same transaction.
func (h *Handler) EditArtist(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var form ArtistForm
	err = c.Bind(&form)
	if err == nil {
		err = form.validate()
	}
	a := form.Artist()
	a.ID = id
	if err == nil {
		ctx := c.Request().Context()
		err = repository.WithTx(ctx, h.DB, func(tx *sql.Tx) error { return h.Artists.UpdateTx(ctx, tx, &a) })
	}
	if err != nil {
		if isNotFound(err) {
			return lookupError(err)
		}
		return h.redirect(c, fmt.Sprintf("/artists/%d/edit", id), utils.FlashDanger, "An error occurred: "+err.Error())
	}
	h.afterWrite(c, queue.ActionUpdated, queue.EntityArtist, a.ID, a.Name)
	return h.redirect(c, fmt.Sprintf("/artists/%d", id), utils.FlashSuccess, "Artist has been updated successfully")
}

// DeleteArtist handles GET /artists/:id/delete.
func (h *Handler) DeleteArtist(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	var deleted *model.Artist
	err = repository.WithTx(ctx, h.DB, func(tx *sql.Tx) error {
		var err error
		deleted, err = h.Artists.DeleteTx(ctx, tx, id)
		return err
	})
	if err != nil {
		return h.redirect(c, "/", utils.FlashDanger, "An error occurred: "+err.Error())
	}
	h.afterWrite(c, queue.ActionDeleted, queue.EntityArtist, id, deleted.Name)
	return h.redirect(c, "/", utils.FlashSuccess, fmt.Sprintf("Artist %s has been deleted", deleted.Name))
}
