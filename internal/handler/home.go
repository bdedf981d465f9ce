package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/model"
)

type homePage struct {
	Venues  []model.Choice
	Artists []model.Choice
}

// Home handles GET / and lists the newest venues and artists.
func (h *Handler) Home(c echo.Context) error {
	ctx := c.Request().Context()
	venues, err := h.Venues.Recent(ctx, 10)
	if err != nil {
		return err
	}
	artists, err := h.Artists.Recent(ctx, 10)
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "home.html", "", homePage{Venues: venues, Artists: artists})
}
