package router // package router defines how HTTP routes are registered

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/fyyur/internal/handler" // import the page handlers
)

// Middlewares are applied per route class: Cache wraps the GET pages and
// RateLimit the form submissions.  Nil entries are skipped.
type Middlewares struct {
	Cache     echo.MiddlewareFunc
	RateLimit echo.MiddlewareFunc
}

func (m Middlewares) reads() []echo.MiddlewareFunc  { return nonNil(m.Cache) }
func (m Middlewares) writes() []echo.MiddlewareFunc { return nonNil(m.RateLimit) }

func nonNil(fns ...echo.MiddlewareFunc) []echo.MiddlewareFunc {
	out := make([]echo.MiddlewareFunc, 0, len(fns))
	for _, fn := range fns {
		if fn != nil {
			out = append(out, fn)
		}
	}
	return out
}

// RegisterRoutes registers every page of the directory on e.  Echo matches
// static segments before parameters, so /venues/create never reaches the
// :id routes.
func RegisterRoutes(e *echo.Echo, h *handler.Handler, mw Middlewares) {
	r, w := mw.reads(), mw.writes()

	// The health check stays outside the cache so it always hits the database.
	e.GET("/healthz", h.Health)
	e.GET("/", h.Home, r...)

	venues := e.Group("/venues")
	venues.GET("", h.ListVenues, r...)
	venues.POST("/search", h.SearchVenues, w...)
	venues.GET("/create", h.CreateVenueForm, r...)
	venues.POST("/create", h.CreateVenue, w...)
	venues.GET("/:id", h.ShowVenue, r...)
	venues.GET("/:id/edit", h.EditVenueForm, r...)
	venues.POST("/:id/edit", h.EditVenue, w...)
	// Deletes are plain links in the detail page, hence GET; never cached.
	venues.GET("/:id/delete", h.DeleteVenue, w...)

	artists := e.Group("/artists")
	artists.GET("", h.ListArtists, r...)
	artists.POST("/search", h.SearchArtists, w...)
	artists.GET("/create", h.CreateArtistForm, r...)
	artists.POST("/create", h.CreateArtist, w...)
	artists.GET("/:id", h.ShowArtist, r...)
	artists.GET("/:id/edit", h.EditArtistForm, r...)
	artists.POST("/:id/edit", h.EditArtist, w...)
	artists.GET("/:id/delete", h.DeleteArtist, w...)

	shows := e.Group("/shows")
	shows.GET("", h.ListShows, r...)
	shows.GET("/create", h.CreateShowForm, r...)
	shows.POST("/create", h.CreateShow, w...)
}
