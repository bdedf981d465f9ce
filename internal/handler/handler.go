package handler // handler package holds the echo handlers for the directory pages

import (
	"context"      // context bounds the post-commit side effects
	"database/sql" // sql provides the pool used to open write transactions
	"errors"       // errors matches repository sentinels
	"net/http"     // http provides status code constants
	"strconv"      // strconv parses path identifiers
	"time"         // time drives the past/upcoming split

	"github.com/labstack/echo/v4" // echo is the web framework used for handlers
	"go.uber.org/zap"             // zap is the structured logger

	"github.com/iliyamo/fyyur/internal/queue"      // queue defines the activity event payload
	"github.com/iliyamo/fyyur/internal/repository" // repository holds the data access layer
	"github.com/iliyamo/fyyur/internal/service"    // service publishes activity events
	"github.com/iliyamo/fyyur/internal/view"       // view defines the page envelope
)

// Purger drops cached pages after a write.
type Purger interface {
	Purge(ctx context.Context) error
}

type nopPurger struct{}

func (nopPurger) Purge(context.Context) error { return nil }

// Handler bundles the repositories and collaborators every page needs.
type Handler struct {
	DB          *sql.DB                // DB opens the write transactions
	Venues      *repository.VenueRepo  // Venues provides venue persistence
	Artists     *repository.ArtistRepo // Artists provides artist persistence
	Shows       *repository.ShowRepo   // Shows provides show persistence
	Events      service.Publisher      // Events receives one event per committed write
	Cache       Purger                 // Cache is purged after every committed write
	Log         *zap.Logger
	FlashSecret string         // FlashSecret signs the flash cookie
	Location    *time.Location // Location is used to read submitted start times
	Now         func() time.Time
}

// Options carries the optional collaborators of New.
type Options struct {
	Events   service.Publisher
	Cache    Purger
	Log      *zap.Logger
	Location *time.Location
}

// New constructs a Handler over db and panics if db is nil or the flash
// secret is empty.  Missing options fall back to no-op implementations.
func New(db *sql.DB, flashSecret string, opts Options) *Handler {
	if db == nil || flashSecret == "" {
		panic("handler.New: nil db or empty flash secret")
	}
	h := &Handler{
		DB:          db,
		Venues:      repository.NewVenueRepo(db),
		Artists:     repository.NewArtistRepo(db),
		Shows:       repository.NewShowRepo(db),
		Events:      opts.Events,
		Cache:       opts.Cache,
		Log:         opts.Log,
		FlashSecret: flashSecret,
		Location:    opts.Location,
	}
	if h.Events == nil {
		h.Events = service.NopPublisher{}
	}
	if h.Cache == nil {
		h.Cache = nopPurger{}
	}
	if h.Log == nil {
		h.Log = zap.NewNop()
	}
	if h.Location == nil {
		h.Location = time.UTC
	}
	return h
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now().UTC()
	}
	return time.Now().UTC()
}

// render wraps data in the page envelope and consumes pending flashes.
func (h *Handler) render(c echo.Context, status int, page, title string, data any) error {
	return c.Render(status, page, view.Page{
		Title:   title,
		Flashes: h.popFlashes(c),
		Data:    data,
	})
}

// redirect queues a flash message and redirects to target.
func (h *Handler) redirect(c echo.Context, target, category, msg string) error {
	h.setFlash(c, category, msg)
	return c.Redirect(http.StatusFound, target)
}

// afterWrite runs once a transaction has committed.  Neither step can fail
// the request: the data is already stored.
func (h *Handler) afterWrite(c echo.Context, action, entity string, id uint64, name string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request().Context()), 5*time.Second)
	defer cancel()

	if err := h.Cache.Purge(ctx); err != nil {
		h.Log.Warn("page cache purge failed", zap.Error(err))
	}
	ev := queue.NewActivityEvent(action, entity, id, name)
	if err := h.Events.Publish(ctx, ev); err != nil {
		h.Log.Warn("activity event not published",
			zap.String("entity", entity), zap.Uint64("entity_id", id), zap.Error(err))
	}
}

// parseID reads the :id path parameter.  Malformed ids name no record, so
// they are reported as 404.
func parseID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusNotFound, "no record with id "+c.Param("id"))
	}
	return id, nil
}

// lookupError maps repository not-found errors to a 404.
func lookupError(err error) error {
	if isNotFound(err) {
		return echo.NewHTTPError(http.StatusNotFound, err.Error()).SetInternal(err)
	}
	return err
}

func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
