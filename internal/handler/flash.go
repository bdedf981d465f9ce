package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/fyyur/internal/utils"
)

const (
	flashCookie = "fyyur_flash"
	flashTTL    = time.Minute
)

// setFlash stores msg in the signed flash cookie, appending to any message
// already queued by this request.
func (h *Handler) setFlash(c echo.Context, category, msg string) {
	pending, _ := c.Get(flashCookie).([]utils.FlashMessage)
	pending = append(pending, utils.FlashMessage{Category: category, Message: msg})
	c.Set(flashCookie, pending)

	token, err := utils.SignFlash(h.FlashSecret, pending, flashTTL)
	if err != nil {
		h.Log.Warn("sign flash", zap.Error(err))
		return
	}
	c.SetCookie(&http.Cookie{
		Name:     flashCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(flashTTL / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlashes returns the messages carried by the request and expires the
// cookie.  Tampered or expired tokens are dropped silently.
func (h *Handler) popFlashes(c echo.Context) []utils.FlashMessage {
	ck, err := c.Cookie(flashCookie)
	if err != nil || ck.Value == "" {
		return nil
	}
	c.SetCookie(&http.Cookie{Name: flashCookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
	msgs, err := utils.ParseFlash(h.FlashSecret, ck.Value)
	if err != nil {
		return nil
	}
	return msgs
}

// HasFlash reports whether the request carries a flash cookie.  Pages
// rendered for such requests are one-off and must not be cached.
func HasFlash(c echo.Context) bool {
	ck, err := c.Cookie(flashCookie)
	return err == nil && ck.Value != ""
}
