package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type errorPage struct {
	Code    int
	Status  string
	Message string
}

// HTTPErrorHandler renders errors as HTML pages: 404 gets its own page and
// every other status the generic error page.  Server errors are logged and
// their details kept from the client.
func (h *Handler) HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := ""
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if code < http.StatusInternalServerError {
			msg = fmt.Sprint(he.Message)
		}
	}
	if code >= http.StatusInternalServerError {
		h.Log.Error("request failed",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Request().URL.Path),
			zap.Int("status", code),
			zap.Error(err))
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}

	page := "errors/500.html"
	if code == http.StatusNotFound {
		page = "errors/404.html"
		if msg == http.StatusText(http.StatusNotFound) {
			msg = ""
		}
	}
	data := errorPage{Code: code, Status: http.StatusText(code), Message: msg}
	if rerr := h.render(c, code, page, data.Status, data); rerr != nil {
		h.Log.Error("render error page", zap.Error(rerr))
		_ = c.String(code, data.Status)
	}
}
