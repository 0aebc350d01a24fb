package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/fyyur/internal/logger"
)

// HTTPErrorHandler renders the 404 and 500 pages for errors returned by
// handlers.  Other HTTP errors (400, 405, 429) get a plain text body.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := http.StatusText(code)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		}
	}

	var rerr error
	switch {
	case code == http.StatusNotFound:
		rerr = c.Render(code, "errors/404.html", nil)
	case code >= http.StatusInternalServerError:
		logger.FromEcho(c).Error("request failed",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Request().URL.Path),
			zap.Error(err))
		rerr = c.Render(code, "errors/500.html", nil)
	case c.Request().Method == http.MethodHead:
		rerr = c.NoContent(code)
	default:
		rerr = c.String(code, msg)
	}
	if rerr != nil {
		logger.FromEcho(c).Error("error page failed", zap.Error(rerr))
		_ = c.String(code, http.StatusText(code))
	}
}
