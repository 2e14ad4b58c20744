package handler

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Payphone-Digital/storefront/internal/constants"
	apperrors "github.com/Payphone-Digital/storefront/internal/errors"
	"github.com/Payphone-Digital/storefront/pkg/logger"
	"github.com/Payphone-Digital/storefront/pkg/urlstate"
	"github.com/gin-gonic/gin"
)

// URLStateConfig carries the URL-state policies shared by the listing and
// navigation handlers.
type URLStateConfig struct {
	ItemsPerPage int
	Siblings     int
	HistoryMode  urlstate.HistoryMode
	DefaultTab   string
}

// newURLStore builds the request's URL state. Committed writes are reported
// to the browser through HX-Replace-Url or HX-Push-Url.
func newURLStore(c *gin.Context, cfg URLStateConfig) *urlstate.Store {
	return urlstate.New(c.Request.URL.RawQuery, headerNavigator(c),
		urlstate.WithHistoryMode(cfg.HistoryMode),
		urlstate.WithLogger(logger.GetLogger()),
	)
}

func headerNavigator(c *gin.Context) urlstate.NavigatorFunc {
	path := locationPath(c)
	return func(query string, mode urlstate.HistoryMode) {
		header := constants.HeaderHXReplaceURL
		if mode == urlstate.Push {
			header = constants.HeaderHXPushURL
		}
		c.Header(header, buildURL(path, query))
	}
}

// locationPath is the path of the page the browser is on. Navigation
// endpoints are called from that page, so the HX-Current-Url header wins
// over the request path.
func locationPath(c *gin.Context) string {
	if current := c.GetHeader(constants.HeaderHXCurrentURL); current != "" {
		if u, err := url.Parse(current); err == nil && u.Path != "" {
			return u.Path
		}
	}
	return c.Request.URL.Path
}

func buildURL(path, query string) string {
	if query == "" {
		return path
	}
	return path + "?" + query
}

// paramID parses a positive integer path parameter.
func paramID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// writeError maps err to its status and coded body. Server-side failures
// keep their details out of the response.
func writeError(ctx context.Context, c *gin.Context, message string, err error) {
	status := apperrors.ToHTTPStatus(err)
	code := apperrors.GetErrorCode(err)

	entry := logger.WarnWithContext(ctx, message)
	if status >= http.StatusInternalServerError {
		entry = logger.ErrorWithContext(ctx, message)
	}
	entry.Int("http_status", status).String("error_code", code).Err(err).Log()

	var details any
	if status < http.StatusInternalServerError {
		details = apperrors.GetErrorMessage(err)
	}
	c.JSON(status, constants.BuildCodedErrorResponse(code, message, details))
}
