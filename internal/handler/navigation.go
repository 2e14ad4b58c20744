package handler

import (
	"net/http"

	"github.com/Payphone-Digital/storefront/internal/constants"
	"github.com/Payphone-Digital/storefront/internal/dto"
	apperrors "github.com/Payphone-Digital/storefront/internal/errors"
	"github.com/Payphone-Digital/storefront/internal/middleware"
	ctxutil "github.com/Payphone-Digital/storefront/pkg/context"
	"github.com/Payphone-Digital/storefront/pkg/logger"
	"github.com/Payphone-Digital/storefront/pkg/pagination"
	"github.com/Payphone-Digital/storefront/pkg/urlstate"
	"github.com/gin-gonic/gin"
)

// NavigationHandler applies URL-state writes to the query string the caller
// sends and answers with the resulting location.
type NavigationHandler struct {
	cfg URLStateConfig
}

func NewNavigationHandler(cfg URLStateConfig) *NavigationHandler {
	return &NavigationHandler{cfg: cfg}
}

func navigationResponse(c *gin.Context, params *urlstate.Store) dto.NavigationResponse {
	query := params.Query()
	return dto.NavigationResponse{
		Query:  query,
		URL:    buildURL(locationPath(c), query),
		Params: params.AllParams(),
		Mode:   params.Mode().String(),
	}
}

// SetPage moves to the requested page. Pages outside the collection are
// rejected without touching the URL.
func (h *NavigationHandler) SetPage(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "SetPage")
	req := middleware.RequestBody[dto.SetPageRequest](c)

	perPage := h.cfg.ItemsPerPage
	if req.ItemsPerPage > 0 {
		perPage = req.ItemsPerPage
	}

	params := newURLStore(c, h.cfg)
	pager := pagination.New(params, req.TotalItems,
		pagination.WithItemsPerPage(perPage),
		pagination.WithSiblings(h.cfg.Siblings),
	)

	if !pager.SetPage(req.Page) {
		logger.DebugWithContext(ctx, "Page out of range").
			Int("page", req.Page).
			Int("total_pages", pager.TotalPages()).
			Log()
		writeError(ctx, c, "Page out of range", apperrors.ErrPageOutOfRange)
		return
	}

	state := pager.Reconcile()
	resp := navigationResponse(c, params)
	resp.Page = &state

	c.JSON(http.StatusOK, constants.BuildDataResponse("Page updated", resp))
}

// SetTab selects a tab, or removes the tab parameter when clear is set.
func (h *NavigationHandler) SetTab(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "SetTab")
	req := middleware.RequestBody[dto.SetTabRequest](c)

	params := newURLStore(c, h.cfg)
	tab := urlstate.NewTabBinding(params, constants.QueryParamTab, h.cfg.DefaultTab)

	switch {
	case req.Clear:
		tab.Clear()
	case req.Tab != nil:
		tab.Set(*req.Tab)
	default:
		writeError(ctx, c, "Either tab or clear is required", apperrors.ErrInvalidInput)
		return
	}

	resp := navigationResponse(c, params)
	resp.Tab = &dto.TabResponse{Current: tab.Current(), IsSet: tab.IsSet()}

	c.JSON(http.StatusOK, constants.BuildDataResponse("Tab updated", resp))
}

// SetParams writes several parameters as one URL update. Null removes a key.
func (h *NavigationHandler) SetParams(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "SetParams")
	req := middleware.RequestBody[dto.SetParamsRequest](c)

	params := newURLStore(c, h.cfg)
	params.SetParams(req.Params)

	logger.DebugWithContext(ctx, "URL params updated").
		Int("key_count", len(req.Params)).
		Log()

	c.JSON(http.StatusOK, constants.BuildDataResponse("Params updated", navigationResponse(c, params)))
}
