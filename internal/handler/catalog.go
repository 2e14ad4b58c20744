package handler

import (
	"net/http"

	"github.com/Payphone-Digital/storefront/internal/catalog"
	"github.com/Payphone-Digital/storefront/internal/constants"
	"github.com/Payphone-Digital/storefront/internal/dto"
	apperrors "github.com/Payphone-Digital/storefront/internal/errors"
	"github.com/Payphone-Digital/storefront/internal/session"
	ctxutil "github.com/Payphone-Digital/storefront/pkg/context"
	"github.com/Payphone-Digital/storefront/pkg/logger"
	"github.com/Payphone-Digital/storefront/pkg/pagination"
	"github.com/Payphone-Digital/storefront/pkg/urlstate"
	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalog *catalog.Catalog
	cfg     URLStateConfig
}

func NewCatalogHandler(c *catalog.Catalog, cfg URLStateConfig) *CatalogHandler {
	return &CatalogHandler{catalog: c, cfg: cfg}
}

func (h *CatalogHandler) card(sess *session.Session, p catalog.Product) dto.ProductCard {
	return dto.ProductCard{
		Product:  p,
		InCart:   sess.Cart.IsInCart(p.ID),
		Quantity: sess.Cart.ItemQuantity(p.ID),
	}
}

// List renders one page of the catalog. A page number outside the result set
// is corrected and the corrected URL is sent back in HX-Replace-Url.
func (h *CatalogHandler) List(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "ListProducts")
	sess := session.MustFrom(c)

	params := newURLStore(c, h.cfg)
	categories := params.GetAll(constants.QueryParamCategory)
	products := h.catalog.Filter(categories)

	pager := pagination.New(params, len(products),
		pagination.WithItemsPerPage(h.cfg.ItemsPerPage),
		pagination.WithSiblings(h.cfg.Siblings),
	)
	state := pager.Reconcile()

	start, end := state.Window(len(products))
	cards := make([]dto.ProductCard, 0, end-start)
	for _, p := range products[start:end] {
		cards = append(cards, h.card(sess, p))
	}

	tab := urlstate.NewTabBinding(params, constants.QueryParamTab, h.cfg.DefaultTab)

	logger.DebugWithContext(ctx, "Products listed").
		Int("page", state.CurrentPage).
		Int("total_pages", state.TotalPages).
		Int("returned_count", len(cards)).
		Any("categories", categories).
		Log()

	c.JSON(http.StatusOK, constants.BuildDataResponse("Products fetched", dto.ProductListResponse{
		Products:   cards,
		Pagination: state,
		Tab:        dto.TabResponse{Current: tab.Current(), IsSet: tab.IsSet()},
		Filters:    params.AllParams(),
		Categories: h.catalog.Categories(),
		URL:        buildURL(locationPath(c), params.Query()),
	}))
}

// Get renders a product detail with the tab selected by the tab parameter.
func (h *CatalogHandler) Get(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "GetProduct")
	sess := session.MustFrom(c)

	id, ok := paramID(c, "id")
	if !ok {
		writeError(ctx, c, "Invalid product ID", apperrors.ErrInvalidInput)
		return
	}
	product, ok := h.catalog.Get(id)
	if !ok {
		writeError(ctx, c, "Product not found", apperrors.ErrProductNotFound)
		return
	}

	params := newURLStore(c, h.cfg)
	tab := urlstate.NewTabBinding(params, constants.QueryParamTab, h.cfg.DefaultTab)
	current := tab.Current()

	c.JSON(http.StatusOK, constants.BuildDataResponse("Product fetched", dto.ProductDetailResponse{
		Product:    h.card(sess, product),
		Tab:        dto.TabResponse{Current: current, IsSet: tab.IsSet()},
		TabContent: product.Tabs[current],
		Tabs:       product.TabNames(),
	}))
}
