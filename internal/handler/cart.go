package handler

import (
	"net/http"
	"time"

	"github.com/Payphone-Digital/storefront/internal/cart"
	"github.com/Payphone-Digital/storefront/internal/constants"
	"github.com/Payphone-Digital/storefront/internal/dto"
	apperrors "github.com/Payphone-Digital/storefront/internal/errors"
	"github.com/Payphone-Digital/storefront/internal/middleware"
	"github.com/Payphone-Digital/storefront/internal/session"
	ctxutil "github.com/Payphone-Digital/storefront/pkg/context"
	"github.com/Payphone-Digital/storefront/pkg/logger"
	"github.com/gin-gonic/gin"
)

const defaultHeartbeat = 25 * time.Second

type CartHandler struct {
	heartbeat time.Duration
}

// NewCartHandler builds the handler. A non-positive heartbeat uses the
// default keep-alive interval for event streams.
func NewCartHandler(heartbeat time.Duration) *CartHandler {
	if heartbeat <= 0 {
		heartbeat = defaultHeartbeat
	}
	return &CartHandler{heartbeat: heartbeat}
}

func cartResponse(store *cart.Store) dto.CartResponse {
	items := store.Items()
	return dto.NewCartResponse(items, store.Snapshot())
}

func (h *CartHandler) GetCart(c *gin.Context) {
	sess := session.MustFrom(c)
	c.JSON(http.StatusOK, constants.BuildDataResponse("Cart fetched", cartResponse(sess.Cart)))
}

func (h *CartHandler) AddItem(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "AddCartItem")
	sess := session.MustFrom(c)
	req := middleware.RequestBody[dto.AddCartItemRequest](c)

	quantity := req.QuantityOrDefault()
	logger.InfoWithContext(ctx, "Add to cart request").
		Int("product_id", req.ID).
		Int("quantity", quantity).
		Log()

	sess.Cart.AddToCart(ctx, req.ID, cart.ProductSnapshot(req.Data), quantity)

	c.JSON(http.StatusOK, constants.BuildDataResponse("Item added to cart", cartResponse(sess.Cart)))
}

// ItemStatus answers "is this product in the cart, and how many".
func (h *CartHandler) ItemStatus(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "CartItemStatus")
	sess := session.MustFrom(c)

	id, ok := paramID(c, "id")
	if !ok {
		writeError(ctx, c, "Invalid product ID", apperrors.ErrInvalidInput)
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataResponse("Cart item status fetched", dto.CartItemStatusResponse{
		ID:       id,
		InCart:   sess.Cart.IsInCart(id),
		Quantity: sess.Cart.ItemQuantity(id),
	}))
}

// UpdateItem sets an absolute quantity; zero or less removes the line.
func (h *CartHandler) UpdateItem(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "UpdateCartItem")
	sess := session.MustFrom(c)

	id, ok := paramID(c, "id")
	if !ok {
		writeError(ctx, c, "Invalid product ID", apperrors.ErrInvalidInput)
		return
	}
	req := middleware.RequestBody[dto.UpdateCartItemRequest](c)

	if !sess.Cart.IsInCart(id) {
		writeError(ctx, c, "Item is not in the cart", apperrors.ErrItemNotInCart)
		return
	}

	logger.InfoWithContext(ctx, "Update cart quantity request").
		Int("product_id", id).
		Int("quantity", *req.Quantity).
		Log()

	sess.Cart.UpdateQuantity(ctx, id, *req.Quantity)

	c.JSON(http.StatusOK, constants.BuildDataResponse("Cart item updated", cartResponse(sess.Cart)))
}

// RemoveItem is idempotent: removing an absent product succeeds.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "RemoveCartItem")
	sess := session.MustFrom(c)

	id, ok := paramID(c, "id")
	if !ok {
		writeError(ctx, c, "Invalid product ID", apperrors.ErrInvalidInput)
		return
	}

	sess.Cart.RemoveFromCart(ctx, id)

	logger.InfoWithContext(ctx, "Cart item removed").
		Int("product_id", id).
		Log()

	c.JSON(http.StatusOK, constants.BuildDataResponse("Cart item removed", cartResponse(sess.Cart)))
}

func (h *CartHandler) ClearCart(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "ClearCart")
	sess := session.MustFrom(c)

	sess.Cart.ClearCart(ctx)

	logger.InfoWithContext(ctx, "Cart cleared").Log()

	c.JSON(http.StatusOK, constants.BuildDataResponse("Cart cleared", cartResponse(sess.Cart)))
}

// Events streams one cartUpdated event per committed cart change, plus one on
// connect so the client can sync its badge.
func (h *CartHandler) Events(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "CartEvents")
	sess := session.MustFrom(c)

	updates, unsubscribe := sess.Bus.Channel(cart.EventUpdated, 1)
	defer unsubscribe()

	c.Header(constants.HeaderContentType, constants.ContentTypeEventStream)
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	logger.DebugWithContext(ctx, "Cart event stream opened").Log()
	defer logger.DebugWithContext(ctx, "Cart event stream closed").Log()

	heartbeat := time.NewTicker(h.heartbeat)
	defer heartbeat.Stop()

	c.SSEvent(cart.EventUpdated, "")
	c.Writer.Flush()

	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-updates:
			if !ok {
				return
			}
			c.SSEvent(cart.EventUpdated, "")
		case <-heartbeat.C:
			c.SSEvent("ping", "")
		}
		c.Writer.Flush()
	}
}
