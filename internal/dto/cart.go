package dto

import (
	"github.com/Payphone-Digital/storefront/internal/cart"
	"github.com/shopspring/decimal"
)

type AddCartItemRequest struct {
	ID       int            `json:"id" validate:"gt=0,lte=9007199254740991"`
	Quantity *int           `json:"quantity" validate:"omitempty,gte=0,lte=9999"`
	Data     map[string]any `json:"data" validate:"required"`
}

// QuantityOrDefault returns the requested quantity, 1 when omitted.
func (r AddCartItemRequest) QuantityOrDefault() int {
	if r.Quantity == nil {
		return 1
	}
	return *r.Quantity
}

type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" validate:"required,lte=9999"`
}

type CartItemResponse struct {
	ID       int             `json:"id"`
	Quantity int             `json:"quantity"`
	Data     map[string]any  `json:"data"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type CartItemStatusResponse struct {
	ID       int  `json:"id"`
	InCart   bool `json:"in_cart"`
	Quantity int  `json:"quantity"`
}

type CartResponse struct {
	Items         []CartItemResponse `json:"items"`
	Count         int                `json:"count"`
	TotalQuantity int                `json:"total_quantity"`
	TotalPrice    decimal.Decimal    `json:"total_price"`
}

func NewCartResponse(items []cart.LineItem, snap cart.Snapshot) CartResponse {
	out := make([]CartItemResponse, len(items))
	for i, it := range items {
		out[i] = CartItemResponse{
			ID:       it.ID,
			Quantity: it.Quantity,
			Data:     it.Data,
			Subtotal: it.Subtotal(),
		}
	}
	return CartResponse{
		Items:         out,
		Count:         snap.Count,
		TotalQuantity: snap.TotalQuantity,
		TotalPrice:    snap.TotalPrice,
	}
}
