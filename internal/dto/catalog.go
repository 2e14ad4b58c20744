package dto

import (
	"github.com/Payphone-Digital/storefront/internal/catalog"
	"github.com/Payphone-Digital/storefront/pkg/pagination"
)

type ProductCard struct {
	catalog.Product
	InCart   bool `json:"in_cart"`
	Quantity int  `json:"quantity"`
}

type ProductListResponse struct {
	Products   []ProductCard    `json:"products"`
	Pagination pagination.State `json:"pagination"`
	Tab        TabResponse      `json:"tab"`
	Filters    map[string]any   `json:"filters"`
	Categories []string         `json:"categories"`
	URL        string           `json:"url"`
}

type ProductDetailResponse struct {
	Product    ProductCard `json:"product"`
	Tab        TabResponse `json:"tab"`
	TabContent string      `json:"tab_content"`
	Tabs       []string    `json:"tabs"`
}
