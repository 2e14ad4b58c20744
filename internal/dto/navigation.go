package dto

import (
	"github.com/Payphone-Digital/storefront/pkg/pagination"
	"github.com/Payphone-Digital/storefront/pkg/urlstate"
)

type SetPageRequest struct {
	Page         int `json:"page"`
	TotalItems   int `json:"total_items" validate:"gte=0"`
	ItemsPerPage int `json:"items_per_page" validate:"omitempty,gte=1,lte=100"`
}

type SetTabRequest struct {
	Tab   *string `json:"tab"`
	Clear bool    `json:"clear"`
}

type SetParamsRequest struct {
	Params map[string]urlstate.Value `json:"params" validate:"required"`
}

// NavigationResponse reports the URL state after a write.
type NavigationResponse struct {
	Query  string            `json:"query"`
	URL    string            `json:"url"`
	Params map[string]any    `json:"params"`
	Mode   string            `json:"history_mode"`
	Page   *pagination.State `json:"pagination,omitempty"`
	Tab    *TabResponse      `json:"tab,omitempty"`
}

type TabResponse struct {
	Current string `json:"current"`
	IsSet   bool   `json:"is_set"`
}
