package dto

type OpenModalRequest struct {
	Type    string         `json:"type" validate:"required,oneof=removeItem clearCart orderPlaced coupon quickView"`
	Payload map[string]any `json:"payload"`
}

type ModalResponse struct {
	Open         bool           `json:"open"`
	Type         string         `json:"type,omitempty"`
	Payload      map[string]any `json:"payload,omitempty"`
	ScrollLocked bool           `json:"scroll_locked"`
}
