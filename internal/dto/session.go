package dto

import "time"

type SessionResponse struct {
	Token     string    `json:"token"`
	SessionID string    `json:"session_id"`
	ExpiresIn int64     `json:"expires_in"`
	CreatedAt time.Time `json:"created_at"`
}
