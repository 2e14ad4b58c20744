package session

import (
	"github.com/Payphone-Digital/storefront/internal/constants"
	apperrors "github.com/Payphone-Digital/storefront/internal/errors"
	ctxutil "github.com/Payphone-Digital/storefront/pkg/context"
	"github.com/gin-gonic/gin"
)

// Attach provisions s for the rest of the request.
func Attach(c *gin.Context, s *Session) {
	c.Set(constants.GinKeySession, s)
	c.Request = c.Request.WithContext(ctxutil.WithSessionID(c.Request.Context(), s.ID))
}

// From returns the session provisioned for this request.
func From(c *gin.Context) (*Session, bool) {
	v, ok := c.Get(constants.GinKeySession)
	if !ok {
		return nil, false
	}
	s, ok := v.(*Session)
	return s, ok && s != nil
}

// MustFrom returns the provisioned session and panics when there is none.
// Reaching a store outside a provisioned route is a wiring bug.
func MustFrom(c *gin.Context) *Session {
	s, ok := From(c)
	if !ok {
		panic(apperrors.ErrStoreNotProvisioned)
	}
	return s
}
