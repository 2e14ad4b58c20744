package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/Payphone-Digital/storefront/internal/constants"
	apperrors "github.com/Payphone-Digital/storefront/internal/errors"
	"github.com/Payphone-Digital/storefront/pkg/logger"
	"github.com/Payphone-Digital/storefront/pkg/validation"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const requestBodyKey = "validated_request_body"

type ValidationMiddleware struct {
	validate *validator.Validate
}

func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{validate: validator.New()}
}

// ValidateRequestBody decodes the JSON body into a value from factory,
// validates it and stores it for RequestBody.
func (m *ValidationMiddleware) ValidateRequestBody(factory func() any) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var bodyBytes []byte
		if c.Request.Body != nil {
			var err error
			bodyBytes, err = io.ReadAll(c.Request.Body)
			if err != nil {
				logger.ErrorWithContext(ctx, "Middleware: Failed to read request body").Err(err).Log()
				c.AbortWithStatusJSON(http.StatusBadRequest, constants.BuildCodedErrorResponse(
					apperrors.CodeInvalidInput, "Failed to read request body", nil))
				return
			}
		}
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		request := factory()
		if len(bytes.TrimSpace(bodyBytes)) == 0 {
			bodyBytes = []byte("{}")
		}
		if err := json.Unmarshal(bodyBytes, request); err != nil {
			logger.WarnWithContext(ctx, "Middleware: JSON unmarshaling failed").
				Int("body_size", len(bodyBytes)).
				Err(err).
				Log()
			c.AbortWithStatusJSON(http.StatusBadRequest, constants.BuildCodedErrorResponse(
				apperrors.CodeInvalidInput, "Invalid JSON body", err.Error()))
			return
		}

		if err := m.validate.Struct(request); err != nil {
			messages := validation.Messages(err)
			logger.WarnWithContext(ctx, "Middleware: Request validation failed").
				Any("validation_errors", messages).
				Path(c.Request.URL.Path).
				Log()
			c.AbortWithStatusJSON(http.StatusBadRequest, constants.BuildCodedErrorResponse(
				apperrors.CodeInvalidInput, "Validation failed", messages))
			return
		}

		c.Set(requestBodyKey, request)
		c.Next()
	}
}

// RequestBody returns the body stored by ValidateRequestBody. It panics when
// the route was registered without the matching validator.
func RequestBody[T any](c *gin.Context) *T {
	v, ok := c.Get(requestBodyKey)
	if !ok {
		panic(apperrors.WrapError(apperrors.ErrInternal, errMissingBody))
	}
	req, ok := v.(*T)
	if !ok {
		panic(apperrors.WrapError(apperrors.ErrInternal, errMissingBody))
	}
	return req
}

var errMissingBody = apperrors.NewDomainError("MISSING_BODY", "route has no request body validator")

// Body returns a validator factory for T.
func Body[T any]() func() any {
	return func() any { return new(T) }
}
