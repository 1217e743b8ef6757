package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/snap-party/snapparty/internal/errdef"
	"github.com/snap-party/snapparty/pkg/model"
)

type tokenValidator interface {
	ValidateSessionToken(tokenString string) (model.Device, error)
}

type AuthenticationMiddleware struct {
	tokens tokenValidator
}

func NewAuthentication(tokens tokenValidator) *AuthenticationMiddleware {
	return &AuthenticationMiddleware{tokens}
}

// TokenAuthentication requires a valid device session token on the request.
// The device carried inside the token is the only identity this system has;
// it is placed on both the Gin context and the request context so handlers
// and the logger can find it.
func (m AuthenticationMiddleware) TokenAuthentication(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if token == "" {
		unauthorized := errdef.NewUnauthorized("token not found in Authorization header")
		_ = c.Error(unauthorized)
		c.Abort()
		return
	}

	device, err := m.tokens.ValidateSessionToken(token)
	if err != nil {
		unauthorized := errdef.NewUnauthorized("token not valid")
		_ = c.Error(unauthorized)
		c.Abort()
		return
	}

	c.Set("device", device)
	c.Request = c.Request.WithContext(model.NewContextWithDevice(c.Request.Context(), device))
	c.Next()
}
