package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"library-catalog/internal/shared/response"
	"library-catalog/pkg/jwt"
)

// Context keys set by Auth.
const (
	ContextSubject = "subject"
	ContextRole    = "role"
)

// TokenValidator is satisfied by *jwt.Manager.
type TokenValidator interface {
	ValidateAccessToken(token string) (*jwt.Claims, error)
}

// Auth requires a valid "Authorization: Bearer <token>" header.
func Auth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		scheme, token, found := strings.Cut(authHeader, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			response.Unauthorized(c, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := validator.ValidateAccessToken(strings.TrimSpace(token))
		if err != nil {
			log.Debug().
				Str("request_id", c.GetString(ContextRequestID)).
				Err(err).
				Msg("rejected bearer token")
			response.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}

		c.Set(ContextSubject, claims.Subject)
		c.Set(ContextRole, claims.Role)

		c.Next()
	}
}
