// Package middleware holds the gin middleware in front of the ledger routes.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/dto"
)

// ContextKey names values the middleware stores on the gin context.
type ContextKey string

const UserIDKey ContextKey = "user_id"

// AuthMiddleware resolves the bearer token to the ledger owner.
type AuthMiddleware struct {
	tokenService adapter.TokenService
}

// NewAuthMiddleware creates a new auth middleware.
func NewAuthMiddleware(tokenService adapter.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenService: tokenService}
}

// Authenticate rejects the request with 401 unless it carries a valid access
// token. Expired tokens get their own code so clients know to refresh.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			reject(c, domainerror.ErrCodeMissingToken, "Authorization header is required")
			return
		}
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			reject(c, domainerror.ErrCodeInvalidToken, "Invalid authorization header format")
			return
		}
		if token = strings.TrimSpace(token); token == "" {
			reject(c, domainerror.ErrCodeMissingToken, "Token is required")
			return
		}

		claims, err := m.tokenService.ValidateAccessToken(c.Request.Context(), token)
		switch {
		case errors.Is(err, domainerror.ErrExpiredToken):
			reject(c, domainerror.ErrCodeExpiredToken, "Access token has expired")
			return
		case err != nil:
			reject(c, domainerror.ErrCodeInvalidToken, "Invalid access token")
			return
		}

		c.Set(string(UserIDKey), claims.UserID)
		c.Next()
	}
}

func reject(c *gin.Context, code domainerror.AuthErrorCode, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: message,
		Code:  string(code),
	})
}

// GetUserIDFromContext returns the owner set by Authenticate.
func GetUserIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(string(UserIDKey))
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
