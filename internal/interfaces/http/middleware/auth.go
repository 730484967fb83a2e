package middleware

import (
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"

	domainerrors "crowdfund.backend/internal/domain/errors"
	"crowdfund.backend/internal/interfaces/http/response"
	"crowdfund.backend/pkg/jwt"
	"crowdfund.backend/pkg/logger"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// AccountKey is the gin context key for the calling account
	AccountKey = "account"
)

// TokenValidator parses account bearer tokens
type TokenValidator interface {
	ValidateToken(tokenString string) (*jwt.Claims, error)
}

// AuthMiddleware resolves the calling account from an account bearer token
func AuthMiddleware(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			abortUnauthorized(c, "Authorization header is required")
			return
		}

		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthorized(c, "Invalid authorization format. Use: Bearer <token>")
			return
		}

		claims, err := tokens.ValidateToken(strings.TrimPrefix(authHeader, BearerPrefix))
		if err != nil {
			logger.Warn(c.Request.Context(), "bearer token rejected")
			if errors.Is(err, jwt.ErrExpiredToken) {
				abortUnauthorized(c, "Token has expired")
				return
			}
			abortUnauthorized(c, "Invalid token")
			return
		}

		account := claims.Account()
		c.Set(AccountKey, account)
		c.Request = c.Request.WithContext(logger.WithAccount(c.Request.Context(), account.Hex()))

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	response.Error(c, domainerrors.Unauthorized(message))
	c.Abort()
}

// GetAccount gets the calling account from context
func GetAccount(c *gin.Context) (common.Address, bool) {
	v, exists := c.Get(AccountKey)
	if !exists {
		return common.Address{}, false
	}
	account, ok := v.(common.Address)
	return account, ok
}

// RequireAccount creates a middleware that only lets the given account through
func RequireAccount(allowed common.Address) gin.HandlerFunc {
	return func(c *gin.Context) {
		account, ok := GetAccount(c)
		if !ok {
			abortUnauthorized(c, "Account not authenticated")
			return
		}
		if account != allowed {
			response.Error(c, domainerrors.Forbidden("Insufficient permissions"))
			c.Abort()
			return
		}
		c.Next()
	}
}
