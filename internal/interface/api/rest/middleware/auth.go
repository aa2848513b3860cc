package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"user-registry-api/internal/application/ports"
	"user-registry-api/internal/domain/auth"
	"user-registry-api/internal/domain/user"
)

const (
	CtxUserID = "userID"
)

// BearerToken extracts the token from an Authorization header. The scheme is
// case-insensitive.
func BearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)

	return token, token != ""
}

func AuthMiddleware(tokens ports.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "missing Authorization header"},
			)
			return
		}

		tokenStr, ok := BearerToken(authHeader)
		if !ok {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "invalid token format"},
			)
			return
		}

		id, err := tokens.Verify(tokenStr)
		if err != nil {
			msg := "invalid token"
			if errors.Is(err, auth.ErrTokenExpired) {
				msg = "token expired"
			}
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": msg},
			)
			return
		}

		c.Set(CtxUserID, id)

		c.Next()
	}
}

// UserID returns the id AuthMiddleware verified for this request.
func UserID(c *gin.Context) (user.ID, bool) {
	v, ok := c.Get(CtxUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(user.ID)
	return id, ok
}
