package middleware

import (
	"github.com/gin-gonic/gin"

	"user-registry-api/internal/application/validation"
)

// Locale picks the message language from Accept-Language, falling back to
// the configured default, and stores it in the request context.
func Locale(fallback string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tag := validation.MatchLanguage(c.GetHeader("Accept-Language"), fallback)
		c.Request = c.Request.WithContext(validation.WithLanguage(c.Request.Context(), tag))
		c.Header("Content-Language", tag.String())

		c.Next()
	}
}
