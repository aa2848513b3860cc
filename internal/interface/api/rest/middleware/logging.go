package middleware

import (
	"bytes"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const (
	maxLogBodySize = 1 << 12 // 4 KB

	HeaderRequestID = "X-Request-ID"
	CtxRequestID    = "requestID"
)

var (
	passwordRe = regexp.MustCompile(`("(?:password|password_confirmation)"\s*:\s*)"(?:[^"\\]|\\.)*"`)
	// a value cut off by maxLogBodySize has no closing quote
	truncatedPasswordRe = regexp.MustCompile(`("(?:password|password_confirmation)"\s*:\s*)"(?:[^"\\]|\\.)*\\?$`)
)

// MaskPasswords hides password values in a JSON body before it is logged.
func MaskPasswords(body string) string {
	body = passwordRe.ReplaceAllString(body, `${1}"***"`)
	return truncatedPasswordRe.ReplaceAllString(body, `${1}"***`)
}

func RequestLogGin(logger *zap.Logger, mCounter *prometheus.CounterVec) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions ||
			c.Request.URL.Path == "/favicon.ico" ||
			strings.HasSuffix(c.Request.URL.Path, "/metrics") {
			c.Next()
			return
		}

		start := time.Now()

		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = ulid.Make().String()
		}
		c.Set(CtxRequestID, requestID)
		c.Header(HeaderRequestID, requestID)

		var body string
		if c.Request.Body != nil {
			var buf bytes.Buffer
			limited := io.LimitReader(c.Request.Body, maxLogBodySize)
			_, _ = io.Copy(&buf, limited)
			body = MaskPasswords(buf.String())
			c.Request.Body = readCloser{
				Reader: io.MultiReader(bytes.NewReader(buf.Bytes()), c.Request.Body),
				Closer: c.Request.Body,
			}
		}

		c.Next()

		if mCounter != nil {
			mCounter.WithLabelValues("app_requests_total").Inc()
		}

		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("url", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("body", body),
			zap.String("client_ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
		}
		if id, ok := UserID(c); ok {
			fields = append(fields, zap.Int64("user_id", int64(id)))
		}

		logger.Info("HTTP request", fields...)
	}
}

type readCloser struct {
	io.Reader
	io.Closer
}
