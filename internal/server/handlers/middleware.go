package handlers

import (
	"log/slog"
	"time"

	"HealthRecords/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDKey    = "request_id"
	requestIDHeader = "X-Request-Id"
)

// RequestID tags every request with an id, reusing the caller's X-Request-Id
// when present.
func RequestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		requestId := ctx.GetHeader(requestIDHeader)
		if requestId == "" {
			requestId = uuid.New().String()
		}
		ctx.Set(requestIDKey, requestId)
		ctx.Header(requestIDHeader, requestId)
		ctx.Next()
	}
}

// Session copies the session cookie into the request context.
func Session(cookieName string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if id, err := ctx.Cookie(cookieName); err == nil && id != "" {
			ctx.Request = ctx.Request.WithContext(session.WithID(ctx.Request.Context(), id))
		}
		ctx.Next()
	}
}

func Logger(logger *slog.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		logger.Info("request",
			slog.String("request_id", ctx.GetString(requestIDKey)),
			slog.String("method", ctx.Request.Method),
			slog.String("path", ctx.Request.URL.Path),
			slog.Int("status", ctx.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
		)
	}
}
